package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/layers-blog/domain"
	"github.com/Guyuepp/layers-blog/internal/rest/middleware"
	"github.com/Guyuepp/layers-blog/internal/rest/request"
	"github.com/Guyuepp/layers-blog/internal/rest/response"
)

// CommentHandler represent the httphandler for comments and replies
type CommentHandler struct {
	Service domain.CommentUsecase
}

func NewCommentHandler(svc domain.CommentUsecase) *CommentHandler {
	return &CommentHandler{
		Service: svc,
	}
}

func (h *CommentHandler) Register(r gin.IRouter) {
	r.GET("/posts/:slug/comments", h.ListByPost)
	r.POST("/posts/:slug/comments", h.Create)
	r.PUT("/comments/:id", h.UpdateContent)
	r.DELETE("/comments/:id", h.Delete)
	r.POST("/comments/:id/replies", h.ComposeReply)
	r.PUT("/comments/:id/replies/:replyID", h.UpdateReply)
	r.DELETE("/comments/:id/replies/:replyID", h.DeleteReply)
}

// ListByPost is public.
func (h *CommentHandler) ListByPost(c *gin.Context) {
	comments, stats, err := h.Service.ListByPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewCommentList(comments, stats))
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	caller := middleware.CredentialsFrom(c).Caller(req.AsAdmin)

	comment, err := h.Service.Create(c.Request.Context(), c.Param("slug"), req.ToDraft(), caller)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.NewCommentFromDomain(&comment))
}

// UpdateContent and the other modifying handlers prefer the admin identity:
// the admin may moderate anything.
func (h *CommentHandler) UpdateContent(c *gin.Context) {
	var req request.Content
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	caller := middleware.CredentialsFrom(c).Caller(true)

	comment, err := h.Service.UpdateContent(c.Request.Context(), c.Param("id"), req.Content, caller)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewCommentFromDomain(&comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	caller := middleware.CredentialsFrom(c).Caller(true)
	if err := h.Service.Delete(c.Request.Context(), c.Param("id"), caller); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) ComposeReply(c *gin.Context) {
	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	caller := middleware.CredentialsFrom(c).Caller(req.AsAdmin)

	reply, err := h.Service.ComposeReply(c.Request.Context(), c.Param("id"), req.ToDraft(), caller)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.NewReplyFromDomain(&reply))
}

func (h *CommentHandler) UpdateReply(c *gin.Context) {
	var req request.Content
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	caller := middleware.CredentialsFrom(c).Caller(true)

	reply, err := h.Service.UpdateReply(c.Request.Context(), c.Param("id"), c.Param("replyID"), req.Content, caller)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewReplyFromDomain(&reply))
}

func (h *CommentHandler) DeleteReply(c *gin.Context) {
	caller := middleware.CredentialsFrom(c).Caller(true)
	if err := h.Service.DeleteReply(c.Request.Context(), c.Param("id"), c.Param("replyID"), caller); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
