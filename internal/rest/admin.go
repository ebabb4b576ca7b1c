package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/layers-blog/domain"
	"github.com/Guyuepp/layers-blog/internal/rest/middleware"
	"github.com/Guyuepp/layers-blog/internal/rest/response"
)

type AdminHandler struct {
	Service domain.CommentUsecase
}

func NewAdminHandler(svc domain.CommentUsecase) *AdminHandler {
	return &AdminHandler{
		Service: svc,
	}
}

func (h *AdminHandler) Register(r gin.IRouter) {
	r.GET("/admin/comments/stats", h.Stats)
}

// Stats serves the moderation overview, optionally scoped with ?post=<slug>.
// A missing or unparsable limit falls back to the service default.
func (h *AdminHandler) Stats(c *gin.Context) {
	var limit int64
	if s := c.Query("limit"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			logrus.Debugf("Invalid param 'limit': %q", s)
		} else {
			limit = n
		}
	}
	caller := middleware.CredentialsFrom(c).Caller(true)

	overview, err := h.Service.AdminOverview(c.Request.Context(), c.Query("post"), limit, caller)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewAdminOverview(&overview))
}
