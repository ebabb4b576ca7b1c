package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/layers-blog/domain"
	"github.com/Guyuepp/layers-blog/internal/identity"
	"github.com/Guyuepp/layers-blog/internal/rest/middleware"
	"github.com/Guyuepp/layers-blog/internal/rest/request"
)

type AuthHandler struct {
	Service domain.AuthUsecase

	SessionTTL   time.Duration
	AdminTTL     time.Duration
	SecureCookie bool
}

func NewAuthHandler(svc domain.AuthUsecase, sessionTTL, adminTTL time.Duration, secure bool) *AuthHandler {
	return &AuthHandler{
		Service:      svc,
		SessionTTL:   sessionTTL,
		AdminTTL:     adminTTL,
		SecureCookie: secure,
	}
}

func (h *AuthHandler) Register(r gin.IRouter) {
	r.POST("/auth/magic-link", h.RequestMagicLink)
	r.GET("/auth/verify", h.VerifyMagicLink)
	r.POST("/auth/logout", h.SignOut)
	r.GET("/auth/me", h.Me)
	r.POST("/admin/login", h.AdminLogin)
	r.POST("/admin/logout", h.AdminLogout)
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, int(ttl.Seconds()), "/", "", h.SecureCookie, true)
}

func (h *AuthHandler) clearCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", h.SecureCookie, true)
}

func (h *AuthHandler) RequestMagicLink(c *gin.Context) {
	var req request.MagicLink
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Service.RequestMagicLink(c.Request.Context(), req.Email); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "check your inbox for a sign-in link"})
}

func (h *AuthHandler) VerifyMagicLink(c *gin.Context) {
	session, err := h.Service.VerifyMagicLink(c.Request.Context(), c.Query("token"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	h.setCookie(c, middleware.SessionCookieName, session.Token, h.SessionTTL)
	c.JSON(http.StatusOK, gin.H{
		"token":      session.Token,
		"email":      session.Email,
		"expires_at": session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.Service.SignOut(c.Request.Context(), middleware.SessionToken(c)); err != nil {
		abortWithError(c, err)
		return
	}
	h.clearCookie(c, middleware.SessionCookieName)
	c.Status(http.StatusNoContent)
}

// Me tells the frontend who it is talking as.
func (h *AuthHandler) Me(c *gin.Context) {
	creds := middleware.CredentialsFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"email": creds.ReaderEmail,
		"admin": creds.Admin,
	})
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req request.AdminLogin
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	value, err := h.Service.AdminLogin(c.Request.Context(), req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	h.setCookie(c, identity.AdminCookieName, value, h.AdminTTL)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) AdminLogout(c *gin.Context) {
	h.clearCookie(c, identity.AdminCookieName)
	c.Status(http.StatusNoContent)
}
