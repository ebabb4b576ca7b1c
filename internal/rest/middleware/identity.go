package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/layers-blog/domain"
	"github.com/Guyuepp/layers-blog/internal/identity"
)

const (
	SessionCookieName = "session"
	credentialsKey    = "credentials"
)

// CredentialResolver turns raw request credentials into domain.Credentials.
type CredentialResolver interface {
	Resolve(ctx context.Context, sessionToken, adminCookie string) domain.Credentials
}

// Identity resolves the reader session (bearer token or session cookie) and
// the admin cookie once per request. It never rejects a request; handlers
// decide what an anonymous caller may do.
func Identity(resolver CredentialResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminCookie, _ := c.Cookie(identity.AdminCookieName)
		creds := resolver.Resolve(c.Request.Context(), SessionToken(c), adminCookie)
		SetCredentials(c, creds)
		c.Next()
	}
}

// SessionToken prefers an Authorization bearer token over the cookie.
func SessionToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	token, _ := c.Cookie(SessionCookieName)
	return token
}

func SetCredentials(c *gin.Context, creds domain.Credentials) {
	c.Set(credentialsKey, creds)
}

// CredentialsFrom returns what Identity stored, or empty credentials.
func CredentialsFrom(c *gin.Context) domain.Credentials {
	v, ok := c.Get(credentialsKey)
	if !ok {
		return domain.Credentials{}
	}
	creds, _ := v.(domain.Credentials)
	return creds
}
