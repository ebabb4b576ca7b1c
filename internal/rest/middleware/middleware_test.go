package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/layers-blog/domain"
	"github.com/Guyuepp/layers-blog/internal/identity"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubResolver struct {
	gotSession, gotAdmin string
}

func (s *stubResolver) Resolve(_ context.Context, sessionToken, adminCookie string) domain.Credentials {
	s.gotSession, s.gotAdmin = sessionToken, adminCookie
	return domain.Credentials{ReaderEmail: "reader@example.com", Admin: adminCookie == "signed"}
}

func TestIdentity(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		cookies     []*http.Cookie
		wantSession string
		wantAdmin   bool
	}{
		{name: "nothing"},
		{
			name:        "session cookie",
			cookies:     []*http.Cookie{{Name: SessionCookieName, Value: "from-cookie"}},
			wantSession: "from-cookie",
		},
		{
			name:        "bearer wins over cookie",
			header:      "Bearer from-header",
			cookies:     []*http.Cookie{{Name: SessionCookieName, Value: "from-cookie"}},
			wantSession: "from-header",
		},
		{
			name:      "admin cookie",
			cookies:   []*http.Cookie{{Name: identity.AdminCookieName, Value: "signed"}},
			wantAdmin: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &stubResolver{}
			r := gin.New()
			r.Use(Identity(resolver))
			var got domain.Credentials
			r.GET("/", func(c *gin.Context) {
				got = CredentialsFrom(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			for _, ck := range tt.cookies {
				req.AddCookie(ck)
			}
			r.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.wantSession, resolver.gotSession)
			assert.Equal(t, tt.wantAdmin, got.Admin)
			assert.Equal(t, "reader@example.com", got.ReaderEmail)
		})
	}
}

func TestCredentialsFromEmptyContext(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, domain.Credentials{}, CredentialsFrom(c))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS("https://layers.blog"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://layers.blog", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestSetRequestContextWithTimeout(t *testing.T) {
	r := gin.New()
	r.Use(SetRequestContextWithTimeout(time.Second))
	var deadline bool
	r.GET("/", func(c *gin.Context) {
		_, deadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, deadline)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	r := gin.New()
	r.Use(m.Handler())
	r.GET("/comments/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/comments/a", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/comments/b", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/comments/:id", "418")))
	n, err := testutil.GatherAndCount(reg, "layers_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
