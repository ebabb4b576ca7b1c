package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Check reports whether one backing service is reachable.
type Check func(ctx context.Context) error

type HealthHandler struct {
	Checks map[string]Check
}

func NewHealthHandler(checks map[string]Check) *HealthHandler {
	return &HealthHandler{Checks: checks}
}

func (h *HealthHandler) Register(r gin.IRouter) {
	r.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	res := make(map[string]string, len(h.Checks))
	for name, check := range h.Checks {
		if err := check(c.Request.Context()); err != nil {
			res[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		res[name] = "ok"
	}
	c.JSON(status, gin.H{"status": http.StatusText(status), "checks": res})
}
