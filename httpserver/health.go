package httpserver

import (
	"context"
	"moviecatalog/pkg/sentry"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 2 * time.Second

func (s *Server) RegisterHealthRoutes() {
	s.Router.GET("/healthcheck", s.healthCheck)
}

// healthCheck godoc
// @Summary Health Check
// @Description Check if server is alive and the store answers a ping
// @Tags health
// @Success 200 {object} APIResponse
// @Failure 503 {object} APIResponse
// @Router /healthcheck [get]
func (s *Server) healthCheck(c echo.Context) error {
	if s.StoreHealth != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
		defer cancel()

		if err := s.StoreHealth.Ping(ctx); err != nil {
			s.Logger.Warnw("store ping failed", "error", err, "request_id", requestID(c))
			sentry.WithContext(c).
				WithTags(map[string]string{"check": "store_ping"}).
				WithExtras(map[string]interface{}{"error": err.Error()}).
				Warning("store ping failed")
			return writeError(c, http.StatusServiceUnavailable, "Store unavailable", "", err)
		}
	}

	return writeSuccess(c, http.StatusOK, map[string]string{
		"status": "OK",
	})
}
