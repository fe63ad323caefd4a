package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

// HealthHandler reports process liveness. The database check is advisory:
// a failed ping downgrades the "database" field but never the status code.
type HealthHandler struct {
	ping   func(ctx context.Context) error
	logger *zap.SugaredLogger
}

func NewHealthHandler(ping func(ctx context.Context) error, logger *zap.SugaredLogger) *HealthHandler {
	return &HealthHandler{ping: ping, logger: logger}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	database := "connected"
	if err := h.ping(ctx); err != nil {
		h.logger.Warnf("health check: database ping failed: %v", err)
		database = "disconnected"
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"service":  "feedback-hub",
		"database": database,
	})
}
