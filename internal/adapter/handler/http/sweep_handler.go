package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/summitcoaching/membership-service/internal/usecase"
)

// Sweeper is what the handler needs from the expiry sweeper.
type Sweeper interface {
	Run(ctx context.Context) (*usecase.SweepResult, error)
}

type SweepHandler struct {
	logger  *zap.Logger
	sweeper Sweeper
}

func NewSweepHandler(logger *zap.Logger, sweeper Sweeper) *SweepHandler {
	return &SweepHandler{
		logger:  logger,
		sweeper: sweeper,
	}
}

type sweepResponse struct {
	Success   bool                      `json:"success"`
	Cleaned   int                       `json:"cleaned"`
	Timestamp string                    `json:"timestamp"`
	Users     []usecase.SweepAuditEntry `json:"users"`
}

type sweepErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// RunSweep handles POST /internal/sweep. The route is reachable only
// with the backend service key; end users never call this.
func (h *SweepHandler) RunSweep(c echo.Context) error {
	result, err := h.sweeper.Run(c.Request().Context())
	if err != nil {
		h.logger.Error("Sweep run failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, sweepErrorResponse{
			Success:   false,
			Error:     err.Error(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, sweepResponse{
		Success:   true,
		Cleaned:   result.Cleaned,
		Timestamp: result.Timestamp.Format(time.RFC3339),
		Users:     result.Users,
	})
}
