package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/summitcoaching/membership-service/internal/domain/model"
)

type PlansHandler struct {
	logger *zap.Logger
}

func NewPlansHandler(logger *zap.Logger) *PlansHandler {
	return &PlansHandler{
		logger: logger,
	}
}

type planResponse struct {
	ID             string `json:"id"`
	DisplayName    string `json:"display_name"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Interval       string `json:"interval"`
	MembershipType string `json:"membership_type"`
	DisplayPrice   string `json:"display_price"`
}

// GetPlans handles GET /api/v1/plans. The catalog is static and public;
// the landing page renders its pricing section from this.
func (h *PlansHandler) GetPlans(c echo.Context) error {
	plans := model.Plans()

	resp := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, planResponse{
			ID:             p.ID,
			DisplayName:    p.DisplayName,
			Amount:         p.Amount,
			Currency:       p.Currency,
			Interval:       string(p.Interval),
			MembershipType: string(p.Membership),
			DisplayPrice:   p.DisplayPrice(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"plans": resp,
	})
}
