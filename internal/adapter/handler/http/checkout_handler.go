package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/summitcoaching/membership-service/internal/domain/errors"
	"github.com/summitcoaching/membership-service/internal/middleware/auth"
	"github.com/summitcoaching/membership-service/internal/usecase"
)

// CheckoutService is what the handler needs from the checkout usecase.
type CheckoutService interface {
	CreateSession(ctx context.Context, in usecase.CheckoutInput) (string, error)
}

type CheckoutHandler struct {
	logger   *zap.Logger
	checkout CheckoutService
}

func NewCheckoutHandler(logger *zap.Logger, checkout CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		logger:   logger,
		checkout: checkout,
	}
}

type CreateCheckoutRequest struct {
	PlanID     string `json:"planId" validate:"required"`
	SuccessURL string `json:"successUrl" validate:"required,url"`
	CancelURL  string `json:"cancelUrl" validate:"required,url"`
}

type CreateCheckoutResponse struct {
	URL string `json:"url"`
}

// CreateCheckoutSession handles POST /api/v1/checkout.
func (h *CheckoutHandler) CreateCheckoutSession(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "Unauthorized",
		})
	}

	var req CreateCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}

	h.logger.Info("Creating checkout session...",
		zap.String("user_id", user.UserID),
		zap.String("plan_id", req.PlanID),
	)

	url, err := h.checkout.CreateSession(c.Request().Context(), usecase.CheckoutInput{
		UserID:     user.UserID,
		Email:      user.Email,
		PlanID:     req.PlanID,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrUnknownPlan):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Invalid plan",
			})
		case errors.Is(err, domainErrors.ErrProfileNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Profile not found",
			})
		default:
			// Store and billing failures are surfaced with the request
			// itself treated as failed; the caller retries the whole
			// request rather than anything being retried here.
			h.logger.Error("Error creating checkout session", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": err.Error(),
			})
		}
	}

	return c.JSON(http.StatusOK, CreateCheckoutResponse{
		URL: url,
	})
}
