package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/summitcoaching/membership-service/internal/domain/repository"
	"github.com/summitcoaching/membership-service/internal/middleware/auth"
)

type ProfileHandler struct {
	logger   *zap.Logger
	profiles repository.ProfileRepository
}

func NewProfileHandler(logger *zap.Logger, profiles repository.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{
		logger:   logger,
		profiles: profiles,
	}
}

// GetOwnProfile handles GET /api/v1/profile. The client auth hook polls
// this right after signup, before the profile row may exist; 404 is the
// expected terminal outcome for that case, not an error.
func (h *ProfileHandler) GetOwnProfile(c echo.Context) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "Unauthorized",
		})
	}

	profile, err := h.profiles.GetByUserID(c.Request().Context(), user.UserID)
	if err != nil {
		h.logger.Error("Error fetching profile",
			zap.String("user_id", user.UserID),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": err.Error(),
		})
	}
	if profile == nil {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Profile not found",
		})
	}

	return c.JSON(http.StatusOK, profile)
}
