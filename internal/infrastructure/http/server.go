package http

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/summitcoaching/membership-service/internal/adapter/handler/http"
	"github.com/summitcoaching/membership-service/internal/config"
	domainRepo "github.com/summitcoaching/membership-service/internal/domain/repository"
	"github.com/summitcoaching/membership-service/internal/logger"
	"github.com/summitcoaching/membership-service/internal/middleware/auth"
	"github.com/summitcoaching/membership-service/internal/usecase"
)

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	profiles domainRepo.ProfileRepository
	checkout *usecase.CheckoutService
	sweeper  *usecase.ExpirySweeper
}

// requestValidator wires go-playground/validator into echo's Bind/Validate cycle.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(cfg *config.Config, log *zap.Logger, profiles domainRepo.ProfileRepository, checkout *usecase.CheckoutService, sweeper *usecase.ExpirySweeper) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	// Middleware. CORS allows any origin: the checkout endpoint is called
	// from the marketing site wherever it is hosted, and preflights get
	// an empty success response.
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	return &Server{
		config:   cfg,
		logger:   log,
		echo:     e,
		profiles: profiles,
		checkout: checkout,
		sweeper:  sweeper,
	}
}

func (s *Server) Start() error {
	// Setup routes
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "membership",
		})
	})

	// Initialize handlers
	plansHandler := handlers.NewPlansHandler(s.logger)
	checkoutHandler := handlers.NewCheckoutHandler(s.logger, s.checkout)
	profileHandler := handlers.NewProfileHandler(s.logger, s.profiles)
	sweepHandler := handlers.NewSweepHandler(s.logger, s.sweeper)

	// JWT middleware configuration
	jwtConfig := auth.JWTConfig{
		Secret: s.config.Service.Supabase.JWTSecret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
			"/api/v1/plans",
		},
	}

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Public routes (no authentication required)
	v1.GET("/plans", plansHandler.GetPlans)

	// Protected routes (require JWT authentication)
	protected := v1.Group("", auth.JWTMiddleware(jwtConfig))
	protected.POST("/checkout", checkoutHandler.CreateCheckoutSession)
	protected.GET("/profile", profileHandler.GetOwnProfile)

	// Internal routes, guarded by the backend service key rather than a
	// user credential. The sweep runs with elevated privileges.
	internal := s.echo.Group("/internal", s.requireServiceKey)
	internal.POST("/sweep", sweepHandler.RunSweep)
}

func (s *Server) requireServiceKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.Request().Header.Get("X-Service-Key")
		if s.config.Service.ServiceKey == "" ||
			subtle.ConstantTimeCompare([]byte(key), []byte(s.config.Service.ServiceKey)) != 1 {
			s.logger.Warn("Rejected internal request",
				zap.String("path", c.Request().URL.Path),
				zap.String("remote_ip", c.RealIP()))
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "Unauthorized",
			})
		}
		return next(c)
	}
}
