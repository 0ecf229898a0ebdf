package devserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/zapdesk/zapdesk/internal/common"
	"github.com/zapdesk/zapdesk/internal/logging"
)

const tokenValidity = 24 * time.Hour

// Server exposes the development backend over HTTP.
type Server struct {
	echo   *echo.Echo
	store  *Store
	secret []byte
	log    logging.Logger
}

func NewServer(store *Store, secret []byte, log logging.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	s := &Server{
		echo:   e,
		store:  store,
		secret: secret,
		log:    log,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	// Public routes
	s.echo.POST("/api/login", s.handleLogin)
	s.echo.POST("/api/register", s.handleRegister)

	// Authenticated routes
	s.echo.GET("/api/me", s.handleMe, s.requireAuth)
	s.echo.GET("/api/onboarding/status", s.handleOnboardingStatus, s.requireAuth)
	s.echo.PUT("/api/onboarding/complete", s.handleCompleteOnboarding, s.requireAuth)
	s.echo.GET("/api/notifications", s.handleListNotifications, s.requireAuth)
	s.echo.PUT("/api/notifications/:id/read", s.handleMarkRead, s.requireAuth)
}

// requireAuth validates the bearer token and stores the user id in the echo
// context under "userID".
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(common.AuthorizationHeader)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		}

		userID, err := userIDFromToken(strings.TrimPrefix(header, common.BearerPrefix), s.secret)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
		}
		if _, ok := s.store.UserByID(userID); !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unknown user"})
		}

		c.Set("userID", userID)
		return next(c)
	}
}

func (s *Server) Start(addr string) error {
	s.log.Info(context.Background(), "dev server listening", "addr", addr)
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
