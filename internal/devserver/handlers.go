package devserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zapdesk/zapdesk/internal/client/models"
)

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func jsonError(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

func (s *Server) handleLogin(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "malformed request")
	}
	if req.Email == "" || req.Password == "" {
		return jsonError(c, http.StatusBadRequest, "email and password are required")
	}

	user, err := s.store.Authenticate(req.Email, req.Password)
	if err != nil {
		return jsonError(c, http.StatusUnauthorized, "invalid credentials")
	}

	token, err := generateToken(user.ID, s.secret, tokenValidity)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "could not issue token")
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

func (s *Server) handleRegister(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "malformed request")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return jsonError(c, http.StatusBadRequest, "name, email and password are required")
	}

	user, err := s.store.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return jsonError(c, http.StatusConflict, "email already registered")
		}
		return jsonError(c, http.StatusInternalServerError, "could not create account")
	}

	token, err := generateToken(user.ID, s.secret, tokenValidity)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "could not issue token")
	}

	return c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
}

func (s *Server) handleMe(c echo.Context) error {
	userID := c.Get("userID").(string)
	user, ok := s.store.UserByID(userID)
	if !ok {
		return jsonError(c, http.StatusUnauthorized, "unknown user")
	}
	return c.JSON(http.StatusOK, map[string]*models.User{"user": user})
}

func (s *Server) handleOnboardingStatus(c echo.Context) error {
	userID := c.Get("userID").(string)
	return c.JSON(http.StatusOK, map[string]bool{"completed": s.store.Onboarded(userID)})
}

func (s *Server) handleCompleteOnboarding(c echo.Context) error {
	userID := c.Get("userID").(string)
	s.store.CompleteOnboarding(userID)
	return c.JSON(http.StatusOK, map[string]bool{"completed": true})
}

func (s *Server) handleListNotifications(c echo.Context) error {
	userID := c.Get("userID").(string)
	return c.JSON(http.StatusOK, s.store.Notifications(userID))
}

func (s *Server) handleMarkRead(c echo.Context) error {
	userID := c.Get("userID").(string)
	if !s.store.MarkRead(userID, c.Param("id")) {
		return jsonError(c, http.StatusNotFound, "notification not found")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
