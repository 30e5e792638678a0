package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ordersdesk/ordersdesk/internal/api/metrics"
	"github.com/ordersdesk/ordersdesk/internal/core/domain"
	"github.com/ordersdesk/ordersdesk/internal/core/ports"
)

// Response texts consumed verbatim by the front end.
const (
	msgRegistered    = "Usuario registrado exitosamente."
	msgUserExists    = "El usuario ya existe."
	msgUserNotFound  = "Usuario no encontrado."
	msgWrongPassword = "Contraseña incorrecta."
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      plain
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {string}  string  "Usuario registrado exitosamente."
// @Failure      400   {string}  string  "El usuario ya existe."
// @Router       /api/v1/Auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	err = h.authService.Register(c.Request().Context(), req.Username, req.Password, role)
	switch {
	case err == nil:
		metrics.AuthAttemptsTotal.WithLabelValues("register", "ok").Inc()
		return c.String(http.StatusOK, msgRegistered)
	case errors.Is(err, domain.ErrUserExists):
		metrics.AuthAttemptsTotal.WithLabelValues("register", "conflict").Inc()
		return c.String(http.StatusBadRequest, msgUserExists)
	case errors.Is(err, domain.ErrInvalidInput):
		metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid").Inc()
		return c.String(http.StatusBadRequest, err.Error())
	}
	metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
	return err
}

// Login authenticates a user and returns a signed token as plain text.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      plain
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {string}  string  "token"
// @Failure      400   {string}  string  "Usuario no encontrado."
// @Router       /api/v1/Auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "invalid payload")
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	switch {
	case err == nil:
		metrics.AuthAttemptsTotal.WithLabelValues("login", "ok").Inc()
		return c.String(http.StatusOK, token)
	case errors.Is(err, domain.ErrUserNotFound):
		metrics.AuthAttemptsTotal.WithLabelValues("login", "unknown_user").Inc()
		return c.String(http.StatusBadRequest, msgUserNotFound)
	case errors.Is(err, domain.ErrWrongPassword):
		metrics.AuthAttemptsTotal.WithLabelValues("login", "wrong_password").Inc()
		return c.String(http.StatusBadRequest, msgWrongPassword)
	}
	metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
	return err
}
