package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/photo_share/internal/logging"
	"github.com/Skotchmaster/photo_share/internal/middleware"
	"github.com/Skotchmaster/photo_share/internal/service"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_signup")

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email, username and password are required")
	}

	user, err := h.Svc.Signup(ctx, req.Email, req.Username, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"user":   user,
		"detail": "User successfully created",
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pair, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    "bearer",
	})
}

// Refresh expects the refresh token as the bearer credential.
func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	token := middleware.BearerToken(c)
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	pair, err := h.Svc.Refresh(ctx, token)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    "bearer",
	})
}

func (h *AuthHTTP) RequestEmail(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	confirmed, err := h.Svc.RequestEmailConfirmation(ctx, req.Email)
	if err != nil {
		return httpError(err)
	}
	if confirmed {
		return c.JSON(http.StatusOK, echo.Map{"message": "Your email is already confirmed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Check your email for confirmation"})
}

func (h *AuthHTTP) ConfirmEmail(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.Svc.ConfirmEmail(ctx, c.Param("token")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Email confirmed"})
}

func (h *AuthHTTP) ForgotPassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.ForgotPassword(ctx, req.Email); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Check your email for the reset token"})
}

func (h *AuthHTTP) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Email              string `json:"email"`
		ResetPasswordToken string `json:"reset_password_token"`
		Password           string `json:"password"`
		ConfirmPassword    string `json:"confirm_password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.ResetPassword(ctx, req.Email, req.ResetPasswordToken, req.Password, req.ConfirmPassword)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":   user,
		"detail": "Password has been reset",
	})
}
