package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/photo_share/internal/logging"
	"github.com/Skotchmaster/photo_share/internal/middleware"
	"github.com/Skotchmaster/photo_share/internal/service"
)

type UserHTTP struct {
	Svc *service.AuthService
}

func (h *UserHTTP) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

func (h *UserHTTP) BanUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "ban_user")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	user, err := h.Svc.BanUser(ctx, uint(id))
	if err != nil {
		return httpError(err)
	}

	l.Info("user_banned", "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"user":   user,
		"detail": "User was banned",
	})
}
