package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/photo_share/internal/service"
	"github.com/Skotchmaster/photo_share/internal/tokens"
)

// httpError maps service error kinds to HTTP statuses. Anything not in
// the taxonomy is an infrastructure fault and surfaces as a 500 without
// leaking the underlying error.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, tokens.ErrInvalidToken),
		errors.Is(err, tokens.ErrInvalidScope):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTokenMismatch),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrTooManyTags),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrOwnPhoto),
		errors.Is(err, service.ErrAlreadyRated):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
