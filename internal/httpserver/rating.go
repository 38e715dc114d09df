package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/photo_share/internal/middleware"
	"github.com/Skotchmaster/photo_share/internal/service"
	"github.com/Skotchmaster/photo_share/internal/util"
)

type RatingHTTP struct {
	Svc *service.RatingService
}

func (h *RatingHTTP) Rate(c echo.Context) error {
	var req struct {
		PhotoID uint `json:"photo_id"`
		Rating  int  `json:"rating"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	rating, err := h.Svc.Rate(c.Request().Context(), middleware.CurrentUser(c), req.PhotoID, req.Rating)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, rating)
}

func (h *RatingHTTP) List(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	ratings, err := h.Svc.List(c.Request().Context(), page, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, ratings)
}

func (h *RatingHTTP) Average(c echo.Context) error {
	photoID, err := strconv.Atoi(c.Param("photo_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid photo id")
	}

	avg, err := h.Svc.Average(c.Request().Context(), uint(photoID))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"photo_id":   photoID,
		"avg_rating": avg,
	})
}

func (h *RatingHTTP) Remove(c echo.Context) error {
	ratingID, err := strconv.Atoi(c.Param("rating_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid rating id")
	}

	if err := h.Svc.Remove(c.Request().Context(), uint(ratingID)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
