package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/photo_share/internal/middleware"
	"github.com/Skotchmaster/photo_share/internal/service"
)

type CommentHTTP struct {
	Svc *service.CommentService
}

func (h *CommentHTTP) Create(c echo.Context) error {
	var req struct {
		PhotoID uint   `json:"photo_id"`
		Comment string `json:"comment"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Comment == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "comment is required")
	}

	comment, err := h.Svc.Create(c.Request().Context(), middleware.CurrentUser(c), req.PhotoID, req.Comment)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *CommentHTTP) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid comment id")
	}

	comment, err := h.Svc.Get(c.Request().Context(), uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *CommentHTTP) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid comment id")
	}

	var req struct {
		Comment string `json:"comment"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	comment, err := h.Svc.Update(c.Request().Context(), middleware.CurrentUser(c), uint(id), req.Comment)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *CommentHTTP) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid comment id")
	}

	if err := h.Svc.Delete(c.Request().Context(), uint(id)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
