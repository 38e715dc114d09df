package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/photo_share/internal/logging"
	"github.com/Skotchmaster/photo_share/internal/middleware"
	"github.com/Skotchmaster/photo_share/internal/service"
	"github.com/Skotchmaster/photo_share/internal/util"
)

type PhotoHTTP struct {
	Svc *service.PhotoService
}

// Upload takes a multipart form: file, optional description, optional
// comma-separated tags.
func (h *PhotoHTTP) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "photo_upload")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	src, err := fileHeader.Open()
	if err != nil {
		l.Error("upload_error", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read file")
	}
	defer src.Close()

	description := c.FormValue("description")
	tags := splitTags(c.FormValue("tags"))

	photo, err := h.Svc.Upload(ctx, middleware.CurrentUser(c), src, description, tags)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"photo":  photo,
		"detail": "Photo has been uploaded successfully",
	})
}

func (h *PhotoHTTP) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid photo id")
	}

	photo, err := h.Svc.Get(c.Request().Context(), uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, photo)
}

func (h *PhotoHTTP) List(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	result, err := h.Svc.List(c.Request().Context(), page, size)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total":  result.Total,
		"photos": result.Photos,
	})
}

func (h *PhotoHTTP) UpdateDescription(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid photo id")
	}

	var req struct {
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	photo, err := h.Svc.UpdateDescription(c.Request().Context(), middleware.CurrentUser(c), uint(id), req.Description)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, photo)
}

func (h *PhotoHTTP) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid photo id")
	}

	if err := h.Svc.Delete(c.Request().Context(), middleware.CurrentUser(c), uint(id)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
