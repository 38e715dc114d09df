package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/photo_share/internal/models"
	"github.com/Skotchmaster/photo_share/internal/service"
)

const userContextKey = "current_user"

type Auth struct {
	Svc *service.AuthService
}

func NewAuth(svc *service.AuthService) *Auth {
	return &Auth{Svc: svc}
}

// RequireAuth extracts the bearer access token, resolves the principal
// and stores it in the echo context for handlers and role gates.
func (m *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := BearerToken(c)
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		user, err := m.Svc.CurrentUser(c.Request().Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// RequireRoles gates a route on a fixed allow-list of roles. Must run
// after RequireAuth.
func RequireRoles(roles ...models.Role) echo.MiddlewareFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}
			if _, ok := allowed[user.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "operation forbidden")
			}
			return next(c)
		}
	}
}

func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}

func BearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}
