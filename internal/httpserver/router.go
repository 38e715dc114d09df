package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/photo_share/internal/middleware"
	"github.com/Skotchmaster/photo_share/internal/models"
)

type Deps struct {
	Auth     *AuthHTTP
	Users    *UserHTTP
	Photos   *PhotoHTTP
	Comments *CommentHTTP
	Ratings  *RatingHTTP
	AuthMW   *middleware.Auth
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", d.Auth.Signup)
	auth.POST("/login", d.Auth.Login)
	auth.GET("/refresh_token", d.Auth.Refresh)
	auth.POST("/request_email", d.Auth.RequestEmail)
	auth.GET("/confirm_email/:token", d.Auth.ConfirmEmail)
	auth.POST("/forgot_password", d.Auth.ForgotPassword)
	auth.POST("/reset_password", d.Auth.ResetPassword)

	users := api.Group("/users", d.AuthMW.RequireAuth)
	users.GET("/me", d.Users.Me)
	users.PATCH("/ban_user/:id", d.Users.BanUser,
		middleware.RequireRoles(models.RoleAdmin))

	photos := api.Group("/photos", d.AuthMW.RequireAuth)
	photos.POST("", d.Photos.Upload)
	photos.GET("", d.Photos.List)
	photos.GET("/:id", d.Photos.Get)
	photos.PATCH("/:id", d.Photos.UpdateDescription)
	photos.DELETE("/:id", d.Photos.Delete)

	comments := api.Group("/comments", d.AuthMW.RequireAuth)
	comments.POST("", d.Comments.Create)
	comments.GET("/:id", d.Comments.Get)
	comments.PUT("/:id", d.Comments.Update)
	comments.DELETE("/:id", d.Comments.Delete,
		middleware.RequireRoles(models.RoleAdmin, models.RoleModerator))

	rating := api.Group("/rating", d.AuthMW.RequireAuth)
	rating.GET("", d.Ratings.List,
		middleware.RequireRoles(models.RoleAdmin, models.RoleModerator))
	rating.POST("", d.Ratings.Rate)
	rating.GET("/:photo_id", d.Ratings.Average)
	rating.DELETE("/:rating_id", d.Ratings.Remove,
		middleware.RequireRoles(models.RoleAdmin, models.RoleModerator))
}
