package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/photo_share/internal/cache"
	"github.com/Skotchmaster/photo_share/internal/config"
	"github.com/Skotchmaster/photo_share/internal/httpserver"
	"github.com/Skotchmaster/photo_share/internal/logging"
	"github.com/Skotchmaster/photo_share/internal/mailer"
	"github.com/Skotchmaster/photo_share/internal/middleware"
	"github.com/Skotchmaster/photo_share/internal/mykafka"
	"github.com/Skotchmaster/photo_share/internal/repo"
	"github.com/Skotchmaster/photo_share/internal/service"
	"github.com/Skotchmaster/photo_share/internal/storage"
	"github.com/Skotchmaster/photo_share/internal/tokens"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	ctx := context.Background()

	db, err := config.InitDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db_init_failed", "error", err)
		os.Exit(1)
	}

	rdb, err := config.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Error("redis_init_failed", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	producer := mykafka.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	uploader, err := storage.NewCloudinaryUploader(cfg.CloudinaryName, cfg.CloudinaryKey, cfg.CloudinarySecret)
	if err != nil {
		logger.Error("cloudinary_init_failed", "error", err)
		os.Exit(1)
	}

	mail := &mailer.SMTPMailer{
		Addr:     cfg.SMTPAddr,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		FromName: cfg.MailFromName,
	}

	repository := &repo.GormRepo{DB: db}
	userCache := &cache.UserCache{RDB: rdb}
	codec := &tokens.Codec{Secret: cfg.JWTSecret}

	authSvc := &service.AuthService{
		Repo:     repository,
		Cache:    userCache,
		Codec:    codec,
		Mailer:   mail,
		Producer: producer,
		BaseURL:  cfg.BaseURL,
	}
	photoSvc := &service.PhotoService{Repo: repository, Uploader: uploader, Producer: producer}
	commentSvc := &service.CommentService{Repo: repository}
	ratingSvc := &service.RatingService{Repo: repository}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Auth:     &httpserver.AuthHTTP{Svc: authSvc},
		Users:    &httpserver.UserHTTP{Svc: authSvc},
		Photos:   &httpserver.PhotoHTTP{Svc: photoSvc},
		Comments: &httpserver.CommentHTTP{Svc: commentSvc},
		Ratings:  &httpserver.RatingHTTP{Svc: ratingSvc},
		AuthMW:   middleware.NewAuth(authSvc),
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server_starting", "addr", cfg.ServerAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server_failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server_shutting_down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("server_stopped")
}
