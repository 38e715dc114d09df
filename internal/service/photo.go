package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/photo_share/internal/logging"
	"github.com/Skotchmaster/photo_share/internal/models"
	"github.com/Skotchmaster/photo_share/internal/repo"
	"github.com/Skotchmaster/photo_share/internal/util"
)

const maxTagsPerPhoto = 5

type PhotoService struct {
	Repo     *repo.GormRepo
	Uploader Uploader
	Producer Producer
}

type PhotoPage struct {
	Total  int64
	Photos []models.Photo
}

// Upload delegates the bytes to the image host, then persists the
// delivery URL with its tags and owner.
func (s *PhotoService) Upload(ctx context.Context, owner *models.User, file io.Reader, description string, tagNames []string) (*models.Photo, error) {
	l := logging.FromContext(ctx).With("svc", "photo.upload", "user_id", owner.ID)

	if len(tagNames) > maxTagsPerPhoto {
		return nil, ErrTooManyTags
	}

	publicID := fmt.Sprintf("photo_share/%s_%s", owner.Username, uuid.NewString())
	url, err := s.Uploader.Upload(ctx, file, publicID)
	if err != nil {
		l.Error("upload_failed", "error", err)
		return nil, err
	}

	tags, err := s.Repo.GetOrCreateTags(ctx, tagNames)
	if err != nil {
		return nil, err
	}

	photo := &models.Photo{
		URL:         url,
		Description: description,
		UserID:      owner.ID,
		Tags:        tags,
	}
	if err := s.Repo.CreatePhoto(ctx, photo); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, fmt.Sprint(photo.ID), map[string]any{
		"type":     "photo_uploaded",
		"photo_id": photo.ID,
		"user_id":  owner.ID,
	})

	l.Info("upload_successful", "photo_id", photo.ID)
	return photo, nil
}

func (s *PhotoService) Get(ctx context.Context, id uint) (*models.Photo, error) {
	photo, err := s.Repo.GetPhoto(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return photo, nil
}

func (s *PhotoService) List(ctx context.Context, page, size int) (*PhotoPage, error) {
	offset, limit := util.Calculate(page, size)
	total, photos, err := s.Repo.ListPhotos(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return &PhotoPage{Total: total, Photos: photos}, nil
}

// UpdateDescription is allowed for the photo owner and for moderators.
func (s *PhotoService) UpdateDescription(ctx context.Context, actor *models.User, id uint, description string) (*models.Photo, error) {
	photo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, photo.UserID) {
		return nil, ErrForbidden
	}
	if err := s.Repo.UpdatePhotoDescription(ctx, photo, description); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *PhotoService) Delete(ctx context.Context, actor *models.User, id uint) error {
	photo, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(actor, photo.UserID) {
		return ErrForbidden
	}
	if err := s.Repo.DeletePhoto(ctx, id); err != nil {
		return err
	}

	s.publishEvent(ctx, fmt.Sprint(id), map[string]any{
		"type":     "photo_deleted",
		"photo_id": id,
		"user_id":  actor.ID,
	})
	return nil
}

// canManage: owners manage their own content, admins and moderators
// manage everything.
func canManage(actor *models.User, ownerID uint) bool {
	if actor.ID == ownerID {
		return true
	}
	return actor.Role == models.RoleAdmin || actor.Role == models.RoleModerator
}

func (s *PhotoService) publishEvent(ctx context.Context, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, "photo_events", key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_failed", "topic", "photo_events", "error", err)
	}
}
