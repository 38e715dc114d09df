package repo

import (
	"context"

	"github.com/Skotchmaster/photo_share/internal/models"
)

func (r *GormRepo) CreatePhoto(ctx context.Context, photo *models.Photo) error {
	return r.DB.WithContext(ctx).Create(photo).Error
}

func (r *GormRepo) GetPhoto(ctx context.Context, id uint) (*models.Photo, error) {
	var photo models.Photo
	if err := r.DB.WithContext(ctx).Preload("Tags").First(&photo, id).Error; err != nil {
		return nil, translate(err)
	}
	return &photo, nil
}

func (r *GormRepo) ListPhotos(ctx context.Context, offset, limit int) (int64, []models.Photo, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Photo{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var photos []models.Photo
	err := r.DB.WithContext(ctx).
		Preload("Tags").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&photos).Error
	if err != nil {
		return 0, nil, err
	}
	return total, photos, nil
}

func (r *GormRepo) UpdatePhotoDescription(ctx context.Context, photo *models.Photo, description string) error {
	if err := r.DB.WithContext(ctx).Model(photo).Update("description", description).Error; err != nil {
		return err
	}
	photo.Description = description
	return nil
}

func (r *GormRepo) UpdatePhotoAverageRating(ctx context.Context, photoID uint, avg float64) error {
	return r.DB.WithContext(ctx).
		Model(&models.Photo{}).
		Where("id = ?", photoID).
		Update("average_rating", avg).Error
}

func (r *GormRepo) DeletePhoto(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Photo{}, id).Error
}
