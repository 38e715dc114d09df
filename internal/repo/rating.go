package repo

import (
	"context"

	"github.com/Skotchmaster/photo_share/internal/models"
)

func (r *GormRepo) CreateRating(ctx context.Context, rating *models.PhotoRating) error {
	return r.DB.WithContext(ctx).Create(rating).Error
}

func (r *GormRepo) GetRating(ctx context.Context, id uint) (*models.PhotoRating, error) {
	var rating models.PhotoRating
	if err := r.DB.WithContext(ctx).First(&rating, id).Error; err != nil {
		return nil, translate(err)
	}
	return &rating, nil
}

func (r *GormRepo) HasUserRated(ctx context.Context, photoID, userID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.PhotoRating{}).
		Where("photo_id = ? AND user_id = ?", photoID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) ListRatings(ctx context.Context, offset, limit int) ([]models.PhotoRating, error) {
	var ratings []models.PhotoRating
	err := r.DB.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *GormRepo) AverageRating(ctx context.Context, photoID uint) (float64, error) {
	var avg float64
	err := r.DB.WithContext(ctx).
		Model(&models.PhotoRating{}).
		Where("photo_id = ?", photoID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return avg, nil
}

func (r *GormRepo) DeleteRating(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.PhotoRating{}, id).Error
}
