package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/photo_share/internal/models"
	"github.com/Skotchmaster/photo_share/internal/repo"
	"github.com/Skotchmaster/photo_share/internal/util"
)

type RatingService struct {
	Repo *repo.GormRepo
}

// Rate records a 1-5 rating and refreshes the photo's running average.
// Owners cannot rate their own photos; one rating per user per photo.
func (s *RatingService) Rate(ctx context.Context, rater *models.User, photoID uint, value int) (*models.PhotoRating, error) {
	if value < 1 || value > 5 {
		return nil, ErrInvalidRating
	}

	photo, err := s.Repo.GetPhoto(ctx, photoID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if photo.UserID == rater.ID {
		return nil, ErrOwnPhoto
	}

	rated, err := s.Repo.HasUserRated(ctx, photoID, rater.ID)
	if err != nil {
		return nil, err
	}
	if rated {
		return nil, ErrAlreadyRated
	}

	rating := &models.PhotoRating{
		PhotoID: photoID,
		UserID:  rater.ID,
		Rating:  value,
	}
	if err := s.Repo.CreateRating(ctx, rating); err != nil {
		return nil, err
	}

	if err := s.refreshAverage(ctx, photoID); err != nil {
		return nil, err
	}
	return rating, nil
}

func (s *RatingService) List(ctx context.Context, page, size int) ([]models.PhotoRating, error) {
	offset, limit := util.Calculate(page, size)
	return s.Repo.ListRatings(ctx, offset, limit)
}

func (s *RatingService) Average(ctx context.Context, photoID uint) (float64, error) {
	photo, err := s.Repo.GetPhoto(ctx, photoID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return photo.AverageRating, nil
}

func (s *RatingService) Remove(ctx context.Context, ratingID uint) error {
	rating, err := s.Repo.GetRating(ctx, ratingID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.Repo.DeleteRating(ctx, ratingID); err != nil {
		return err
	}
	return s.refreshAverage(ctx, rating.PhotoID)
}

func (s *RatingService) refreshAverage(ctx context.Context, photoID uint) error {
	avg, err := s.Repo.AverageRating(ctx, photoID)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePhotoAverageRating(ctx, photoID, avg)
}
