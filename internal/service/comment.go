package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/photo_share/internal/models"
	"github.com/Skotchmaster/photo_share/internal/repo"
)

type CommentService struct {
	Repo *repo.GormRepo
}

func (s *CommentService) Create(ctx context.Context, author *models.User, photoID uint, text string) (*models.Comment, error) {
	if _, err := s.Repo.GetPhoto(ctx, photoID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		Text:    text,
		PhotoID: photoID,
		UserID:  author.ID,
	}
	if err := s.Repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Get(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.Repo.GetComment(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return comment, nil
}

// Update is allowed for the comment author and for moderators.
func (s *CommentService) Update(ctx context.Context, actor *models.User, id uint, text string) (*models.Comment, error) {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, comment.UserID) {
		return nil, ErrForbidden
	}
	if err := s.Repo.UpdateComment(ctx, comment, text); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.Repo.DeleteComment(ctx, id)
}
