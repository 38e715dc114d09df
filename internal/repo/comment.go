package repo

import (
	"context"

	"github.com/Skotchmaster/photo_share/internal/models"
)

func (r *GormRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.DB.WithContext(ctx).Create(comment).Error
}

func (r *GormRepo) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.DB.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (r *GormRepo) UpdateComment(ctx context.Context, comment *models.Comment, text string) error {
	if err := r.DB.WithContext(ctx).Model(comment).Update("text", text).Error; err != nil {
		return err
	}
	comment.Text = text
	return nil
}

func (r *GormRepo) DeleteComment(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Comment{}, id).Error
}
