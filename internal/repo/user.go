package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/photo_share/internal/models"
)

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormRepo) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateUser persists a new user. The very first account ever created is
// promoted to admin; the count check and the insert share one transaction.
func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			u.Role = models.RoleAdmin
		} else if u.Role == "" {
			u.Role = models.RoleUser
		}
		return tx.Create(u).Error
	})
}

func (r *GormRepo) UpdateRefreshToken(ctx context.Context, user *models.User, token *string) error {
	if err := r.DB.WithContext(ctx).Model(user).Update("refresh_token", token).Error; err != nil {
		return err
	}
	user.RefreshToken = token
	return nil
}

func (r *GormRepo) ConfirmEmail(ctx context.Context, user *models.User) error {
	if err := r.DB.WithContext(ctx).Model(user).Update("confirmed", true).Error; err != nil {
		return err
	}
	user.Confirmed = true
	return nil
}

func (r *GormRepo) SetResetPasswordToken(ctx context.Context, user *models.User, token *string) error {
	if err := r.DB.WithContext(ctx).Model(user).Update("reset_password_token", token).Error; err != nil {
		return err
	}
	user.ResetPasswordToken = token
	return nil
}

// UpdatePassword stores the new hash and clears the reset token in one
// update, making the token single-use.
func (r *GormRepo) UpdatePassword(ctx context.Context, user *models.User, passwordHash string) error {
	updates := map[string]any{
		"password_hash":        passwordHash,
		"reset_password_token": nil,
	}
	if err := r.DB.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return err
	}
	user.PasswordHash = passwordHash
	user.ResetPasswordToken = nil
	return nil
}

func (r *GormRepo) BanUser(ctx context.Context, user *models.User) error {
	if err := r.DB.WithContext(ctx).Model(user).Update("ban_status", true).Error; err != nil {
		return err
	}
	user.BanStatus = true
	return nil
}
