package models

import (
	"time"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

type User struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement"      json:"id"`
	Username           string    `gorm:"size:50;uniqueIndex;not null"  json:"username"`
	Email              string    `gorm:"size:50;uniqueIndex;not null"  json:"email"`
	PasswordHash       string    `gorm:"size:100;not null"             json:"-"`
	Role               Role      `gorm:"size:20;not null;default:user" json:"role"`
	Confirmed          bool      `gorm:"default:false"                 json:"confirmed"`
	BanStatus          bool      `gorm:"default:false"                 json:"ban_status"`
	RefreshToken       *string   `gorm:"size:512"                      json:"-"`
	ResetPasswordToken *string   `gorm:"size:255"                      json:"-"`
	CreatedAt          time.Time `json:"created_at"`
}

type Photo struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	URL           string    `gorm:"size:255;not null"        json:"photo"`
	Description   string    `gorm:"size:200"                 json:"description"`
	UserID        uint      `gorm:"index;not null"           json:"user_id"`
	AverageRating float64   `gorm:"default:0"                json:"average_rating"`
	Tags          []Tag     `gorm:"many2many:photo_tags"     json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Tag struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"      json:"id"`
	Name string `gorm:"size:255;uniqueIndex;not null" json:"name"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Text      string    `gorm:"size:255;not null"        json:"comment"`
	PhotoID   uint      `gorm:"index;not null"           json:"photo_id"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PhotoRating struct {
	ID      uint `gorm:"primaryKey;autoIncrement"                   json:"id"`
	PhotoID uint `gorm:"not null;uniqueIndex:idx_photo_rater"       json:"photo_id"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_photo_rater"       json:"user_id"`
	Rating  int  `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
}
