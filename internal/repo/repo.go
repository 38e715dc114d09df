package repo

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound marks a lookup that hit the database and found nothing.
// Infrastructure failures are never translated into it.
var ErrNotFound = errors.New("record not found")

type GormRepo struct {
	DB *gorm.DB
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
