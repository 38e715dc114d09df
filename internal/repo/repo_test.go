package repo

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/photo_share/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Photo{},
		&models.Tag{},
		&models.Comment{},
		&models.PhotoRating{},
	))

	return &GormRepo{DB: db}
}
