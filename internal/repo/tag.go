package repo

import (
	"context"

	"github.com/Skotchmaster/photo_share/internal/models"
)

// GetOrCreateTags resolves tag names to rows, creating the ones that do
// not exist yet. Duplicate names in the input collapse to one tag.
func (r *GormRepo) GetOrCreateTags(ctx context.Context, names []string) ([]models.Tag, error) {
	seen := make(map[string]struct{}, len(names))
	tags := make([]models.Tag, 0, len(names))

	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		tag := models.Tag{Name: name}
		if err := r.DB.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
