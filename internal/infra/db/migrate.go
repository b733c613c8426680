package db

import (
	"context"
	"fmt"

	"github.com/Renishchandera/gameforge-ai/internal/modules/model"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Migrate creates or updates every table the API owns.
func Migrate(d *gorm.DB) error {
	return d.AutoMigrate(
		&model.User{},
		&model.Idea{},
		&model.Project{},
		&model.Task{},
		&model.Doc{},
	)
}

// BackfillLegacy rewrites rows that still carry the single-valued genre/platform
// columns into the list columns and clears the scalars. It returns the number of rows rewritten.
func BackfillLegacy(ctx context.Context, d *gorm.DB, log *zap.Logger) (int, error) {
	total := 0

	var ideas []model.Idea
	if err := d.WithContext(ctx).
		Where("genre IS NOT NULL OR platform IS NOT NULL").
		Find(&ideas).Error; err != nil {
		return total, fmt.Errorf("load legacy ideas: %w", err)
	}
	for _, i := range ideas {
		if err := d.WithContext(ctx).Model(&model.Idea{}).Where("id = ?", i.ID).
			UpdateColumns(map[string]any{
				"genres":    datatypes.JSONSlice[string](i.Genres),
				"platforms": datatypes.JSONSlice[string](i.Platforms),
				"genre":     nil,
				"platform":  nil,
			}).Error; err != nil {
			return total, fmt.Errorf("backfill idea %s: %w", i.ID, err)
		}
		total++
	}

	var projects []model.Project
	if err := d.WithContext(ctx).
		Where("genre IS NOT NULL OR platform IS NOT NULL").
		Find(&projects).Error; err != nil {
		return total, fmt.Errorf("load legacy projects: %w", err)
	}
	for _, p := range projects {
		if err := d.WithContext(ctx).Model(&model.Project{}).Where("id = ?", p.ID).
			UpdateColumns(map[string]any{
				"genres":    datatypes.JSONSlice[string](p.Genres),
				"platforms": datatypes.JSONSlice[string](p.Platforms),
				"genre":     nil,
				"platform":  nil,
			}).Error; err != nil {
			return total, fmt.Errorf("backfill project %s: %w", p.ID, err)
		}
		total++
	}

	log.Info("legacy backfill finished", zap.Int("rows", total))
	return total, nil
}
