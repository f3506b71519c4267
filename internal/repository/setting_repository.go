package repository

import (
	"context"
	"time"

	"ugc-service/internal/model"
	"ugc-service/prometheus"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository persists per-organization integration settings
type SettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a SettingRepository over db
func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get loads the settings of one integration kind for an organization
func (r *SettingRepository) Get(ctx context.Context, orgID, kind string) (*model.IntegrationSetting, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var setting model.IntegrationSetting
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND kind = ?", orgID, kind).
		First(&setting).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &setting, nil
}

// Upsert inserts or replaces the settings of one integration kind
func (r *SettingRepository) Upsert(ctx context.Context, setting *model.IntegrationSetting) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "organization_id"}, {Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"settings", "updated_at"}),
	}).Create(setting).Error
}
