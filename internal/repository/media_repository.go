package repository

import (
	"context"
	"time"

	"ugc-service/internal/model"
	"ugc-service/prometheus"

	"gorm.io/gorm"
)

// MediaFilter narrows a media listing
type MediaFilter struct {
	Status string
	Type   string
}

// MediaRepository persists media items. Media has no organization column,
// so org scoping always goes through the owning campaign.
type MediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a MediaRepository over db
func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) inOrganization(ctx context.Context, orgID string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Media{}).
		Joins("JOIN campaigns ON campaigns.id = media.campaign_id").
		Where("campaigns.organization_id = ?", orgID)
}

// List returns one page of media across the organization's campaigns
func (r *MediaRepository) List(ctx context.Context, orgID string, filter MediaFilter, page Page) ([]model.Media, int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	query := r.inOrganization(ctx, orgID)
	if filter.Status != "" {
		query = query.Where("media.status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("media.type = ?", filter.Type)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.Media
	err := query.
		Select("media.*").
		Preload("Uploader", selectUserSummary).
		Preload("Campaign", func(db *gorm.DB) *gorm.DB { return db.Select("id", "title", "status", "organization_id", "client_id") }).
		Order("media.created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListByCampaign returns all media of a campaign, newest first
func (r *MediaRepository) ListByCampaign(ctx context.Context, campaignID string) ([]model.Media, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var items []model.Media
	err := r.db.WithContext(ctx).
		Preload("Uploader", selectUserSummary).
		Where("campaign_id = ?", campaignID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// FindByID loads a media item of the organization with uploader, campaign and order
func (r *MediaRepository) FindByID(ctx context.Context, orgID, id string) (*model.Media, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var item model.Media
	err := r.inOrganization(ctx, orgID).
		Select("media.*").
		Preload("Uploader", selectUserSummary).
		Preload("Campaign").
		Preload("Order").
		Where("media.id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

// Create inserts a media item
func (r *MediaRepository) Create(ctx context.Context, item *model.Media) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return r.db.WithContext(ctx).Create(item).Error
}

// Update applies the given column changes to a media item
func (r *MediaRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	result := r.db.WithContext(ctx).Model(&model.Media{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// StatusCountsByUploader groups the user's uploads since the given time by status
func (r *MediaRepository) StatusCountsByUploader(ctx context.Context, userID string, since time.Time) ([]StatusCount, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var rows []StatusCount
	err := r.db.WithContext(ctx).Model(&model.Media{}).
		Select("status, COUNT(*) AS count").
		Where("uploaded_by = ? AND created_at >= ?", userID, since).
		Group("status").
		Scan(&rows).Error
	return rows, err
}
