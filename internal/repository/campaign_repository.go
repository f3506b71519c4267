package repository

import (
	"context"
	"time"

	"ugc-service/internal/model"
	"ugc-service/prometheus"

	"gorm.io/gorm"
)

// CampaignFilter narrows a campaign listing
type CampaignFilter struct {
	Status   string
	ClientID string
	Search   string
}

// CampaignRepository persists campaigns
type CampaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository creates a CampaignRepository over db
func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func selectClientSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "company", "email")
}

func selectUserSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "image", "role")
}

// List returns one page of the organization's campaigns with client and order count
func (r *CampaignRepository) List(ctx context.Context, orgID string, filter CampaignFilter, page Page) ([]model.Campaign, int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	query := r.db.WithContext(ctx).Model(&model.Campaign{}).Where("campaigns.organization_id = ?", orgID)
	if filter.Status != "" {
		query = query.Where("campaigns.status = ?", filter.Status)
	}
	if filter.ClientID != "" {
		query = query.Where("campaigns.client_id = ?", filter.ClientID)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("(campaigns.title ILIKE ? OR campaigns.brief ILIKE ?)", pattern, pattern)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var campaigns []model.Campaign
	err := query.
		Select("campaigns.*, (SELECT COUNT(*) FROM orders WHERE orders.campaign_id = campaigns.id) AS order_count").
		Preload("Client", selectClientSummary).
		Order("campaigns.created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&campaigns).Error
	if err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

// FindByID loads a campaign of the organization without relations
func (r *CampaignRepository) FindByID(ctx context.Context, orgID, id string) (*model.Campaign, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var campaign model.Campaign
	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&campaign).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &campaign, nil
}

// FindDetail loads a campaign with client, creator, orders and its latest media
func (r *CampaignRepository) FindDetail(ctx context.Context, orgID, id string) (*model.Campaign, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var campaign model.Campaign
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("CreatedBy", selectUserSummary).
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Select("orders.*, (SELECT COUNT(*) FROM media WHERE media.order_id = orders.id) AS media_count").
				Order("assigned_at DESC")
		}).
		Preload("Orders.Creator", selectUserSummary).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&campaign).Error
	if err != nil {
		return nil, notFound(err)
	}

	// Preload cannot apply a per-parent limit
	err = r.db.WithContext(ctx).
		Where("campaign_id = ?", campaign.ID).
		Order("created_at DESC").
		Limit(10).
		Find(&campaign.Media).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// Create inserts a campaign
func (r *CampaignRepository) Create(ctx context.Context, campaign *model.Campaign) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return r.db.WithContext(ctx).Create(campaign).Error
}

// Update applies the given column changes to a campaign of the organization
func (r *CampaignRepository) Update(ctx context.Context, orgID, id string, fields map[string]interface{}) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	result := r.db.WithContext(ctx).Model(&model.Campaign{}).
		Where("id = ? AND organization_id = ?", id, orgID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Touch bumps the campaign's updated_at
func (r *CampaignRepository) Touch(ctx context.Context, id string) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	return r.db.WithContext(ctx).Model(&model.Campaign{}).
		Where("id = ?", id).
		Update("updated_at", time.Now()).Error
}

// ListWithMessageCounts lists the organization's campaigns with client and message count,
// most recently active first
func (r *CampaignRepository) ListWithMessageCounts(ctx context.Context, orgID string) ([]model.Campaign, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var campaigns []model.Campaign
	err := r.db.WithContext(ctx).Model(&model.Campaign{}).
		Select("campaigns.*, (SELECT COUNT(*) FROM messages WHERE messages.campaign_id = campaigns.id) AS message_count").
		Preload("Client", selectClientSummary).
		Where("campaigns.organization_id = ?", orgID).
		Order("campaigns.updated_at DESC").
		Find(&campaigns).Error
	return campaigns, err
}

// MediaSummary returns the number of media items and their total size for a campaign
func (r *CampaignRepository) MediaSummary(ctx context.Context, campaignID string) (int64, int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var row struct {
		Count int64
		Size  int64
	}
	err := r.db.WithContext(ctx).Model(&model.Media{}).
		Select("COUNT(*) AS count, COALESCE(SUM(size), 0) AS size").
		Where("campaign_id = ? AND status <> ?", campaignID, model.MediaArchived).
		Scan(&row).Error
	return row.Count, row.Size, err
}
