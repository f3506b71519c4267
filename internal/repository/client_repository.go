package repository

import (
	"context"
	"time"

	"ugc-service/internal/model"
	"ugc-service/prometheus"

	"gorm.io/gorm"
)

// ClientFilter narrows a client listing
type ClientFilter struct {
	Search string
	Status string
}

// ClientRepository persists clients
type ClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a ClientRepository over db
func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// List returns one page of the organization's clients with their campaign counts
func (r *ClientRepository) List(ctx context.Context, orgID string, filter ClientFilter, page Page) ([]model.Client, int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	query := r.db.WithContext(ctx).Model(&model.Client{}).Where("clients.organization_id = ?", orgID)
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("(clients.name ILIKE ? OR clients.email ILIKE ? OR clients.company ILIKE ?)", pattern, pattern, pattern)
	}
	if filter.Status != "" {
		query = query.Where("clients.status = ?", filter.Status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []model.Client
	err := query.
		Select("clients.*, (SELECT COUNT(*) FROM campaigns WHERE campaigns.client_id = clients.id) AS campaign_count").
		Order("clients.created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&clients).Error
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

// FindByID loads a client of the organization
func (r *ClientRepository) FindByID(ctx context.Context, orgID, id string) (*model.Client, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var client model.Client
	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&client).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &client, nil
}

// FindByEmail loads the organization's client with the given email
func (r *ClientRepository) FindByEmail(ctx context.Context, orgID, email string) (*model.Client, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var client model.Client
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND email = ?", orgID, email).
		First(&client).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &client, nil
}

// Create inserts a client
func (r *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return r.db.WithContext(ctx).Create(client).Error
}

// Update applies the given column changes to a client of the organization
func (r *ClientRepository) Update(ctx context.Context, orgID, id string, fields map[string]interface{}) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	result := r.db.WithContext(ctx).Model(&model.Client{}).
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

// CountActiveCampaigns counts the client's campaigns that are not completed or cancelled
func (r *ClientRepository) CountActiveCampaigns(ctx context.Context, orgID, clientID string) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Campaign{}).
		Where("organization_id = ? AND client_id = ?", orgID, clientID).
		Where("status NOT IN ?", model.TerminalCampaignStatuses).
		Count(&count).Error
	return count, err
}

// RecentCampaigns returns the client's latest campaigns with their order counts
func (r *ClientRepository) RecentCampaigns(ctx context.Context, orgID, clientID string, limit int) ([]model.Campaign, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var campaigns []model.Campaign
	err := r.db.WithContext(ctx).Model(&model.Campaign{}).
		Select("campaigns.*, (SELECT COUNT(*) FROM orders WHERE orders.campaign_id = campaigns.id) AS order_count").
		Where("campaigns.organization_id = ? AND campaigns.client_id = ?", orgID, clientID).
		Order("campaigns.created_at DESC").
		Limit(limit).
		Find(&campaigns).Error
	return campaigns, err
}

// ClientCreatorRow is one (creator, order status) aggregate for a client's campaigns
type ClientCreatorRow struct {
	CreatorID string
	Status    string
	Count     int64
}

// CreatorOrderStats aggregates orders on the client's campaigns by creator and status
func (r *ClientRepository) CreatorOrderStats(ctx context.Context, orgID, clientID string) ([]ClientCreatorRow, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var rows []ClientCreatorRow
	err := r.db.WithContext(ctx).Table("orders").
		Select("orders.creator_id AS creator_id, orders.status AS status, COUNT(*) AS count").
		Joins("JOIN campaigns ON campaigns.id = orders.campaign_id").
		Where("campaigns.organization_id = ? AND campaigns.client_id = ?", orgID, clientID).
		Group("orders.creator_id, orders.status").
		Scan(&rows).Error
	return rows, err
}
