package repository

import (
	"context"
	"time"

	"ugc-service/internal/model"
	"ugc-service/prometheus"

	"gorm.io/gorm"
)

// DashboardRepository runs the aggregate queries behind the dashboard
type DashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a DashboardRepository over db
func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// CountCampaigns counts the organization's campaigns, optionally restricted to statuses
func (r *DashboardRepository) CountCampaigns(ctx context.Context, orgID string, statuses ...string) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	query := r.db.WithContext(ctx).Model(&model.Campaign{}).Where("organization_id = ?", orgID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// CountClients counts the organization's clients, optionally restricted to one status
func (r *DashboardRepository) CountClients(ctx context.Context, orgID, status string) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	query := r.db.WithContext(ctx).Model(&model.Client{}).Where("organization_id = ?", orgID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// CountCreators counts organization members whose user role is CREATOR
func (r *DashboardRepository) CountCreators(ctx context.Context, orgID string) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OrganizationMember{}).
		Joins("JOIN users ON users.id = organization_members.user_id").
		Where("organization_members.organization_id = ? AND users.role = ?", orgID, model.RoleCreator).
		Count(&count).Error
	return count, err
}

// CountOrders counts orders on the organization's campaigns, optionally restricted to statuses
func (r *DashboardRepository) CountOrders(ctx context.Context, orgID string, statuses ...string) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	query := r.db.WithContext(ctx).Model(&model.Order{}).
		Joins("JOIN campaigns ON campaigns.id = orders.campaign_id").
		Where("campaigns.organization_id = ?", orgID)
	if len(statuses) > 0 {
		query = query.Where("orders.status IN ?", statuses)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// SumBudget sums the budgets of the organization's campaigns that are not cancelled
func (r *DashboardRepository) SumBudget(ctx context.Context, orgID string) (float64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var total float64
	err := r.db.WithContext(ctx).Model(&model.Campaign{}).
		Select("COALESCE(SUM(budget), 0)").
		Where("organization_id = ? AND status <> ?", orgID, model.CampaignCancelled).
		Scan(&total).Error
	return total, err
}

// RecentCampaigns returns the organization's latest campaigns with client and creator
func (r *DashboardRepository) RecentCampaigns(ctx context.Context, orgID string, limit int) ([]model.Campaign, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var campaigns []model.Campaign
	err := r.db.WithContext(ctx).
		Preload("Client", selectClientSummary).
		Preload("CreatedBy", selectUserSummary).
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Limit(limit).
		Find(&campaigns).Error
	return campaigns, err
}

// RecentOrders returns the latest orders on the organization's campaigns
func (r *DashboardRepository) RecentOrders(ctx context.Context, orgID string, limit int) ([]model.Order, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var orders []model.Order
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("orders.*").
		Joins("JOIN campaigns ON campaigns.id = orders.campaign_id").
		Preload("Campaign", func(db *gorm.DB) *gorm.DB { return db.Select("id", "title", "status") }).
		Preload("Creator", selectUserSummary).
		Where("campaigns.organization_id = ?", orgID).
		Order("orders.assigned_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

// RecentClients returns the organization's latest clients
func (r *DashboardRepository) RecentClients(ctx context.Context, orgID string, limit int) ([]model.Client, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var clients []model.Client
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Limit(limit).
		Find(&clients).Error
	return clients, err
}
