package repository

import (
	"context"
	"time"

	"ugc-service/internal/model"
	"ugc-service/prometheus"

	"gorm.io/gorm"
)

// OrderRepository persists creator orders
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an OrderRepository over db
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts an order
func (r *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return r.db.WithContext(ctx).Create(order).Error
}

// FindInCampaign loads an order that belongs to campaignID
func (r *OrderRepository) FindInCampaign(ctx context.Context, campaignID, id string) (*model.Order, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND campaign_id = ?", id, campaignID).
		First(&order).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

// Update applies the given column changes to an order
func (r *OrderRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	result := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an order
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Order{}).Error
}

// CountMedia counts media attached to an order
func (r *OrderRepository) CountMedia(ctx context.Context, orderID string) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Media{}).Where("order_id = ?", orderID).Count(&count).Error
	return count, err
}

// CountByCreator counts a creator's orders, optionally restricted to statuses
func (r *OrderRepository) CountByCreator(ctx context.Context, creatorID string, statuses ...string) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	query := r.db.WithContext(ctx).Model(&model.Order{}).Where("creator_id = ?", creatorID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// RecentByCreator returns the creator's latest orders with campaign, client and media count
func (r *OrderRepository) RecentByCreator(ctx context.Context, creatorID string, limit int) ([]model.Order, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var orders []model.Order
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("orders.*, (SELECT COUNT(*) FROM media WHERE media.order_id = orders.id) AS media_count").
		Preload("Campaign").
		Preload("Campaign.Client", selectClientSummary).
		Where("orders.creator_id = ?", creatorID).
		Order("orders.assigned_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

// ActiveByCreator returns the creator's orders in the given statuses with their campaigns
func (r *OrderRepository) ActiveByCreator(ctx context.Context, creatorID string, statuses []string) ([]model.Order, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Campaign").
		Where("creator_id = ? AND status IN ?", creatorID, statuses).
		Order("assigned_at DESC").
		Find(&orders).Error
	return orders, err
}

// StatusCountsByCreator groups the creator's orders assigned since the given time by status
func (r *OrderRepository) StatusCountsByCreator(ctx context.Context, creatorID string, since time.Time) ([]StatusCount, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var rows []StatusCount
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("status, COUNT(*) AS count").
		Where("creator_id = ? AND assigned_at >= ?", creatorID, since).
		Group("status").
		Scan(&rows).Error
	return rows, err
}
