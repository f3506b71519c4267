package repository

import (
	"context"
	"time"

	"ugc-service/internal/model"
	"ugc-service/prometheus"

	"gorm.io/gorm"
)

// MessageRepository persists campaign messages
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a MessageRepository over db
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// ListByCampaign returns up to limit messages of a campaign created before the cursor,
// newest first
func (r *MessageRepository) ListByCampaign(ctx context.Context, campaignID string, limit int, before *time.Time) ([]model.Message, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	query := r.db.WithContext(ctx).
		Preload("Sender", selectUserSummary).
		Where("campaign_id = ?", campaignID)
	if before != nil {
		query = query.Where("created_at < ?", *before)
	}
	var messages []model.Message
	err := query.Order("created_at DESC").Limit(limit).Find(&messages).Error
	return messages, err
}

// FindByID loads a message on one of the organization's campaigns
func (r *MessageRepository) FindByID(ctx context.Context, orgID, id string) (*model.Message, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var message model.Message
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Select("messages.*").
		Joins("JOIN campaigns ON campaigns.id = messages.campaign_id").
		Where("messages.id = ? AND campaigns.organization_id = ?", id, orgID).
		First(&message).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &message, nil
}

// Create inserts a message and loads its sender
func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	db := r.db.WithContext(ctx)
	if err := db.Create(message).Error; err != nil {
		return err
	}
	var sender model.User
	if err := db.Scopes(selectUserSummary).Where("id = ?", message.SenderID).First(&sender).Error; err != nil {
		return err
	}
	message.Sender = &sender
	return nil
}

// Update applies the given column changes to a message
func (r *MessageRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	result := r.db.WithContext(ctx).Model(&model.Message{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a message
func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Message{}).Error
}
