package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"ugc-service/internal/apperror"
	"ugc-service/internal/model"

	"gorm.io/datatypes"
)

const (
	defaultMessageLimit = 50
	maxMessageLimit     = 100
)

// CreateMessageInput is the message creation body
type CreateMessageInput struct {
	CampaignID  string          `json:"campaignId"`
	Content     string          `json:"content"`
	Attachments json.RawMessage `json:"attachments"`
}

// UpdateMessageInput is the message edit body
type UpdateMessageInput struct {
	Content string `json:"content"`
}

// CampaignMessages is one page of a campaign's conversation, oldest first
type CampaignMessages struct {
	Messages []model.Message `json:"messages"`
	Campaign *model.Campaign `json:"campaign"`
}

// MessageService manages campaign conversations
type MessageService struct {
	messages  MessageStore
	campaigns CampaignStore
	now       func() time.Time
}

// NewMessageService creates a MessageService
func NewMessageService(messages MessageStore, campaigns CampaignStore) *MessageService {
	return &MessageService{messages: messages, campaigns: campaigns, now: time.Now}
}

// ListByCampaign returns up to limit messages posted before the cursor, oldest first
func (s *MessageService) ListByCampaign(ctx context.Context, orgID, campaignID string, limit int, before *time.Time) (*CampaignMessages, error) {
	if limit <= 0 {
		limit = defaultMessageLimit
	}
	if limit > maxMessageLimit {
		limit = maxMessageLimit
	}

	campaign, err := s.campaigns.FindByID(ctx, orgID, campaignID)
	if err != nil {
		return nil, lookup(err, "Campaign not found")
	}
	messages, err := s.messages.ListByCampaign(ctx, campaignID, limit, before)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	if messages == nil {
		messages = []model.Message{}
	}
	return &CampaignMessages{Messages: messages, Campaign: campaign}, nil
}

// Campaigns lists the organization's campaigns with their message counts
func (s *MessageService) Campaigns(ctx context.Context, orgID string) ([]model.Campaign, error) {
	campaigns, err := s.campaigns.ListWithMessageCounts(ctx, orgID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if campaigns == nil {
		campaigns = []model.Campaign{}
	}
	return campaigns, nil
}

func checkContent(content string) error {
	n := utf8.RuneCountInString(content)
	if strings.TrimSpace(content) == "" {
		return apperror.BadRequest("Content is required")
	}
	if n > model.MaxMessageLength {
		return apperror.BadRequest("Content must be at most 5000 characters")
	}
	return nil
}

// Create posts a message on a campaign and bumps the campaign's updatedAt
func (s *MessageService) Create(ctx context.Context, orgID, userID string, in CreateMessageInput) (*model.Message, error) {
	if in.CampaignID == "" {
		return nil, apperror.BadRequest("Campaign is required")
	}
	if err := checkContent(in.Content); err != nil {
		return nil, err
	}
	if _, err := s.campaigns.FindByID(ctx, orgID, in.CampaignID); err != nil {
		return nil, lookup(err, "Campaign not found")
	}

	message := &model.Message{
		CampaignID: in.CampaignID,
		SenderID:   userID,
		Content:    in.Content,
	}
	if len(in.Attachments) > 0 {
		message.Attachments = datatypes.JSON(in.Attachments)
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, apperror.Internal(err)
	}
	touch(ctx, s.campaigns, in.CampaignID)
	return message, nil
}

// Update edits a message; only its sender may do so
func (s *MessageService) Update(ctx context.Context, orgID, userID, id string, in UpdateMessageInput) (*model.Message, error) {
	if err := checkContent(in.Content); err != nil {
		return nil, err
	}
	message, err := s.messages.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, lookup(err, "Message not found")
	}
	if message.SenderID != userID {
		return nil, apperror.NotFound("Message not found")
	}

	editedAt := s.now()
	if err := s.messages.Update(ctx, id, map[string]interface{}{"content": in.Content, "edited_at": editedAt}); err != nil {
		return nil, lookup(err, "Message not found")
	}
	message.Content = in.Content
	message.EditedAt = &editedAt
	return message, nil
}

// Delete removes a message; its sender or an ADMIN may do so
func (s *MessageService) Delete(ctx context.Context, orgID string, actor *model.User, id string) error {
	message, err := s.messages.FindByID(ctx, orgID, id)
	if err != nil {
		return lookup(err, "Message not found")
	}
	if message.SenderID != actor.ID && actor.EffectiveRole() != model.RoleAdmin {
		return apperror.Forbidden("Not authorized to delete this message")
	}
	if err := s.messages.Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
