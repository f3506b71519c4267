package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"ugc-service/internal/model"
	"ugc-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMessageService_ListByCampaignOldestFirst(t *testing.T) {
	messages := new(MockMessageStore)
	campaigns := new(MockCampaignStore)
	svc := NewMessageService(messages, campaigns)

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	campaigns.On("FindByID", mock.Anything, "org-1", "c1").Return(&model.Campaign{ID: "c1"}, nil)
	messages.On("ListByCampaign", mock.Anything, "c1", defaultMessageLimit, (*time.Time)(nil)).Return([]model.Message{
		{ID: "m3", CreatedAt: t0.Add(2 * time.Minute)},
		{ID: "m2", CreatedAt: t0.Add(time.Minute)},
		{ID: "m1", CreatedAt: t0},
	}, nil)

	page, err := svc.ListByCampaign(context.Background(), "org-1", "c1", 0, nil)
	require.NoError(t, err)
	require.Len(t, page.Messages, 3)
	assert.Equal(t, "m1", page.Messages[0].ID)
	assert.Equal(t, "m3", page.Messages[2].ID)
	assert.Equal(t, "c1", page.Campaign.ID)
}

func TestMessageService_Create(t *testing.T) {
	messages := new(MockMessageStore)
	campaigns := new(MockCampaignStore)
	svc := NewMessageService(messages, campaigns)
	ctx := context.Background()

	t.Run("empty content", func(t *testing.T) {
		_, err := svc.Create(ctx, "org-1", "u1", CreateMessageInput{CampaignID: "c1", Content: "   "})
		assertCode(t, err, http.StatusBadRequest, "Content is required")
	})

	t.Run("too long", func(t *testing.T) {
		_, err := svc.Create(ctx, "org-1", "u1", CreateMessageInput{CampaignID: "c1", Content: strings.Repeat("a", model.MaxMessageLength+1)})
		assertCode(t, err, http.StatusBadRequest, "")
	})

	t.Run("campaign of another organization", func(t *testing.T) {
		campaigns.On("FindByID", mock.Anything, "org-2", "c1").Return(nil, repository.ErrNotFound).Once()
		_, err := svc.Create(ctx, "org-2", "u1", CreateMessageInput{CampaignID: "c1", Content: "hi"})
		assertCode(t, err, http.StatusNotFound, "Campaign not found")
	})

	t.Run("touches campaign", func(t *testing.T) {
		campaigns.On("FindByID", mock.Anything, "org-1", "c1").Return(&model.Campaign{ID: "c1"}, nil).Once()
		messages.On("Create", mock.Anything, mock.AnythingOfType("*model.Message")).Return(nil).Once()
		campaigns.On("Touch", mock.Anything, "c1").Return(nil).Once()

		msg, err := svc.Create(ctx, "org-1", "u1", CreateMessageInput{CampaignID: "c1", Content: strings.Repeat("a", model.MaxMessageLength)})
		require.NoError(t, err)
		assert.Equal(t, "u1", msg.SenderID)
		campaigns.AssertExpectations(t)
	})

	t.Run("touch failure keeps the message", func(t *testing.T) {
		campaigns.On("FindByID", mock.Anything, "org-1", "c1").Return(&model.Campaign{ID: "c1"}, nil).Once()
		messages.On("Create", mock.Anything, mock.AnythingOfType("*model.Message")).
			Run(func(args mock.Arguments) { args.Get(1).(*model.Message).ID = "m9" }).
			Return(nil).Once()
		campaigns.On("Touch", mock.Anything, "c1").Return(errors.New("deadlock")).Once()

		msg, err := svc.Create(ctx, "org-1", "u1", CreateMessageInput{CampaignID: "c1", Content: "hi"})
		require.NoError(t, err)
		assert.Equal(t, "m9", msg.ID)
		campaigns.AssertExpectations(t)
	})
}

func TestMessageService_UpdateAndDelete(t *testing.T) {
	messages := new(MockMessageStore)
	svc := NewMessageService(messages, new(MockCampaignStore))
	ctx := context.Background()
	now := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	messages.On("FindByID", mock.Anything, "org-1", "m1").Return(&model.Message{ID: "m1", SenderID: "author"}, nil)

	t.Run("edit by someone else", func(t *testing.T) {
		_, err := svc.Update(ctx, "org-1", "other", "m1", UpdateMessageInput{Content: "changed"})
		assertCode(t, err, http.StatusNotFound, "Message not found")
	})

	t.Run("edit by sender sets editedAt", func(t *testing.T) {
		messages.On("Update", mock.Anything, "m1", map[string]interface{}{"content": "changed", "edited_at": now}).Return(nil).Once()
		msg, err := svc.Update(ctx, "org-1", "author", "m1", UpdateMessageInput{Content: "changed"})
		require.NoError(t, err)
		require.NotNil(t, msg.EditedAt)
		assert.Equal(t, now, *msg.EditedAt)
	})

	t.Run("delete by other non-admin", func(t *testing.T) {
		err := svc.Delete(ctx, "org-1", &model.User{ID: "other", Role: model.RoleStaff}, "m1")
		assertCode(t, err, http.StatusForbidden, "")
	})

	t.Run("delete by admin", func(t *testing.T) {
		messages.On("Delete", mock.Anything, "m1").Return(nil).Once()
		require.NoError(t, svc.Delete(ctx, "org-1", &model.User{ID: "boss", Role: model.RoleAdmin}, "m1"))
	})
}
