package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"ugc-service/internal/model"
	"ugc-service/internal/repository"
	"ugc-service/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMediaService() (*MediaService, *MockMediaStore, *MockCampaignStore, *MockOrderStore) {
	media := new(MockMediaStore)
	campaigns := new(MockCampaignStore)
	orders := new(MockOrderStore)
	store := storage.NewStaticStorage("https://storage.example.com")
	return NewMediaService(media, campaigns, orders, store, time.Minute), media, campaigns, orders
}

func TestMediaService_Upload(t *testing.T) {
	svc, media, campaigns, orders := newMediaService()
	ctx := context.Background()

	campaigns.On("FindByID", mock.Anything, "org-1", "c1").Return(&model.Campaign{ID: "c1"}, nil)
	campaigns.On("FindByID", mock.Anything, "org-2", "c1").Return(nil, repository.ErrNotFound)
	orders.On("FindInCampaign", mock.Anything, "c1", "mine").Return(&model.Order{ID: "mine", CreatorID: "creator-1"}, nil)
	orders.On("FindInCampaign", mock.Anything, "c1", "theirs").Return(&model.Order{ID: "theirs", CreatorID: "creator-2"}, nil)

	t.Run("invalid type", func(t *testing.T) {
		_, err := svc.Upload(ctx, "org-1", "creator-1", UploadMediaInput{CampaignID: "c1", Type: "GIF"})
		assertCode(t, err, http.StatusBadRequest, "Invalid media type")
	})

	t.Run("campaign of another organization", func(t *testing.T) {
		_, err := svc.Upload(ctx, "org-2", "creator-1", UploadMediaInput{CampaignID: "c1", Type: model.MediaVideo})
		assertCode(t, err, http.StatusNotFound, "Campaign not found")
	})

	t.Run("order of another creator", func(t *testing.T) {
		_, err := svc.Upload(ctx, "org-1", "creator-1", UploadMediaInput{CampaignID: "c1", OrderID: "theirs", Type: model.MediaVideo})
		assertCode(t, err, http.StatusNotFound, "Order not found")
	})

	t.Run("pending with upload url", func(t *testing.T) {
		media.On("Create", mock.Anything, mock.AnythingOfType("*model.Media")).Return(nil).Once()

		result, err := svc.Upload(ctx, "org-1", "creator-1", UploadMediaInput{
			CampaignID: "c1",
			OrderID:    "mine",
			Type:       model.MediaVideo,
			Filename:   "clip.mp4",
			Size:       1024,
			Metadata:   []byte(`{"duration":12}`),
		})
		require.NoError(t, err)
		assert.Equal(t, model.MediaPending, result.Status)
		assert.Equal(t, "video/mp4", result.MimeType)
		assert.Equal(t, "creator-1", result.UploadedBy)
		require.NotNil(t, result.OrderID)
		assert.Equal(t, "mine", *result.OrderID)
		assert.True(t, strings.HasPrefix(result.StorageKey, "campaigns/c1/"))
		assert.True(t, strings.HasPrefix(result.UploadURL, "https://storage.example.com/upload/campaigns/c1/"))
		assert.Equal(t, "https://storage.example.com/"+result.StorageKey, result.URL)
	})
}

func TestMediaService_UpdateStatusNeedsStaff(t *testing.T) {
	svc, media, _, _ := newMediaService()
	ctx := context.Background()
	approved := model.MediaApproved

	media.On("FindByID", mock.Anything, "org-1", "m1").Return(&model.Media{ID: "m1", Status: model.MediaPending}, nil)

	_, err := svc.Update(ctx, "org-1", &model.User{ID: "c", Role: model.RoleCreator}, "m1", UpdateMediaInput{Status: &approved})
	assertCode(t, err, http.StatusForbidden, "Only staff can update media status")

	media.On("Update", mock.Anything, "m1", map[string]interface{}{"status": approved}).Return(nil).Once()
	_, err = svc.Update(ctx, "org-1", &model.User{ID: "s", Role: model.RoleStaff}, "m1", UpdateMediaInput{Status: &approved})
	require.NoError(t, err)
	media.AssertExpectations(t)
}

func TestMediaService_DeleteUploaderOnly(t *testing.T) {
	svc, media, _, _ := newMediaService()
	ctx := context.Background()

	media.On("FindByID", mock.Anything, "org-1", "m1").Return(&model.Media{ID: "m1", UploadedBy: "creator-1"}, nil)
	media.On("FindByID", mock.Anything, "org-1", "gone").Return(nil, repository.ErrNotFound)

	assertCode(t, svc.Delete(ctx, "org-1", "creator-2", "m1"), http.StatusNotFound, "Media not found or unauthorized")
	assertCode(t, svc.Delete(ctx, "org-1", "creator-1", "gone"), http.StatusNotFound, "Media not found or unauthorized")

	media.On("Update", mock.Anything, "m1", map[string]interface{}{"status": model.MediaArchived}).Return(nil).Once()
	require.NoError(t, svc.Delete(ctx, "org-1", "creator-1", "m1"))
	media.AssertExpectations(t)
}
