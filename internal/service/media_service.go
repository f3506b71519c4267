package service

import (
	"context"
	"encoding/json"
	"time"

	"ugc-service/internal/apperror"
	"ugc-service/internal/model"
	"ugc-service/internal/repository"
	"ugc-service/internal/storage"

	"gorm.io/datatypes"
)

// UploadMediaInput is the upload request body
type UploadMediaInput struct {
	CampaignID string          `json:"campaignId"`
	OrderID    string          `json:"orderId"`
	Type       string          `json:"type"`
	Filename   string          `json:"filename"`
	MimeType   string          `json:"mimeType"`
	Size       int64           `json:"size"`
	Metadata   json.RawMessage `json:"metadata"`
}

// UpdateMediaInput is the media patch body
type UpdateMediaInput struct {
	Status   *string         `json:"status"`
	Metadata json.RawMessage `json:"metadata"`
}

// UploadResult is a pending media record with the URL to upload its file to
type UploadResult struct {
	*model.Media
	UploadURL string `json:"uploadUrl"`
}

// MediaService manages campaign media
type MediaService struct {
	media     MediaStore
	campaigns CampaignStore
	orders    OrderStore
	storage   storage.Storage
	uploadTTL time.Duration
}

// NewMediaService creates a MediaService
func NewMediaService(media MediaStore, campaigns CampaignStore, orders OrderStore, store storage.Storage, uploadTTL time.Duration) *MediaService {
	if uploadTTL <= 0 {
		uploadTTL = 15 * time.Minute
	}
	return &MediaService{media: media, campaigns: campaigns, orders: orders, storage: store, uploadTTL: uploadTTL}
}

// List returns one page of the organization's media
func (s *MediaService) List(ctx context.Context, orgID string, filter repository.MediaFilter, page repository.Page) ([]model.Media, repository.Pagination, error) {
	if filter.Status != "" && !model.ValidMediaStatus(filter.Status) {
		return nil, repository.Pagination{}, apperror.BadRequest("Invalid status")
	}
	if filter.Type != "" && !model.ValidMediaType(filter.Type) {
		return nil, repository.Pagination{}, apperror.BadRequest("Invalid media type")
	}
	items, total, err := s.media.List(ctx, orgID, filter, page)
	if err != nil {
		return nil, repository.Pagination{}, apperror.Internal(err)
	}
	if items == nil {
		items = []model.Media{}
	}
	return items, page.Meta(total), nil
}

// ListByCampaign returns the media of one of the organization's campaigns
func (s *MediaService) ListByCampaign(ctx context.Context, orgID, campaignID string) ([]model.Media, error) {
	if _, err := s.campaigns.FindByID(ctx, orgID, campaignID); err != nil {
		return nil, lookup(err, "Campaign not found")
	}
	items, err := s.media.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if items == nil {
		items = []model.Media{}
	}
	return items, nil
}

// Get returns a media item with its uploader, campaign and order
func (s *MediaService) Get(ctx context.Context, orgID, id string) (*model.Media, error) {
	item, err := s.media.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, lookup(err, "Media not found")
	}
	return item, nil
}

// Upload records a PENDING media item and returns a presigned upload URL for it
func (s *MediaService) Upload(ctx context.Context, orgID, userID string, in UploadMediaInput) (*UploadResult, error) {
	switch {
	case in.CampaignID == "":
		return nil, apperror.BadRequest("Campaign is required")
	case !model.ValidMediaType(in.Type):
		return nil, apperror.BadRequest("Invalid media type")
	case in.Size < 0:
		return nil, apperror.BadRequest("Size must not be negative")
	}

	if _, err := s.campaigns.FindByID(ctx, orgID, in.CampaignID); err != nil {
		return nil, lookup(err, "Campaign not found")
	}

	var orderID *string
	if in.OrderID != "" {
		order, err := s.orders.FindInCampaign(ctx, in.CampaignID, in.OrderID)
		if err != nil {
			return nil, lookup(err, "Order not found")
		}
		if order.CreatorID != userID {
			return nil, apperror.NotFound("Order not found")
		}
		orderID = &order.ID
	}

	mimeType := in.MimeType
	if mimeType == "" {
		mimeType = model.DefaultMimeType(in.Type)
	}
	key := storage.ObjectKey(in.CampaignID, in.Filename)
	uploadURL, err := s.storage.PresignUpload(ctx, key, mimeType, s.uploadTTL)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	item := &model.Media{
		CampaignID: in.CampaignID,
		OrderID:    orderID,
		UploadedBy: userID,
		Type:       in.Type,
		URL:        s.storage.ObjectURL(key),
		StorageKey: key,
		Filename:   in.Filename,
		MimeType:   mimeType,
		Size:       in.Size,
		Status:     model.MediaPending,
	}
	if len(in.Metadata) > 0 {
		item.Metadata = datatypes.JSON(in.Metadata)
	}
	if err := s.media.Create(ctx, item); err != nil {
		return nil, apperror.Internal(err)
	}
	return &UploadResult{Media: item, UploadURL: uploadURL}, nil
}

// Update changes metadata, or status when the actor is staff
func (s *MediaService) Update(ctx context.Context, orgID string, actor *model.User, id string, in UpdateMediaInput) (*model.Media, error) {
	if _, err := s.media.FindByID(ctx, orgID, id); err != nil {
		return nil, lookup(err, "Media not found")
	}

	fields := map[string]interface{}{}
	if in.Status != nil {
		role := actor.EffectiveRole()
		if role != model.RoleAdmin && role != model.RoleStaff {
			return nil, apperror.Forbidden("Only staff can update media status")
		}
		if !model.ValidMediaStatus(*in.Status) {
			return nil, apperror.BadRequest("Invalid status")
		}
		fields["status"] = *in.Status
	}
	if len(in.Metadata) > 0 {
		fields["metadata"] = datatypes.JSON(in.Metadata)
	}

	if len(fields) > 0 {
		if err := s.media.Update(ctx, id, fields); err != nil {
			return nil, lookup(err, "Media not found")
		}
	}
	return s.Get(ctx, orgID, id)
}

// Delete archives a media item; only its uploader may do so
func (s *MediaService) Delete(ctx context.Context, orgID, userID, id string) error {
	item, err := s.media.FindByID(ctx, orgID, id)
	if err != nil && !isNotFound(err) {
		return apperror.Internal(err)
	}
	if err != nil || item.UploadedBy != userID {
		return apperror.NotFound("Media not found or unauthorized")
	}
	if err := s.media.Update(ctx, id, map[string]interface{}{"status": model.MediaArchived}); err != nil {
		return lookup(err, "Media not found or unauthorized")
	}
	return nil
}
