package handler

import (
	"context"
	"net/http"

	"ugc-service/internal/middleware"
	"ugc-service/internal/model"
	"ugc-service/internal/repository"
	"ugc-service/internal/service"
	"ugc-service/pkg/logger"
	"ugc-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const mediaPageLimit = 20

// MediaService is the part of service.MediaService the media routes use
type MediaService interface {
	List(ctx context.Context, orgID string, filter repository.MediaFilter, page repository.Page) ([]model.Media, repository.Pagination, error)
	ListByCampaign(ctx context.Context, orgID, campaignID string) ([]model.Media, error)
	Get(ctx context.Context, orgID, id string) (*model.Media, error)
	Upload(ctx context.Context, orgID, userID string, in service.UploadMediaInput) (*service.UploadResult, error)
	Update(ctx context.Context, orgID string, actor *model.User, id string, in service.UpdateMediaInput) (*model.Media, error)
	Delete(ctx context.Context, orgID, userID, id string) error
}

// MediaHandler serves /api/media
type MediaHandler struct {
	media MediaService
}

// NewMediaHandler creates a MediaHandler
func NewMediaHandler(media MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// List returns the organization's media
func (h *MediaHandler) List(c echo.Context) error {
	filter := repository.MediaFilter{
		Status: c.QueryParam("status"),
		Type:   c.QueryParam("type"),
	}
	media, pagination, err := h.media.List(c.Request().Context(), middleware.OrganizationID(c), filter, pageFromQuery(c, mediaPageLimit))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"media": media, "pagination": pagination})
}

// ListByCampaign returns one campaign's media
func (h *MediaHandler) ListByCampaign(c echo.Context) error {
	media, err := h.media.ListByCampaign(c.Request().Context(), middleware.OrganizationID(c), c.Param("campaignId"))
	if err != nil {
		return err
	}
	media, pagination := paginate(media, pageFromQuery(c, mediaPageLimit))
	return c.JSON(http.StatusOK, echo.Map{"media": media, "pagination": pagination})
}

// Get returns one media item
func (h *MediaHandler) Get(c echo.Context) error {
	media, err := h.media.Get(c.Request().Context(), middleware.OrganizationID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, media)
}

// Upload records a PENDING media item and returns where to upload the file
func (h *MediaHandler) Upload(c echo.Context) error {
	var req service.UploadMediaInput
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.media.Upload(c.Request().Context(), middleware.OrganizationID(c), middleware.CurrentUser(c).ID, req)
	if err != nil {
		return err
	}

	prometheus.RecordResourceOperation("media", "upload")
	logger.FromContext(c).Info("Media upload started",
		zap.String("media_id", result.ID),
		zap.String("campaign_id", result.CampaignID),
		zap.String("storage_key", result.StorageKey))
	return c.JSON(http.StatusCreated, result)
}

// Update changes media status or metadata
func (h *MediaHandler) Update(c echo.Context) error {
	var req service.UpdateMediaInput
	if err := bind(c, &req); err != nil {
		return err
	}

	media, err := h.media.Update(c.Request().Context(), middleware.OrganizationID(c), middleware.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	prometheus.RecordResourceOperation("media", "update")
	return c.JSON(http.StatusOK, media)
}

// Delete archives the caller's own media
func (h *MediaHandler) Delete(c echo.Context) error {
	if err := h.media.Delete(c.Request().Context(), middleware.OrganizationID(c), middleware.CurrentUser(c).ID, c.Param("id")); err != nil {
		return err
	}
	prometheus.RecordResourceOperation("media", "archive")
	return success(c)
}
