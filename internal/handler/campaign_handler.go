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

const campaignPageLimit = 10

// CampaignService is the part of service.CampaignService the campaign routes use
type CampaignService interface {
	List(ctx context.Context, orgID string, filter repository.CampaignFilter, page repository.Page) ([]model.Campaign, repository.Pagination, error)
	Get(ctx context.Context, orgID, id string) (*model.Campaign, error)
	Create(ctx context.Context, orgID, userID string, in service.CreateCampaignInput) (*model.Campaign, error)
	Update(ctx context.Context, orgID, id string, in service.UpdateCampaignInput) (*model.Campaign, error)
	Cancel(ctx context.Context, orgID, id string) error
	Assign(ctx context.Context, orgID, campaignID string, in service.AssignInput) (*model.Order, error)
	UpdateOrder(ctx context.Context, orgID, campaignID, orderID string, in service.UpdateOrderInput) (*model.Order, error)
	DeleteOrder(ctx context.Context, orgID, campaignID, orderID string) error
}

// CampaignHandler serves /api/campaigns
type CampaignHandler struct {
	campaigns CampaignService
}

// NewCampaignHandler creates a CampaignHandler
func NewCampaignHandler(campaigns CampaignService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

// List returns the organization's campaigns
func (h *CampaignHandler) List(c echo.Context) error {
	filter := repository.CampaignFilter{
		Status:   c.QueryParam("status"),
		ClientID: c.QueryParam("clientId"),
		Search:   c.QueryParam("search"),
	}
	campaigns, pagination, err := h.campaigns.List(c.Request().Context(), middleware.OrganizationID(c), filter, pageFromQuery(c, campaignPageLimit))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"campaigns": campaigns, "pagination": pagination})
}

// Get returns one campaign with its orders and recent media
func (h *CampaignHandler) Get(c echo.Context) error {
	campaign, err := h.campaigns.Get(c.Request().Context(), middleware.OrganizationID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaign)
}

// Create creates a DRAFT campaign for one of the organization's clients
func (h *CampaignHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req service.CreateCampaignInput
	if err := bind(c, &req); err != nil {
		return err
	}

	campaign, err := h.campaigns.Create(c.Request().Context(), middleware.OrganizationID(c), middleware.CurrentUser(c).ID, req)
	if err != nil {
		return err
	}

	prometheus.RecordResourceOperation("campaign", "create")
	log.Info("Campaign created",
		zap.String("campaign_id", campaign.ID),
		zap.String("client_id", campaign.ClientID))
	return c.JSON(http.StatusCreated, campaign)
}

// Update patches a campaign
func (h *CampaignHandler) Update(c echo.Context) error {
	var req service.UpdateCampaignInput
	if err := bind(c, &req); err != nil {
		return err
	}

	campaign, err := h.campaigns.Update(c.Request().Context(), middleware.OrganizationID(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	prometheus.RecordResourceOperation("campaign", "update")
	return c.JSON(http.StatusOK, campaign)
}

// Delete cancels a campaign
func (h *CampaignHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.campaigns.Cancel(c.Request().Context(), middleware.OrganizationID(c), id); err != nil {
		return err
	}
	prometheus.RecordResourceOperation("campaign", "cancel")
	logger.FromContext(c).Info("Campaign cancelled", zap.String("campaign_id", id))
	return success(c)
}

// Assign creates a NEW order for a creator on the campaign
func (h *CampaignHandler) Assign(c echo.Context) error {
	var req service.AssignInput
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.campaigns.Assign(c.Request().Context(), middleware.OrganizationID(c), c.Param("id"), req)
	if err != nil {
		return err
	}

	prometheus.RecordResourceOperation("order", "create")
	logger.FromContext(c).Info("Creator assigned",
		zap.String("campaign_id", order.CampaignID),
		zap.String("creator_id", order.CreatorID))
	return c.JSON(http.StatusCreated, order)
}

// UpdateOrder moves an order through its statuses
func (h *CampaignHandler) UpdateOrder(c echo.Context) error {
	var req service.UpdateOrderInput
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.campaigns.UpdateOrder(c.Request().Context(), middleware.OrganizationID(c), c.Param("id"), c.Param("orderId"), req)
	if err != nil {
		return err
	}
	prometheus.RecordResourceOperation("order", "update")
	return c.JSON(http.StatusOK, order)
}

// DeleteOrder removes an order that has no media
func (h *CampaignHandler) DeleteOrder(c echo.Context) error {
	if err := h.campaigns.DeleteOrder(c.Request().Context(), middleware.OrganizationID(c), c.Param("id"), c.Param("orderId")); err != nil {
		return err
	}
	prometheus.RecordResourceOperation("order", "delete")
	return success(c)
}
