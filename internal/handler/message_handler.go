package handler

import (
	"context"
	"net/http"
	"time"

	"ugc-service/internal/apperror"
	"ugc-service/internal/middleware"
	"ugc-service/internal/model"
	"ugc-service/internal/service"
	"ugc-service/prometheus"

	"github.com/labstack/echo/v4"
)

// MessageService is the part of service.MessageService the message routes use
type MessageService interface {
	ListByCampaign(ctx context.Context, orgID, campaignID string, limit int, before *time.Time) (*service.CampaignMessages, error)
	Campaigns(ctx context.Context, orgID string) ([]model.Campaign, error)
	Create(ctx context.Context, orgID, userID string, in service.CreateMessageInput) (*model.Message, error)
	Update(ctx context.Context, orgID, userID, id string, in service.UpdateMessageInput) (*model.Message, error)
	Delete(ctx context.Context, orgID string, actor *model.User, id string) error
}

// MessageHandler serves /api/messages
type MessageHandler struct {
	messages MessageService
}

// NewMessageHandler creates a MessageHandler
func NewMessageHandler(messages MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// ListByCampaign returns a page of a campaign's conversation
func (h *MessageHandler) ListByCampaign(c echo.Context) error {
	var before *time.Time
	if raw := c.QueryParam("before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return apperror.BadRequest("Invalid before timestamp")
		}
		before = &t
	}

	result, err := h.messages.ListByCampaign(c.Request().Context(), middleware.OrganizationID(c), c.Param("campaignId"), queryInt(c, "limit"), before)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Campaigns lists campaigns with their message counts
func (h *MessageHandler) Campaigns(c echo.Context) error {
	campaigns, err := h.messages.Campaigns(c.Request().Context(), middleware.OrganizationID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaigns)
}

// Create posts a message
func (h *MessageHandler) Create(c echo.Context) error {
	var req service.CreateMessageInput
	if err := bind(c, &req); err != nil {
		return err
	}

	message, err := h.messages.Create(c.Request().Context(), middleware.OrganizationID(c), middleware.CurrentUser(c).ID, req)
	if err != nil {
		return err
	}
	prometheus.RecordResourceOperation("message", "create")
	return c.JSON(http.StatusCreated, message)
}

// Update edits the caller's own message
func (h *MessageHandler) Update(c echo.Context) error {
	var req service.UpdateMessageInput
	if err := bind(c, &req); err != nil {
		return err
	}

	message, err := h.messages.Update(c.Request().Context(), middleware.OrganizationID(c), middleware.CurrentUser(c).ID, c.Param("id"), req)
	if err != nil {
		return err
	}
	prometheus.RecordResourceOperation("message", "update")
	return c.JSON(http.StatusOK, message)
}

// Delete removes a message
func (h *MessageHandler) Delete(c echo.Context) error {
	if err := h.messages.Delete(c.Request().Context(), middleware.OrganizationID(c), middleware.CurrentUser(c), c.Param("id")); err != nil {
		return err
	}
	prometheus.RecordResourceOperation("message", "delete")
	return success(c)
}
