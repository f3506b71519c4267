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

const clientPageLimit = 10

// ClientService is the part of service.ClientService the client routes use
type ClientService interface {
	List(ctx context.Context, orgID string, filter repository.ClientFilter, page repository.Page) ([]model.Client, repository.Pagination, error)
	Get(ctx context.Context, orgID, id string) (*model.Client, error)
	Create(ctx context.Context, orgID string, in service.CreateClientInput) (*model.Client, error)
	Update(ctx context.Context, orgID, id string, in service.UpdateClientInput) (*model.Client, error)
	Archive(ctx context.Context, orgID, id string) error
	Creators(ctx context.Context, orgID, id string) ([]service.ClientCreator, error)
}

// ClientHandler serves /api/clients
type ClientHandler struct {
	clients ClientService
}

// NewClientHandler creates a ClientHandler
func NewClientHandler(clients ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// List returns the organization's clients
func (h *ClientHandler) List(c echo.Context) error {
	filter := repository.ClientFilter{
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
	}
	clients, pagination, err := h.clients.List(c.Request().Context(), middleware.OrganizationID(c), filter, pageFromQuery(c, clientPageLimit))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"clients": clients, "pagination": pagination})
}

// Get returns a client with its recent campaigns
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.clients.Get(c.Request().Context(), middleware.OrganizationID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Create adds an ACTIVE client to the organization
func (h *ClientHandler) Create(c echo.Context) error {
	var req service.CreateClientInput
	if err := bind(c, &req); err != nil {
		return err
	}

	client, err := h.clients.Create(c.Request().Context(), middleware.OrganizationID(c), req)
	if err != nil {
		return err
	}

	prometheus.RecordResourceOperation("client", "create")
	logger.FromContext(c).Info("Client created", zap.String("client_id", client.ID))
	return c.JSON(http.StatusCreated, client)
}

// Update patches a client
func (h *ClientHandler) Update(c echo.Context) error {
	var req service.UpdateClientInput
	if err := bind(c, &req); err != nil {
		return err
	}

	client, err := h.clients.Update(c.Request().Context(), middleware.OrganizationID(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	prometheus.RecordResourceOperation("client", "update")
	return c.JSON(http.StatusOK, client)
}

// Delete archives a client without active campaigns
func (h *ClientHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.clients.Archive(c.Request().Context(), middleware.OrganizationID(c), id); err != nil {
		return err
	}
	prometheus.RecordResourceOperation("client", "archive")
	logger.FromContext(c).Info("Client archived", zap.String("client_id", id))
	return success(c)
}

// Creators lists the creators who worked on the client's campaigns
func (h *ClientHandler) Creators(c echo.Context) error {
	creators, err := h.clients.Creators(c.Request().Context(), middleware.OrganizationID(c), c.Param("id"))
	if err != nil {
		return err
	}
	creators, pagination := paginate(creators, pageFromQuery(c, clientPageLimit))
	return c.JSON(http.StatusOK, echo.Map{"creators": creators, "pagination": pagination})
}
