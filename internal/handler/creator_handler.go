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

const creatorPageLimit = 10

// CreatorService is the part of service.CreatorService the creator routes use
type CreatorService interface {
	List(ctx context.Context, search string, page repository.Page) ([]service.CreatorProfile, repository.Pagination, error)
	Create(ctx context.Context, in service.CreateCreatorInput) (*model.User, error)
	Get(ctx context.Context, id string) (*service.CreatorDetail, error)
	Update(ctx context.Context, actor *model.User, id string, in service.UpdateCreatorInput) (*model.User, error)
	Availability(ctx context.Context, id string) (*service.CreatorAvailability, error)
	Stats(ctx context.Context, id, period string) (*service.CreatorStats, error)
	Delete(ctx context.Context, id string) error
}

// CreatorHandler serves /api/creators
type CreatorHandler struct {
	creators CreatorService
}

// NewCreatorHandler creates a CreatorHandler
func NewCreatorHandler(creators CreatorService) *CreatorHandler {
	return &CreatorHandler{creators: creators}
}

// List returns creators with their completed order counts
func (h *CreatorHandler) List(c echo.Context) error {
	creators, pagination, err := h.creators.List(c.Request().Context(), c.QueryParam("search"), pageFromQuery(c, creatorPageLimit))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"creators": creators, "pagination": pagination})
}

// Create registers a creator account
func (h *CreatorHandler) Create(c echo.Context) error {
	var req service.CreateCreatorInput
	if err := bind(c, &req); err != nil {
		return err
	}

	creator, err := h.creators.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}

	prometheus.RecordResourceOperation("creator", "create")
	logger.FromContext(c).Info("Creator created", zap.String("creator_id", creator.ID))
	return c.JSON(http.StatusCreated, creator)
}

// Get returns a creator with recent orders
func (h *CreatorHandler) Get(c echo.Context) error {
	creator, err := h.creators.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, creator)
}

// Update patches a creator profile
func (h *CreatorHandler) Update(c echo.Context) error {
	var req service.UpdateCreatorInput
	if err := bind(c, &req); err != nil {
		return err
	}

	creator, err := h.creators.Update(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	prometheus.RecordResourceOperation("creator", "update")
	return c.JSON(http.StatusOK, creator)
}

// Availability returns the creator's current workload
func (h *CreatorHandler) Availability(c echo.Context) error {
	availability, err := h.creators.Availability(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, availability)
}

// Stats returns order and media counts for a period
func (h *CreatorHandler) Stats(c echo.Context) error {
	stats, err := h.creators.Stats(c.Request().Context(), c.Param("id"), c.QueryParam("period"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Delete removes a creator with no orders
func (h *CreatorHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.creators.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	prometheus.RecordResourceOperation("creator", "delete")
	logger.FromContext(c).Info("Creator deleted", zap.String("creator_id", id))
	return success(c)
}
