package handler

import (
	"context"
	"net/http"
	"strings"

	"ugc-service/internal/middleware"
	"ugc-service/internal/model"
	"ugc-service/internal/service"

	"github.com/labstack/echo/v4"
)

// OrganizationResolver picks the organization for routes where the header is optional
type OrganizationResolver interface {
	Resolve(ctx context.Context, userID, requestedOrgID string) (*model.OrganizationMember, error)
}

// DashboardService is the part of service.DashboardService the dashboard routes use
type DashboardService interface {
	Stats(ctx context.Context, orgID string) (*service.DashboardStats, error)
	Activities(ctx context.Context, orgID string) (*service.DashboardActivities, error)
}

// DashboardHandler serves /api/dashboard
type DashboardHandler struct {
	dashboard DashboardService
	orgs      OrganizationResolver
}

// NewDashboardHandler creates a DashboardHandler
func NewDashboardHandler(dashboard DashboardService, orgs OrganizationResolver) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, orgs: orgs}
}

func (h *DashboardHandler) organizationID(c echo.Context) (string, error) {
	requested := strings.TrimSpace(c.Request().Header.Get(middleware.OrganizationHeader))
	member, err := h.orgs.Resolve(c.Request().Context(), middleware.CurrentUser(c).ID, requested)
	if err != nil {
		return "", err
	}
	return member.OrganizationID, nil
}

// Stats returns the organization's headline numbers
func (h *DashboardHandler) Stats(c echo.Context) error {
	orgID, err := h.organizationID(c)
	if err != nil {
		return err
	}
	stats, err := h.dashboard.Stats(c.Request().Context(), orgID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Activities returns the latest campaigns, orders and clients
func (h *DashboardHandler) Activities(c echo.Context) error {
	orgID, err := h.organizationID(c)
	if err != nil {
		return err
	}
	activities, err := h.dashboard.Activities(c.Request().Context(), orgID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activities)
}
