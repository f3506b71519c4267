package handler

import (
	"context"
	"net/http"

	"ugc-service/internal/apperror"
	"ugc-service/internal/middleware"
	"ugc-service/internal/model"
	"ugc-service/internal/repository"
	"ugc-service/internal/service"
	"ugc-service/pkg/logger"
	"ugc-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const organizationPageLimit = 10

// OrganizationService is the part of service.OrganizationService the organization routes use
type OrganizationService interface {
	List(ctx context.Context, userID string, page repository.Page) ([]model.OrganizationWithRole, repository.Pagination, error)
	Current(ctx context.Context, orgID string) (*service.CurrentOrganization, error)
	Create(ctx context.Context, userID string, in service.CreateOrganizationInput) (*model.Organization, error)
	Update(ctx context.Context, userID, orgID string, in service.UpdateOrganizationInput) (*model.Organization, error)
	Members(ctx context.Context, userID, orgID string) ([]model.OrganizationMember, error)
	Invite(ctx context.Context, userID, orgID string, in service.InviteInput) (*model.OrganizationMember, error)
}

// OrganizationHandler serves /api/organizations
type OrganizationHandler struct {
	orgs OrganizationService
}

// NewOrganizationHandler creates an OrganizationHandler
func NewOrganizationHandler(orgs OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgs: orgs}
}

// List returns the caller's organizations
func (h *OrganizationHandler) List(c echo.Context) error {
	orgs, pagination, err := h.orgs.List(c.Request().Context(), middleware.CurrentUser(c).ID, pageFromQuery(c, organizationPageLimit))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"organizations": orgs, "pagination": pagination})
}

// Current returns the caller's default organization with its totals
func (h *OrganizationHandler) Current(c echo.Context) error {
	orgID := middleware.OrganizationID(c)
	if orgID == "" {
		return apperror.NotFound("No organization")
	}
	org, err := h.orgs.Current(c.Request().Context(), orgID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, org)
}

// Create creates an organization owned by the caller
func (h *OrganizationHandler) Create(c echo.Context) error {
	var req service.CreateOrganizationInput
	if err := bind(c, &req); err != nil {
		return err
	}

	org, err := h.orgs.Create(c.Request().Context(), middleware.CurrentUser(c).ID, req)
	if err != nil {
		return err
	}

	prometheus.RecordResourceOperation("organization", "create")
	logger.FromContext(c).Info("Organization created",
		zap.String("organization_id", org.ID),
		zap.String("slug", org.Slug))
	return c.JSON(http.StatusCreated, org)
}

// Update patches an organization the caller manages
func (h *OrganizationHandler) Update(c echo.Context) error {
	var req service.UpdateOrganizationInput
	if err := bind(c, &req); err != nil {
		return err
	}

	org, err := h.orgs.Update(c.Request().Context(), middleware.CurrentUser(c).ID, c.Param("id"), req)
	if err != nil {
		return err
	}
	prometheus.RecordResourceOperation("organization", "update")
	return c.JSON(http.StatusOK, org)
}

// Members lists an organization's members
func (h *OrganizationHandler) Members(c echo.Context) error {
	members, err := h.orgs.Members(c.Request().Context(), middleware.CurrentUser(c).ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, members)
}

// Invite adds an existing user to an organization
func (h *OrganizationHandler) Invite(c echo.Context) error {
	var req service.InviteInput
	if err := bind(c, &req); err != nil {
		return err
	}

	member, err := h.orgs.Invite(c.Request().Context(), middleware.CurrentUser(c).ID, c.Param("id"), req)
	if err != nil {
		return err
	}

	prometheus.RecordResourceOperation("organization_member", "create")
	logger.FromContext(c).Info("Member invited",
		zap.String("organization_id", member.OrganizationID),
		zap.String("user_id", member.UserID),
		zap.String("role", member.Role))
	return c.JSON(http.StatusCreated, member)
}
