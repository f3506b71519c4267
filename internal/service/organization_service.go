package service

import (
	"context"
	"strings"

	"ugc-service/internal/apperror"
	"ugc-service/internal/model"
	"ugc-service/internal/repository"
)

// CreateOrganizationInput is the organization creation body
type CreateOrganizationInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Logo string `json:"logo"`
}

// UpdateOrganizationInput is the organization patch body
type UpdateOrganizationInput struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
	Logo *string `json:"logo"`
}

// InviteInput is the member invitation body
type InviteInput struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CurrentOrganization is an organization with its totals
type CurrentOrganization struct {
	*model.Organization
	Count model.OrganizationCounts `json:"_count"`
}

// OrganizationService manages organizations and memberships
type OrganizationService struct {
	orgs  OrganizationStore
	users UserStore
}

// NewOrganizationService creates an OrganizationService
func NewOrganizationService(orgs OrganizationStore, users UserStore) *OrganizationService {
	return &OrganizationService{orgs: orgs, users: users}
}

// Membership returns the user's membership in orgID, or a 403 when there is none
func (s *OrganizationService) Membership(ctx context.Context, orgID, userID string) (*model.OrganizationMember, error) {
	member, err := s.orgs.FindMembership(ctx, orgID, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.Forbidden("Not a member of this organization")
		}
		return nil, apperror.Internal(err)
	}
	return member, nil
}

// Resolve picks the organization for requests that do not require the header:
// the requested one when given (membership enforced), else the user's first.
func (s *OrganizationService) Resolve(ctx context.Context, userID, requestedOrgID string) (*model.OrganizationMember, error) {
	if requestedOrgID != "" {
		return s.Membership(ctx, requestedOrgID, userID)
	}
	member, err := s.orgs.FirstMembership(ctx, userID)
	if err != nil {
		return nil, lookup(err, "No organization found")
	}
	return member, nil
}

// List returns the organizations the user belongs to
func (s *OrganizationService) List(ctx context.Context, userID string, page repository.Page) ([]model.OrganizationWithRole, repository.Pagination, error) {
	orgs, total, err := s.orgs.ListForUser(ctx, userID, page)
	if err != nil {
		return nil, repository.Pagination{}, apperror.Internal(err)
	}
	if orgs == nil {
		orgs = []model.OrganizationWithRole{}
	}
	return orgs, page.Meta(total), nil
}

// Current returns the organization with its totals
func (s *OrganizationService) Current(ctx context.Context, orgID string) (*CurrentOrganization, error) {
	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return nil, lookup(err, "Organization not found")
	}
	counts, err := s.orgs.Counts(ctx, orgID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &CurrentOrganization{Organization: org, Count: counts}, nil
}

// Create creates an organization owned by userID
func (s *OrganizationService) Create(ctx context.Context, userID string, in CreateOrganizationInput) (*model.Organization, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.BadRequest("Name is required")
	}
	if err := s.checkSlug(ctx, in.Slug, ""); err != nil {
		return nil, err
	}

	org := &model.Organization{Name: name, Slug: in.Slug, Logo: in.Logo}
	if err := s.orgs.CreateWithOwner(ctx, org, userID); err != nil {
		return nil, apperror.Internal(err)
	}
	return org, nil
}

func (s *OrganizationService) checkSlug(ctx context.Context, slug, currentOrgID string) error {
	if len(slug) < 3 || !slugPattern.MatchString(slug) {
		return apperror.BadRequest("Slug must be at least 3 characters of lowercase letters, numbers and hyphens")
	}
	existing, err := s.orgs.FindBySlug(ctx, slug)
	if err == nil && existing.ID != currentOrgID {
		return apperror.BadRequest("Slug already taken")
	}
	if err != nil && !isNotFound(err) {
		return apperror.Internal(err)
	}
	return nil
}

// Update edits an organization; the caller must be its OWNER or ADMIN
func (s *OrganizationService) Update(ctx context.Context, userID, orgID string, in UpdateOrganizationInput) (*model.Organization, error) {
	member, err := s.Membership(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	if !member.CanManage() {
		return nil, apperror.Forbidden("Insufficient permissions")
	}

	fields := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperror.BadRequest("Name is required")
		}
		fields["name"] = name
	}
	if in.Slug != nil {
		if err := s.checkSlug(ctx, *in.Slug, orgID); err != nil {
			return nil, err
		}
		fields["slug"] = *in.Slug
	}
	if in.Logo != nil {
		fields["logo"] = *in.Logo
	}

	if len(fields) > 0 {
		if err := s.orgs.Update(ctx, orgID, fields); err != nil {
			return nil, lookup(err, "Organization not found")
		}
	}

	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return nil, lookup(err, "Organization not found")
	}
	return org, nil
}

// Members lists an organization's members; the caller must belong to it
func (s *OrganizationService) Members(ctx context.Context, userID, orgID string) ([]model.OrganizationMember, error) {
	if _, err := s.Membership(ctx, orgID, userID); err != nil {
		return nil, err
	}
	members, err := s.orgs.ListMembers(ctx, orgID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return members, nil
}

// Invite adds an existing user to the organization
func (s *OrganizationService) Invite(ctx context.Context, userID, orgID string, in InviteInput) (*model.OrganizationMember, error) {
	inviter, err := s.Membership(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	if !inviter.CanManage() {
		return nil, apperror.Forbidden("Insufficient permissions")
	}

	role := in.Role
	if role == "" {
		role = model.MemberMember
	}
	if !model.ValidMemberRole(role) {
		return nil, apperror.BadRequest("Invalid role")
	}
	if role == model.MemberOwner && inviter.Role != model.MemberOwner {
		return nil, apperror.Forbidden("Only owners can grant the OWNER role")
	}

	email := normalizeEmail(in.Email)
	if !validEmail(email) {
		return nil, apperror.BadRequest("Invalid email")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, lookup(err, "User not found")
	}

	if _, err := s.orgs.FindMembership(ctx, orgID, user.ID); err == nil {
		return nil, apperror.BadRequest("User is already a member")
	} else if !isNotFound(err) {
		return nil, apperror.Internal(err)
	}

	member := &model.OrganizationMember{
		OrganizationID: orgID,
		UserID:         user.ID,
		Role:           role,
	}
	if err := s.orgs.AddMember(ctx, member); err != nil {
		return nil, apperror.Internal(err)
	}
	member.User = user
	return member, nil
}
