package repository

import (
	"context"
	"time"

	"ugc-service/internal/model"
	"ugc-service/prometheus"

	"gorm.io/gorm"
)

// OrganizationRepository persists organizations and their memberships
type OrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates an OrganizationRepository over db
func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// FindByID loads an organization by id
func (r *OrganizationRepository) FindByID(ctx context.Context, id string) (*model.Organization, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var org model.Organization
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&org).Error; err != nil {
		return nil, notFound(err)
	}
	return &org, nil
}

// FindBySlug loads an organization by slug
func (r *OrganizationRepository) FindBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var org model.Organization
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&org).Error; err != nil {
		return nil, notFound(err)
	}
	return &org, nil
}

// CreateWithOwner inserts the organization and its OWNER membership in one transaction
func (r *OrganizationRepository) CreateWithOwner(ctx context.Context, org *model.Organization, ownerID string) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		member := model.OrganizationMember{
			OrganizationID: org.ID,
			UserID:         ownerID,
			Role:           model.MemberOwner,
		}
		return tx.Create(&member).Error
	})
}

// Update applies the given column changes to an organization
func (r *OrganizationRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	result := r.db.WithContext(ctx).Model(&model.Organization{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindMembership loads the membership of userID in orgID
func (r *OrganizationRepository) FindMembership(ctx context.Context, orgID, userID string) (*model.OrganizationMember, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var member model.OrganizationMember
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		First(&member).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &member, nil
}

// FirstMembership returns the user's earliest membership
func (r *OrganizationRepository) FirstMembership(ctx context.Context, userID string) (*model.OrganizationMember, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var member model.OrganizationMember
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Where("user_id = ?", userID).
		Order("joined_at ASC").
		First(&member).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &member, nil
}

// ListForUser lists the organizations userID belongs to together with the user's role in each
func (r *OrganizationRepository) ListForUser(ctx context.Context, userID string, page Page) ([]model.OrganizationWithRole, int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var total int64
	err := r.db.WithContext(ctx).Model(&model.OrganizationMember{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var orgs []model.OrganizationWithRole
	err = r.db.WithContext(ctx).Table("organizations").
		Select(`organizations.*, organization_members.role AS user_role,
			(SELECT COUNT(*) FROM organization_members m WHERE m.organization_id = organizations.id) AS member_count,
			(SELECT COUNT(*) FROM campaigns WHERE campaigns.organization_id = organizations.id) AS campaign_count,
			(SELECT COUNT(*) FROM clients WHERE clients.organization_id = organizations.id) AS client_count`).
		Joins("JOIN organization_members ON organization_members.organization_id = organizations.id").
		Where("organization_members.user_id = ?", userID).
		Order("organization_members.joined_at ASC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Scan(&orgs).Error
	if err != nil {
		return nil, 0, err
	}
	return orgs, total, nil
}

// Counts returns member, campaign and client totals for an organization
func (r *OrganizationRepository) Counts(ctx context.Context, orgID string) (model.OrganizationCounts, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var counts model.OrganizationCounts
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.OrganizationMember{}).Where("organization_id = ?", orgID).Count(&counts.Members).Error; err != nil {
		return counts, err
	}
	if err := db.Model(&model.Campaign{}).Where("organization_id = ?", orgID).Count(&counts.Campaigns).Error; err != nil {
		return counts, err
	}
	if err := db.Model(&model.Client{}).Where("organization_id = ?", orgID).Count(&counts.Clients).Error; err != nil {
		return counts, err
	}
	return counts, nil
}

// ListMembers lists the members of an organization with their users, oldest first
func (r *OrganizationRepository) ListMembers(ctx context.Context, orgID string) ([]model.OrganizationMember, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var members []model.OrganizationMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("organization_id = ?", orgID).
		Order("joined_at ASC").
		Find(&members).Error
	return members, err
}

// AddMember inserts a membership
func (r *OrganizationRepository) AddMember(ctx context.Context, member *model.OrganizationMember) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return r.db.WithContext(ctx).Create(member).Error
}
