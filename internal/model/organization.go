package model

import (
	"time"

	"gorm.io/gorm"
)

// Organization member roles
const (
	MemberOwner  = "OWNER"
	MemberAdmin  = "ADMIN"
	MemberMember = "MEMBER"
)

// ValidMemberRole reports whether role is an organization member role
func ValidMemberRole(role string) bool {
	switch role {
	case MemberOwner, MemberAdmin, MemberMember:
		return true
	}
	return false
}

// Organization is the tenant root: clients, campaigns and settings belong to one
type Organization struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Slug      string    `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	Logo      string    `json:"logo,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when none was set
func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	o.ID = ensureID(o.ID)
	return nil
}

// OrganizationMember links a user to an organization with an org-scoped role
type OrganizationMember struct {
	ID             string    `json:"id" gorm:"type:uuid;primaryKey"`
	OrganizationID string    `json:"organizationId" gorm:"type:uuid;not null;uniqueIndex:idx_org_member"`
	UserID         string    `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_org_member;index"`
	Role           string    `json:"role" gorm:"type:varchar(20);not null;default:MEMBER"`
	JoinedAt       time.Time `json:"joinedAt" gorm:"autoCreateTime"`

	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	User         *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate assigns a UUID when none was set
func (m *OrganizationMember) BeforeCreate(tx *gorm.DB) error {
	m.ID = ensureID(m.ID)
	return nil
}

// CanManage reports whether the member may edit the organization or invite others
func (m *OrganizationMember) CanManage() bool {
	return m != nil && (m.Role == MemberOwner || m.Role == MemberAdmin)
}

// OrganizationCounts aggregates per-organization totals
type OrganizationCounts struct {
	Members   int64 `json:"members"`
	Campaigns int64 `json:"campaigns"`
	Clients   int64 `json:"clients"`
}

// OrganizationWithRole is an organization as seen by one of its members
type OrganizationWithRole struct {
	Organization
	UserRole      string `json:"userRole"`
	MemberCount   int64  `json:"memberCount"`
	CampaignCount int64  `json:"campaignCount"`
	ClientCount   int64  `json:"clientCount"`
}
