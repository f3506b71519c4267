package model

import (
	"time"

	"gorm.io/gorm"
)

// Client statuses
const (
	ClientActive   = "ACTIVE"
	ClientArchived = "ARCHIVED"
)

// Client is a brand the agency produces content for
type Client struct {
	ID             string    `json:"id" gorm:"type:uuid;primaryKey"`
	OrganizationID string    `json:"organizationId" gorm:"type:uuid;not null;index;uniqueIndex:idx_client_org_email"`
	Name           string    `json:"name" gorm:"type:varchar(255);not null"`
	Email          string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex:idx_client_org_email"`
	Phone          string    `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Company        string    `json:"company,omitempty" gorm:"type:varchar(255)"`
	Website        string    `json:"website,omitempty" gorm:"type:text"`
	Notes          string    `json:"notes,omitempty" gorm:"type:text"`
	Status         string    `json:"status" gorm:"type:varchar(20);not null;default:ACTIVE;index"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// Populated by list queries only
	CampaignCount int64 `json:"campaignCount" gorm:"->;-:migration"`

	Campaigns []Campaign `json:"campaigns,omitempty" gorm:"foreignKey:ClientID"`
}

// BeforeCreate assigns a UUID when none was set
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	c.ID = ensureID(c.ID)
	return nil
}

// ClientSummary is the subset of a client embedded in campaign listings
type ClientSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty"`
}
