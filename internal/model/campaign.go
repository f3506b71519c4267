package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Campaign statuses
const (
	CampaignDraft      = "DRAFT"
	CampaignActive     = "ACTIVE"
	CampaignInProgress = "IN_PROGRESS"
	CampaignCompleted  = "COMPLETED"
	CampaignCancelled  = "CANCELLED"
)

// TerminalCampaignStatuses are the statuses that no longer block archiving a client
var TerminalCampaignStatuses = []string{CampaignCompleted, CampaignCancelled}

// ValidCampaignStatus reports whether status is a campaign status
func ValidCampaignStatus(status string) bool {
	switch status {
	case CampaignDraft, CampaignActive, CampaignInProgress, CampaignCompleted, CampaignCancelled:
		return true
	}
	return false
}

// CampaignRequirements is the structured brief stored as JSON on a campaign
type CampaignRequirements struct {
	ContentType  []string `json:"contentType,omitempty"`
	Platform     []string `json:"platform,omitempty"`
	Deliverables int      `json:"deliverables,omitempty"`
	Guidelines   string   `json:"guidelines,omitempty"`
}

// Campaign is a unit of work for a client, fulfilled through creator orders
type Campaign struct {
	ID             string                                   `json:"id" gorm:"type:uuid;primaryKey"`
	OrganizationID string                                   `json:"organizationId" gorm:"type:uuid;not null;index"`
	ClientID       string                                   `json:"clientId" gorm:"type:uuid;not null;index"`
	CreatedByID    string                                   `json:"createdById" gorm:"type:uuid;not null"`
	Title          string                                   `json:"title" gorm:"type:varchar(255);not null"`
	Brief          string                                   `json:"brief" gorm:"type:text"`
	Status         string                                   `json:"status" gorm:"type:varchar(20);not null;default:DRAFT;index"`
	Requirements   datatypes.JSONType[CampaignRequirements] `json:"requirements"`
	Budget         *float64                                 `json:"budget,omitempty" gorm:"type:numeric(12,2)"`
	Deadline       *time.Time                               `json:"deadline,omitempty"`
	CreatedAt      time.Time                                `json:"createdAt"`
	UpdatedAt      time.Time                                `json:"updatedAt"`

	// Populated by list queries only
	OrderCount   int64 `json:"orderCount" gorm:"->;-:migration"`
	MessageCount int64 `json:"messageCount,omitempty" gorm:"->;-:migration"`

	Client    *Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	CreatedBy *User   `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
	Orders    []Order `json:"orders,omitempty" gorm:"foreignKey:CampaignID"`
	Media     []Media `json:"media,omitempty" gorm:"foreignKey:CampaignID"`
}

// BeforeCreate assigns a UUID when none was set
func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	c.ID = ensureID(c.ID)
	return nil
}
