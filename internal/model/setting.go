package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Integration kinds
const (
	IntegrationEmail = "email"
	IntegrationDrive = "drive"
)

// IntegrationSetting stores per-organization settings for an external integration
type IntegrationSetting struct {
	ID             string         `json:"id" gorm:"type:uuid;primaryKey"`
	OrganizationID string         `json:"organizationId" gorm:"type:uuid;not null;uniqueIndex:idx_org_integration"`
	Kind           string         `json:"kind" gorm:"type:varchar(20);not null;uniqueIndex:idx_org_integration"`
	Settings       datatypes.JSON `json:"settings"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when none was set
func (s *IntegrationSetting) BeforeCreate(tx *gorm.DB) error {
	s.ID = ensureID(s.ID)
	return nil
}
