package model

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses
const (
	OrderNew        = "NEW"
	OrderAssigned   = "ASSIGNED"
	OrderInProgress = "IN_PROGRESS"
	OrderSubmitted  = "SUBMITTED"
	OrderCompleted  = "COMPLETED"
)

// ValidOrderStatus reports whether status is an order status
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderNew, OrderAssigned, OrderInProgress, OrderSubmitted, OrderCompleted:
		return true
	}
	return false
}

// Order assigns a creator to a campaign
type Order struct {
	ID          string     `json:"id" gorm:"type:uuid;primaryKey"`
	CampaignID  string     `json:"campaignId" gorm:"type:uuid;not null;index"`
	CreatorID   string     `json:"creatorId" gorm:"type:uuid;not null;index"`
	Status      string     `json:"status" gorm:"type:varchar(20);not null;default:NEW;index"`
	Notes       string     `json:"notes,omitempty" gorm:"type:text"`
	AssignedAt  time.Time  `json:"assignedAt" gorm:"autoCreateTime"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Populated by detail queries only
	MediaCount int64 `json:"mediaCount" gorm:"->;-:migration"`

	Campaign *Campaign `json:"campaign,omitempty" gorm:"foreignKey:CampaignID"`
	Creator  *User     `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
}

// BeforeCreate assigns a UUID when none was set
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	o.ID = ensureID(o.ID)
	return nil
}
