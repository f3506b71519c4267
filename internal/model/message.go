package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaxMessageLength bounds message content
const MaxMessageLength = 5000

// Message is a chat entry on a campaign
type Message struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey"`
	CampaignID  string         `json:"campaignId" gorm:"type:uuid;not null;index"`
	SenderID    string         `json:"senderId" gorm:"type:uuid;not null;index"`
	Content     string         `json:"content" gorm:"type:text;not null"`
	Attachments datatypes.JSON `json:"attachments,omitempty"`
	EditedAt    *time.Time     `json:"editedAt,omitempty"`
	CreatedAt   time.Time      `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	Sender *User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
}

// BeforeCreate assigns a UUID when none was set
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	m.ID = ensureID(m.ID)
	return nil
}
