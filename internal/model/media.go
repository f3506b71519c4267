package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Media types
const (
	MediaImage    = "IMAGE"
	MediaVideo    = "VIDEO"
	MediaDocument = "DOCUMENT"
	MediaOther    = "OTHER"
)

// Media statuses
const (
	MediaPending  = "PENDING"
	MediaApproved = "APPROVED"
	MediaRejected = "REJECTED"
	MediaArchived = "ARCHIVED"
)

// ValidMediaType reports whether t is a media type
func ValidMediaType(t string) bool {
	switch t {
	case MediaImage, MediaVideo, MediaDocument, MediaOther:
		return true
	}
	return false
}

// ValidMediaStatus reports whether status is a media status
func ValidMediaStatus(status string) bool {
	switch status {
	case MediaPending, MediaApproved, MediaRejected, MediaArchived:
		return true
	}
	return false
}

// DefaultMimeType is used when an upload does not declare its content type
func DefaultMimeType(mediaType string) string {
	switch mediaType {
	case MediaImage:
		return "image/jpeg"
	case MediaVideo:
		return "video/mp4"
	case MediaDocument:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Media is an asset uploaded against a campaign, optionally for a specific order
type Media struct {
	ID           string         `json:"id" gorm:"type:uuid;primaryKey"`
	CampaignID   string         `json:"campaignId" gorm:"type:uuid;not null;index"`
	OrderID      *string        `json:"orderId,omitempty" gorm:"type:uuid;index"`
	UploadedBy   string         `json:"uploadedBy" gorm:"type:uuid;not null;index"`
	Type         string         `json:"type" gorm:"type:varchar(20);not null"`
	URL          string         `json:"url" gorm:"type:text"`
	ThumbnailURL string         `json:"thumbnailUrl,omitempty" gorm:"type:text"`
	StorageKey   string         `json:"storageKey,omitempty" gorm:"type:text"`
	Filename     string         `json:"filename" gorm:"type:varchar(255)"`
	MimeType     string         `json:"mimeType" gorm:"type:varchar(100)"`
	Size         int64          `json:"size"`
	Status       string         `json:"status" gorm:"type:varchar(20);not null;default:PENDING;index"`
	Metadata     datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`

	Uploader *User     `json:"uploader,omitempty" gorm:"foreignKey:UploadedBy"`
	Campaign *Campaign `json:"campaign,omitempty" gorm:"foreignKey:CampaignID"`
	Order    *Order    `json:"order,omitempty" gorm:"foreignKey:OrderID"`
}

// TableName keeps the plural form used by the frontend schema
func (Media) TableName() string {
	return "media"
}

// BeforeCreate assigns a UUID when none was set
func (m *Media) BeforeCreate(tx *gorm.DB) error {
	m.ID = ensureID(m.ID)
	return nil
}
