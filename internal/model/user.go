package model

import (
	"time"

	"gorm.io/gorm"
)

// Global user roles
const (
	RoleAdmin   = "ADMIN"
	RoleStaff   = "STAFF"
	RoleCreator = "CREATOR"
	RoleClient  = "CLIENT"
)

// ValidRole reports whether role is one of the global user roles
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStaff, RoleCreator, RoleClient:
		return true
	}
	return false
}

// User represents the user model stored in the database
type User struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	Email         string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password      string    `json:"-" gorm:"type:varchar(255)"`
	Name          string    `json:"name" gorm:"type:varchar(255)"`
	FirstName     string    `json:"firstName,omitempty" gorm:"type:varchar(100)"`
	LastName      string    `json:"lastName,omitempty" gorm:"type:varchar(100)"`
	Phone         string    `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Bio           string    `json:"bio,omitempty" gorm:"type:text"`
	Image         string    `json:"image,omitempty" gorm:"type:text"`
	Role          string    `json:"role" gorm:"type:varchar(20);not null;default:CLIENT;index"`
	EmailVerified bool      `json:"emailVerified" gorm:"default:false"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// EffectiveRole returns the role used by permission checks
func (u *User) EffectiveRole() string {
	if u.Role == "" {
		return RoleClient
	}
	return u.Role
}

// BeforeCreate assigns a UUID when none was set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.ID = ensureID(u.ID)
	return nil
}

// UserSummary is the public subset of a user embedded in other resources
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Summary returns the public subset of the user
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image, Role: u.Role}
}
