package model

import "github.com/google/uuid"

// All returns every model managed by migrations
func All() []interface{} {
	return []interface{}{
		&User{},
		&Organization{},
		&OrganizationMember{},
		&Client{},
		&Campaign{},
		&Order{},
		&Media{},
		&Message{},
		&IntegrationSetting{},
	}
}

func ensureID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}
