package service

import (
	"context"
	"time"

	"ugc-service/internal/model"
	"ugc-service/internal/repository"
)

// UserStore is the user persistence used by services
type UserStore interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	ListCreators(ctx context.Context, search string, page repository.Page) ([]repository.CreatorListItem, int64, error)
}

// OrganizationStore is the organization and membership persistence used by services
type OrganizationStore interface {
	FindByID(ctx context.Context, id string) (*model.Organization, error)
	FindBySlug(ctx context.Context, slug string) (*model.Organization, error)
	CreateWithOwner(ctx context.Context, org *model.Organization, ownerID string) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	FindMembership(ctx context.Context, orgID, userID string) (*model.OrganizationMember, error)
	FirstMembership(ctx context.Context, userID string) (*model.OrganizationMember, error)
	ListForUser(ctx context.Context, userID string, page repository.Page) ([]model.OrganizationWithRole, int64, error)
	Counts(ctx context.Context, orgID string) (model.OrganizationCounts, error)
	ListMembers(ctx context.Context, orgID string) ([]model.OrganizationMember, error)
	AddMember(ctx context.Context, member *model.OrganizationMember) error
}

// ClientStore is the client persistence used by services
type ClientStore interface {
	List(ctx context.Context, orgID string, filter repository.ClientFilter, page repository.Page) ([]model.Client, int64, error)
	FindByID(ctx context.Context, orgID, id string) (*model.Client, error)
	FindByEmail(ctx context.Context, orgID, email string) (*model.Client, error)
	Create(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, orgID, id string, fields map[string]interface{}) error
	CountActiveCampaigns(ctx context.Context, orgID, clientID string) (int64, error)
	RecentCampaigns(ctx context.Context, orgID, clientID string, limit int) ([]model.Campaign, error)
	CreatorOrderStats(ctx context.Context, orgID, clientID string) ([]repository.ClientCreatorRow, error)
}

// CampaignStore is the campaign persistence used by services
type CampaignStore interface {
	List(ctx context.Context, orgID string, filter repository.CampaignFilter, page repository.Page) ([]model.Campaign, int64, error)
	FindByID(ctx context.Context, orgID, id string) (*model.Campaign, error)
	FindDetail(ctx context.Context, orgID, id string) (*model.Campaign, error)
	Create(ctx context.Context, campaign *model.Campaign) error
	Update(ctx context.Context, orgID, id string, fields map[string]interface{}) error
	Touch(ctx context.Context, id string) error
	ListWithMessageCounts(ctx context.Context, orgID string) ([]model.Campaign, error)
	MediaSummary(ctx context.Context, campaignID string) (int64, int64, error)
}

// OrderStore is the order persistence used by services
type OrderStore interface {
	Create(ctx context.Context, order *model.Order) error
	FindInCampaign(ctx context.Context, campaignID, id string) (*model.Order, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	CountMedia(ctx context.Context, orderID string) (int64, error)
	CountByCreator(ctx context.Context, creatorID string, statuses ...string) (int64, error)
	RecentByCreator(ctx context.Context, creatorID string, limit int) ([]model.Order, error)
	ActiveByCreator(ctx context.Context, creatorID string, statuses []string) ([]model.Order, error)
	StatusCountsByCreator(ctx context.Context, creatorID string, since time.Time) ([]repository.StatusCount, error)
}

// MediaStore is the media persistence used by services
type MediaStore interface {
	List(ctx context.Context, orgID string, filter repository.MediaFilter, page repository.Page) ([]model.Media, int64, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]model.Media, error)
	FindByID(ctx context.Context, orgID, id string) (*model.Media, error)
	Create(ctx context.Context, item *model.Media) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	StatusCountsByUploader(ctx context.Context, userID string, since time.Time) ([]repository.StatusCount, error)
}

// MessageStore is the message persistence used by services
type MessageStore interface {
	ListByCampaign(ctx context.Context, campaignID string, limit int, before *time.Time) ([]model.Message, error)
	FindByID(ctx context.Context, orgID, id string) (*model.Message, error)
	Create(ctx context.Context, message *model.Message) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// SettingStore is the integration settings persistence used by services
type SettingStore interface {
	Get(ctx context.Context, orgID, kind string) (*model.IntegrationSetting, error)
	Upsert(ctx context.Context, setting *model.IntegrationSetting) error
}

// DashboardStore runs the dashboard aggregates
type DashboardStore interface {
	CountCampaigns(ctx context.Context, orgID string, statuses ...string) (int64, error)
	CountClients(ctx context.Context, orgID, status string) (int64, error)
	CountCreators(ctx context.Context, orgID string) (int64, error)
	CountOrders(ctx context.Context, orgID string, statuses ...string) (int64, error)
	SumBudget(ctx context.Context, orgID string) (float64, error)
	RecentCampaigns(ctx context.Context, orgID string, limit int) ([]model.Campaign, error)
	RecentOrders(ctx context.Context, orgID string, limit int) ([]model.Order, error)
	RecentClients(ctx context.Context, orgID string, limit int) ([]model.Client, error)
}
