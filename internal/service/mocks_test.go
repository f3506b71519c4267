package service

import (
	"context"
	"time"

	"ugc-service/internal/mailer"
	"ugc-service/internal/model"
	"ugc-service/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *MockUserStore) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}
func (m *MockUserStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserStore) ListCreators(ctx context.Context, search string, page repository.Page) ([]repository.CreatorListItem, int64, error) {
	args := m.Called(ctx, search, page)
	return args.Get(0).([]repository.CreatorListItem), args.Get(1).(int64), args.Error(2)
}

// MockOrganizationStore
type MockOrganizationStore struct {
	mock.Mock
}

func (m *MockOrganizationStore) FindByID(ctx context.Context, id string) (*model.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organization), args.Error(1)
}
func (m *MockOrganizationStore) FindBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organization), args.Error(1)
}
func (m *MockOrganizationStore) CreateWithOwner(ctx context.Context, org *model.Organization, ownerID string) error {
	args := m.Called(ctx, org, ownerID)
	return args.Error(0)
}
func (m *MockOrganizationStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}
func (m *MockOrganizationStore) FindMembership(ctx context.Context, orgID, userID string) (*model.OrganizationMember, error) {
	args := m.Called(ctx, orgID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrganizationMember), args.Error(1)
}
func (m *MockOrganizationStore) FirstMembership(ctx context.Context, userID string) (*model.OrganizationMember, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrganizationMember), args.Error(1)
}
func (m *MockOrganizationStore) ListForUser(ctx context.Context, userID string, page repository.Page) ([]model.OrganizationWithRole, int64, error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).([]model.OrganizationWithRole), args.Get(1).(int64), args.Error(2)
}
func (m *MockOrganizationStore) Counts(ctx context.Context, orgID string) (model.OrganizationCounts, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(model.OrganizationCounts), args.Error(1)
}
func (m *MockOrganizationStore) ListMembers(ctx context.Context, orgID string) ([]model.OrganizationMember, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]model.OrganizationMember), args.Error(1)
}
func (m *MockOrganizationStore) AddMember(ctx context.Context, member *model.OrganizationMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

// MockClientStore
type MockClientStore struct {
	mock.Mock
}

func (m *MockClientStore) List(ctx context.Context, orgID string, filter repository.ClientFilter, page repository.Page) ([]model.Client, int64, error) {
	args := m.Called(ctx, orgID, filter, page)
	return args.Get(0).([]model.Client), args.Get(1).(int64), args.Error(2)
}
func (m *MockClientStore) FindByID(ctx context.Context, orgID, id string) (*model.Client, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}
func (m *MockClientStore) FindByEmail(ctx context.Context, orgID, email string) (*model.Client, error) {
	args := m.Called(ctx, orgID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}
func (m *MockClientStore) Create(ctx context.Context, client *model.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}
func (m *MockClientStore) Update(ctx context.Context, orgID, id string, fields map[string]interface{}) error {
	args := m.Called(ctx, orgID, id, fields)
	return args.Error(0)
}
func (m *MockClientStore) CountActiveCampaigns(ctx context.Context, orgID, clientID string) (int64, error) {
	args := m.Called(ctx, orgID, clientID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockClientStore) RecentCampaigns(ctx context.Context, orgID, clientID string, limit int) ([]model.Campaign, error) {
	args := m.Called(ctx, orgID, clientID, limit)
	return args.Get(0).([]model.Campaign), args.Error(1)
}
func (m *MockClientStore) CreatorOrderStats(ctx context.Context, orgID, clientID string) ([]repository.ClientCreatorRow, error) {
	args := m.Called(ctx, orgID, clientID)
	return args.Get(0).([]repository.ClientCreatorRow), args.Error(1)
}

// MockCampaignStore
type MockCampaignStore struct {
	mock.Mock
}

func (m *MockCampaignStore) List(ctx context.Context, orgID string, filter repository.CampaignFilter, page repository.Page) ([]model.Campaign, int64, error) {
	args := m.Called(ctx, orgID, filter, page)
	return args.Get(0).([]model.Campaign), args.Get(1).(int64), args.Error(2)
}
func (m *MockCampaignStore) FindByID(ctx context.Context, orgID, id string) (*model.Campaign, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}
func (m *MockCampaignStore) FindDetail(ctx context.Context, orgID, id string) (*model.Campaign, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}
func (m *MockCampaignStore) Create(ctx context.Context, campaign *model.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}
func (m *MockCampaignStore) Update(ctx context.Context, orgID, id string, fields map[string]interface{}) error {
	args := m.Called(ctx, orgID, id, fields)
	return args.Error(0)
}
func (m *MockCampaignStore) Touch(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCampaignStore) ListWithMessageCounts(ctx context.Context, orgID string) ([]model.Campaign, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]model.Campaign), args.Error(1)
}
func (m *MockCampaignStore) MediaSummary(ctx context.Context, campaignID string) (int64, int64, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// MockOrderStore
type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderStore) FindInCampaign(ctx context.Context, campaignID, id string) (*model.Order, error) {
	args := m.Called(ctx, campaignID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}
func (m *MockOrderStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}
func (m *MockOrderStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockOrderStore) CountMedia(ctx context.Context, orderID string) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockOrderStore) CountByCreator(ctx context.Context, creatorID string, statuses ...string) (int64, error) {
	args := m.Called(ctx, creatorID, statuses)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockOrderStore) RecentByCreator(ctx context.Context, creatorID string, limit int) ([]model.Order, error) {
	args := m.Called(ctx, creatorID, limit)
	return args.Get(0).([]model.Order), args.Error(1)
}
func (m *MockOrderStore) ActiveByCreator(ctx context.Context, creatorID string, statuses []string) ([]model.Order, error) {
	args := m.Called(ctx, creatorID, statuses)
	return args.Get(0).([]model.Order), args.Error(1)
}
func (m *MockOrderStore) StatusCountsByCreator(ctx context.Context, creatorID string, since time.Time) ([]repository.StatusCount, error) {
	args := m.Called(ctx, creatorID, since)
	return args.Get(0).([]repository.StatusCount), args.Error(1)
}

// MockMediaStore
type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) List(ctx context.Context, orgID string, filter repository.MediaFilter, page repository.Page) ([]model.Media, int64, error) {
	args := m.Called(ctx, orgID, filter, page)
	return args.Get(0).([]model.Media), args.Get(1).(int64), args.Error(2)
}
func (m *MockMediaStore) ListByCampaign(ctx context.Context, campaignID string) ([]model.Media, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).([]model.Media), args.Error(1)
}
func (m *MockMediaStore) FindByID(ctx context.Context, orgID, id string) (*model.Media, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Media), args.Error(1)
}
func (m *MockMediaStore) Create(ctx context.Context, item *model.Media) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockMediaStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}
func (m *MockMediaStore) StatusCountsByUploader(ctx context.Context, userID string, since time.Time) ([]repository.StatusCount, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).([]repository.StatusCount), args.Error(1)
}

// MockMessageStore
type MockMessageStore struct {
	mock.Mock
}

func (m *MockMessageStore) ListByCampaign(ctx context.Context, campaignID string, limit int, before *time.Time) ([]model.Message, error) {
	args := m.Called(ctx, campaignID, limit, before)
	return args.Get(0).([]model.Message), args.Error(1)
}
func (m *MockMessageStore) FindByID(ctx context.Context, orgID, id string) (*model.Message, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}
func (m *MockMessageStore) Create(ctx context.Context, message *model.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}
func (m *MockMessageStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}
func (m *MockMessageStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSettingStore
type MockSettingStore struct {
	mock.Mock
}

func (m *MockSettingStore) Get(ctx context.Context, orgID, kind string) (*model.IntegrationSetting, error) {
	args := m.Called(ctx, orgID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.IntegrationSetting), args.Error(1)
}
func (m *MockSettingStore) Upsert(ctx context.Context, setting *model.IntegrationSetting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

// MockMailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, email mailer.Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockDashboardStore
type MockDashboardStore struct {
	mock.Mock
}

func (m *MockDashboardStore) CountCampaigns(ctx context.Context, orgID string, statuses ...string) (int64, error) {
	args := m.Called(ctx, orgID, statuses)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockDashboardStore) CountClients(ctx context.Context, orgID, status string) (int64, error) {
	args := m.Called(ctx, orgID, status)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockDashboardStore) CountCreators(ctx context.Context, orgID string) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockDashboardStore) CountOrders(ctx context.Context, orgID string, statuses ...string) (int64, error) {
	args := m.Called(ctx, orgID, statuses)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockDashboardStore) SumBudget(ctx context.Context, orgID string) (float64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(float64), args.Error(1)
}
func (m *MockDashboardStore) RecentCampaigns(ctx context.Context, orgID string, limit int) ([]model.Campaign, error) {
	args := m.Called(ctx, orgID, limit)
	return args.Get(0).([]model.Campaign), args.Error(1)
}
func (m *MockDashboardStore) RecentOrders(ctx context.Context, orgID string, limit int) ([]model.Order, error) {
	args := m.Called(ctx, orgID, limit)
	return args.Get(0).([]model.Order), args.Error(1)
}
func (m *MockDashboardStore) RecentClients(ctx context.Context, orgID string, limit int) ([]model.Client, error) {
	args := m.Called(ctx, orgID, limit)
	return args.Get(0).([]model.Client), args.Error(1)
}
