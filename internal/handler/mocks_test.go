package handler

import (
	"context"
	"time"

	"ugc-service/internal/model"
	"ugc-service/internal/repository"
	"ugc-service/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, in service.SignUpInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, in service.SignInInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) SignOut(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthService) TokenTTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

type MockCampaignService struct {
	mock.Mock
}

func (m *MockCampaignService) List(ctx context.Context, orgID string, filter repository.CampaignFilter, page repository.Page) ([]model.Campaign, repository.Pagination, error) {
	args := m.Called(ctx, orgID, filter, page)
	if args.Get(0) == nil {
		return nil, repository.Pagination{}, args.Error(2)
	}
	return args.Get(0).([]model.Campaign), args.Get(1).(repository.Pagination), args.Error(2)
}

func (m *MockCampaignService) Get(ctx context.Context, orgID, id string) (*model.Campaign, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *MockCampaignService) Create(ctx context.Context, orgID, userID string, in service.CreateCampaignInput) (*model.Campaign, error) {
	args := m.Called(ctx, orgID, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *MockCampaignService) Update(ctx context.Context, orgID, id string, in service.UpdateCampaignInput) (*model.Campaign, error) {
	args := m.Called(ctx, orgID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *MockCampaignService) Cancel(ctx context.Context, orgID, id string) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}

func (m *MockCampaignService) Assign(ctx context.Context, orgID, campaignID string, in service.AssignInput) (*model.Order, error) {
	args := m.Called(ctx, orgID, campaignID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockCampaignService) UpdateOrder(ctx context.Context, orgID, campaignID, orderID string, in service.UpdateOrderInput) (*model.Order, error) {
	args := m.Called(ctx, orgID, campaignID, orderID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockCampaignService) DeleteOrder(ctx context.Context, orgID, campaignID, orderID string) error {
	args := m.Called(ctx, orgID, campaignID, orderID)
	return args.Error(0)
}

type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) List(ctx context.Context, orgID string, filter repository.ClientFilter, page repository.Page) ([]model.Client, repository.Pagination, error) {
	args := m.Called(ctx, orgID, filter, page)
	if args.Get(0) == nil {
		return nil, repository.Pagination{}, args.Error(2)
	}
	return args.Get(0).([]model.Client), args.Get(1).(repository.Pagination), args.Error(2)
}

func (m *MockClientService) Get(ctx context.Context, orgID, id string) (*model.Client, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientService) Create(ctx context.Context, orgID string, in service.CreateClientInput) (*model.Client, error) {
	args := m.Called(ctx, orgID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientService) Update(ctx context.Context, orgID, id string, in service.UpdateClientInput) (*model.Client, error) {
	args := m.Called(ctx, orgID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientService) Archive(ctx context.Context, orgID, id string) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}

func (m *MockClientService) Creators(ctx context.Context, orgID, id string) ([]service.ClientCreator, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ClientCreator), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Stats(ctx context.Context, orgID string) (*service.DashboardStats, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DashboardStats), args.Error(1)
}

func (m *MockDashboardService) Activities(ctx context.Context, orgID string) (*service.DashboardActivities, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DashboardActivities), args.Error(1)
}

type MockOrganizationResolver struct {
	mock.Mock
}

func (m *MockOrganizationResolver) Resolve(ctx context.Context, userID, requestedOrgID string) (*model.OrganizationMember, error) {
	args := m.Called(ctx, userID, requestedOrgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrganizationMember), args.Error(1)
}

type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) ListByCampaign(ctx context.Context, orgID, campaignID string, limit int, before *time.Time) (*service.CampaignMessages, error) {
	args := m.Called(ctx, orgID, campaignID, limit, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CampaignMessages), args.Error(1)
}

func (m *MockMessageService) Campaigns(ctx context.Context, orgID string) ([]model.Campaign, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Campaign), args.Error(1)
}

func (m *MockMessageService) Create(ctx context.Context, orgID, userID string, in service.CreateMessageInput) (*model.Message, error) {
	args := m.Called(ctx, orgID, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *MockMessageService) Update(ctx context.Context, orgID, userID, id string, in service.UpdateMessageInput) (*model.Message, error) {
	args := m.Called(ctx, orgID, userID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *MockMessageService) Delete(ctx context.Context, orgID string, actor *model.User, id string) error {
	args := m.Called(ctx, orgID, actor, id)
	return args.Error(0)
}

type MockCreatorService struct {
	mock.Mock
}

func (m *MockCreatorService) List(ctx context.Context, search string, page repository.Page) ([]service.CreatorProfile, repository.Pagination, error) {
	args := m.Called(ctx, search, page)
	if args.Get(0) == nil {
		return nil, repository.Pagination{}, args.Error(2)
	}
	return args.Get(0).([]service.CreatorProfile), args.Get(1).(repository.Pagination), args.Error(2)
}

func (m *MockCreatorService) Create(ctx context.Context, in service.CreateCreatorInput) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockCreatorService) Get(ctx context.Context, id string) (*service.CreatorDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CreatorDetail), args.Error(1)
}

func (m *MockCreatorService) Update(ctx context.Context, actor *model.User, id string, in service.UpdateCreatorInput) (*model.User, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockCreatorService) Availability(ctx context.Context, id string) (*service.CreatorAvailability, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CreatorAvailability), args.Error(1)
}

func (m *MockCreatorService) Stats(ctx context.Context, id, period string) (*service.CreatorStats, error) {
	args := m.Called(ctx, id, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CreatorStats), args.Error(1)
}

func (m *MockCreatorService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
