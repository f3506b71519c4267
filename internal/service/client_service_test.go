package service

import (
	"context"
	"net/http"
	"testing"

	"ugc-service/internal/model"
	"ugc-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClientService_Archive(t *testing.T) {
	clients := new(MockClientStore)
	svc := NewClientService(clients, new(MockUserStore))
	ctx := context.Background()

	clients.On("FindByID", mock.Anything, "org-1", "client-1").Return(&model.Client{ID: "client-1", Status: model.ClientActive}, nil)

	t.Run("active campaigns block archive", func(t *testing.T) {
		clients.On("CountActiveCampaigns", mock.Anything, "org-1", "client-1").Return(int64(1), nil).Once()

		err := svc.Archive(ctx, "org-1", "client-1")
		assertCode(t, err, http.StatusBadRequest, "Cannot delete client with active campaigns")
		clients.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no active campaigns", func(t *testing.T) {
		clients.On("CountActiveCampaigns", mock.Anything, "org-1", "client-1").Return(int64(0), nil).Once()
		clients.On("Update", mock.Anything, "org-1", "client-1", map[string]interface{}{"status": model.ClientArchived}).Return(nil).Once()

		require.NoError(t, svc.Archive(ctx, "org-1", "client-1"))
	})

	t.Run("other organization", func(t *testing.T) {
		clients.On("FindByID", mock.Anything, "org-2", "client-1").Return(nil, repository.ErrNotFound).Once()

		err := svc.Archive(ctx, "org-2", "client-1")
		assertCode(t, err, http.StatusNotFound, "Client not found")
	})

	clients.AssertExpectations(t)
}

func TestClientService_UpdateToArchivedAppliesRule(t *testing.T) {
	clients := new(MockClientStore)
	svc := NewClientService(clients, new(MockUserStore))

	clients.On("FindByID", mock.Anything, "org-1", "client-1").Return(&model.Client{ID: "client-1"}, nil)
	clients.On("CountActiveCampaigns", mock.Anything, "org-1", "client-1").Return(int64(2), nil)

	status := model.ClientArchived
	_, err := svc.Update(context.Background(), "org-1", "client-1", UpdateClientInput{Status: &status})
	assertCode(t, err, http.StatusBadRequest, "Cannot delete client with active campaigns")
	clients.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestClientService_Create(t *testing.T) {
	clients := new(MockClientStore)
	svc := NewClientService(clients, new(MockUserStore))
	ctx := context.Background()

	t.Run("duplicate email in organization", func(t *testing.T) {
		clients.On("FindByEmail", mock.Anything, "org-1", "dup@b.com").Return(&model.Client{ID: "other"}, nil).Once()

		_, err := svc.Create(ctx, "org-1", CreateClientInput{Name: "Dup", Email: "dup@b.com"})
		assertCode(t, err, http.StatusBadRequest, "Client with this email already exists")
	})

	t.Run("invalid website", func(t *testing.T) {
		_, err := svc.Create(ctx, "org-1", CreateClientInput{Name: "Acme", Email: "a@acme.com", Website: "not a url"})
		assertCode(t, err, http.StatusBadRequest, "Invalid website URL")
	})

	t.Run("created active in the caller's organization", func(t *testing.T) {
		clients.On("FindByEmail", mock.Anything, "org-1", "new@acme.com").Return(nil, repository.ErrNotFound).Once()
		clients.On("Create", mock.Anything, mock.AnythingOfType("*model.Client")).Return(nil).Once()

		client, err := svc.Create(ctx, "org-1", CreateClientInput{Name: "Acme", Email: "New@Acme.com", Website: "https://acme.com"})
		require.NoError(t, err)
		assert.Equal(t, "org-1", client.OrganizationID)
		assert.Equal(t, "new@acme.com", client.Email)
		assert.Equal(t, model.ClientActive, client.Status)
	})
}

func TestClientService_Creators(t *testing.T) {
	clients := new(MockClientStore)
	users := new(MockUserStore)
	svc := NewClientService(clients, users)

	clients.On("FindByID", mock.Anything, "org-1", "client-1").Return(&model.Client{ID: "client-1"}, nil)
	clients.On("CreatorOrderStats", mock.Anything, "org-1", "client-1").Return([]repository.ClientCreatorRow{
		{CreatorID: "c1", Status: model.OrderCompleted, Count: 1},
		{CreatorID: "c2", Status: model.OrderCompleted, Count: 2},
		{CreatorID: "c2", Status: model.OrderNew, Count: 1},
	}, nil)
	users.On("FindByID", mock.Anything, "c1").Return(&model.User{ID: "c1", Name: "One"}, nil)
	users.On("FindByID", mock.Anything, "c2").Return(&model.User{ID: "c2", Name: "Two"}, nil)

	creators, err := svc.Creators(context.Background(), "org-1", "client-1")
	require.NoError(t, err)
	require.Len(t, creators, 2)
	assert.Equal(t, "c2", creators[0].ID)
	assert.Equal(t, int64(3), creators[0].OrdersForClient)
	assert.Equal(t, int64(1), creators[0].Stats[model.OrderNew])
	assert.Equal(t, int64(1), creators[1].OrdersForClient)
}
