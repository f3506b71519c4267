package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"ugc-service/internal/model"
	"ugc-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreatorService() (*CreatorService, *MockUserStore, *MockOrderStore, *MockMediaStore) {
	users := new(MockUserStore)
	orders := new(MockOrderStore)
	media := new(MockMediaStore)
	return NewCreatorService(users, orders, media), users, orders, media
}

func TestCreatorService_Delete(t *testing.T) {
	svc, users, orders, _ := newCreatorService()
	ctx := context.Background()

	users.On("FindByID", mock.Anything, "busy").Return(&model.User{ID: "busy", Role: model.RoleCreator}, nil)
	users.On("FindByID", mock.Anything, "idle").Return(&model.User{ID: "idle", Role: model.RoleCreator}, nil)
	users.On("FindByID", mock.Anything, "client").Return(&model.User{ID: "client", Role: model.RoleClient}, nil)
	users.On("FindByID", mock.Anything, "author").Return(&model.User{ID: "author", Role: model.RoleCreator}, nil)

	t.Run("with orders", func(t *testing.T) {
		orders.On("CountByCreator", mock.Anything, "busy", []string(nil)).Return(int64(3), nil).Once()

		err := svc.Delete(ctx, "busy")
		assertCode(t, err, http.StatusBadRequest, "Cannot delete creator with existing orders. Archive them instead.")
		users.AssertNotCalled(t, "Delete", mock.Anything, "busy")
	})

	t.Run("without orders", func(t *testing.T) {
		orders.On("CountByCreator", mock.Anything, "idle", []string(nil)).Return(int64(0), nil).Once()
		users.On("Delete", mock.Anything, "idle").Return(nil).Once()

		require.NoError(t, svc.Delete(ctx, "idle"))
	})

	t.Run("created campaigns", func(t *testing.T) {
		orders.On("CountByCreator", mock.Anything, "author", []string(nil)).Return(int64(0), nil).Once()
		users.On("Delete", mock.Anything, "author").Return(repository.ErrInUse).Once()

		err := svc.Delete(ctx, "author")
		assertCode(t, err, http.StatusBadRequest, "Cannot delete creator who created campaigns")
	})

	t.Run("not a creator", func(t *testing.T) {
		err := svc.Delete(ctx, "client")
		assertCode(t, err, http.StatusNotFound, "Creator not found")
	})

	users.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestCreatorService_Create(t *testing.T) {
	svc, users, _, _ := newCreatorService()
	ctx := context.Background()

	t.Run("duplicate email", func(t *testing.T) {
		users.On("FindByEmail", mock.Anything, "dup@b.com").Return(&model.User{ID: "x"}, nil).Once()
		_, err := svc.Create(ctx, CreateCreatorInput{Name: "Dup", Email: "dup@b.com"})
		assertCode(t, err, http.StatusBadRequest, "User with this email already exists")
	})

	t.Run("negative rates", func(t *testing.T) {
		rates := -1.0
		_, err := svc.Create(ctx, CreateCreatorInput{Name: "Neg", Email: "neg@b.com", Rates: &rates})
		assertCode(t, err, http.StatusBadRequest, "Rates must not be negative")
		users.AssertNotCalled(t, "FindByEmail", mock.Anything, "neg@b.com")
	})

	t.Run("creates with temporary password", func(t *testing.T) {
		users.On("FindByEmail", mock.Anything, "new@b.com").Return(nil, repository.ErrNotFound).Once()
		users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil).Once()

		creator, err := svc.Create(ctx, CreateCreatorInput{Name: "New", Email: "new@b.com", Bio: "films"})
		require.NoError(t, err)
		assert.Equal(t, model.RoleCreator, creator.Role)
		assert.NotEmpty(t, creator.Password)
		assert.Equal(t, "films", creator.Bio)
	})
}

func TestCreatorService_Update(t *testing.T) {
	svc, users, _, _ := newCreatorService()
	ctx := context.Background()
	name := "Renamed"

	t.Run("other client forbidden", func(t *testing.T) {
		actor := &model.User{ID: "someone", Role: model.RoleClient}
		_, err := svc.Update(ctx, actor, "c1", UpdateCreatorInput{Name: &name})
		assertCode(t, err, http.StatusForbidden, "Insufficient permissions")
	})

	t.Run("self", func(t *testing.T) {
		users.ExpectedCalls = nil
		users.On("FindByID", mock.Anything, "c1").Return(&model.User{ID: "c1", Role: model.RoleCreator, Name: name}, nil)
		users.On("Update", mock.Anything, "c1", map[string]interface{}{"name": name}).Return(nil).Once()

		actor := &model.User{ID: "c1", Role: model.RoleCreator}
		updated, err := svc.Update(ctx, actor, "c1", UpdateCreatorInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, name, updated.Name)
	})
}

func TestCreatorService_Get(t *testing.T) {
	svc, users, orders, _ := newCreatorService()

	users.On("FindByID", mock.Anything, "c1").Return(&model.User{ID: "c1", Role: model.RoleCreator}, nil)
	orders.On("RecentByCreator", mock.Anything, "c1", 10).Return([]model.Order{{ID: "o1"}}, nil)
	orders.On("CountByCreator", mock.Anything, "c1", []string{model.OrderCompleted}).Return(int64(4), nil)
	orders.On("CountByCreator", mock.Anything, "c1", []string{model.OrderNew, model.OrderInProgress, model.OrderSubmitted}).Return(int64(2), nil)

	detail, err := svc.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, detail.Orders, 1)
	assert.Equal(t, int64(4), detail.CompletedOrders)
	assert.Equal(t, int64(2), detail.ActiveOrders)
}

func TestCreatorService_Stats(t *testing.T) {
	svc, users, orders, media := newCreatorService()
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	since := now.AddDate(0, 0, -7)

	users.On("FindByID", mock.Anything, "c1").Return(&model.User{ID: "c1", Role: model.RoleCreator}, nil)
	orders.On("StatusCountsByCreator", mock.Anything, "c1", since).Return([]repository.StatusCount{{Status: model.OrderCompleted, Count: 2}}, nil)
	media.On("StatusCountsByUploader", mock.Anything, "c1", since).Return([]repository.StatusCount(nil), nil)

	stats, err := svc.Stats(context.Background(), "c1", "7d")
	require.NoError(t, err)
	assert.Equal(t, since, stats.Since)
	assert.Len(t, stats.Orders, 1)
	assert.NotNil(t, stats.Media)
	assert.Zero(t, stats.TotalEarnings)

	_, err = svc.Stats(context.Background(), "c1", "1y")
	assertCode(t, err, http.StatusBadRequest, "Invalid period")
}

func TestCreatorService_Availability(t *testing.T) {
	svc, users, orders, _ := newCreatorService()

	users.On("FindByID", mock.Anything, "c1").Return(&model.User{ID: "c1", Role: model.RoleCreator}, nil)
	orders.On("ActiveByCreator", mock.Anything, "c1", []string{model.OrderNew, model.OrderInProgress}).
		Return(make([]model.Order, maxConcurrentOrders), nil)

	availability, err := svc.Availability(context.Background(), "c1")
	require.NoError(t, err)
	assert.False(t, availability.Available)
	assert.Len(t, availability.Schedule, 7)
}
