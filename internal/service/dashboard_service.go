package service

import (
	"context"

	"ugc-service/internal/apperror"
	"ugc-service/internal/model"

	"golang.org/x/sync/errgroup"
)

const recentActivityLimit = 5

// CountPair is a total with the part of it that is currently active
type CountPair struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

// OrderCounts summarizes orders by progress
type OrderCounts struct {
	Total      int64 `json:"total"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
}

// DashboardStats are the organization's headline numbers
type DashboardStats struct {
	Campaigns CountPair `json:"campaigns"`
	Clients   CountPair `json:"clients"`
	Creators  struct {
		Total int64 `json:"total"`
	} `json:"creators"`
	Orders  OrderCounts `json:"orders"`
	Revenue struct {
		Total float64 `json:"total"`
	} `json:"revenue"`
}

// DashboardActivities are the organization's latest records
type DashboardActivities struct {
	Campaigns []model.Campaign `json:"recentCampaigns"`
	Orders    []model.Order    `json:"recentOrders"`
	Clients   []model.Client   `json:"recentClients"`
}

// DashboardService computes dashboard aggregates
type DashboardService struct {
	store DashboardStore
}

// NewDashboardService creates a DashboardService
func NewDashboardService(store DashboardStore) *DashboardService {
	return &DashboardService{store: store}
}

// Stats runs the dashboard counts concurrently
func (s *DashboardService) Stats(ctx context.Context, orgID string) (*DashboardStats, error) {
	var stats DashboardStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.Campaigns.Total, err = s.store.CountCampaigns(ctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		stats.Campaigns.Active, err = s.store.CountCampaigns(ctx, orgID, model.CampaignActive, model.CampaignInProgress)
		return err
	})
	g.Go(func() (err error) {
		stats.Clients.Total, err = s.store.CountClients(ctx, orgID, "")
		return err
	})
	g.Go(func() (err error) {
		stats.Clients.Active, err = s.store.CountClients(ctx, orgID, model.ClientActive)
		return err
	})
	g.Go(func() (err error) {
		stats.Creators.Total, err = s.store.CountCreators(ctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		stats.Orders.Total, err = s.store.CountOrders(ctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		stats.Orders.InProgress, err = s.store.CountOrders(ctx, orgID, model.OrderAssigned, model.OrderInProgress)
		return err
	})
	g.Go(func() (err error) {
		stats.Orders.Completed, err = s.store.CountOrders(ctx, orgID, model.OrderCompleted)
		return err
	})
	g.Go(func() (err error) {
		stats.Revenue.Total, err = s.store.SumBudget(ctx, orgID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, apperror.Internal(err)
	}
	return &stats, nil
}

// Activities returns the five latest campaigns, orders and clients
func (s *DashboardService) Activities(ctx context.Context, orgID string) (*DashboardActivities, error) {
	var out DashboardActivities
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.Campaigns, err = s.store.RecentCampaigns(ctx, orgID, recentActivityLimit)
		return err
	})
	g.Go(func() (err error) {
		out.Orders, err = s.store.RecentOrders(ctx, orgID, recentActivityLimit)
		return err
	})
	g.Go(func() (err error) {
		out.Clients, err = s.store.RecentClients(ctx, orgID, recentActivityLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, apperror.Internal(err)
	}
	if out.Campaigns == nil {
		out.Campaigns = []model.Campaign{}
	}
	if out.Orders == nil {
		out.Orders = []model.Order{}
	}
	if out.Clients == nil {
		out.Clients = []model.Client{}
	}
	return &out, nil
}
