package service

import (
	"context"
	"sort"
	"strings"

	"ugc-service/internal/apperror"
	"ugc-service/internal/model"
	"ugc-service/internal/repository"
)

// CreateClientInput is the client creation body
type CreateClientInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Website string `json:"website"`
	Notes   string `json:"notes"`
}

// UpdateClientInput is the client patch body
type UpdateClientInput struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	Website *string `json:"website"`
	Notes   *string `json:"notes"`
	Status  *string `json:"status"`
}

// ClientCreator is a creator who has worked on a client's campaigns
type ClientCreator struct {
	*model.UserSummary
	Bio             string           `json:"bio,omitempty"`
	OrdersForClient int64            `json:"ordersForClient"`
	Stats           map[string]int64 `json:"stats"`
}

// ClientService manages an organization's clients
type ClientService struct {
	clients ClientStore
	users   UserStore
}

// NewClientService creates a ClientService
func NewClientService(clients ClientStore, users UserStore) *ClientService {
	return &ClientService{clients: clients, users: users}
}

// List returns one page of clients
func (s *ClientService) List(ctx context.Context, orgID string, filter repository.ClientFilter, page repository.Page) ([]model.Client, repository.Pagination, error) {
	clients, total, err := s.clients.List(ctx, orgID, filter, page)
	if err != nil {
		return nil, repository.Pagination{}, apperror.Internal(err)
	}
	if clients == nil {
		clients = []model.Client{}
	}
	return clients, page.Meta(total), nil
}

// Get returns a client with its latest campaigns
func (s *ClientService) Get(ctx context.Context, orgID, id string) (*model.Client, error) {
	client, err := s.clients.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, lookup(err, "Client not found")
	}
	campaigns, err := s.clients.RecentCampaigns(ctx, orgID, id, 10)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	client.Campaigns = campaigns
	return client, nil
}

// Create adds a client to the organization
func (s *ClientService) Create(ctx context.Context, orgID string, in CreateClientInput) (*model.Client, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	switch {
	case name == "":
		return nil, apperror.BadRequest("Name is required")
	case !validEmail(email):
		return nil, apperror.BadRequest("Invalid email")
	case in.Website != "" && !validURL(in.Website):
		return nil, apperror.BadRequest("Invalid website URL")
	}

	if err := s.ensureEmailFree(ctx, orgID, email, ""); err != nil {
		return nil, err
	}

	client := &model.Client{
		OrganizationID: orgID,
		Name:           name,
		Email:          email,
		Phone:          in.Phone,
		Company:        in.Company,
		Website:        in.Website,
		Notes:          in.Notes,
		Status:         model.ClientActive,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, apperror.Internal(err)
	}
	return client, nil
}

func (s *ClientService) ensureEmailFree(ctx context.Context, orgID, email, clientID string) error {
	existing, err := s.clients.FindByEmail(ctx, orgID, email)
	if err == nil && existing.ID != clientID {
		return apperror.BadRequest("Client with this email already exists")
	}
	if err != nil && !isNotFound(err) {
		return apperror.Internal(err)
	}
	return nil
}

// Update edits a client. Moving it to ARCHIVED goes through the archive rule.
func (s *ClientService) Update(ctx context.Context, orgID, id string, in UpdateClientInput) (*model.Client, error) {
	if _, err := s.clients.FindByID(ctx, orgID, id); err != nil {
		return nil, lookup(err, "Client not found")
	}

	fields := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperror.BadRequest("Name is required")
		}
		fields["name"] = name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if !validEmail(email) {
			return nil, apperror.BadRequest("Invalid email")
		}
		if err := s.ensureEmailFree(ctx, orgID, email, id); err != nil {
			return nil, err
		}
		fields["email"] = email
	}
	if in.Website != nil {
		if *in.Website != "" && !validURL(*in.Website) {
			return nil, apperror.BadRequest("Invalid website URL")
		}
		fields["website"] = *in.Website
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.Company != nil {
		fields["company"] = *in.Company
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}
	if in.Status != nil {
		switch *in.Status {
		case model.ClientActive:
			fields["status"] = model.ClientActive
		case model.ClientArchived:
			if err := s.ensureArchivable(ctx, orgID, id); err != nil {
				return nil, err
			}
			fields["status"] = model.ClientArchived
		default:
			return nil, apperror.BadRequest("Invalid status")
		}
	}

	if len(fields) > 0 {
		if err := s.clients.Update(ctx, orgID, id, fields); err != nil {
			return nil, lookup(err, "Client not found")
		}
	}

	client, err := s.clients.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, lookup(err, "Client not found")
	}
	return client, nil
}

func (s *ClientService) ensureArchivable(ctx context.Context, orgID, id string) error {
	active, err := s.clients.CountActiveCampaigns(ctx, orgID, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if active > 0 {
		return apperror.BadRequest("Cannot delete client with active campaigns")
	}
	return nil
}

// Archive marks a client ARCHIVED when none of its campaigns is still running
func (s *ClientService) Archive(ctx context.Context, orgID, id string) error {
	if _, err := s.clients.FindByID(ctx, orgID, id); err != nil {
		return lookup(err, "Client not found")
	}
	if err := s.ensureArchivable(ctx, orgID, id); err != nil {
		return err
	}
	if err := s.clients.Update(ctx, orgID, id, map[string]interface{}{"status": model.ClientArchived}); err != nil {
		return lookup(err, "Client not found")
	}
	return nil
}

// Creators lists the creators with orders on the client's campaigns
func (s *ClientService) Creators(ctx context.Context, orgID, id string) ([]ClientCreator, error) {
	if _, err := s.clients.FindByID(ctx, orgID, id); err != nil {
		return nil, lookup(err, "Client not found")
	}

	rows, err := s.clients.CreatorOrderStats(ctx, orgID, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	byCreator := make(map[string]*ClientCreator)
	var order []string
	for _, row := range rows {
		cc, ok := byCreator[row.CreatorID]
		if !ok {
			user, err := s.users.FindByID(ctx, row.CreatorID)
			if err != nil {
				if isNotFound(err) {
					continue
				}
				return nil, apperror.Internal(err)
			}
			cc = &ClientCreator{UserSummary: user.Summary(), Bio: user.Bio, Stats: map[string]int64{}}
			byCreator[row.CreatorID] = cc
			order = append(order, row.CreatorID)
		}
		cc.OrdersForClient += row.Count
		cc.Stats[row.Status] += row.Count
	}

	creators := make([]ClientCreator, 0, len(order))
	for _, id := range order {
		creators = append(creators, *byCreator[id])
	}
	sort.SliceStable(creators, func(i, j int) bool {
		return creators[i].OrdersForClient > creators[j].OrdersForClient
	})
	return creators, nil
}
