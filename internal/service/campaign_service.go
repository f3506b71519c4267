package service

import (
	"context"
	"strings"
	"time"

	"ugc-service/internal/apperror"
	"ugc-service/internal/model"
	"ugc-service/internal/repository"

	"gorm.io/datatypes"
)

// CreateCampaignInput is the campaign creation body
type CreateCampaignInput struct {
	Title        string                      `json:"title"`
	Brief        string                      `json:"brief"`
	ClientID     string                      `json:"clientId"`
	Requirements *model.CampaignRequirements `json:"requirements"`
	Budget       *float64                    `json:"budget"`
	Deadline     *string                     `json:"deadline"`
}

// UpdateCampaignInput is the campaign patch body
type UpdateCampaignInput struct {
	Title        *string                     `json:"title"`
	Brief        *string                     `json:"brief"`
	ClientID     *string                     `json:"clientId"`
	Status       *string                     `json:"status"`
	Requirements *model.CampaignRequirements `json:"requirements"`
	Budget       *float64                    `json:"budget"`
	Deadline     *string                     `json:"deadline"`
}

// AssignInput is the creator assignment body
type AssignInput struct {
	CreatorID string `json:"creatorId"`
	Notes     string `json:"notes"`
}

// UpdateOrderInput is the order patch body
type UpdateOrderInput struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// CampaignService manages campaigns and their creator orders
type CampaignService struct {
	campaigns CampaignStore
	clients   ClientStore
	orders    OrderStore
	users     UserStore
	now       func() time.Time
}

// NewCampaignService creates a CampaignService
func NewCampaignService(campaigns CampaignStore, clients ClientStore, orders OrderStore, users UserStore) *CampaignService {
	return &CampaignService{campaigns: campaigns, clients: clients, orders: orders, users: users, now: time.Now}
}

// List returns one page of campaigns
func (s *CampaignService) List(ctx context.Context, orgID string, filter repository.CampaignFilter, page repository.Page) ([]model.Campaign, repository.Pagination, error) {
	if filter.Status != "" && !model.ValidCampaignStatus(filter.Status) {
		return nil, repository.Pagination{}, apperror.BadRequest("Invalid status")
	}
	campaigns, total, err := s.campaigns.List(ctx, orgID, filter, page)
	if err != nil {
		return nil, repository.Pagination{}, apperror.Internal(err)
	}
	if campaigns == nil {
		campaigns = []model.Campaign{}
	}
	return campaigns, page.Meta(total), nil
}

// Get returns a campaign with client, creator, orders and latest media
func (s *CampaignService) Get(ctx context.Context, orgID, id string) (*model.Campaign, error) {
	campaign, err := s.campaigns.FindDetail(ctx, orgID, id)
	if err != nil {
		return nil, lookup(err, "Campaign not found")
	}
	return campaign, nil
}

// Create adds a DRAFT campaign for one of the organization's clients
func (s *CampaignService) Create(ctx context.Context, orgID, userID string, in CreateCampaignInput) (*model.Campaign, error) {
	title := strings.TrimSpace(in.Title)
	brief := strings.TrimSpace(in.Brief)
	switch {
	case title == "":
		return nil, apperror.BadRequest("Title is required")
	case brief == "":
		return nil, apperror.BadRequest("Brief is required")
	case in.ClientID == "":
		return nil, apperror.BadRequest("Client is required")
	case in.Budget != nil && *in.Budget < 0:
		return nil, apperror.BadRequest("Budget must not be negative")
	}

	deadline, err := parseDeadline(in.Deadline)
	if err != nil {
		return nil, err
	}
	if err := s.checkClient(ctx, orgID, in.ClientID); err != nil {
		return nil, err
	}

	var requirements model.CampaignRequirements
	if in.Requirements != nil {
		requirements = *in.Requirements
	}

	campaign := &model.Campaign{
		OrganizationID: orgID,
		ClientID:       in.ClientID,
		CreatedByID:    userID,
		Title:          title,
		Brief:          brief,
		Status:         model.CampaignDraft,
		Requirements:   datatypes.NewJSONType(requirements),
		Budget:         in.Budget,
		Deadline:       deadline,
	}
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return nil, apperror.Internal(err)
	}
	return campaign, nil
}

func (s *CampaignService) checkClient(ctx context.Context, orgID, clientID string) error {
	client, err := s.clients.FindByID(ctx, orgID, clientID)
	if err != nil {
		return lookup(err, "Client not found")
	}
	if client.Status == model.ClientArchived {
		return apperror.BadRequest("Client is archived")
	}
	return nil
}

func parseDeadline(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, apperror.BadRequest("Invalid deadline")
	}
	return &t, nil
}

// Update edits a campaign
func (s *CampaignService) Update(ctx context.Context, orgID, id string, in UpdateCampaignInput) (*model.Campaign, error) {
	if _, err := s.campaigns.FindByID(ctx, orgID, id); err != nil {
		return nil, lookup(err, "Campaign not found")
	}

	fields := map[string]interface{}{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperror.BadRequest("Title is required")
		}
		fields["title"] = title
	}
	if in.Brief != nil {
		fields["brief"] = strings.TrimSpace(*in.Brief)
	}
	if in.ClientID != nil {
		if err := s.checkClient(ctx, orgID, *in.ClientID); err != nil {
			return nil, err
		}
		fields["client_id"] = *in.ClientID
	}
	if in.Status != nil {
		if !model.ValidCampaignStatus(*in.Status) {
			return nil, apperror.BadRequest("Invalid status")
		}
		fields["status"] = *in.Status
	}
	if in.Requirements != nil {
		fields["requirements"] = datatypes.NewJSONType(*in.Requirements)
	}
	if in.Budget != nil {
		if *in.Budget < 0 {
			return nil, apperror.BadRequest("Budget must not be negative")
		}
		fields["budget"] = *in.Budget
	}
	if in.Deadline != nil {
		deadline, err := parseDeadline(in.Deadline)
		if err != nil {
			return nil, err
		}
		fields["deadline"] = deadline
	}

	if len(fields) > 0 {
		if err := s.campaigns.Update(ctx, orgID, id, fields); err != nil {
			return nil, lookup(err, "Campaign not found")
		}
	}
	return s.Get(ctx, orgID, id)
}

// Cancel marks a campaign CANCELLED
func (s *CampaignService) Cancel(ctx context.Context, orgID, id string) error {
	if err := s.campaigns.Update(ctx, orgID, id, map[string]interface{}{"status": model.CampaignCancelled}); err != nil {
		return lookup(err, "Campaign not found")
	}
	return nil
}

// Assign creates a NEW order for a creator on the campaign
func (s *CampaignService) Assign(ctx context.Context, orgID, campaignID string, in AssignInput) (*model.Order, error) {
	if in.CreatorID == "" {
		return nil, apperror.BadRequest("Creator is required")
	}
	if _, err := s.campaigns.FindByID(ctx, orgID, campaignID); err != nil {
		return nil, lookup(err, "Campaign not found")
	}

	creator, err := s.users.FindByID(ctx, in.CreatorID)
	if err != nil {
		return nil, lookup(err, "Creator not found")
	}
	if creator.Role != model.RoleCreator {
		return nil, apperror.BadRequest("User is not a creator")
	}

	order := &model.Order{
		CampaignID: campaignID,
		CreatorID:  creator.ID,
		Status:     model.OrderNew,
		Notes:      in.Notes,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperror.Internal(err)
	}
	order.Creator = creator
	return order, nil
}

// UpdateOrder changes an order's status or notes
func (s *CampaignService) UpdateOrder(ctx context.Context, orgID, campaignID, orderID string, in UpdateOrderInput) (*model.Order, error) {
	order, err := s.findOrder(ctx, orgID, campaignID, orderID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Status != nil {
		if !model.ValidOrderStatus(*in.Status) {
			return nil, apperror.BadRequest("Invalid status")
		}
		fields["status"] = *in.Status
		if *in.Status == model.OrderCompleted {
			fields["completed_at"] = s.now()
		} else {
			fields["completed_at"] = nil
		}
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}

	if len(fields) > 0 {
		if err := s.orders.Update(ctx, order.ID, fields); err != nil {
			return nil, lookup(err, "Order not found")
		}
	}
	updated, err := s.orders.FindInCampaign(ctx, campaignID, orderID)
	if err != nil {
		return nil, lookup(err, "Order not found")
	}
	return updated, nil
}

// DeleteOrder removes an order that has no uploaded media
func (s *CampaignService) DeleteOrder(ctx context.Context, orgID, campaignID, orderID string) error {
	order, err := s.findOrder(ctx, orgID, campaignID, orderID)
	if err != nil {
		return err
	}
	count, err := s.orders.CountMedia(ctx, order.ID)
	if err != nil {
		return apperror.Internal(err)
	}
	if count > 0 {
		return apperror.BadRequest("Cannot delete order with uploaded media")
	}
	if err := s.orders.Delete(ctx, order.ID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *CampaignService) findOrder(ctx context.Context, orgID, campaignID, orderID string) (*model.Order, error) {
	if _, err := s.campaigns.FindByID(ctx, orgID, campaignID); err != nil {
		return nil, lookup(err, "Campaign not found")
	}
	order, err := s.orders.FindInCampaign(ctx, campaignID, orderID)
	if err != nil {
		return nil, lookup(err, "Order not found")
	}
	return order, nil
}
