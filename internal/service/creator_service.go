package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"ugc-service/internal/apperror"
	"ugc-service/internal/model"
	"ugc-service/internal/repository"
	"ugc-service/pkg/password"

	"github.com/google/uuid"
)

// Orders a creator is still working on
var activeOrderStatuses = []string{model.OrderNew, model.OrderInProgress, model.OrderSubmitted}

// CreateCreatorInput is the creator creation body
type CreateCreatorInput struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Bio          string   `json:"bio"`
	PortfolioURL string   `json:"portfolioUrl"`
	SocialMedia  string   `json:"socialMedia"`
	Rates        *float64 `json:"rates"`
}

// UpdateCreatorInput is the creator patch body
type UpdateCreatorInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Bio   *string `json:"bio"`
}

// CreatorProfile is a creator as listed to staff
type CreatorProfile struct {
	repository.CreatorListItem
	Skills    []string           `json:"skills"`
	Portfolio []string           `json:"portfolio"`
	Rates     map[string]float64 `json:"rates"`
	Status    string             `json:"status"`
}

// CreatorDetail is a creator with their recent work
type CreatorDetail struct {
	*model.User
	Orders          []model.Order `json:"orders"`
	CompletedOrders int64         `json:"completedOrders"`
	ActiveOrders    int64         `json:"activeOrders"`
}

// CreatorAvailability describes a creator's capacity
type CreatorAvailability struct {
	CreatorID    string              `json:"creatorId"`
	Available    bool                `json:"available"`
	MaxOrders    int                 `json:"maxOrders"`
	ActiveOrders []model.Order       `json:"activeOrders"`
	Schedule     map[string][]string `json:"schedule"`
}

// CreatorStats aggregates a creator's activity over a period
type CreatorStats struct {
	Period        string                   `json:"period"`
	Since         time.Time                `json:"since"`
	Orders        []repository.StatusCount `json:"orders"`
	Media         []repository.StatusCount `json:"media"`
	TotalEarnings float64                  `json:"totalEarnings"`
}

const maxConcurrentOrders = 5

// CreatorService manages creator accounts
type CreatorService struct {
	users  UserStore
	orders OrderStore
	media  MediaStore
	now    func() time.Time
}

// NewCreatorService creates a CreatorService
func NewCreatorService(users UserStore, orders OrderStore, media MediaStore) *CreatorService {
	return &CreatorService{users: users, orders: orders, media: media, now: time.Now}
}

// List returns one page of creators
func (s *CreatorService) List(ctx context.Context, search string, page repository.Page) ([]CreatorProfile, repository.Pagination, error) {
	items, total, err := s.users.ListCreators(ctx, search, page)
	if err != nil {
		return nil, repository.Pagination{}, apperror.Internal(err)
	}
	profiles := make([]CreatorProfile, 0, len(items))
	for _, item := range items {
		profiles = append(profiles, CreatorProfile{
			CreatorListItem: item,
			Skills:          []string{},
			Portfolio:       []string{},
			Rates:           map[string]float64{},
			Status:          "ACTIVE",
		})
	}
	return profiles, page.Meta(total), nil
}

// Create registers a creator account with a random temporary password
func (s *CreatorService) Create(ctx context.Context, in CreateCreatorInput) (*model.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	switch {
	case name == "":
		return nil, apperror.BadRequest("Name is required")
	case !validEmail(email):
		return nil, apperror.BadRequest("Invalid email")
	case in.PortfolioURL != "" && !validURL(in.PortfolioURL):
		return nil, apperror.BadRequest("Invalid portfolio URL")
	case in.Rates != nil && *in.Rates < 0:
		return nil, apperror.BadRequest("Rates must not be negative")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperror.BadRequest("User with this email already exists")
	} else if !isNotFound(err) {
		return nil, apperror.Internal(err)
	}

	hash, err := password.Hash(uuid.NewString())
	if err != nil {
		return nil, apperror.Internal(err)
	}

	creator := &model.User{
		Email:    email,
		Name:     name,
		Phone:    in.Phone,
		Bio:      in.Bio,
		Password: hash,
		Role:     model.RoleCreator,
	}
	if err := s.users.Create(ctx, creator); err != nil {
		return nil, apperror.Internal(err)
	}
	return creator, nil
}

func (s *CreatorService) find(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Creator not found")
	}
	if user.Role != model.RoleCreator {
		return nil, apperror.NotFound("Creator not found")
	}
	return user, nil
}

// Get returns a creator with recent orders and order totals
func (s *CreatorService) Get(ctx context.Context, id string) (*CreatorDetail, error) {
	creator, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.RecentByCreator(ctx, id, 10)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	completed, err := s.orders.CountByCreator(ctx, id, model.OrderCompleted)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	active, err := s.orders.CountByCreator(ctx, id, activeOrderStatuses...)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return &CreatorDetail{User: creator, Orders: orders, CompletedOrders: completed, ActiveOrders: active}, nil
}

// Update edits a creator's profile; only the creator or staff may do so
func (s *CreatorService) Update(ctx context.Context, actor *model.User, id string, in UpdateCreatorInput) (*model.User, error) {
	role := actor.EffectiveRole()
	if actor.ID != id && role != model.RoleAdmin && role != model.RoleStaff {
		return nil, apperror.Forbidden("Insufficient permissions")
	}
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperror.BadRequest("Name is required")
		}
		fields["name"] = name
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.Bio != nil {
		fields["bio"] = *in.Bio
	}
	if len(fields) > 0 {
		if err := s.users.Update(ctx, id, fields); err != nil {
			return nil, lookup(err, "Creator not found")
		}
	}
	return s.find(ctx, id)
}

// Availability reports whether the creator can take another order
func (s *CreatorService) Availability(ctx context.Context, id string) (*CreatorAvailability, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	active, err := s.orders.ActiveByCreator(ctx, id, []string{model.OrderNew, model.OrderInProgress})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if active == nil {
		active = []model.Order{}
	}
	workday := []string{"09:00-17:00"}
	return &CreatorAvailability{
		CreatorID:    id,
		Available:    len(active) < maxConcurrentOrders,
		MaxOrders:    maxConcurrentOrders,
		ActiveOrders: active,
		Schedule: map[string][]string{
			"monday":    workday,
			"tuesday":   workday,
			"wednesday": workday,
			"thursday":  workday,
			"friday":    workday,
			"saturday":  {},
			"sunday":    {},
		},
	}, nil
}

// periodDays maps the accepted stats periods to their length
var periodDays = map[string]int{"7d": 7, "30d": 30, "90d": 90}

// Stats groups the creator's orders and uploads since the start of period
func (s *CreatorService) Stats(ctx context.Context, id, period string) (*CreatorStats, error) {
	if period == "" {
		period = "30d"
	}
	days, ok := periodDays[period]
	if !ok {
		return nil, apperror.BadRequest("Invalid period")
	}
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	since := s.now().AddDate(0, 0, -days)
	orders, err := s.orders.StatusCountsByCreator(ctx, id, since)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	media, err := s.media.StatusCountsByUploader(ctx, id, since)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if orders == nil {
		orders = []repository.StatusCount{}
	}
	if media == nil {
		media = []repository.StatusCount{}
	}
	return &CreatorStats{Period: period, Since: since, Orders: orders, Media: media}, nil
}

// Delete removes a creator who has never been assigned an order
func (s *CreatorService) Delete(ctx context.Context, id string) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	count, err := s.orders.CountByCreator(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if count > 0 {
		return apperror.BadRequest("Cannot delete creator with existing orders. Archive them instead.")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInUse) {
			return apperror.BadRequest("Cannot delete creator who created campaigns")
		}
		return lookup(err, "Creator not found")
	}
	return nil
}
