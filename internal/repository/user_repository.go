package repository

import (
	"context"
	"time"

	"ugc-service/internal/model"
	"ugc-service/prometheus"

	"gorm.io/gorm"
)

// UserRepository persists users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a UserRepository over db
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID loads a user by id
func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// FindByEmail loads a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// Create inserts a user
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return r.db.WithContext(ctx).Create(user).Error
}

// Update applies the given column changes to a user
func (r *UserRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user together with their memberships, messages and uploads.
// It returns ErrInUse when the user created campaigns.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var campaigns int64
		if err := tx.Model(&model.Campaign{}).Where("created_by_id = ?", id).Count(&campaigns).Error; err != nil {
			return err
		}
		if campaigns > 0 {
			return ErrInUse
		}

		if err := tx.Where("user_id = ?", id).Delete(&model.OrganizationMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sender_id = ?", id).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("uploaded_by = ?", id).Delete(&model.Media{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&model.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// WithoutPassword lists users that have no stored password hash
func (r *UserRepository) WithoutPassword(ctx context.Context) ([]model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var users []model.User
	err := r.db.WithContext(ctx).Where("password IS NULL OR password = ''").Find(&users).Error
	return users, err
}

// CreatorListItem is a creator row with its order count
type CreatorListItem struct {
	model.User
	CompletedOrders int64 `json:"completedOrders"`
}

// ListCreators lists users with the CREATOR role, optionally filtered by name, email or bio
func (r *UserRepository) ListCreators(ctx context.Context, search string, page Page) ([]CreatorListItem, int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	query := r.db.WithContext(ctx).Model(&model.User{}).Where("role = ?", model.RoleCreator)
	if search != "" {
		pattern := likePattern(search)
		query = query.Where("(name ILIKE ? OR email ILIKE ? OR bio ILIKE ?)", pattern, pattern, pattern)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var creators []CreatorListItem
	err := query.
		Select("users.*, (SELECT COUNT(*) FROM orders WHERE orders.creator_id = users.id) AS completed_orders").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Scan(&creators).Error
	if err != nil {
		return nil, 0, err
	}
	return creators, total, nil
}
