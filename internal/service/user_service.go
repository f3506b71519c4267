package service

import (
	"context"
	"strings"

	"ugc-service/internal/apperror"
	"ugc-service/internal/model"
)

// UpdateProfileInput is the profile patch body
type UpdateProfileInput struct {
	Name  *string `json:"name"`
	Bio   *string `json:"bio"`
	Phone *string `json:"phone"`
	Role  *string `json:"role"`
}

// SwitchRoleInput is the role switch body
type SwitchRoleInput struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// UserService manages the caller's own account
type UserService struct {
	users         UserStore
	allowSelfRole bool
}

// NewUserService creates a UserService. allowSelfRole lets non-admins switch their own
// role, which only demo deployments enable.
func NewUserService(users UserStore, allowSelfRole bool) *UserService {
	return &UserService{users: users, allowSelfRole: allowSelfRole}
}

// UpdateProfile edits the actor's profile. A role change is applied for ADMIN callers only.
func (s *UserService) UpdateProfile(ctx context.Context, actor *model.User, in UpdateProfileInput) (*model.User, error) {
	fields := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperror.BadRequest("Name is required")
		}
		fields["name"] = name
	}
	if in.Bio != nil {
		fields["bio"] = *in.Bio
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.Role != nil && actor.EffectiveRole() == model.RoleAdmin {
		if !model.ValidRole(*in.Role) {
			return nil, apperror.BadRequest("Invalid role")
		}
		fields["role"] = *in.Role
	}

	if len(fields) > 0 {
		if err := s.users.Update(ctx, actor.ID, fields); err != nil {
			return nil, lookup(err, "User not found")
		}
	}
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, lookup(err, "User not found")
	}
	return user, nil
}

// SwitchRole changes a user's global role
func (s *UserService) SwitchRole(ctx context.Context, actor *model.User, in SwitchRoleInput) (*model.User, error) {
	if !model.ValidRole(in.Role) {
		return nil, apperror.BadRequest("Invalid role")
	}
	target := in.UserID
	if target == "" {
		target = actor.ID
	}

	isAdmin := actor.EffectiveRole() == model.RoleAdmin
	if !isAdmin && !(s.allowSelfRole && target == actor.ID) {
		return nil, apperror.Forbidden("Insufficient permissions")
	}

	if err := s.users.Update(ctx, target, map[string]interface{}{"role": in.Role}); err != nil {
		return nil, lookup(err, "User not found")
	}
	user, err := s.users.FindByID(ctx, target)
	if err != nil {
		return nil, lookup(err, "User not found")
	}
	return user, nil
}
