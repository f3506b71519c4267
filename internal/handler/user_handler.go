package handler

import (
	"context"
	"net/http"

	"ugc-service/internal/middleware"
	"ugc-service/internal/model"
	"ugc-service/internal/service"
	"ugc-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserService is the part of service.UserService the user routes use
type UserService interface {
	UpdateProfile(ctx context.Context, actor *model.User, in service.UpdateProfileInput) (*model.User, error)
	SwitchRole(ctx context.Context, actor *model.User, in service.SwitchRoleInput) (*model.User, error)
}

// UserHandler serves /api/users
type UserHandler struct {
	users UserService
}

// NewUserHandler creates a UserHandler
func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// UpdateProfile patches the caller's profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req service.UpdateProfileInput
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), middleware.CurrentUser(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SwitchRole changes a user's global role
func (h *UserHandler) SwitchRole(c echo.Context) error {
	var req service.SwitchRoleInput
	if err := bind(c, &req); err != nil {
		return err
	}

	actor := middleware.CurrentUser(c)
	user, err := h.users.SwitchRole(c.Request().Context(), actor, req)
	if err != nil {
		return err
	}

	logger.FromContext(c).Info("Role switched",
		zap.String("actor_id", actor.ID),
		zap.String("user_id", user.ID),
		zap.String("role", user.Role))
	return c.JSON(http.StatusOK, echo.Map{"message": "Role updated successfully", "user": user})
}
