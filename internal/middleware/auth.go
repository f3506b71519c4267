package middleware

import (
	"context"
	"net/http"
	"strings"

	"ugc-service/internal/apperror"
	"ugc-service/internal/model"
	"ugc-service/pkg/jwtutil"
	"ugc-service/pkg/logger"
	"ugc-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SessionCookie carries the token for browser clients
const SessionCookie = "ugc_session"

// OrganizationHeader selects the organization a request acts on
const OrganizationHeader = "X-Organization-ID"

// Authenticator resolves tokens to users
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, *jwtutil.UserClaims, error)
	DefaultOrganizationID(ctx context.Context, userID string) (string, error)
}

// MembershipChecker looks up a user's membership in an organization
type MembershipChecker interface {
	Membership(ctx context.Context, orgID, userID string) (*model.OrganizationMember, error)
}

func errorJSON(c echo.Context, code int, message string) error {
	return c.JSON(code, map[string]string{"error": message})
}

// TokenFromRequest returns the bearer token, falling back to the session cookie
func TokenFromRequest(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// Auth rejects requests without a valid token and stores the user and claims on the context
func Auth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			token := TokenFromRequest(c)
			if token == "" {
				prometheus.RecordAuthError("missing_token")
				log.Warn("Missing authorization token")
				return errorJSON(c, http.StatusUnauthorized, "No token provided")
			}

			ctx := c.Request().Context()
			user, claims, err := auth.Authenticate(ctx, token)
			if err != nil {
				appErr, ok := apperror.As(err)
				if !ok || appErr.Code >= http.StatusInternalServerError {
					log.Error("Failed to authenticate token", zap.Error(err))
					return err
				}
				prometheus.RecordAuthError(authErrorType(appErr.Message))
				log.Warn("Rejected token", zap.String("reason", appErr.Message))
				return errorJSON(c, appErr.Code, appErr.Message)
			}

			c.Set(UserKey, user)
			c.Set(ClaimsKey, claims)

			orgID, err := auth.DefaultOrganizationID(ctx, user.ID)
			if err != nil {
				log.Warn("Failed to resolve default organization", zap.String("user_id", user.ID), zap.Error(err))
			} else if orgID != "" {
				c.Set(OrganizationIDKey, orgID)
			}

			log.Debug("Token validated",
				zap.String("user_id", user.ID),
				zap.String("role", user.EffectiveRole()))

			return next(c)
		}
	}
}

func authErrorType(message string) string {
	if message == "User not found" {
		return "user_not_found"
	}
	return "invalid_token"
}

// RequireRoles allows only users whose global role is in roles
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return errorJSON(c, http.StatusUnauthorized, "Unauthorized")
			}
			if !allowed[user.EffectiveRole()] {
				logger.FromContext(c).Warn("Role not allowed",
					zap.String("user_id", user.ID),
					zap.String("role", user.EffectiveRole()))
				return errorJSON(c, http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}

// RequireOrganization scopes the request to the organization named in the
// X-Organization-ID header, which the user must be a member of
func RequireOrganization(members MembershipChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return errorJSON(c, http.StatusUnauthorized, "Unauthorized")
			}

			orgID := strings.TrimSpace(c.Request().Header.Get(OrganizationHeader))
			if orgID == "" {
				prometheus.RecordOrganizationDenied("missing_header")
				return errorJSON(c, http.StatusBadRequest, "Organization ID required")
			}

			member, err := members.Membership(c.Request().Context(), orgID, user.ID)
			if err != nil {
				appErr, ok := apperror.As(err)
				if !ok || appErr.Code >= http.StatusInternalServerError {
					return err
				}
				prometheus.RecordOrganizationDenied("not_member")
				logger.FromContext(c).Warn("Organization access denied",
					zap.String("user_id", user.ID),
					zap.String("organization_id", orgID))
				return errorJSON(c, appErr.Code, appErr.Message)
			}

			c.Set(OrganizationIDKey, orgID)
			c.Set(OrganizationRoleKey, member.Role)
			if member.Organization != nil {
				c.Set(OrganizationKey, member.Organization)
			}
			return next(c)
		}
	}
}
