package middleware

import (
	"ugc-service/internal/model"
	"ugc-service/pkg/jwtutil"

	"github.com/labstack/echo/v4"
)

// Context keys set by the auth and organization middlewares
const (
	UserKey             = "user"
	ClaimsKey           = "claims"
	OrganizationIDKey   = "organizationId"
	OrganizationKey     = "organization"
	OrganizationRoleKey = "organizationRole"
)

// CurrentUser returns the authenticated user, or nil outside the auth middleware
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(UserKey).(*model.User)
	return user
}

// CurrentClaims returns the verified token claims
func CurrentClaims(c echo.Context) *jwtutil.UserClaims {
	claims, _ := c.Get(ClaimsKey).(*jwtutil.UserClaims)
	return claims
}

// OrganizationID returns the organization id the request is scoped to.
// Behind RequireOrganization it is the header organization; otherwise it may be
// the user's first organization or empty.
func OrganizationID(c echo.Context) string {
	id, _ := c.Get(OrganizationIDKey).(string)
	return id
}

// CurrentOrganization returns the organization loaded by RequireOrganization
func CurrentOrganization(c echo.Context) *model.Organization {
	org, _ := c.Get(OrganizationKey).(*model.Organization)
	return org
}

// OrganizationRole returns the caller's role within the request organization
func OrganizationRole(c echo.Context) string {
	role, _ := c.Get(OrganizationRoleKey).(string)
	return role
}
