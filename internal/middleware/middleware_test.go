package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ugc-service/internal/apperror"
	"ugc-service/internal/model"
	"ugc-service/pkg/jwtutil"
	"ugc-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, token string) (*model.User, *jwtutil.UserClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.User), args.Get(1).(*jwtutil.UserClaims), args.Error(2)
}

func (m *MockAuthenticator) DefaultOrganizationID(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

type MockMembershipChecker struct {
	mock.Mock
}

func (m *MockMembershipChecker) Membership(ctx context.Context, orgID, userID string) (*model.OrganizationMember, error) {
	args := m.Called(ctx, orgID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrganizationMember), args.Error(1)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestAuth(t *testing.T) {
	user := &model.User{ID: "u1", Email: "a@b.com", Role: model.RoleAdmin}
	claims := &jwtutil.UserClaims{UserID: "u1", Email: "a@b.com", Role: model.RoleAdmin}

	newServer := func(auth Authenticator) *echo.Echo {
		e := echo.New()
		e.GET("/me", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]string{
				"user":  CurrentUser(c).ID,
				"org":   OrganizationID(c),
				"email": CurrentClaims(c).Email,
			})
		}, Auth(auth))
		return e
	}

	t.Run("missing token", func(t *testing.T) {
		auth := new(MockAuthenticator)
		rec := httptest.NewRecorder()
		newServer(auth).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "No token provided", decodeError(t, rec))
		auth.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("non bearer scheme", func(t *testing.T) {
		auth := new(MockAuthenticator)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Basic abc")
		rec := httptest.NewRecorder()
		newServer(auth).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "No token provided", decodeError(t, rec))
	})

	t.Run("invalid token", func(t *testing.T) {
		auth := new(MockAuthenticator)
		auth.On("Authenticate", mock.Anything, "bad").Return(nil, nil, apperror.Unauthorized("Invalid token"))

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer bad")
		rec := httptest.NewRecorder()
		newServer(auth).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid token", decodeError(t, rec))
	})

	t.Run("user not found", func(t *testing.T) {
		auth := new(MockAuthenticator)
		auth.On("Authenticate", mock.Anything, "tok").Return(nil, nil, apperror.Unauthorized("User not found"))

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
		rec := httptest.NewRecorder()
		newServer(auth).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "User not found", decodeError(t, rec))
	})

	t.Run("bearer token sets user and default organization", func(t *testing.T) {
		auth := new(MockAuthenticator)
		auth.On("Authenticate", mock.Anything, "tok").Return(user, claims, nil)
		auth.On("DefaultOrganizationID", mock.Anything, "u1").Return("org-1", nil)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
		rec := httptest.NewRecorder()
		newServer(auth).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "u1", body["user"])
		assert.Equal(t, "org-1", body["org"])
		assert.Equal(t, "a@b.com", body["email"])
		auth.AssertExpectations(t)
	})

	t.Run("session cookie is accepted", func(t *testing.T) {
		auth := new(MockAuthenticator)
		auth.On("Authenticate", mock.Anything, "cookie-tok").Return(user, claims, nil)
		auth.On("DefaultOrganizationID", mock.Anything, "u1").Return("", nil)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-tok"})
		rec := httptest.NewRecorder()
		newServer(auth).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		auth.AssertExpectations(t)
	})

	t.Run("organization lookup failure does not block", func(t *testing.T) {
		auth := new(MockAuthenticator)
		auth.On("Authenticate", mock.Anything, "tok").Return(user, claims, nil)
		auth.On("DefaultOrganizationID", mock.Anything, "u1").Return("", errors.New("db down"))

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
		rec := httptest.NewRecorder()
		newServer(auth).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unexpected error goes to the error handler", func(t *testing.T) {
		auth := new(MockAuthenticator)
		auth.On("Authenticate", mock.Anything, "tok").Return(nil, nil, apperror.Internal(errors.New("redis down")))

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
		rec := httptest.NewRecorder()
		newServer(auth).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func withUser(user *model.User) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if user != nil {
				c.Set(UserKey, user)
			}
			return next(c)
		}
	}
}

func TestRequireRoles(t *testing.T) {
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

	tests := []struct {
		name    string
		user    *model.User
		code    int
		message string
	}{
		{name: "no user", user: nil, code: http.StatusUnauthorized, message: "Unauthorized"},
		{name: "allowed role", user: &model.User{ID: "u1", Role: model.RoleStaff}, code: http.StatusNoContent},
		{name: "denied role", user: &model.User{ID: "u1", Role: model.RoleCreator}, code: http.StatusForbidden, message: "Insufficient permissions"},
		{name: "empty role counts as client", user: &model.User{ID: "u1"}, code: http.StatusForbidden, message: "Insufficient permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.GET("/", ok, withUser(tt.user), RequireRoles(model.RoleAdmin, model.RoleStaff))
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.code, rec.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, decodeError(t, rec))
			}
		})
	}

	t.Run("client allowed when listed", func(t *testing.T) {
		e := echo.New()
		e.GET("/", ok, withUser(&model.User{ID: "u1"}), RequireRoles(model.RoleClient))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestRequireOrganization(t *testing.T) {
	user := &model.User{ID: "u1", Role: model.RoleStaff}
	org := &model.Organization{ID: "org-1", Name: "Acme", Slug: "acme"}

	newServer := func(members MembershipChecker, u *model.User) *echo.Echo {
		e := echo.New()
		e.GET("/scoped", func(c echo.Context) error {
			name := ""
			if o := CurrentOrganization(c); o != nil {
				name = o.Name
			}
			return c.JSON(http.StatusOK, map[string]string{
				"org":  OrganizationID(c),
				"role": OrganizationRole(c),
				"name": name,
			})
		}, withUser(u), RequireOrganization(members))
		return e
	}

	t.Run("no user", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newServer(new(MockMembershipChecker), nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scoped", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		members := new(MockMembershipChecker)
		rec := httptest.NewRecorder()
		newServer(members, user).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scoped", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Organization ID required", decodeError(t, rec))
		members.AssertNotCalled(t, "Membership", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not a member", func(t *testing.T) {
		members := new(MockMembershipChecker)
		members.On("Membership", mock.Anything, "org-2", "u1").Return(nil, apperror.Forbidden("Not a member of this organization"))

		req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
		req.Header.Set(OrganizationHeader, "org-2")
		rec := httptest.NewRecorder()
		newServer(members, user).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Not a member of this organization", decodeError(t, rec))
	})

	t.Run("member gets organization context", func(t *testing.T) {
		members := new(MockMembershipChecker)
		members.On("Membership", mock.Anything, "org-1", "u1").Return(&model.OrganizationMember{
			OrganizationID: "org-1", UserID: "u1", Role: model.MemberAdmin, Organization: org,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
		req.Header.Set(OrganizationHeader, "org-1")
		rec := httptest.NewRecorder()
		newServer(members, user).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "org-1", body["org"])
		assert.Equal(t, model.MemberAdmin, body["role"])
		assert.Equal(t, "Acme", body["name"])
	})
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Request().Header.Get(logger.RequestIDKey))
	})

	t.Run("keeps incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(logger.RequestIDKey, "abc")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "abc", rec.Header().Get(logger.RequestIDKey))
		assert.Equal(t, "abc", rec.Body.String())
	})

	t.Run("generates id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(logger.RequestIDKey)
		assert.Len(t, id, 36)
		assert.Equal(t, id, rec.Body.String())
	})
}
