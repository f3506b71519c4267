package service

import (
	"context"
	"strings"
	"time"

	"ugc-service/internal/apperror"
	"ugc-service/internal/model"
	"ugc-service/internal/session"
	"ugc-service/pkg/jwtutil"
	"ugc-service/pkg/password"
)

const minPasswordLength = 6

// AuthResult is returned by sign-up and sign-in
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// SignUpInput is the sign-up request body
type SignUpInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// SignInInput is the sign-in request body
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthService issues and verifies sessions
type AuthService struct {
	users   UserStore
	orgs    OrganizationStore
	jwt     *jwtutil.JWTUtil
	revoker session.Revoker
}

// NewAuthService creates an AuthService
func NewAuthService(users UserStore, orgs OrganizationStore, jwt *jwtutil.JWTUtil, revoker session.Revoker) *AuthService {
	return &AuthService{users: users, orgs: orgs, jwt: jwt, revoker: revoker}
}

// TokenTTL is the lifetime of issued tokens
func (s *AuthService) TokenTTL() time.Duration {
	return s.jwt.TTL()
}

// SignUp creates a CLIENT account and returns a session for it
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	switch {
	case !validEmail(email):
		return nil, apperror.BadRequest("Invalid email")
	case len(in.Password) < minPasswordLength:
		return nil, apperror.BadRequest("Password must be at least 6 characters")
	case name == "":
		return nil, apperror.BadRequest("Name is required")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperror.BadRequest("User already exists")
	} else if !isNotFound(err) {
		return nil, apperror.Internal(err)
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &model.User{
		Email:    email,
		Password: hash,
		Name:     name,
		Role:     model.RoleClient,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}

	return s.issue(user)
}

// SignIn verifies credentials and returns a session
func (s *AuthService) SignIn(ctx context.Context, in SignInInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || len(in.Password) < minPasswordLength {
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.Unauthorized("Invalid credentials")
		}
		return nil, apperror.Internal(err)
	}

	if !password.Check(in.Password, user.Password) {
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.jwt.GenerateToken(user.ID, user.Email, user.EffectiveRole())
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Authenticate resolves the user behind a token
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, *jwtutil.UserClaims, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, nil, apperror.Unauthorized("Invalid token")
	}

	if claims.ID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, nil, apperror.Internal(err)
		}
		if revoked {
			return nil, nil, apperror.Unauthorized("Invalid token")
		}
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, apperror.Unauthorized("User not found")
		}
		return nil, nil, apperror.Internal(err)
	}
	return user, claims, nil
}

// SignOut revokes token until it expires. It reports whether this call revoked it;
// empty, invalid and already revoked tokens are ignored.
func (s *AuthService) SignOut(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	claims, err := s.jwt.ValidateToken(token)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		return false, nil
	}
	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	if revoked {
		return false, nil
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return false, apperror.Internal(err)
	}
	return true, nil
}

// DefaultOrganizationID returns the id of the user's first organization, or "" when none
func (s *AuthService) DefaultOrganizationID(ctx context.Context, userID string) (string, error) {
	member, err := s.orgs.FirstMembership(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return member.OrganizationID, nil
}
