package handler

import (
	"context"
	"net/http"
	"time"

	"ugc-service/internal/middleware"
	"ugc-service/internal/service"
	"ugc-service/pkg/logger"
	"ugc-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthService is the part of service.AuthService the auth routes use
type AuthService interface {
	SignUp(ctx context.Context, in service.SignUpInput) (*service.AuthResult, error)
	SignIn(ctx context.Context, in service.SignInInput) (*service.AuthResult, error)
	SignOut(ctx context.Context, token string) (bool, error)
	TokenTTL() time.Duration
}

// AuthHandler serves /api/auth
type AuthHandler struct {
	auth         AuthService
	secureCookie bool
}

// NewAuthHandler creates an AuthHandler. secureCookie marks the session cookie Secure.
func NewAuthHandler(auth AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookie: secureCookie}
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

// SignUp registers a new CLIENT account
func (h *AuthHandler) SignUp(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req service.SignUpInput
	if err := bind(c, &req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return err
	}

	result, err := h.auth.SignUp(c.Request().Context(), req)
	if err != nil {
		prometheus.RecordAuthError("sign_up_failed")
		return err
	}

	prometheus.IncreaseActiveTokens()
	log.Info("User signed up", zap.String("user_id", result.User.ID))
	return c.JSON(http.StatusCreated, result)
}

// SignIn verifies credentials, returns a token and sets the session cookie
func (h *AuthHandler) SignIn(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req service.SignInInput
	if err := bind(c, &req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return err
	}

	result, err := h.auth.SignIn(c.Request().Context(), req)
	if err != nil {
		prometheus.RecordAuthError("invalid_credentials")
		log.Warn("Sign-in rejected", zap.String("email", req.Email))
		return err
	}

	c.SetCookie(h.sessionCookie(result.Token, int(h.auth.TokenTTL().Seconds())))
	prometheus.IncreaseActiveTokens()

	log.Info("User signed in", zap.String("user_id", result.User.ID))
	return c.JSON(http.StatusOK, result)
}

// Me returns the authenticated user and their default organization
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user":           middleware.CurrentUser(c),
		"organizationId": middleware.OrganizationID(c),
	})
}

// SignOut revokes the presented token and clears the session cookie
func (h *AuthHandler) SignOut(c echo.Context) error {
	log := logger.FromContext(c)

	token := middleware.TokenFromRequest(c)
	revoked, err := h.auth.SignOut(c.Request().Context(), token)
	if err != nil {
		log.Error("Failed to revoke token", zap.Error(err))
		return err
	}
	if revoked {
		prometheus.DecreaseActiveTokens()
	}

	c.SetCookie(h.sessionCookie("", -1))
	return success(c)
}
