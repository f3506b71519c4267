package service

import (
	"context"
	"errors"
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"ugc-service/internal/apperror"
	"ugc-service/internal/repository"

	"go.uber.org/zap"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func validURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// lookup maps repository.ErrNotFound to a 404 with message and wraps anything else as internal
func lookup(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound(message)
	}
	return apperror.Internal(err)
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

// touch bumps a campaign's updatedAt after a message was stored. A failure is
// logged and swallowed since the message itself is already saved.
func touch(ctx context.Context, campaigns CampaignStore, campaignID string) {
	if err := campaigns.Touch(ctx, campaignID); err != nil {
		zap.L().Warn("Failed to touch campaign", zap.String("campaign_id", campaignID), zap.Error(err))
	}
}
