// Package storage issues upload targets for campaign media.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Storage generates upload URLs and public object URLs for media files
type Storage interface {
	// PresignUpload returns a URL the client can PUT the file to
	PresignUpload(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, error)
	// ObjectURL returns the URL the stored object is served from
	ObjectURL(key string) string
	// Remove deletes a stored object
	Remove(ctx context.Context, key string) error
}

// ObjectKey builds the storage key for a campaign upload
func ObjectKey(campaignID, filename string) string {
	name := strings.TrimSpace(path.Base("/" + filename))
	if name == "" || name == "/" || name == "." {
		name = "file"
	}
	return fmt.Sprintf("campaigns/%s/%s-%s", campaignID, uuid.NewString(), name)
}

// StaticStorage produces placeholder URLs when no object store is configured
type StaticStorage struct {
	baseURL string
}

// NewStaticStorage creates a StaticStorage rooted at baseURL
func NewStaticStorage(baseURL string) *StaticStorage {
	return &StaticStorage{baseURL: strings.TrimRight(baseURL, "/")}
}

// PresignUpload returns a placeholder upload URL carrying a one-off token
func (s *StaticStorage) PresignUpload(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, error) {
	q := url.Values{}
	q.Set("token", uuid.NewString())
	q.Set("expires", time.Now().Add(expiresIn).UTC().Format(time.RFC3339))
	return fmt.Sprintf("%s/upload/%s?%s", s.baseURL, key, q.Encode()), nil
}

// ObjectURL returns the placeholder URL of key
func (s *StaticStorage) ObjectURL(key string) string {
	return s.baseURL + "/" + key
}

// Remove is a no-op
func (s *StaticStorage) Remove(ctx context.Context, key string) error {
	return nil
}
