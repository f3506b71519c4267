package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		suffix   string
	}{
		{name: "plain name", filename: "clip.mp4", suffix: "-clip.mp4"},
		{name: "path is stripped", filename: "../../etc/passwd", suffix: "-passwd"},
		{name: "empty falls back", filename: "", suffix: "-file"},
		{name: "whitespace falls back", filename: "   ", suffix: "-file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := ObjectKey("camp-1", tt.filename)
			assert.True(t, strings.HasPrefix(key, "campaigns/camp-1/"), key)
			assert.True(t, strings.HasSuffix(key, tt.suffix), key)
			assert.Equal(t, 2, strings.Count(key, "/"), key)
		})
	}

	assert.NotEqual(t, ObjectKey("camp-1", "a.png"), ObjectKey("camp-1", "a.png"))
}

func TestStaticStorage(t *testing.T) {
	s := NewStaticStorage("https://storage.example.com/")

	assert.Equal(t, "https://storage.example.com/campaigns/c/k.png", s.ObjectURL("campaigns/c/k.png"))

	raw, err := s.PresignUpload(context.Background(), "campaigns/c/k.png", "image/png", 15*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "storage.example.com", u.Host)
	assert.Equal(t, "/upload/campaigns/c/k.png", u.Path)
	assert.NotEmpty(t, u.Query().Get("token"))

	expires, err := time.Parse(time.RFC3339, u.Query().Get("expires"))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expires, time.Minute)

	assert.NoError(t, s.Remove(context.Background(), "campaigns/c/k.png"))
}

func newTestMinio(t *testing.T, useSSL bool) *MinioStorage {
	t.Helper()
	client, err := minio.New("minio.local:9000", &minio.Options{
		Creds:  credentials.NewStaticV4("access", "secret", ""),
		Secure: useSSL,
		Region: "us-east-1",
	})
	require.NoError(t, err)
	return &MinioStorage{client: client, bucket: "media", useSSL: useSSL}
}

func TestMinioObjectURL(t *testing.T) {
	assert.Equal(t, "http://minio.local:9000/media/campaigns/c/k.png", newTestMinio(t, false).ObjectURL("campaigns/c/k.png"))
	assert.Equal(t, "https://minio.local:9000/media/campaigns/c/k.png", newTestMinio(t, true).ObjectURL("campaigns/c/k.png"))
}

func TestMinioPresignUpload(t *testing.T) {
	s := newTestMinio(t, false)

	raw, err := s.PresignUpload(context.Background(), "campaigns/c/k.png", "image/png", 10*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "minio.local:9000", u.Host)
	assert.Equal(t, "/media/campaigns/c/k.png", u.Path)
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}
