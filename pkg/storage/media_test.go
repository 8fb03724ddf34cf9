package storage

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/mentorconnect/mentorconnect-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func newTestClient(t *testing.T) *MediaClient {
	t.Helper()
	client, err := NewMediaClient("key", "secret", "media", "https://storage.example.com", "us-east-1")
	require.NoError(t, err)
	return client
}

func TestValidateImageType(t *testing.T) {
	client := newTestClient(t)

	for _, contentType := range []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp", "IMAGE/PNG"} {
		assert.NoError(t, client.ValidateImageType(contentType), contentType)
	}

	for _, contentType := range []string{"image/svg+xml", "application/pdf", "text/html", ""} {
		assert.Error(t, client.ValidateImageType(contentType), contentType)
	}
}

func TestValidateImageSize_WithinLimit(t *testing.T) {
	client := newTestClient(t)

	data := base64.StdEncoding.EncodeToString(make([]byte, 1024))
	assert.NoError(t, client.ValidateImageSize(data))
}

func TestValidateImageSize_TooLarge(t *testing.T) {
	client := newTestClient(t)

	// 6MB payload is over the 5MB limit
	data := base64.StdEncoding.EncodeToString(make([]byte, 6*1024*1024))
	err := client.ValidateImageSize(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file too large")
}

func TestValidateImageSize_DataURI(t *testing.T) {
	client := newTestClient(t)

	data := "data:image/png;base64," + base64.StdEncoding.EncodeToString(make([]byte, 512))
	assert.NoError(t, client.ValidateImageSize(data))

	err := client.ValidateImageSize("data:image/png;base64")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid data URI")
}

func TestGenerateFileName(t *testing.T) {
	client := newTestClient(t)

	name := client.GenerateFileName("user-1", "photo.PNG")
	assert.True(t, strings.HasPrefix(name, "avatars/user-1/"))
	assert.True(t, strings.HasSuffix(name, ".png"))

	other := client.GenerateFileName("user-1", "photo.PNG")
	assert.NotEqual(t, name, other)
}
