package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/mentorconnect/mentorconnect-api/pkg/logger"
	"github.com/mentorconnect/mentorconnect-api/pkg/metrics"
	"go.uber.org/zap"
)

// MaxImageSize is the upload limit for profile and post images
const MaxImageSize = 5 * 1024 * 1024 // 5MB

// MediaClient represents an S3-compatible object storage client for
// user-uploaded media
type MediaClient struct {
	s3Client   *s3.Client
	bucketName string
	endpoint   string
}

// NewMediaClient creates a new media storage client using the S3 SDK
func NewMediaClient(accessKeyID, secretAccessKey, bucketName, endpoint, region string) (*MediaClient, error) {
	if endpoint == "" {
		endpoint = "https://storage.yandexcloud.net"
	}
	if region == "" {
		region = "ru-central1"
	}

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials: credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"", // session token not needed
		),
	})

	logger.Info("Media storage client initialized",
		zap.String("bucket", bucketName),
		zap.String("endpoint", endpoint),
		zap.String("region", region),
	)

	return &MediaClient{
		s3Client:   s3Client,
		bucketName: bucketName,
		endpoint:   endpoint,
	}, nil
}

// UploadImage uploads a base64-encoded image and returns its public URL and
// object key. Failures are returned, never panicked, so callers can surface
// a user-facing error string.
func (s *MediaClient) UploadImage(ctx context.Context, imageData, key, contentType string) (string, string, error) {
	start := time.Now()
	operation := "uploadImage"

	imageBytes, err := decodeImageData(imageData)
	if err != nil {
		metrics.MediaStorageRequestDuration.WithLabelValues(operation, "error").Observe(metrics.MeasureDuration(start))
		metrics.MediaStorageRequestTotal.WithLabelValues(operation, "error").Inc()
		return "", "", fmt.Errorf("failed to decode base64 image: %w", err)
	}

	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageBytes),
		ContentType: aws.String(contentType),
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.MediaStorageRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.MediaStorageRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall("media_storage", operation, "error", duration,
			zap.Error(err),
			zap.String("key", key),
		)
		return "", "", fmt.Errorf("failed to upload image: %w", err)
	}

	metrics.MediaStorageRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.MediaStorageRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall("media_storage", operation, "success", duration,
		zap.String("key", key),
		zap.Int("size_bytes", len(imageBytes)),
	)

	// Public URL format: {endpoint}/{bucket}/{key}
	imageURL := fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucketName, key)

	return imageURL, key, nil
}

// GenerateFileName builds a unique object key for an upload, preserving the
// original file extension
func (s *MediaClient) GenerateFileName(ownerID, originalFileName string) string {
	ext := strings.ToLower(filepath.Ext(originalFileName))
	return fmt.Sprintf("avatars/%s/%s%s", ownerID, uuid.NewString(), ext)
}

// ValidateImageType validates the image content type
func (s *MediaClient) ValidateImageType(contentType string) error {
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}

	if !validTypes[strings.ToLower(contentType)] {
		return fmt.Errorf("invalid file type: %s. Allowed types: jpeg, jpg, png, gif, webp", contentType)
	}

	return nil
}

// ValidateImageSize validates the decoded image size against MaxImageSize
func (s *MediaClient) ValidateImageSize(imageData string) error {
	imageBytes, err := decodeImageData(imageData)
	if err != nil {
		return fmt.Errorf("failed to decode image for size validation: %w", err)
	}

	if len(imageBytes) > MaxImageSize {
		return fmt.Errorf("file too large: %d bytes (max %d bytes)", len(imageBytes), MaxImageSize)
	}

	return nil
}

// decodeImageData decodes raw base64 or a data URI (data:image/png;base64,...)
func decodeImageData(imageData string) ([]byte, error) {
	if strings.HasPrefix(imageData, "data:") {
		parts := strings.SplitN(imageData, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid data URI format")
		}
		return base64.StdEncoding.DecodeString(parts[1])
	}
	return base64.StdEncoding.DecodeString(imageData)
}
