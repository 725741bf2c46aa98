package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"lendingleads_backend/platform/apperr"
)

// PresignedURLTTL is the expiration time for presigned download URLs.
const PresignedURLTTL = 15 * time.Minute

// MinIOService implements Service using MinIO.
type MinIOService struct {
	client      *minio.Client
	bucket      string
	maxFileSize int64
}

// NewMinIOService creates a new MinIO storage service.
func NewMinIOService(cfg Config) (*MinIOService, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MinIO is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &MinIOService{
		client:      client,
		bucket:      cfg.GetMinioBucketLeadDocuments(),
		maxFileSize: cfg.GetMinIOMaxFileSize(),
	}, nil
}

// Compile-time check that MinIOService implements Service.
var _ Service = (*MinIOService)(nil)

// EnsureBucketExists creates the documents bucket if it doesn't exist.
func (s *MinIOService) EnsureBucketExists(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
	}

	return nil
}

// UploadLeadDocument validates and stores a document under
// leads/{leadID}/{documentType}/. A short UUID suffix prevents overwrites
// when the same filename is uploaded twice.
func (s *MinIOService) UploadLeadDocument(ctx context.Context, leadID uuid.UUID, documentType, filename, contentType string, size int64, content io.Reader) (string, error) {
	if err := validateContentType(contentType); err != nil {
		return "", err
	}
	if err := validateFileSize(size, s.maxFileSize); err != nil {
		return "", err
	}

	ext := path.Ext(filename)
	baseName := strings.TrimSuffix(path.Base(filename), ext)
	fileKey := fmt.Sprintf("leads/%s/%s/%s_%s%s", leadID, documentType, baseName, uuid.New().String()[:8], ext)

	_, err := s.client.PutObject(ctx, s.bucket, fileKey, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload document %s: %w", fileKey, err)
	}
	return fileKey, nil
}

// GenerateDownloadURL creates a presigned URL for downloading a document.
func (s *MinIOService) GenerateDownloadURL(ctx context.Context, fileKey string) (*PresignedURL, error) {
	expiresAt := time.Now().Add(PresignedURLTTL)

	presignedURL, err := s.client.PresignedGetObject(ctx, s.bucket, fileKey, PresignedURLTTL, make(url.Values))
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	return &PresignedURL{
		URL:       presignedURL.String(),
		FileKey:   fileKey,
		ExpiresAt: expiresAt,
	}, nil
}

// ListLeadDocuments returns the object keys stored under a lead's prefix.
func (s *MinIOService) ListLeadDocuments(ctx context.Context, leadID uuid.UUID) ([]string, error) {
	prefix := fmt.Sprintf("leads/%s/", leadID)

	var keys []string
	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list documents for lead %s: %w", leadID, object.Err)
		}
		keys = append(keys, object.Key)
	}
	return keys, nil
}

// DeleteObject removes an object from storage.
func (s *MinIOService) DeleteObject(ctx context.Context, fileKey string) error {
	err := s.client.RemoveObject(ctx, s.bucket, fileKey, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", fileKey, err)
	}
	return nil
}

// allowedContentTypes defines the MIME types accepted for lead documents.
// Financial paperwork only: no video, audio, or arbitrary binaries.
var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"text/csv":        true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

// validateContentType checks if the content type is allowed, ignoring
// parameters like charset.
func validateContentType(contentType string) error {
	normalized := strings.Split(contentType, ";")[0]
	normalized = strings.TrimSpace(strings.ToLower(normalized))

	if !allowedContentTypes[normalized] {
		return apperr.BadRequest(fmt.Sprintf("content type %q is not allowed", contentType))
	}
	return nil
}

// validateFileSize checks if the file size is within limits.
func validateFileSize(sizeBytes, maxFileSize int64) error {
	if sizeBytes <= 0 {
		return apperr.BadRequest("file size must be greater than 0")
	}
	if sizeBytes > maxFileSize {
		return apperr.BadRequest(fmt.Sprintf("file size %d bytes exceeds maximum allowed size of %d bytes", sizeBytes, maxFileSize))
	}
	return nil
}
