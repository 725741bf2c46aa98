// Package storage provides S3-compatible object storage for lead documents.
// Brokers see document flags on listings; the files themselves are served
// through short-lived presigned URLs after a purchase.
package storage

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// PresignedURL contains the URL and metadata for a presigned download.
type PresignedURL struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service defines the interface for lead document storage operations.
type Service interface {
	// UploadLeadDocument validates and stores a document under the lead's
	// prefix. Returns the object key.
	UploadLeadDocument(ctx context.Context, leadID uuid.UUID, documentType, filename, contentType string, size int64, content io.Reader) (string, error)

	// GenerateDownloadURL creates a presigned URL for downloading a stored
	// document.
	GenerateDownloadURL(ctx context.Context, fileKey string) (*PresignedURL, error)

	// ListLeadDocuments returns the object keys stored under a lead's prefix.
	ListLeadDocuments(ctx context.Context, leadID uuid.UUID) ([]string, error)

	// DeleteObject removes an object from storage.
	DeleteObject(ctx context.Context, fileKey string) error

	// EnsureBucketExists creates the documents bucket if it doesn't exist.
	EnsureBucketExists(ctx context.Context) error
}

// Config defines the configuration interface for storage.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketLeadDocuments() string
	IsMinIOEnabled() bool
}
