package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/SlickbitTechnologies/ContractFlow/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ArchiveService keeps a mirror copy of every uploaded contract document
// in an object bucket. The remote store owns the authoritative PDF; the
// archive backfills a viewable URL when the store does not return one.
type ArchiveService struct {
	client *minio.Client
	bucket string
	config *config.ArchiveConfig
}

func NewArchiveService(cfg *config.ArchiveConfig) (*ArchiveService, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create archive client: %w", err)
	}

	return &ArchiveService{
		client: client,
		bucket: cfg.Bucket,
		config: cfg,
	}, nil
}

// EnsureBucket creates the archive bucket if it doesn't exist
func (s *ArchiveService) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Store writes a document copy under objectName.
func (s *ArchiveService) Store(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to archive file: %w", err)
	}

	return nil
}

// PresignedURL generates a time-limited view URL for an archived document
func (s *ArchiveService) PresignedURL(ctx context.Context, objectName string) (string, error) {
	expiry := time.Duration(s.config.ExpireDays) * 24 * time.Hour
	url, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url.String(), nil
}

// Remove deletes an archived document copy
func (s *ArchiveService) Remove(ctx context.Context, objectName string) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete archived file: %w", err)
	}

	return nil
}

// PublicURL returns a direct URL for the object (if bucket policy allows)
func (s *ArchiveService) PublicURL(objectName string) string {
	protocol := "http"
	if s.config.UseSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, s.config.Endpoint, s.bucket, objectName)
}
