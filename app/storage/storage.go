package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/anseninnov/conference-registration/config"
)

// ObjectStore wraps the S3-compatible bucket (Cloudflare R2) that holds
// uploaded supporting documents for visa and stipend requests.
type ObjectStore struct {
	client *minio.Client
	bucket string
}

func New(cfg config.StorageConfig) (*ObjectStore, error) {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("object storage client: %w", err)
	}

	return &ObjectStore{client: client, bucket: cfg.Bucket}, nil
}

// BuildKey produces the timestamp-prefixed storage key for an uploaded
// file, keeping the original filename visible for staff.
func BuildKey(fileName string, now time.Time) string {
	name := strings.ReplaceAll(strings.TrimSpace(fileName), "/", "_")
	return fmt.Sprintf("uploads/%d_%s", now.UnixMilli(), name)
}

func (s *ObjectStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}
