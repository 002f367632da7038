package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"curriculum-service/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BlobStore uploads resource media and avatars to object storage and hands
// back public URLs. The curriculum and quiz core never touches it.
type BlobStore struct {
	client         *minio.Client
	bucket         string
	publicEndpoint string
	useSSL         bool
}

func NewBlobStore(cfg *config.MinIOConfig) (*BlobStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing minio client: %w", err)
	}

	exists, err := client.BucketExists(context.Background(), cfg.MediaBucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket %s: %w", cfg.MediaBucket, err)
	}
	if !exists {
		err = client.MakeBucket(context.Background(), cfg.MediaBucket, minio.MakeBucketOptions{Region: cfg.Region})
		if err != nil {
			return nil, fmt.Errorf("creating bucket %s: %w", cfg.MediaBucket, err)
		}
		log.Printf("Created bucket: %s", cfg.MediaBucket)
	}

	public := cfg.PublicEndpoint
	if public == "" {
		public = cfg.Endpoint
	}
	return &BlobStore{
		client:         client,
		bucket:         cfg.MediaBucket,
		publicEndpoint: public,
		useSSL:         cfg.UseSSL,
	}, nil
}

// PutObject uploads a blob under the given path and returns its public URL.
func (s *BlobStore) PutObject(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", path, err)
	}
	return s.publicURL(path), nil
}

func (s *BlobStore) publicURL(path string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.publicEndpoint, s.bucket, path)
}
