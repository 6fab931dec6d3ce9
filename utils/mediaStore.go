package utils

import (
	"context"
	"fmt"
	"io"
	"lms/config"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MediaStore wraps the external S3-compatible media host
type MediaStore struct {
	client *minio.Client
	bucket string
}

// Store is the global media store instance, initialized once at startup
var Store *MediaStore

// UploadResult holds the external reference returned by the media host
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// NewMediaStore builds a client for the given media host without contacting it
func NewMediaStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MediaStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MediaStore{client: client, bucket: bucket}, nil
}

// InitMediaStore connects to the media host and ensures the bucket exists
func InitMediaStore() {
	cfg := config.AppConfig

	store, err := NewMediaStore(cfg.MediaEndpoint, cfg.MediaAccessKey, cfg.MediaSecretKey, cfg.MediaBucket, cfg.MediaUseSSL)
	if err != nil {
		log.Fatalf("Failed to connect to media store: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := store.client.BucketExists(ctx, cfg.MediaBucket)
	if err != nil {
		log.Fatalf("Failed to check media bucket: %v", err)
	}
	if !exists {
		if err := store.client.MakeBucket(ctx, cfg.MediaBucket, minio.MakeBucketOptions{}); err != nil {
			log.Fatalf("Failed to create media bucket: %v", err)
		}
	}

	Store = store
	log.Println("Connected to media store.")
}

// Upload forwards the file bytes to the media host and returns its external
// reference; the object key keeps the original extension for content sniffing
func (m *MediaStore) Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (*UploadResult, error) {
	key := uuid.NewString() + filepath.Ext(filename)

	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("media upload failed: %w", err)
	}

	url, err := m.client.PresignedGetObject(ctx, m.bucket, key, 7*24*time.Hour, nil)
	if err != nil {
		return nil, fmt.Errorf("media presign failed: %w", err)
	}

	return &UploadResult{URL: url.String(), PublicID: key}, nil
}

// Delete removes the external object
func (m *MediaStore) Delete(ctx context.Context, publicID string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, publicID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("media delete failed: %w", err)
	}
	return nil
}
