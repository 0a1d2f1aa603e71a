package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageService stores software catalog icons in object storage. Objects are
// keyed by software ID so re-uploading replaces the previous icon.
type StorageService interface {
	UploadIcon(ctx context.Context, softwareID uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error)
	IconURL(ctx context.Context, softwareID uuid.UUID, filename string, expiry time.Duration) (string, error)
	DeleteIcon(ctx context.Context, softwareID uuid.UUID, filename string) error
	EnsureBucket(ctx context.Context) error
}

type minioStorage struct {
	client *minio.Client
	bucket string
}

func NewMinioStorageService(endpoint, accessKey, secretKey, bucket string, useSSL bool) (StorageService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioStorage{client: client, bucket: bucket}, nil
}

func iconObjectName(softwareID uuid.UUID, filename string) string {
	return fmt.Sprintf("icons/%s%s", softwareID, path.Ext(filename))
}

func (m *minioStorage) UploadIcon(ctx context.Context, softwareID uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error) {
	objectName := iconObjectName(softwareID, filename)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload icon: %w", err)
	}
	return objectName, nil
}

func (m *minioStorage) IconURL(ctx context.Context, softwareID uuid.UUID, filename string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucket, iconObjectName(softwareID, filename), expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (m *minioStorage) DeleteIcon(ctx context.Context, softwareID uuid.UUID, filename string) error {
	return m.client.RemoveObject(ctx, m.bucket, iconObjectName(softwareID, filename), minio.RemoveObjectOptions{})
}

func (m *minioStorage) EnsureBucket(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
	}
	return nil
}
