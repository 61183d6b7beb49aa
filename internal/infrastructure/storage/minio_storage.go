// Package storage guarda los documentos de autorización de entregas en MinIO (API S3).
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ugelsanta/expedientes-api/internal/application/ports"
	"github.com/ugelsanta/expedientes-api/pkg/config"
)

var _ ports.FileStorage = (*MinioStorage)(nil)

// region fija para no consultar la ubicación del bucket en cada firma.
const region = "us-east-1"

// MinioStorage implementa ports.FileStorage.
type MinioStorage struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

// NewMinioStorage crea el cliente; no contacta al servidor hasta EnsureBucket.
func NewMinioStorage(cfg config.StorageConfig) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("crear cliente minio: %w", err)
	}
	horas := cfg.PresignHours
	if horas <= 0 {
		horas = 24
	}
	return &MinioStorage{
		client: client,
		bucket: cfg.Bucket,
		expiry: time.Duration(horas) * time.Hour,
	}, nil
}

// EnsureBucket crea el bucket si no existe.
func (s *MinioStorage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("verificar bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("crear bucket: %w", err)
		}
	}
	return nil
}

func (s *MinioStorage) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("subir %s: %w", key, err)
	}
	return nil
}

// PresignedURL enlace temporal de descarga; el bucket no es público.
func (s *MinioStorage) PresignedURL(ctx context.Context, key string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.expiry, nil)
	if err != nil {
		return "", fmt.Errorf("url firmada %s: %w", key, err)
	}
	return u.String(), nil
}

func (s *MinioStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("eliminar %s: %w", key, err)
	}
	return nil
}
