// Package storage keeps member photos as opaque blobs outside the database.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/gcclub/membercard/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// PhotoPrefix is the folder every photo object lives under.
const PhotoPrefix = "member_photos/"

// ErrPhotoNotFound is returned when the object does not exist.
var ErrPhotoNotFound = errors.New("storage: photo not found")

// Photo is an opened photo object.
type Photo struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// PhotoStore saves, opens and removes photo blobs by object path.
type PhotoStore interface {
	Save(ctx context.Context, memberID string, ext string, body io.Reader, size int64, contentType string) (string, error)
	Open(ctx context.Context, objectPath string) (*Photo, error)
	Remove(ctx context.Context, objectPath string) error
}

// ObjectPath builds a unique object name for a member photo.
func ObjectPath(memberID, ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return path.Join(PhotoPrefix, fmt.Sprintf("%s-%s%s", strings.ToLower(memberID), uuid.NewString(), ext))
}

// MinIOStore stores photos in a MinIO (S3 compatible) bucket.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

// NewMinIOStore connects to MinIO and makes sure the bucket exists.
func NewMinIOStore(ctx context.Context, cfg config.StorageConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		slog.Info("photo bucket created", "bucket", cfg.Bucket)
	}

	slog.Info("photo storage connected", "endpoint", cfg.Endpoint, "bucket", cfg.Bucket)
	return &MinIOStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinIOStore) Save(ctx context.Context, memberID, ext string, body io.Reader, size int64, contentType string) (string, error) {
	objectPath := ObjectPath(memberID, ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectPath, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload photo %s: %w", objectPath, err)
	}
	return objectPath, nil
}

func (s *MinIOStore) Open(ctx context.Context, objectPath string) (*Photo, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectPath, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("open photo %s: %w", objectPath, err)
	}

	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrPhotoNotFound
		}
		return nil, fmt.Errorf("stat photo %s: %w", objectPath, err)
	}

	return &Photo{Body: obj, Size: info.Size, ContentType: info.ContentType}, nil
}

func (s *MinIOStore) Remove(ctx context.Context, objectPath string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectPath, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove photo %s: %w", objectPath, err)
	}
	return nil
}
