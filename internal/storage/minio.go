package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"clipstream-backend/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Uploader is the capability handlers depend on; the blob store is opaque
// to them beyond "upload bytes, get a public URL back" and "forget this URL".
type Uploader interface {
	Upload(ctx context.Context, objectName string, src io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, url string) error
}

// Storage is the MinIO-backed Uploader used in production.
type Storage struct {
	client         *minio.Client
	bucket         string
	publicEndpoint string
}

// New connects to MinIO and ensures the bucket exists with a public-read
// policy, so returned URLs are directly servable.
func New(cfg config.Minio) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio init: %w", err)
	}

	s := &Storage{
		client:         client,
		bucket:         cfg.Bucket,
		publicEndpoint: cfg.PublicEndpoint,
	}

	exists, err := client.BucketExists(context.Background(), s.bucket)
	if err != nil {
		return nil, fmt.Errorf("bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), s.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}

		policy := `{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": "*",
				"Action": "s3:GetObject",
				"Resource": "arn:aws:s3:::` + s.bucket + `/*"
			}
		]
	}`
		if err := client.SetBucketPolicy(context.Background(), s.bucket, policy); err != nil {
			return nil, fmt.Errorf("set bucket policy: %w", err)
		}
	}

	return s, nil
}

func (s *Storage) Upload(ctx context.Context, objectName string, src io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, src, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectName, err)
	}
	return s.publicEndpoint + "/" + s.bucket + "/" + objectName, nil
}

// Remove deletes the object a previously returned URL points at. URLs that
// do not belong to this bucket are ignored.
func (s *Storage) Remove(ctx context.Context, url string) error {
	prefix := s.publicEndpoint + "/" + s.bucket + "/"
	objectName := strings.TrimPrefix(url, prefix)
	if objectName == url || objectName == "" {
		return nil
	}
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}

// ObjectName builds a collision-free object key, keeping the original
// extension under a media-kind prefix (avatar/, video/, thumbnail/ ...).
func ObjectName(prefix, filename string) string {
	return prefix + "/" + uuid.New().String() + filepath.Ext(filename)
}
