package storage

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// DefaultSignedURLTTL is how long presigned download links stay valid.
const DefaultSignedURLTTL = time.Hour

// ObjectStore is the attachment storage used by services. Implemented by
// Store; stubbed in tests. Presign with expiry <= 0 uses the store's
// configured TTL.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader, size int64) error
	Remove(ctx context.Context, key string) error
	Presign(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Store talks to an S3-compatible bucket holding task attachments.
type Store struct {
	client    *minio.Client
	bucket    string
	signedTTL time.Duration
}

// Config holds object store connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	SignedTTL time.Duration
}

// New connects to the object store. The bucket must exist or be creatable
// with the given credentials (see EnsureBucket).
func New(cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("object store client: %w", err)
	}
	ttl := cfg.SignedTTL
	if ttl <= 0 {
		ttl = DefaultSignedURLTTL
	}
	return &Store{client: client, bucket: cfg.Bucket, signedTTL: ttl}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("bucket exists: %w", err)
	}
	if ok {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("make bucket: %w", err)
	}
	return nil
}

func (s *Store) Upload(ctx context.Context, key, contentType string, r io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *Store) Remove(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// Presign returns a time-limited download URL for key.
func (s *Store) Presign(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = s.signedTTL
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// ObjectKey builds the bucket key for an uploaded attachment:
// {userID}/{taskID}-{epochMillis}-{rand base36}.{ext}. Per-user prefix
// plus the random suffix keeps keys unique without a central sequence.
func ObjectKey(userID, taskID, filename string) string {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		ext = "bin"
	}
	suffix := strconv.FormatInt(rand.Int63(), 36)
	return fmt.Sprintf("%s/%s-%d-%s.%s", userID, taskID, time.Now().UnixMilli(), suffix, ext)
}
