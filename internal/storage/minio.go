package storage

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"novelhub/internal/microservices/http-api/dto"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const coverPrefix = "covers/"

// Config holds the object storage connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
}

// CoverUploader issues direct-upload grants for novel cover images.
type CoverUploader interface {
	PresignCover(ctx context.Context) (*dto.UploadTicket, error)
}

// MinIOStorage hands out presigned PUT URLs; image bytes never pass through the API.
type MinIOStorage struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
	now    func() time.Time
}

// NewMinIOStorage builds the client without touching the network.
func NewMinIOStorage(cfg Config, ttl time.Duration) (*MinIOStorage, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &MinIOStorage{client: client, bucket: cfg.Bucket, ttl: ttl, now: time.Now}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *MinIOStorage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

func (s *MinIOStorage) PresignCover(ctx context.Context) (*dto.UploadTicket, error) {
	key := coverPrefix + uuid.NewString()
	issuedAt := s.now()

	signed, err := s.client.PresignedPutObject(ctx, s.bucket, key, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("presign cover upload: %w", err)
	}

	return &dto.UploadTicket{
		UploadURL: signed.String(),
		PublicURL: s.publicURL(key),
		Key:       key,
		ExpiresAt: issuedAt.Add(s.ttl).UTC(),
	}, nil
}

// Format: http://localhost:9000/novelhub/covers/<uuid>
func (s *MinIOStorage) publicURL(key string) string {
	endpoint := s.client.EndpointURL()
	u := url.URL{Scheme: endpoint.Scheme, Host: endpoint.Host, Path: "/" + s.bucket + "/" + key}
	return u.String()
}
