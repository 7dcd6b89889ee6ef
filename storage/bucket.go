// Package storage uploads project images to S3 compatible object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/toqaosama/portfolio-backend/config"
	"github.com/toqaosama/portfolio-backend/errs"
)

// ErrDisabled is returned by the bucket used when no storage is configured.
var ErrDisabled = errors.New("image storage is not configured")

// Bucket stores objects and knows their public address.
type Bucket interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}

// New returns the bucket selected by settings.Driver.
func New(ctx context.Context, settings config.StorageSettings) (Bucket, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	switch settings.Driver {
	case config.StorageS3:
		return NewS3Bucket(ctx, settings)
	case config.StorageMinIO:
		return NewMinIOBucket(settings)
	default:
		return DisabledBucket{}, nil
	}
}

// publicURL joins base and key, escaping each key segment.
func publicURL(base, key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(parts, "/")
}

// S3Bucket writes through the S3 API. Supabase Storage exposes the same API,
// so Endpoint may point at it.
type S3Bucket struct {
	client *s3.Client
	bucket string
	public string
}

func NewS3Bucket(ctx context.Context, settings config.StorageSettings) (*S3Bucket, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(settings.Region)}
	if settings.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(settings.AccessKey, settings.SecretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errs.NewConfigError("storage", "STORAGE_REGION")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(settings.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Bucket{client: client, bucket: settings.Bucket, public: settings.PublicURL}, nil
}

func (b *S3Bucket) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to s3: %w", err)
	}
	return nil
}

func (b *S3Bucket) PublicURL(key string) string {
	return publicURL(b.public, key)
}

// MinIOBucket handles file uploads to MinIO
type MinIOBucket struct {
	client *minio.Client
	bucket string
	public string
}

func NewMinIOBucket(settings config.StorageSettings) (*MinIOBucket, error) {
	endpoint := settings.Endpoint
	secure := settings.UseSSL
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  miniocreds.NewStaticV4(settings.AccessKey, settings.SecretKey, ""),
		Secure: secure,
		Region: settings.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &MinIOBucket{client: client, bucket: settings.Bucket, public: settings.PublicURL}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (b *MinIOBucket) EnsureBucket(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

func (b *MinIOBucket) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := b.client.PutObject(ctx, b.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload to minio: %w", err)
	}
	return nil
}

func (b *MinIOBucket) PublicURL(key string) string {
	return publicURL(b.public, key)
}

type DisabledBucket struct{}

func (DisabledBucket) Upload(context.Context, string, io.Reader, int64, string) error {
	return ErrDisabled
}

func (DisabledBucket) PublicURL(string) string {
	return ""
}
