package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/AyaBm214/PremiumConnect/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Logical buckets. Configuration maps each to a physical bucket name.
const (
	BucketProperties = "properties"
	BucketUserDocs   = "user_docs"
)

// Storage is the blob store used for onboarding media and profile documents
type Storage interface {
	// Upload stores body under key in the logical bucket
	Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) error

	// Delete removes the object at key
	Delete(ctx context.Context, bucket, key string) error

	// PublicURL returns the URL the object can be fetched from
	PublicURL(bucket, key string) string
}

var _ Storage = (*S3Storage)(nil)

// S3Storage implements Storage for S3-compatible storage
// Works with AWS S3, MinIO, DigitalOcean Spaces, Cloudflare R2, etc.
type S3Storage struct {
	client        *s3.Client
	buckets       map[string]string
	region        string
	endpoint      string
	uploadTimeout time.Duration
}

// S3Config holds configuration for S3 storage
type S3Config struct {
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // Optional: for S3-compatible services
	// Buckets maps logical bucket names to physical ones
	Buckets       map[string]string
	UploadTimeout time.Duration
}

// New creates an S3-compatible storage instance from app config
func New(ctx context.Context, c *config.Config) (*S3Storage, error) {
	slog.Info("initializing S3 storage",
		"properties_bucket", c.S3BucketProperties,
		"user_docs_bucket", c.S3BucketUserDocs,
		"region", c.S3Region,
		"endpoint", c.S3Endpoint,
	)
	return NewS3Storage(ctx, S3Config{
		Region:    c.S3Region,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
		Endpoint:  c.S3Endpoint,
		Buckets: map[string]string{
			BucketProperties: c.S3BucketProperties,
			BucketUserDocs:   c.S3BucketUserDocs,
		},
		UploadTimeout: c.S3UploadTimeout,
	})
}

func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	if cfg.Endpoint != "" {
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // Required for MinIO and some S3-compatible services
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	timeout := cfg.UploadTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	storage := &S3Storage{
		client:        client,
		buckets:       cfg.Buckets,
		region:        cfg.Region,
		endpoint:      strings.TrimSuffix(cfg.Endpoint, "/"),
		uploadTimeout: timeout,
	}

	for _, physical := range cfg.Buckets {
		err = storage.ensureBucket(ctx, physical)
		if err != nil {
			return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
		}
	}

	return storage, nil
}

// ensureBucket checks if bucket exists, creates it if not
func (s *S3Storage) ensureBucket(ctx context.Context, bucket string) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err == nil {
		return nil
	}

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %q does not exist and could not be created: %w", bucket, err)
	}

	slog.Info("created S3 bucket", "bucket", bucket)
	return nil
}

func (s *S3Storage) physical(bucket string) (string, error) {
	name, ok := s.buckets[bucket]
	if !ok || name == "" {
		return "", fmt.Errorf("unknown bucket %q", bucket)
	}
	return name, nil
}

func (s *S3Storage) Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	name, err := s.physical(bucket)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket: aws.String(name),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	_, err = s.client.PutObject(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}

	return nil
}

func (s *S3Storage) Delete(ctx context.Context, bucket, key string) error {
	name, err := s.physical(bucket)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(name),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}

	return nil
}

// PublicURL returns the direct object URL. The bucket must allow public reads.
func (s *S3Storage) PublicURL(bucket, key string) string {
	name, ok := s.buckets[bucket]
	if !ok || name == "" {
		name = bucket
	}
	if s.endpoint == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", name, s.region, key)
	}
	return fmt.Sprintf("%s/%s/%s", s.endpoint, name, key)
}
