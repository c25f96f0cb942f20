package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// FolderProfilePictures and FolderTaskImages namespace uploaded objects.
const (
	FolderProfilePictures = "profile_pictures"
	FolderTaskImages      = "task_images"
)

// uploadTimeout bounds a single PutObject call so a stalled storage backend
// cannot hang a request indefinitely.
const uploadTimeout = 30 * time.Second

// ObjectStorage stores uploaded binaries and returns a durable URL.
type ObjectStorage interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error)
}

// Options configures the S3-backed storage client.
type Options struct {
	Endpoint  string // optional custom endpoint (MinIO etc.); empty for AWS
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// S3Storage implements ObjectStorage against an S3-compatible backend.
type S3Storage struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
}

// Ensure S3Storage implements ObjectStorage.
var _ ObjectStorage = (*S3Storage)(nil)

// NewS3Storage builds an S3 client from static credentials.
func NewS3Storage(ctx context.Context, opts Options) (*S3Storage, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:   client,
		bucket:   opts.Bucket,
		region:   opts.Region,
		endpoint: strings.TrimSuffix(opts.Endpoint, "/"),
	}, nil
}

// Upload stores body under a namespaced, collision-free key and returns the
// object's durable URL.
func (s *S3Storage) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	key := ObjectKey(folder, filename)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return s.ObjectURL(key), nil
}

// ObjectKey builds a per-upload storage key, keeping the original extension.
func ObjectKey(folder, filename string) string {
	return folder + "/" + uuid.New().String() + strings.ToLower(path.Ext(filename))
}

// ObjectURL returns the public URL for a stored key.
func (s *S3Storage) ObjectURL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
