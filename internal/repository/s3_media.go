package repository

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/forgefit/planforge/internal/config"
)

// MediaS3Repository implements domain.FileRepository against any S3-compatible
// store (SeaweedFS, MinIO, AWS). Exercise demo images and videos live here.
type MediaS3Repository struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewMediaS3Repository creates a new S3 media repository
func NewMediaS3Repository(ctx context.Context, cfg appConfig.S3Config) (*MediaS3Repository, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}

	// Path-style addressing is required for most S3-compatible stores.
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	repo := &MediaS3Repository{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: cfg.Endpoint,
	}

	if err := repo.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return repo, nil
}

// Upload saves a file to S3 and returns the URL
func (r *MediaS3Repository) Upload(ctx context.Context, file []byte, filename string, contentType string) (string, error) {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(filename),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	// Format: {Endpoint}/{Bucket}/{Key}
	url := fmt.Sprintf("%s/%s/%s", strings.TrimRight(r.publicURL, "/"), r.bucket, filename)
	return url, nil
}

// Delete removes a previously uploaded file
func (r *MediaS3Repository) Delete(ctx context.Context, filename string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(filename),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

func (r *MediaS3Repository) ensureBucket(ctx context.Context) error {
	_, err := r.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(r.bucket),
	})
	if err == nil {
		return nil
	}

	_, err = r.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(r.bucket),
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", r.bucket, err)
	}
	return nil
}
