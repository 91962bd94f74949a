package common

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 wraps the AWS SDK for Go v2 S3 client with the narrow surface the
// processor needs.
type S3 struct {
	client *s3.Client
}

// NewS3 creates an S3 wrapper using the standard AWS config/credential
// chain. An empty region leaves the chain's default in place.
func NewS3(ctx context.Context, region string) (*S3, error) {
	var loadOpts []func(*config.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, config.WithRegion(region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3{client: s3.NewFromConfig(awsCfg)}, nil
}

// Put uploads an object to the given bucket/key.
func (s *S3) Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	in := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	_, err := s.client.PutObject(ctx, in)
	return err
}

// UploadFile streams a local file to bucket/key.
func (s *S3) UploadFile(ctx context.Context, bucket, key, path, contentType string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if err := s.Put(ctx, bucket, key, f, contentType); err != nil {
		return fmt.Errorf("failed to upload %s to s3://%s/%s: %w", path, bucket, key, err)
	}
	return nil
}
