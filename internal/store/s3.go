package store

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/i474232898/weather-archiver/internal/weather"
)

var _ weather.ObjectStore = (*S3Store)(nil)

// PutObjectAPI is the subset of the S3 client used by S3Store.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store writes archived objects to a single bucket.
type S3Store struct {
	api    PutObjectAPI
	bucket string
}

// NewS3Store creates a new S3Store.
func NewS3Store(api PutObjectAPI, bucket string) *S3Store {
	return &S3Store{api: api, bucket: bucket}
}

// Put uploads body under key. Existing objects are not checked.
func (s *S3Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}
