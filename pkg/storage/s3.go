package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/testersconnect/site/pkg/lifecycle"
)

// S3 stores objects in an S3-compatible service.
type S3 struct {
	client    *s3.S3
	publicURL string
	endpoint  string
	logger    *slog.Logger
}

func NewS3(cfg *Config, logger *slog.Logger) (*S3, error) {
	awsCfg := &aws.Config{
		Region:           aws.String(cfg.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		S3ForcePathStyle: aws.Bool(cfg.PathStyle()),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create s3 session: %w", err)
	}

	return &S3{
		client:    s3.New(sess),
		publicURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		endpoint:  cfg.Endpoint,
		logger:    logger.With("system", "storage", "provider", "s3"),
	}, nil
}

// Start has no startup work; buckets are provisioned outside the service.
func (s *S3) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting storage system", "endpoint", s.endpoint)
	return nil
}

func (s *S3) Store(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	if !validKey(bucket, key) {
		return ErrInvalidKey
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObjectWithContext(ctx, input); err != nil {
		return mapS3Error(fmt.Errorf("put object %s/%s: %w", bucket, key, err))
	}
	return nil
}

func (s *S3) Delete(ctx context.Context, bucket, key string) error {
	if !validKey(bucket, key) {
		return ErrInvalidKey
	}

	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if errors.Is(mapS3Error(err), ErrNotFound) {
			return nil
		}
		return mapS3Error(fmt.Errorf("delete object %s/%s: %w", bucket, key, err))
	}
	return nil
}

func (s *S3) Exists(ctx context.Context, bucket, key string) (bool, error) {
	if !validKey(bucket, key) {
		return false, ErrInvalidKey
	}

	_, err := s.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		mapped := mapS3Error(err)
		if errors.Is(mapped, ErrNotFound) {
			return false, nil
		}
		return false, mapped
	}
	return true, nil
}

func (s *S3) PublicURL(bucket, key string) string {
	return publicURL(s.publicURL, bucket, key)
}

func mapS3Error(err error) error {
	var reqErr awserr.RequestFailure
	if errors.As(err, &reqErr) {
		switch reqErr.StatusCode() {
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusForbidden:
			return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
		}
	}
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, s3.ErrCodeNoSuchBucket, "NotFound":
			return ErrNotFound
		}
	}
	return err
}
