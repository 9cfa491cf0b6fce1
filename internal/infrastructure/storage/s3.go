package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/sushnag22/pdf-generator/internal/application/document"
	"github.com/sushnag22/pdf-generator/internal/domain"
	"github.com/sushnag22/pdf-generator/pkg/config"
	"github.com/sushnag22/pdf-generator/pkg/logger"
)

// S3API is the subset of *s3.Client the store uses.
type S3API interface {
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, opts ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store keeps documents as objects <prefix>/<name> in one bucket. A PutObject is
// atomic, so readers never see a partial document.
type S3Store struct {
	client S3API
	bucket string
	prefix string
	log    *logger.Logger
}

// NewS3Client builds an S3 client from configuration. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain applies.
func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: load AWS config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// NewS3Store builds a store over an existing client.
func NewS3Store(client S3API, bucket, prefix string, log *logger.Logger) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix, log: log.Named("storage.s3")}
}

// EnsureDirectory creates the bucket when it does not exist. Errors are logged only.
func (s *S3Store) EnsureDirectory(ctx context.Context) {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return
	}
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		s.log.Error().Err(err).Str("bucket", s.bucket).Msg("failed to check PDF bucket")
		return
	}
	if _, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if !errors.As(err, &owned) {
			s.log.Error().Err(err).Str("bucket", s.bucket).Msg("failed to create PDF bucket")
		}
		return
	}
	s.log.Info().Str("bucket", s.bucket).Msg("PDF bucket created successfully")
}

// Exists reports whether the object exists.
func (s *S3Store) Exists(ctx context.Context, name string) (bool, error) {
	key, err := s.key(name)
	if err != nil {
		return false, err
	}
	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	if err == nil {
		return true, nil
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}
	return false, fmt.Errorf("%w: head %s: %w", domain.ErrStorage, key, err)
}

// Store uploads data unless the object already exists.
func (s *S3Store) Store(ctx context.Context, name string, data []byte) (document.StoreResult, error) {
	key, err := s.key(name)
	if err != nil {
		return document.StoreResult{}, err
	}
	res := document.StoreResult{Name: name, Location: "s3://" + s.bucket + "/" + key, Size: int64(len(data))}

	exists, err := s.Exists(ctx, name)
	if err != nil {
		return document.StoreResult{}, err
	}
	if exists {
		return res, nil
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/pdf"),
	})
	if err != nil {
		return document.StoreResult{}, fmt.Errorf("%w: put %s: %w", domain.ErrStorage, key, err)
	}
	res.Created = true
	return res, nil
}

// Retrieve downloads the object.
func (s *S3Store) Retrieve(ctx context.Context, name string) ([]byte, error) {
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		var notFound *types.NotFound
		if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, name)
		}
		return nil, fmt.Errorf("%w: get %s: %w", domain.ErrStorage, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrStorage, key, err)
	}
	return data, nil
}

func (s *S3Store) key(name string) (string, error) {
	if err := CheckName(name); err != nil {
		s.log.Warn().Str("name", name).Msg("blocked invalid file name")
		return "", err
	}
	if s.prefix == "" {
		return name, nil
	}
	return path.Join(s.prefix, name), nil
}

var _ document.Store = (*S3Store)(nil)
