package store

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// picturesKeyPrefix is the object key prefix of uploaded pictures.
const picturesKeyPrefix = "profile_pics"

// s3ObjectAPI is the subset of *s3.Client used by s3PictureStorage.
type s3ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// s3PictureStorage keeps profile pictures in an S3 (or S3-compatible)
// bucket and links to them through a public base URL.
type s3PictureStorage struct {
	client    s3ObjectAPI
	bucket    string
	publicURL string

	// defaultURL points at the bundled placeholder picture, which is
	// served locally and never uploaded.
	defaultURL string

	logger *logger.Logger
}

// NewS3PictureStorage builds an S3 client from cfg. Static credentials are
// used when both keys are set, otherwise the default AWS credential chain.
// A custom endpoint switches to path-style addressing (MinIO and friends).
func NewS3PictureStorage(ctx context.Context, cfg config.Pictures, logger *logger.Logger) (PictureStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Debug().Str("bucket", cfg.S3Bucket).Msg("creating s3 picture storage")

	defaultURL := path.Join(cfg.URLPrefix, models.DefaultImageFile)
	return newS3PictureStorage(client, cfg.S3Bucket, cfg.S3PublicURL, defaultURL, logger), nil
}

func newS3PictureStorage(client s3ObjectAPI, bucket, publicURL, defaultURL string, logger *logger.Logger) *s3PictureStorage {
	return &s3PictureStorage{
		client:     client,
		bucket:     bucket,
		publicURL:  strings.TrimSuffix(publicURL, "/"),
		defaultURL: defaultURL,
		logger:     logger,
	}
}

// SavePicture uploads data under the pictures prefix.
func (s *s3PictureStorage) SavePicture(ctx context.Context, name, contentType string, data []byte) error {
	log := logger.FromContext(ctx)
	key := path.Join(picturesKeyPrefix, name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		log.Err(err).
			Str("func", "*s3PictureStorage.SavePicture").
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to upload picture")
		return fmt.Errorf("%w: %w", ErrPictureNotSaved, err)
	}

	log.Debug().
		Str("func", "*s3PictureStorage.SavePicture").
		Str("bucket", s.bucket).
		Str("key", key).
		Int("size", len(data)).
		Msg("stored picture in S3")

	return nil
}

// DeletePicture removes the object holding name. S3 reports success for
// keys that do not exist.
func (s *s3PictureStorage) DeletePicture(ctx context.Context, name string) error {
	key := path.Join(picturesKeyPrefix, name)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*s3PictureStorage.DeletePicture").
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to delete picture")
		return fmt.Errorf("%w: %w", ErrPictureNotDeleted, err)
	}
	return nil
}

// PictureURL returns the public URL of the object holding name.
func (s *s3PictureStorage) PictureURL(name string) string {
	if name == models.DefaultImageFile {
		return s.defaultURL
	}
	return s.publicURL + "/" + path.Join(picturesKeyPrefix, name)
}
