package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"
)

const (
	attributeKey    = "s3.key"
	attributeBucket = "s3.bucket"
	attributeSize   = "s3.size"
	region          = "auto"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrNoBucket       = errors.New("object storage is not configured")
)

// S3 is a key/value view over one bucket. Keys are slash separated paths.
type S3 interface {
	Put(ctx context.Context, key, contentType string, body []byte) (location string, err error)
	Fetch(ctx context.Context, key string) (body []byte, err error)
}

type bucket struct {
	client       *s3.Client
	name         string
	publicDomain string
	otel         otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) S3 {
	settings := cfg.External.S3

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(region),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(settings.AccessKeyID, settings.SecretAccessKey, "")),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load AWS configuration, object storage calls will fail")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if settings.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(settings.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	if settings.BucketName == "" {
		log.Warn().Msg("S3 bucket not configured, receipts will not be archived")
	}

	return &bucket{
		client:       client,
		name:         settings.BucketName,
		publicDomain: strings.TrimSuffix(settings.PublicDomain, "/"),
		otel:         otel,
	}
}

func (b *bucket) scope(ctx context.Context, operation, key string) (context.Context, otel.Scope) {
	ctx, scope := b.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+"."+operation)
	scope.SetAttributes(map[string]any{
		attributeKey:    key,
		attributeBucket: b.name,
	})

	return ctx, scope
}

// Put stores body under key and returns its public location.
func (b *bucket) Put(ctx context.Context, key, contentType string, body []byte) (location string, err error) {
	ctx, scope := b.scope(ctx, "Put", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if b.name == "" {
		return constant.Empty, ErrNoBucket
	}

	scope.SetAttribute(attributeSize, len(body))

	_, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.name),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to put object")

		return constant.Empty, fmt.Errorf("failed to put object %s: %w", key, err)
	}

	return b.publicDomain + "/" + key, nil
}

// Fetch reads the object at key. A missing key wraps ErrObjectNotFound.
func (b *bucket) Fetch(ctx context.Context, key string) (body []byte, err error) {
	ctx, scope := b.scope(ctx, "Fetch", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if b.name == "" {
		return nil, ErrNoBucket
	}

	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%s: %w", key, ErrObjectNotFound)
		}

		log.Error().Err(err).Str("key", key).Msg("Failed to get object")

		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer out.Body.Close()

	if body, err = io.ReadAll(out.Body); err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}

	return body, nil
}
