// Package objectstore keeps payment screenshots and avatars in S3-compatible buckets.
package objectstore

import (
	"context"
	stderrors "errors"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/tournament-hub/internal/platform/logging"
	"github.com/riskibarqy/tournament-hub/internal/platform/resilience"
	"github.com/riskibarqy/tournament-hub/internal/usecase"
)

const defaultRegion = "auto"

type ClientConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// NewClient builds a path-style S3 client. An empty endpoint talks to AWS itself.
func NewClient(ctx context.Context, cfg ClientConfig) (*s3.Client, error) {
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = defaultRegion
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" || cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	sdkCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, crerr.Wrap(err, "load object store sdk config")
	}

	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	return s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true
	}), nil
}

type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type BucketConfig struct {
	Name          string
	PublicBaseURL string
	Breaker       *resilience.CircuitBreaker
	Logger        *logging.Logger
}

// Bucket implements usecase.FileStore for one bucket.
type Bucket struct {
	objects       objectAPI
	presign       presignAPI
	name          string
	publicBaseURL string
	breaker       *resilience.CircuitBreaker
	logger        *logging.Logger
}

func NewBucket(client *s3.Client, cfg BucketConfig) *Bucket {
	return newBucket(client, s3.NewPresignClient(client), cfg)
}

func newBucket(objects objectAPI, presign presignAPI, cfg BucketConfig) *Bucket {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Bucket{
		objects:       objects,
		presign:       presign,
		name:          strings.TrimSpace(cfg.Name),
		publicBaseURL: strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/"),
		breaker:       cfg.Breaker,
		logger:        logger.With("bucket", strings.TrimSpace(cfg.Name)),
	}
}

// NewBreaker returns a circuit breaker that ignores caller mistakes such as
// missing keys or cancelled contexts.
func NewBreaker(cfg resilience.CircuitBreakerConfig, logger *logging.Logger) *resilience.CircuitBreaker {
	if logger == nil {
		logger = logging.Default()
	}

	breaker := resilience.NewCircuitBreaker(cfg)
	breaker.IsFailure = isDependencyFailure
	breaker.OnStateChange = func(from, to resilience.CircuitState) {
		logger.Warn("object store circuit breaker state changed", "from", from, "to", to)
	}
	return breaker
}

func (b *Bucket) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return crerr.New("object key is required")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	err := b.breaker.Execute(func() error {
		_, err := b.objects.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(b.name),
			Key:         aws.String(key),
			Body:        body,
			ContentType: aws.String(contentType),
		})
		return err
	})
	if err != nil {
		b.logger.WarnContext(ctx, "put object failed", "key", key, "error", err)
		return markUnavailable(crerr.Wrapf(err, "put object key=%s", key))
	}
	return nil
}

func (b *Bucket) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return "", crerr.New("object key is required")
	}

	var signed *v4.PresignedHTTPRequest
	err := b.breaker.Execute(func() error {
		var err error
		signed, err = b.presign.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(b.name),
			Key:    aws.String(key),
		}, s3.WithPresignExpires(ttl))
		return err
	})
	if err != nil {
		return "", markUnavailable(crerr.Wrapf(err, "presign object key=%s", key))
	}
	return signed.URL, nil
}

// PublicURL joins the bucket's public base URL and key without a network call.
func (b *Bucket) PublicURL(key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" || b.publicBaseURL == "" {
		return ""
	}
	return b.publicBaseURL + "/" + key
}

func isDependencyFailure(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.Canceled) {
		return false
	}
	var noSuchKey *types.NoSuchKey
	return !stderrors.As(err, &noSuchKey)
}

func markUnavailable(err error) error {
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		return crerr.Mark(err, usecase.ErrDependencyUnavailable)
	}
	return err
}

var _ usecase.FileStore = (*Bucket)(nil)
