package objectstore

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/riskibarqy/tournament-hub/internal/platform/logging"
	"github.com/riskibarqy/tournament-hub/internal/platform/resilience"
	"github.com/riskibarqy/tournament-hub/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	err   error
	calls int
	last  *s3.PutObjectInput
	body  string
}

func (f *fakeObjects) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.calls++
	f.last = params
	if params.Body != nil {
		raw, _ := io.ReadAll(params.Body)
		f.body = string(raw)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{ETag: aws.String(`"etag"`)}, nil
}

type fakePresign struct {
	err     error
	expires time.Duration
}

func (f *fakePresign) PresignGetObject(_ context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	opts := s3.PresignOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	f.expires = opts.Expires
	return &v4.PresignedHTTPRequest{
		URL:    "https://storage.test/" + aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key) + "?X-Amz-Signature=abc",
		Method: "GET",
	}, nil
}

func newTestBucket(objects *fakeObjects, presign *fakePresign, breaker *resilience.CircuitBreaker) *Bucket {
	return newBucket(objects, presign, BucketConfig{
		Name:          "payment-screenshots",
		PublicBaseURL: "https://cdn.test/avatars/",
		Breaker:       breaker,
		Logger:        logging.NewNop(),
	})
}

func TestBucket_Put(t *testing.T) {
	objects := &fakeObjects{}
	bucket := newTestBucket(objects, &fakePresign{}, nil)

	err := bucket.Put(context.Background(), "/u1/1767225600000.png", "", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.Equal(t, 1, objects.calls)
	assert.Equal(t, "payment-screenshots", aws.ToString(objects.last.Bucket))
	assert.Equal(t, "u1/1767225600000.png", aws.ToString(objects.last.Key))
	assert.Equal(t, "application/octet-stream", aws.ToString(objects.last.ContentType))
	assert.Equal(t, "png-bytes", objects.body)

	require.Error(t, bucket.Put(context.Background(), "  ", "image/png", strings.NewReader("")))
}

func TestBucket_SignedURL(t *testing.T) {
	presign := &fakePresign{}
	bucket := newTestBucket(&fakeObjects{}, presign, nil)

	url, err := bucket.SignedURL(context.Background(), "u1/shot.jpg", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "https://storage.test/payment-screenshots/u1/shot.jpg?X-Amz-Signature=abc", url)
	assert.Equal(t, time.Hour, presign.expires)
}

func TestBucket_PublicURL(t *testing.T) {
	bucket := newTestBucket(&fakeObjects{}, &fakePresign{}, nil)

	assert.Equal(t, "https://cdn.test/avatars/u1/a.png", bucket.PublicURL("u1/a.png"))
	assert.Equal(t, "", bucket.PublicURL(""))
}

func TestBucket_BreakerOpensOnDependencyFailures(t *testing.T) {
	objects := &fakeObjects{err: errors.New("connection reset by peer")}
	breaker := NewBreaker(resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}, logging.NewNop())
	bucket := newTestBucket(objects, &fakePresign{}, breaker)

	for i := 0; i < 2; i++ {
		err := bucket.Put(context.Background(), "u1/a.png", "image/png", strings.NewReader("x"))
		require.Error(t, err)
		assert.False(t, errors.Is(err, usecase.ErrDependencyUnavailable))
	}

	err := bucket.Put(context.Background(), "u1/a.png", "image/png", strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, usecase.ErrDependencyUnavailable))
	assert.Equal(t, 2, objects.calls, "open breaker must not reach the bucket")
}

func TestIsDependencyFailure(t *testing.T) {
	assert.False(t, isDependencyFailure(nil))
	assert.False(t, isDependencyFailure(context.Canceled))
	assert.False(t, isDependencyFailure(&types.NoSuchKey{}))
	assert.True(t, isDependencyFailure(errors.New("503 slow down")))
}
