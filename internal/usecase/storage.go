package usecase

import (
	"context"
	"io"
	"path"
	"strconv"
	"strings"
	"time"
)

// FileStore is an object storage bucket.
type FileStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	PublicURL(key string) string
}

// objectKey builds {userId}/{unixMillis}.{ext}; files without an extension become png.
func objectKey(userID, filename string, now time.Time) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if ext == "" {
		ext = "png"
	}
	return userID + "/" + strconv.FormatInt(now.UnixMilli(), 10) + "." + ext
}
