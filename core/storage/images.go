package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// Images stores part photographs in object storage and hands back the public
// URL under which the stored object is reachable. Callers persist the URL
// verbatim; nothing else in the application interprets it.
type Images struct {
	client    Client
	bucket    string
	publicURL string
}

// NewImages creates an image store on top of the given storage client.
func NewImages(client Client, cfg Config) *Images {
	base := cfg.PublicURL
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = scheme + "://" + strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "http://"), "https://")
	}
	return &Images{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(base, "/"),
	}
}

// EnsureBucket creates the image bucket if it does not exist yet.
func (s *Images) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Upload stores an image for the part identified by ref and returns its URL.
// The object name carries a random component so replacing an image never
// serves a stale cached copy under the old URL.
func (s *Images) Upload(ctx context.Context, ref, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	ext := path.Ext(filename)
	objectName := fmt.Sprintf("parts/%s/%s%s", ref, uuid.NewString(), ext)

	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, opts); err != nil {
		return "", fmt.Errorf("failed to upload image %s: %w", objectName, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName), nil
}

// Remove deletes a previously uploaded image given its URL. Unknown URLs
// (external images imported from a spreadsheet) are left alone.
func (s *Images) Remove(ctx context.Context, url string) error {
	prefix := s.publicURL + "/" + s.bucket + "/"
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	objectName := strings.TrimPrefix(url, prefix)
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove image %s: %w", objectName, err)
	}
	return nil
}
