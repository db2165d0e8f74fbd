// Package storage wraps the S3-compatible object store that holds banner
// images.  The only operation the application needs is "save a buffer and
// hand back a publicly readable URL".
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore is a thin client over one bucket.
type ObjectStore struct {
	client     *minio.Client
	bucket     string
	publicBase string // base URL prepended to bucket/object when building public URLs
}

// New connects to the object store and makes sure the bucket exists.
// publicBase may be empty, in which case URLs are derived from the endpoint.
func New(endpoint, accessKey, secretKey, bucket string, useSSL bool, publicBase string) (*ObjectStore, error) {
	cl, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("object store connect: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	exists, err := cl.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("object store bucket check: %w", err)
	}
	if !exists {
		if err := cl.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("object store bucket create: %w", err)
		}
	}

	if publicBase == "" {
		publicBase = cl.EndpointURL().String()
	}
	return &ObjectStore{client: cl, bucket: bucket, publicBase: publicBase}, nil
}

// Save writes the buffer under the given object name and returns the public
// URL of the stored object.  The write is synchronous; when Save returns
// without error the URL is readable.
func (s *ObjectStore) Save(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", s.publicBase, s.bucket, objectName), nil
}
