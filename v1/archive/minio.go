package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const minioSetupTimeout = 30 * time.Second

// MinioArchive stores documents as objects in a MinIO bucket.
type MinioArchive struct {
	client *minio.Client
	bucket string
	logger Logger
}

// NewMinioArchive connects to MinIO and ensures the configured bucket
// exists, creating it if necessary.
func NewMinioArchive(ctx context.Context, cfg MinioConfig, logger Logger) (*MinioArchive, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint cannot be empty")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket name is empty")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to minio: %w", err)
	}

	a := &MinioArchive{client: client, bucket: cfg.Bucket, logger: logger}

	setupCtx, cancel := context.WithTimeout(ctx, minioSetupTimeout)
	defer cancel()
	if err := a.ensureBucketExists(setupCtx, cfg.Region); err != nil {
		return nil, err
	}

	return a, nil
}

// ensureBucketExists checks the configured bucket and creates it if
// missing.
func (a *MinioArchive) ensureBucketExists(ctx context.Context, region string) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists, bucket: %v, err: %w", a.bucket, err)
	}

	if !exists {
		if a.logger != nil {
			a.logger.Info("Bucket does not exist, creating it", nil, map[string]interface{}{"bucket": a.bucket})
		}
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return fmt.Errorf("creating bucket %q: %w", a.bucket, err)
		}
	}

	return nil
}

// Put uploads the document, overwriting any previous version.
func (a *MinioArchive) Put(ctx context.Context, name string, data []byte) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("document name is required")
	}
	key := keyFor(name)

	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/yaml",
	})
	if err != nil {
		return "", fmt.Errorf("uploading document %q: %w", key, err)
	}

	if a.logger != nil {
		a.logger.Info("document archived", nil, map[string]interface{}{"key": key, "bucket": a.bucket, "bytes": len(data)})
	}
	return key, nil
}

// Get downloads a document from the bucket.
func (a *MinioArchive) Get(ctx context.Context, name string) ([]byte, error) {
	key := keyFor(name)

	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetching document %q: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		// GetObject is lazy; a missing key surfaces here.
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("document %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("reading document %q: %w", key, err)
	}
	return data, nil
}

// List returns the stored documents, most recent first.
func (a *MinioArchive) List(ctx context.Context) ([]Entry, error) {
	entries := []Entry{}
	for object := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{}) {
		if object.Err != nil {
			return nil, fmt.Errorf("listing bucket %q: %w", a.bucket, object.Err)
		}
		entries = append(entries, Entry{Name: object.Key, Size: object.Size, ModTime: object.LastModified})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModTime.After(entries[j].ModTime)
	})
	return entries, nil
}
