package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/your-org/frfront/internal/config"
)

// ArchivePrefix is the key prefix every archived download lives under.
const ArchivePrefix = "exports/"

// ErrObjectNotFound is returned when an archived file does not exist.
var ErrObjectNotFound = errors.New("object not found")

// MinIOStore archives files downloaded from the recognition service.
// Keys are laid out as exports/YYYY/MM/DD/<filename> in UTC.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

func NewMinIOStore(cfg config.MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinIOStore{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// EnsureBucket creates the archive bucket if it doesn't exist.
func (s *MinIOStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// ArchiveKey returns the object key a download taken at t is archived under.
func ArchiveKey(filename string, t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s%04d/%02d/%02d/%s", ArchivePrefix, t.Year(), int(t.Month()), t.Day(), path.Base(filename))
}

// ArchiveDownload stores a downloaded file under its dated key and returns
// the key. A file downloaded twice on the same day replaces the first copy.
func (s *MinIOStore) ArchiveDownload(ctx context.Context, filename, contentType string, data []byte, at time.Time) (string, error) {
	key := ArchiveKey(filename, at)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"downloaded-at": at.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("archive %s: %w", key, err)
	}
	return key, nil
}

// RecentArchives returns up to limit archived keys, most recently written first.
func (s *MinIOStore) RecentArchives(ctx context.Context, limit int) ([]string, error) {
	// cancelling stops the listing goroutine when we return early
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var objects []minio.ObjectInfo
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    ArchivePrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list archive: %w", obj.Err)
		}
		objects = append(objects, obj)
	}
	return newestFirst(objects, limit), nil
}

func newestFirst(objects []minio.ObjectInfo, limit int) []string {
	sort.SliceStable(objects, func(i, j int) bool {
		if !objects[i].LastModified.Equal(objects[j].LastModified) {
			return objects[i].LastModified.After(objects[j].LastModified)
		}
		return objects[i].Key > objects[j].Key
	})
	if limit > 0 && len(objects) > limit {
		objects = objects[:limit]
	}
	keys := make([]string, len(objects))
	for i, obj := range objects {
		keys[i] = obj.Key
	}
	return keys
}

// ArchivedFile reads the archived file at rel, a key relative to
// ArchivePrefix. Missing files yield ErrObjectNotFound.
func (s *MinIOStore) ArchivedFile(ctx context.Context, rel string) ([]byte, error) {
	key := ArchivePrefix + rel
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, objectError(key, err)
	}
	defer obj.Close()

	if _, err := obj.Stat(); err != nil {
		return nil, objectError(key, err)
	}
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, objectError(key, err)
	}
	return data, nil
}

func objectError(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%s: %w", key, ErrObjectNotFound)
	}
	return fmt.Errorf("read object %s: %w", key, err)
}

// Ping checks MinIO connectivity.
func (s *MinIOStore) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucket)
	return err
}
