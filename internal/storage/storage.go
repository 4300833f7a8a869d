// Package storage provides the object store holding progress entry files.
//
// Two backends implement Storage:
//   - LocalStorage: files under a base directory, used in development
//   - S3Storage: any S3-compatible bucket (AWS, R2, MinIO)
//
// Report delivery only reads from storage; Put exists for seeding and tests.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// Storage is the object store interface. All methods honor ctx cancellation.
type Storage interface {
	// Put stores data at key. Returns ErrKeyExists when the key is taken
	// and opts.Overwrite is false.
	Put(ctx context.Context, key string, data io.Reader, opts PutOptions) error

	// Get opens the object at key. The caller must close the reader.
	// Returns ErrNotFound if the key doesn't exist.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)

	// Delete removes the object at key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns a link to the object, presigned when expires > 0 and
	// the backend supports it.
	URL(ctx context.Context, key string, expires time.Duration) (string, error)

	// Exists reports whether an object is stored at key.
	Exists(ctx context.Context, key string) (bool, error)
}

// PutOptions configures how an object is stored.
type PutOptions struct {
	ContentType string // Detected from the key when empty
	MaxSize     int64  // 0 means no limit
	Overwrite   bool
}

// ObjectInfo contains metadata about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	ETag         string
}

// LocalConfig holds configuration for local filesystem storage.
type LocalConfig struct {
	BasePath string // e.g. "./uploads"
	BaseURL  string // e.g. "http://localhost:8080/files"
}

// S3Config holds configuration for an S3-compatible bucket.
type S3Config struct {
	// Endpoint overrides the AWS endpoint, e.g.
	// "https://<account>.r2.cloudflarestorage.com". Empty means AWS.
	Endpoint        string
	Region          string // Defaults to "auto"
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string // Optional public base URL for unsigned links
}

const (
	ProviderLocal = "local"
	ProviderS3    = "s3"
)

// ProgressFileKey builds the key a progress entry file is stored under.
// Format: {ownerID}/progress/{entryID}/{fileName}
func ProgressFileKey(ownerID, entryID uuid.UUID, fileName string) string {
	return fmt.Sprintf("%s/progress/%s/%s", ownerID, entryID, path.Base(fileName))
}
