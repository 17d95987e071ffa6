package gcp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/googleapi"
)

// DefaultSignedURLTTL matches the one-week retrieval links the service
// hands out.
const DefaultSignedURLTTL = 7 * 24 * time.Hour

// BucketStore implements vault.ObjectStore on a GCS bucket. Retrieval
// locations are V4 signed URLs.
type BucketStore struct {
	client *storage.Client
	bucket string
	urlTTL time.Duration
}

func NewBucketStore(client *storage.Client, bucket string, urlTTL time.Duration) *BucketStore {
	if urlTTL <= 0 {
		urlTTL = DefaultSignedURLTTL
	}
	return &BucketStore{client: client, bucket: bucket, urlTTL: urlTTL}
}

// Put writes the object only if it doesn't already exist and returns a
// signed retrieval URL. Each object carries a fresh download token in its
// metadata.
func (s *BucketStore) Put(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	obj := s.client.Bucket(s.bucket).Object(objectName)

	writer := obj.If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	writer.ContentType = contentType
	writer.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": uuid.NewString(),
	}

	if _, err := io.Copy(writer, bytes.NewReader(data)); err != nil {
		_ = writer.Close()
		return "", fmt.Errorf("failed to write GCS object %s: %w", objectName, err)
	}
	if err := writer.Close(); err != nil {
		if gerr, ok := err.(*googleapi.Error); ok && gerr.Code == 412 {
			return "", fmt.Errorf("object %s already exists: %w", objectName, err)
		}
		return "", fmt.Errorf("failed to finalize GCS write for %s: %w", objectName, err)
	}

	url, err := s.client.Bucket(s.bucket).SignedURL(objectName, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(s.urlTTL),
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign URL for %s: %w", objectName, err)
	}

	slog.Info("Stored rendition object.", "gcsObject", objectName, "bytes", len(data))
	return url, nil
}
