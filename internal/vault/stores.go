package vault

import (
	"context"

	"github.com/Lllllllleong/pdfvault/internal/models"
)

// ObjectStore persists rendition bytes and returns a retrieval location
// for them. Implementations must not overwrite an existing object.
type ObjectStore interface {
	Put(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}

// RecordStore is the system of record for document records, a linearizable
// key-value store keyed by document id.
type RecordStore interface {
	// CreateRecord writes the record only if id is absent. It returns an
	// error matching ErrDuplicateID when a record already exists, which
	// makes duplicate detection race-free.
	CreateRecord(ctx context.Context, id string, record *models.DocumentRecord) error

	// GetRecord returns an error matching ErrNotFound when id is absent.
	GetRecord(ctx context.Context, id string) (*models.DocumentRecord, error)

	// IncrementAccessCount bumps the access counter by one atomically at
	// the storage layer. Read-modify-write in the caller would lose
	// updates under concurrent access.
	IncrementAccessCount(ctx context.Context, id string) error
}
