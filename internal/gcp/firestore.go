package gcp

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Lllllllleong/pdfvault/internal/models"
	"github.com/Lllllllleong/pdfvault/internal/vault"
)

// NewFirestoreClient creates and returns a new Firestore client for the
// given project ID. It centralizes client creation for all services.
func NewFirestoreClient(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a firestore client")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return client, nil
}

// DocumentStore implements vault.RecordStore on a Firestore collection.
type DocumentStore struct {
	client     *firestore.Client
	collection string
}

func NewDocumentStore(client *firestore.Client, collection string) *DocumentStore {
	return &DocumentStore{client: client, collection: collection}
}

// CreateRecord writes the record with a create precondition. Firestore
// rejects the write atomically when the document already exists, which is
// what makes duplicate-id detection race-free.
func (s *DocumentStore) CreateRecord(ctx context.Context, id string, record *models.DocumentRecord) error {
	_, err := s.client.Collection(s.collection).Doc(id).Create(ctx, record)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("%w: %q", vault.ErrDuplicateID, id)
		}
		return fmt.Errorf("failed to create document record %q: %w", id, err)
	}
	return nil
}

func (s *DocumentStore) GetRecord(ctx context.Context, id string) (*models.DocumentRecord, error) {
	snap, err := s.client.Collection(s.collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %q", vault.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load document record %q: %w", id, err)
	}

	var record models.DocumentRecord
	if err := snap.DataTo(&record); err != nil {
		return nil, fmt.Errorf("failed to decode document record %q: %w", id, err)
	}
	return &record, nil
}

// IncrementAccessCount bumps the counter server-side. Concurrent accesses
// against the same document never lose updates this way.
func (s *DocumentStore) IncrementAccessCount(ctx context.Context, id string) error {
	_, err := s.client.Collection(s.collection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "accessCount", Value: firestore.Increment(1)},
	})
	if err != nil {
		return fmt.Errorf("failed to increment access count for %q: %w", id, err)
	}
	return nil
}
