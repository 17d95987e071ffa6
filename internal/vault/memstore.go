package vault

import (
	"context"
	"fmt"
	"sync"

	"github.com/Lllllllleong/pdfvault/internal/models"
)

// In-memory store implementations. They back tests and local development;
// production uses the Firestore and GCS implementations in internal/gcp.

// MemObjectStore keeps rendition bytes in a map. Retrieval locations are
// mem:// pseudo-URLs.
type MemObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemObjectStore() *MemObjectStore {
	return &MemObjectStore{objects: make(map[string][]byte)}
}

func (s *MemObjectStore) Put(_ context.Context, objectName string, data []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.objects[objectName]; exists {
		return "", fmt.Errorf("object %s already exists", objectName)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[objectName] = buf
	return "mem://" + objectName, nil
}

// Object returns the stored bytes for objectName, if any.
func (s *MemObjectStore) Object(objectName string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[objectName]
	return data, ok
}

// Len reports the number of stored objects.
func (s *MemObjectStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// MemRecordStore keeps document records in a map with the same atomicity
// guarantees the real store provides: create-if-absent and counter
// increments are atomic under the lock.
type MemRecordStore struct {
	mu      sync.Mutex
	records map[string]*models.DocumentRecord
}

func NewMemRecordStore() *MemRecordStore {
	return &MemRecordStore{records: make(map[string]*models.DocumentRecord)}
}

func (s *MemRecordStore) CreateRecord(_ context.Context, id string, record *models.DocumentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	clone := *record
	s.records[id] = &clone
	return nil
}

func (s *MemRecordStore) GetRecord(_ context.Context, id string) (*models.DocumentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	clone := *record
	return &clone, nil
}

func (s *MemRecordStore) IncrementAccessCount(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	record.AccessCount++
	return nil
}
