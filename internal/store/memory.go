// Package store keeps uploaded exports in memory. There is no
// persistence layer: an export lives until capacity evicts it or the
// process exits.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RichardAtCT/garmin-health-dashboard/internal/domain"
)

// DefaultCapacity bounds the upload history when the caller passes a
// non-positive capacity.
const DefaultCapacity = 16

// Upload pairs a normalized export with its upload metadata.
type Upload struct {
	ID         string
	ReceivedAt time.Time
	Filename   string
	Export     *domain.Export
}

// Store is an in-memory, capacity-bounded upload repository. Safe for
// concurrent use.
type Store struct {
	mu       sync.RWMutex
	capacity int
	uploads  map[string]*Upload
	order    []string
}

// New constructs a Store holding at most capacity uploads.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity: capacity,
		uploads:  make(map[string]*Upload),
	}
}

// Put stores an export under a fresh upload ID, evicting the oldest
// upload once capacity is exceeded.
func (s *Store) Put(filename string, export *domain.Export) *Upload {
	s.mu.Lock()
	defer s.mu.Unlock()

	upload := &Upload{
		ID:         uuid.NewString(),
		ReceivedAt: time.Now().UTC(),
		Filename:   filename,
		Export:     export,
	}

	s.uploads[upload.ID] = upload
	s.order = append(s.order, upload.ID)

	for len(s.order) > s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.uploads, oldest)
	}
	return upload
}

// Get returns the upload for an ID.
func (s *Store) Get(id string) (*Upload, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	upload, ok := s.uploads[id]
	return upload, ok
}

// Len reports the number of retained uploads.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.uploads)
}
