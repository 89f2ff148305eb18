// v1
// internal/api/store.go
package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/timeisseler/ferienplanung/internal/matcher"
	"github.com/timeisseler/ferienplanung/internal/profile"
)

// StoredProfile is one uploaded and framed source profile.
type StoredProfile struct {
	ID         uuid.UUID
	Frame      *profile.Frame
	UploadedAt time.Time
}

// ProfileStore keeps uploaded profiles in memory for the service lifetime.
type ProfileStore struct {
	mu sync.RWMutex
	m  map[uuid.UUID]*StoredProfile
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{m: make(map[uuid.UUID]*StoredProfile)}
}

// Add frames are immutable after upload, so the store hands out shared
// pointers without copying.
func (s *ProfileStore) Add(frame *profile.Frame) *StoredProfile {
	p := &StoredProfile{ID: uuid.New(), Frame: frame, UploadedAt: time.Now().UTC()}
	s.mu.Lock()
	s.m[p.ID] = p
	s.mu.Unlock()
	return p
}

func (s *ProfileStore) Get(id uuid.UUID) (*StoredProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	return p, ok
}

// ProjectionRecord is one finished target-year projection.
type ProjectionRecord struct {
	ID        uuid.UUID
	ProfileID uuid.UUID
	Region    string
	Year      int
	Profile   *profile.Projected
	Matches   []matcher.Result
	CreatedAt time.Time
}

// ProjectionStore keeps finished projections in memory.
type ProjectionStore struct {
	mu sync.RWMutex
	m  map[uuid.UUID]*ProjectionRecord
}

func NewProjectionStore() *ProjectionStore {
	return &ProjectionStore{m: make(map[uuid.UUID]*ProjectionRecord)}
}

func (s *ProjectionStore) Add(rec *ProjectionRecord) {
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now().UTC()
	s.mu.Lock()
	s.m[rec.ID] = rec
	s.mu.Unlock()
}

func (s *ProjectionStore) Get(id uuid.UUID) (*ProjectionRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.m[id]
	return rec, ok
}
