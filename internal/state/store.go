package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/takedown/internal/athlete"
)

// Snapshot represents the latest catalog available to the UI.
type Snapshot struct {
	Catalog             athlete.Catalog
	HasCatalog          bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive refresh failures
	Generation          int // Incremented on every successful update
}

// IsOffline returns true when the source has failed on multiple refreshes.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored catalog. When err is non-nil the previous catalog
// is kept but the error is recorded for visibility.
func (s *Store) Update(cat *athlete.Catalog, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if cat != nil {
		s.snapshot.Catalog = cat.Clone()
		s.snapshot.HasCatalog = true
	} else {
		s.snapshot.Catalog = athlete.Catalog{}
		s.snapshot.HasCatalog = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
	s.snapshot.Generation++
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Catalog = s.snapshot.Catalog.Clone()
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
