package athlete

import (
	"context"
	"fmt"
	"sync"
)

// Source provides read-only access to the catalog. The UI depends only on this
// interface so the fixture can be replaced by a real backend.
type Source interface {
	FetchCatalog(ctx context.Context) (*Catalog, error)
	LookupProfile(ctx context.Context, ref string) (*Profile, error)
}

var (
	_ Source = (*Static)(nil)
	_ Source = (*Client)(nil)
)

// Static serves an in-memory catalog.
type Static struct {
	mu      sync.RWMutex
	catalog Catalog
}

// NewStatic wraps cat. The catalog is copied.
func NewStatic(cat Catalog) *Static {
	return &Static{catalog: cat.Clone()}
}

// Replace swaps the served catalog.
func (s *Static) Replace(cat Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = cat.Clone()
}

// FetchCatalog returns a copy of the current catalog.
func (s *Static) FetchCatalog(ctx context.Context) (*Catalog, error) {
	if s == nil {
		return nil, fmt.Errorf("source is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	cat := s.catalog.Clone()
	return &cat, nil
}

// LookupProfile resolves any reference (flo360 id, profile URL, provider id)
// to the primary profile.
func (s *Static) LookupProfile(ctx context.Context, ref string) (*Profile, error) {
	if s == nil {
		return nil, fmt.Errorf("source is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog.Primary.ID == "" {
		return nil, fmt.Errorf("lookup %q: %w", ref, ErrNotFound)
	}
	p := s.catalog.Primary
	return &p, nil
}
