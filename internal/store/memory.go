package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kzmarket/productseed/internal/product"
)

// MemoryStore keeps documents in a map. It backs --dry-run and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	docs   map[string]product.Product
	now    func() time.Time
	writes int

	failOn  int
	failErr error
}

type MemoryOption func(*MemoryStore)

// WithClock replaces the clock used for server-assigned timestamps
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// WithFailure makes the n-th Upsert call (1-based) fail with err without storing anything
func WithFailure(n int, err error) MemoryOption {
	return func(s *MemoryStore) {
		s.failOn = n
		s.failErr = err
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		docs: make(map[string]product.Product),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Upsert(ctx context.Context, p product.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.writes++
	if s.failOn > 0 && s.writes == s.failOn {
		return fmt.Errorf("upsert %s: %w", p.Barcode, s.failErr)
	}

	ts := s.now()
	p.CreatedAt = ts
	p.UpdatedAt = ts
	s.docs[p.Barcode] = p
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, barcode string) (product.Product, error) {
	if err := ctx.Err(); err != nil {
		return product.Product{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.docs[barcode]
	if !ok {
		return product.Product{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) Delete(ctx context.Context, barcode string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, barcode)
	return nil
}

func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.docs)), nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// Barcodes returns the stored document keys in sorted order
func (s *MemoryStore) Barcodes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.docs))
	for k := range s.docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Writes returns how many Upsert calls reached the store, failed ones included
func (s *MemoryStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.writes
}
