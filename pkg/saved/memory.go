package saved

import (
	"context"
	"sync"
)

// MemoryStore keeps banners in process memory. It suits the CLI and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	byCode  map[string]*Banner
	ordered []string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byCode: make(map[string]*Banner)}
}

// Insert implements [Store].
func (s *MemoryStore) Insert(_ context.Context, b *Banner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byCode[b.Mnemonic]; ok {
		return ErrDuplicate
	}
	s.byCode[b.Mnemonic] = clone(b)
	s.ordered = append(s.ordered, b.Mnemonic)
	return nil
}

// LookupByMnemonic implements [Store].
func (s *MemoryStore) LookupByMnemonic(_ context.Context, code string) (*Banner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.byCode[code]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(b), nil
}

// List returns every banner in insertion order.
func (s *MemoryStore) List() []*Banner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Banner, 0, len(s.ordered))
	for _, code := range s.ordered {
		out = append(out, clone(s.byCode[code]))
	}
	return out
}

// Close implements [Store].
func (s *MemoryStore) Close(context.Context) error { return nil }

func clone(b *Banner) *Banner {
	c := *b
	c.Settings = make(map[string]string, len(b.Settings))
	for k, v := range b.Settings {
		c.Settings[k] = v
	}
	return &c
}

var _ Store = (*MemoryStore)(nil)
