package service

import (
	"sync"

	"github.com/mcbanners/banners/pkg/backend"
)

// Registry maps each backend to its adapter.
type Registry struct {
	mu       sync.RWMutex
	adapters map[backend.Backend]any
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[backend.Backend]any)}
}

// Register sets the adapter for b, replacing any previous one.
func (r *Registry) Register(b backend.Backend, adapter any) {
	r.mu.Lock()
	r.adapters[b] = adapter
	r.mu.Unlock()
}

// Backends returns the backends with a registered adapter.
func (r *Registry) Backends() []backend.Backend {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []backend.Backend
	for _, b := range backend.All {
		if _, ok := r.adapters[b]; ok {
			out = append(out, b)
		}
	}
	return out
}

// capability returns b's adapter as T, if it implements it.
func capability[T any](r *Registry, b backend.Backend) (T, bool) {
	r.mu.RLock()
	a, ok := r.adapters[b]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := a.(T)
	return t, ok
}
