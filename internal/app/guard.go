package app

import (
	"context"
	"sync"
	"sync/atomic"
)

// Guard tracks which records have a request outstanding.
type Guard interface {
	// Acquire marks id as in flight. It returns false if it already was.
	Acquire(ctx context.Context, id string) bool
	// Release clears id so it may be submitted again.
	Release(ctx context.Context, id string)
	// InFlight reports whether id is currently held.
	InFlight(id string) bool
	Size() int64
}

type inMemoryGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
	size atomic.Int64
}

// NewGuard returns an empty in-memory Guard safe for concurrent use.
func NewGuard() Guard {
	return &inMemoryGuard{held: make(map[string]struct{})}
}

func (g *inMemoryGuard) Acquire(_ context.Context, id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.held[id]; ok {
		return false
	}
	g.held[id] = struct{}{}
	g.size.Add(1)
	return true
}

func (g *inMemoryGuard) Release(_ context.Context, id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.held[id]; ok {
		delete(g.held, id)
		g.size.Add(-1)
	}
}

func (g *inMemoryGuard) InFlight(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.held[id]
	return ok
}

func (g *inMemoryGuard) Size() int64 { return g.size.Load() }
