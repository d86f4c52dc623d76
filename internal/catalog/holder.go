package catalog

import (
	"context"
	"sync"
	"time"
)

// Holder keeps the catalog currently served and swaps it on reload.
type Holder struct {
	mu       sync.RWMutex
	current  *Catalog
	source   Source
	loadedAt time.Time
}

func NewHolder(source Source) *Holder {
	return &Holder{source: source, current: &Catalog{}}
}

// Get returns the current catalog. Never nil.
func (h *Holder) Get() *Catalog {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Set replaces the current catalog.
func (h *Holder) Set(c *Catalog) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = c
	h.loadedAt = time.Now()
}

// LoadedAt returns when the current catalog was installed.
func (h *Holder) LoadedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loadedAt
}

// Reload drops any cached copy, loads from the source and installs the
// result. The previous catalog stays in place if loading fails.
func (h *Holder) Reload(ctx context.Context) (*Catalog, error) {
	if inv, ok := h.source.(interface{ Invalidate(context.Context) error }); ok {
		if err := inv.Invalidate(ctx); err != nil {
			return nil, err
		}
	}
	return h.Refresh(ctx)
}

// Refresh loads from the source, cache included, and installs the result.
func (h *Holder) Refresh(ctx context.Context) (*Catalog, error) {
	c, err := h.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	h.Set(c)
	return c, nil
}

func (h *Holder) Source() Source {
	return h.source
}
