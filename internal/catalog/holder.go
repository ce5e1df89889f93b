package catalog

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Holder owns the current catalog snapshot. Refresh replaces it from
// the provider; concurrent refreshes for the same holder collapse to a
// single upstream call via singleflight.
type Holder struct {
	provider Provider
	sfg      singleflight.Group
	snap     atomic.Pointer[Snapshot]
}

func NewHolder(provider Provider) *Holder {
	return &Holder{provider: provider}
}

// Current returns the last successfully fetched snapshot, or false if
// no fetch has succeeded yet.
func (h *Holder) Current() (*Snapshot, bool) {
	s := h.snap.Load()
	return s, s != nil
}

func (h *Holder) Refresh(ctx context.Context) (*Snapshot, error) {
	v, err, _ := h.sfg.Do("catalog", func() (interface{}, error) {
		products, err := h.provider.FetchAll(ctx)
		if err != nil {
			return nil, err
		}
		snap := NewSnapshot(products)
		h.snap.Store(snap)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}
