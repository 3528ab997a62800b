// Package status maintains the last known per-house registration snapshot.
// The snapshot is read from the primary store's aggregate view and replaced
// wholesale on every refresh; it is never patched incrementally, so no
// ordering guarantee between refreshes is needed.
package status

import (
	"context"
	"log"
	"sync"

	"github.com/onamfest/house-registration/internal/model"
)

// Fetcher is the point-in-time read of all houses' aggregate state.
// Implemented by repository.StatusRepo.
type Fetcher interface {
	FetchAll(ctx context.Context) (map[string]model.HouseStatus, error)
}

// Reader caches the latest house status snapshot. Refresh swaps the whole
// map under the lock; lookups are pure reads of the last snapshot and
// default to zero values for houses the snapshot does not know.
type Reader struct {
	fetcher Fetcher

	mu       sync.RWMutex
	snapshot map[string]model.HouseStatus
}

// NewReader returns a Reader with an empty snapshot. Callers should issue
// an initial Refresh before serving gating decisions.
func NewReader(f Fetcher) *Reader {
	return &Reader{fetcher: f, snapshot: map[string]model.HouseStatus{}}
}

// Refresh re-reads the full aggregate and replaces the snapshot. On fetch
// failure the previous snapshot is kept, the error is logged, and also
// returned so callers that care (startup, tests) can see it; subscription
// callers ignore it.
func (r *Reader) Refresh(ctx context.Context) error {
	statuses, err := r.fetcher.FetchAll(ctx)
	if err != nil {
		log.Printf("status: fetch failed, keeping previous snapshot: %v", err)
		return err
	}
	r.mu.Lock()
	r.snapshot = statuses
	r.mu.Unlock()
	return nil
}

// IsComplete reports whether the house has completed its registration in
// the last snapshot. Unknown houses are not complete.
func (r *Reader) IsComplete(house string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot[house].IsCompleted
}

// Count returns the registered participant count for the house in the
// last snapshot, zero for unknown houses.
func (r *Reader) Count(house string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot[house].ParticipantsCount
}

// Snapshot returns the last known status of every house in display order.
// Houses missing from the snapshot appear with zero values so the form
// dashboard always renders all five.
func (r *Reader) Snapshot() []model.HouseStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.HouseStatus, 0, len(model.Houses))
	for _, h := range model.Houses {
		if st, ok := r.snapshot[h]; ok {
			out = append(out, st)
			continue
		}
		out = append(out, model.HouseStatus{House: h})
	}
	return out
}
