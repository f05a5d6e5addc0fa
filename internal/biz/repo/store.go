package repo

import (
	"context"
	"errors"
)

// ErrStorageUnavailable indicates the backing store could not be reached.
// Callers treat it as non-fatal and proceed without history or counters.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ScoredMember is one member of an ordered set with its score
type ScoredMember struct {
	Score  float64
	Member string
}

// StoreRepo is the key-value/ordered-set store interface.
// Correctness of concurrent access relies on the backend's per-key
// atomic primitives; no cross-invocation lock is held.
type StoreRepo interface {
	// IncrementCounter atomically adds by to the named counter
	IncrementCounter(ctx context.Context, name string, by int64) error

	// Counter reads the named counter, 0 if absent
	Counter(ctx context.Context, name string) (int64, error)

	// OrderedInsert inserts member into the ordered set at key
	OrderedInsert(ctx context.Context, key string, score float64, member string) error

	// Count returns the number of members in the ordered set at key
	Count(ctx context.Context, key string) (int64, error)

	// TrimLowestScored removes members ranked start..stop (ascending by
	// score, 0-based, inclusive) from the ordered set at key
	TrimLowestScored(ctx context.Context, key string, start, stop int64) error

	// RangeByScore returns all members of the ordered set at key in
	// ascending score order
	RangeByScore(ctx context.Context, key string) ([]ScoredMember, error)
}
