package data

import (
	"context"
	"sort"
	"sync"

	"github.com/redditor-labs/redditor/internal/biz/repo"
)

// memoryStore is an in-process StoreRepo, used by tests and by the
// "memory" backend. State does not survive a restart.
type memoryStore struct {
	mu       sync.Mutex
	sets     map[string][]repo.ScoredMember
	counters map[string]int64
}

// NewMemoryStore creates an in-memory store
func NewMemoryStore() repo.StoreRepo {
	return &memoryStore{
		sets:     make(map[string][]repo.ScoredMember),
		counters: make(map[string]int64),
	}
}

func (s *memoryStore) IncrementCounter(ctx context.Context, name string, by int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[name] += by
	return nil
}

func (s *memoryStore) Counter(ctx context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[name], nil
}

func (s *memoryStore) OrderedInsert(ctx context.Context, key string, score float64, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := s.sets[key]
	// Re-inserting an existing member updates its score, matching
	// sorted-set semantics
	for i, m := range members {
		if m.Member == member {
			members[i].Score = score
			s.sortLocked(key, members)
			return nil
		}
	}

	members = append(members, repo.ScoredMember{Score: score, Member: member})
	s.sortLocked(key, members)
	return nil
}

func (s *memoryStore) sortLocked(key string, members []repo.ScoredMember) {
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Score < members[j].Score
	})
	s.sets[key] = members
}

func (s *memoryStore) Count(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.sets[key])), nil
}

func (s *memoryStore) TrimLowestScored(ctx context.Context, key string, start, stop int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := s.sets[key]
	n := int64(len(members))
	if n == 0 || start > stop || start >= n {
		return nil
	}
	if stop >= n {
		stop = n - 1
	}

	trimmed := make([]repo.ScoredMember, 0, n-(stop-start+1))
	trimmed = append(trimmed, members[:start]...)
	trimmed = append(trimmed, members[stop+1:]...)
	s.sets[key] = trimmed
	return nil
}

func (s *memoryStore) RangeByScore(ctx context.Context, key string) ([]repo.ScoredMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := s.sets[key]
	out := make([]repo.ScoredMember, len(members))
	copy(out, members)
	return out, nil
}
