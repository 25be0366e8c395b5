package summarystore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/cocktail-bac/internal/domain/bac"
)

const (
	defaultMaxEntries = 10_000
	sweepInterval     = time.Minute
)

type summaryRecord struct {
	payload   bac.Summary
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of bac.Store for tests/dev.
// Expired summaries are swept on save and the cache never holds more than maxEntries.
type MemoryStore struct {
	mu         sync.RWMutex
	summaries  map[string]summaryRecord
	tiers      map[bac.RiskLevel]int64
	maxEntries int
	lastSweep  time.Time
	now        func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		summaries:  make(map[string]summaryRecord),
		tiers:      make(map[bac.RiskLevel]int64),
		maxEntries: defaultMaxEntries,
		now:        time.Now,
	}
}

// GetSummary implements bac.Store.
func (s *MemoryStore) GetSummary(_ context.Context, key string) (bac.Summary, bool, error) {
	if key == "" {
		return bac.Summary{}, false, nil
	}
	s.mu.RLock()
	record, ok := s.summaries[key]
	s.mu.RUnlock()
	if !ok {
		return bac.Summary{}, false, nil
	}
	if record.expired(s.now()) {
		s.mu.Lock()
		// A concurrent save may have refreshed the key since the read lock was released.
		if current, ok := s.summaries[key]; ok && current.expired(s.now()) {
			delete(s.summaries, key)
		}
		s.mu.Unlock()
		return bac.Summary{}, false, nil
	}
	return record.payload, true, nil
}

// SaveSummary caches the summary; a non-positive ttl keeps it forever.
func (s *MemoryStore) SaveSummary(_ context.Context, key string, summary bac.Summary, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if now.Sub(s.lastSweep) >= sweepInterval {
		s.sweepLocked(now)
	}
	if _, exists := s.summaries[key]; !exists && len(s.summaries) >= s.maxEntries {
		s.sweepLocked(now)
		if len(s.summaries) >= s.maxEntries {
			s.evictSoonestLocked()
		}
	}

	exp := time.Time{}
	if ttl > 0 {
		exp = now.Add(ttl)
	}
	s.summaries[key] = summaryRecord{payload: summary, expiresAt: exp}
	return nil
}

func (s *MemoryStore) sweepLocked(now time.Time) {
	for key, record := range s.summaries {
		if record.expired(now) {
			delete(s.summaries, key)
		}
	}
	s.lastSweep = now
}

// evictSoonestLocked drops the record closest to expiry; records without a TTL go last.
func (s *MemoryStore) evictSoonestLocked() {
	var (
		victim string
		best   summaryRecord
		found  bool
	)
	for key, record := range s.summaries {
		if !found || earlier(record, best) {
			victim, best, found = key, record, true
		}
	}
	if found {
		delete(s.summaries, victim)
	}
}

func earlier(a, b summaryRecord) bool {
	switch {
	case a.expiresAt.IsZero():
		return false
	case b.expiresAt.IsZero():
		return true
	default:
		return a.expiresAt.Before(b.expiresAt)
	}
}

func (r summaryRecord) expired(now time.Time) bool {
	return !r.expiresAt.IsZero() && r.expiresAt.Before(now)
}

// IncrementTier bumps the counter of level.
func (s *MemoryStore) IncrementTier(_ context.Context, level bac.RiskLevel) error {
	if level == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiers[level]++
	return nil
}

// TierCounts returns a copy of the per-tier counters.
func (s *MemoryStore) TierCounts(_ context.Context) (map[bac.RiskLevel]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[bac.RiskLevel]int64, len(s.tiers))
	for level, count := range s.tiers {
		out[level] = count
	}
	return out, nil
}

var _ bac.Store = (*MemoryStore)(nil)
