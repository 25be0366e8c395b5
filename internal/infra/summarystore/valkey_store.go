package summarystore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/cocktail-bac/internal/domain/bac"
)

// ValkeyStore persists summaries and tier counters in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "bac"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) GetSummary(ctx context.Context, key string) (bac.Summary, bool, error) {
	if key == "" {
		return bac.Summary{}, false, nil
	}
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.summaryKey(key)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return bac.Summary{}, false, nil
		}
		return bac.Summary{}, false, err
	}
	var summary bac.Summary
	if err := json.Unmarshal([]byte(payload), &summary); err != nil {
		return bac.Summary{}, false, err
	}
	return summary, true, nil
}

func (s *ValkeyStore) SaveSummary(ctx context.Context, key string, summary bac.Summary, ttl time.Duration) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.summaryKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) IncrementTier(ctx context.Context, level bac.RiskLevel) error {
	if level == "" {
		return nil
	}
	return s.client.Do(ctx, s.client.B().Hincrby().Key(s.tiersKey()).Field(string(level)).Increment(1).Build()).Error()
}

func (s *ValkeyStore) TierCounts(ctx context.Context) (map[bac.RiskLevel]int64, error) {
	raw, err := s.client.Do(ctx, s.client.B().Hgetall().Key(s.tiersKey()).Build()).AsIntMap()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return map[bac.RiskLevel]int64{}, nil
		}
		return nil, err
	}
	out := make(map[bac.RiskLevel]int64, len(raw))
	for level, count := range raw {
		out[bac.RiskLevel(level)] = count
	}
	return out, nil
}

func (s *ValkeyStore) summaryKey(key string) string {
	return fmt.Sprintf("%s:summary:%s", s.prefix, key)
}

func (s *ValkeyStore) tiersKey() string {
	return fmt.Sprintf("%s:tiers", s.prefix)
}

var _ bac.Store = (*ValkeyStore)(nil)
