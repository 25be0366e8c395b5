package summarystore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/cocktail-bac/internal/domain/bac"
)

func TestMemoryStoreSummaryRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	summary := bac.Summary{BAC: 0.0004, BACPercent: "0.04", HoursUntilSober: 0.0004 / 0.015, Risk: bac.RiskTier{Level: bac.RiskSafe}}

	_, ok, err := store.GetSummary(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.SaveSummary(ctx, "k", summary, 0))
	got, ok, err := store.GetSummary(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, summary, got)
}

func TestMemoryStoreSummaryExpires(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.SaveSummary(ctx, "k", bac.Summary{BAC: 0.01}, time.Minute))
	_, ok, _ := store.GetSummary(ctx, "k")
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, err := store.GetSummary(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreSweepsExpiredOnSave(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		require.NoError(t, store.SaveSummary(ctx, fmt.Sprintf("k%d", i), bac.Summary{BAC: 0.01}, time.Minute))
	}
	require.NoError(t, store.SaveSummary(ctx, "pinned", bac.Summary{BAC: 0.02}, 0))
	require.Len(t, store.summaries, 1001)

	now = now.Add(48 * time.Hour)
	for i := 0; i < 10; i++ {
		require.NoError(t, store.SaveSummary(ctx, fmt.Sprintf("fresh%d", i), bac.Summary{BAC: 0.01}, time.Minute))
	}
	require.Len(t, store.summaries, 11)

	_, ok, err := store.GetSummary(ctx, "pinned")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMemoryStoreEvictsSoonestWhenFull(t *testing.T) {
	store := NewMemoryStore()
	store.maxEntries = 3
	ctx := context.Background()
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.SaveSummary(ctx, "short", bac.Summary{}, time.Minute))
	require.NoError(t, store.SaveSummary(ctx, "forever", bac.Summary{}, 0))
	require.NoError(t, store.SaveSummary(ctx, "long", bac.Summary{}, time.Hour))

	require.NoError(t, store.SaveSummary(ctx, "long", bac.Summary{BAC: 0.03}, time.Hour))
	require.Len(t, store.summaries, 3, "overwriting an existing key evicts nothing")

	require.NoError(t, store.SaveSummary(ctx, "new", bac.Summary{}, time.Hour))
	require.Len(t, store.summaries, 3)
	require.NotContains(t, store.summaries, "short")
	require.Contains(t, store.summaries, "forever")

	require.NoError(t, store.SaveSummary(ctx, "newer", bac.Summary{}, time.Hour))
	require.Len(t, store.summaries, 3)
	require.Contains(t, store.summaries, "forever")
}

func TestMemoryStoreExpiredReadKeepsConcurrentRefresh(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.SaveSummary(ctx, "k", bac.Summary{BAC: 0.01}, time.Minute))
	now = now.Add(2 * time.Minute)

	fresh := bac.Summary{BAC: 0.05, BACPercent: "5.00"}
	refreshed := false
	store.now = func() time.Time {
		// Runs between the read lock and the write lock inside GetSummary.
		if !refreshed {
			refreshed = true
			require.NoError(t, store.SaveSummary(ctx, "k", fresh, time.Hour))
		}
		return now
	}

	_, ok, err := store.GetSummary(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
	require.True(t, refreshed)

	got, ok, err := store.GetSummary(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, fresh, got)
}

func TestMemoryStoreTierCounts(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.IncrementTier(ctx, bac.RiskSafe))
	require.NoError(t, store.IncrementTier(ctx, bac.RiskSafe))
	require.NoError(t, store.IncrementTier(ctx, bac.RiskDanger))
	require.NoError(t, store.IncrementTier(ctx, ""))

	counts, err := store.TierCounts(ctx)
	require.NoError(t, err)
	require.Equal(t, map[bac.RiskLevel]int64{bac.RiskSafe: 2, bac.RiskDanger: 1}, counts)

	counts[bac.RiskSafe] = 100
	again, _ := store.TierCounts(ctx)
	require.Equal(t, int64(2), again[bac.RiskSafe])
}
