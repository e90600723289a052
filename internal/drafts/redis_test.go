package drafts

import (
	"context"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/gstbill-erp/gstbill/internal/billing"
	"github.com/gstbill-erp/gstbill/internal/shared"
)

func newTestRepo(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRepository(client, slog.Default()), mr
}

func sampleSnapshot() Snapshot {
	items := billing.RecomputeLines([]billing.LineItem{
		{LineID: "a", ProductID: 1, Name: "Soap", HSNCode: "3401", Quantity: 3, Unit: "pcs", Rate: 100, GSTPercent: 18, DiscountPercent: 10, StockQuantity: 12},
	})
	return Snapshot{
		Customer:    billing.Customer{Name: "Asha Traders", Mobile: "9876543210", Date: "2025-06-01", InvoiceNumber: "INV-001"},
		Products:    items,
		SummaryData: billing.Aggregate(items, billing.Modifiers{DiscountType: billing.DiscountPercent, DiscountPercent: 10, OverallGSTPercent: 18}),
		CreatedAt:   time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestSaveAllocatesSequentialKeys(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	key, err := repo.Save(ctx, 42, sampleSnapshot())
	require.NoError(t, err)
	require.Equal(t, "draft_42_1", key)

	key, err = repo.Save(ctx, 42, sampleSnapshot())
	require.NoError(t, err)
	require.Equal(t, "draft_42_2", key)
}

func TestSaveDoesNotReuseSequenceAfterDeletion(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Save(ctx, 42, sampleSnapshot())
	require.NoError(t, err)
	k2, err := repo.Save(ctx, 42, sampleSnapshot())
	require.NoError(t, err)

	require.NoError(t, repo.DeleteOne(ctx, 42, "draft_42_1"))

	k3, err := repo.Save(ctx, 42, sampleSnapshot())
	require.NoError(t, err)
	require.Equal(t, "draft_42_3", k3)
	require.NotEqual(t, k2, k3)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	snap := sampleSnapshot()
	key, err := repo.Save(ctx, 7, snap)
	require.NoError(t, err)

	loaded, err := repo.LoadOne(ctx, 7, key)
	require.NoError(t, err)
	require.Equal(t, key, loaded.Key)
	require.Equal(t, snap, loaded.Snapshot)
}

func TestListSkipsCorruptEntries(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Save(ctx, 42, sampleSnapshot())
	require.NoError(t, err)
	require.NoError(t, mr.Set("draft_42_2", "{not json"))

	list, err := repo.List(ctx, 42)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "draft_42_1", list[0].Key)

	// Corrupt entry is skipped, not deleted.
	require.True(t, mr.Exists("draft_42_2"))
}

func TestLoadOneRejectsForeignKey(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Save(ctx, 7, sampleSnapshot())
	require.NoError(t, err)

	_, err = repo.LoadOne(ctx, 42, "draft_7_1")
	require.ErrorIs(t, err, shared.ErrNotOwner)

	err = repo.DeleteOne(ctx, 42, "draft_7_1")
	require.ErrorIs(t, err, shared.ErrNotOwner)

	// Nothing was removed.
	list, err := repo.List(ctx, 7)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestClearAllScopedToUser(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Save(ctx, 42, sampleSnapshot())
	require.NoError(t, err)
	_, err = repo.Save(ctx, 42, sampleSnapshot())
	require.NoError(t, err)
	_, err = repo.Save(ctx, 4, sampleSnapshot())
	require.NoError(t, err)

	removed, err := repo.ClearAll(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, 2, removed)

	list, err := repo.List(ctx, 42)
	require.NoError(t, err)
	require.Empty(t, list)

	other, err := repo.List(ctx, 4)
	require.NoError(t, err)
	require.Len(t, other, 1)
}

func TestDeleteOneMissingKey(t *testing.T) {
	repo, _ := newTestRepo(t)
	err := repo.DeleteOne(context.Background(), 42, "draft_42_9")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListOrderedBySequence(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 11; i++ {
		_, err := repo.Save(ctx, 42, sampleSnapshot())
		require.NoError(t, err)
	}

	list, err := repo.List(ctx, 42)
	require.NoError(t, err)
	require.Len(t, list, 11)
	require.Equal(t, "draft_42_1", list[0].Key)
	require.Equal(t, "draft_42_11", list[10].Key)
}
