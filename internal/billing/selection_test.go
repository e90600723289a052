package billing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func line(lineID string, productID int64, qty, rate float64) LineItem {
	li := LineItem{
		LineID:    lineID,
		ProductID: productID,
		Quantity:  qty,
		Rate:      rate,
	}
	li.Amount, li.PriceIncludingGST = ComputeLine(li.Quantity, li.Rate, li.GSTPercent, li.DiscountPercent)
	return li
}

func TestSyncIgnoresBlankRows(t *testing.T) {
	items := []LineItem{
		line("a", 1, 2, 100),
		{LineID: "scratch"},
		line("b", 2, 1, 50),
	}

	sel := Sync(items)
	require.Len(t, sel, 2)
	require.Equal(t, items[0], sel[1])
	require.Equal(t, items[2], sel[2])
}

func TestSyncLastRowWinsForDuplicateProduct(t *testing.T) {
	items := []LineItem{
		line("a", 1, 2, 100),
		line("b", 1, 7, 100),
	}
	sel := Sync(items)
	require.Len(t, sel, 1)
	require.Equal(t, 7.0, sel[1].Quantity)
}

func TestMergeRoundTripIsIdempotent(t *testing.T) {
	items := []LineItem{
		line("a", 1, 2, 100),
		{LineID: "scratch"},
		line("b", 2, 1, 50),
	}

	merged := Merge(Sync(items), items)

	require.Equal(t, []LineItem{items[0], items[2]}, merged)
}

func TestMergeDropsDeselectedAndAppendsNew(t *testing.T) {
	items := []LineItem{
		line("a", 1, 2, 100),
		line("b", 2, 1, 50),
	}

	sel := Sync(items)
	delete(sel, 1)                 // deselect product 1
	sel[3] = line("", 3, 4, 25)    // newly picked in the modal
	entry := sel[2]                // bump quantity on a kept row
	entry.Quantity = 6
	sel[2] = entry

	merged := Merge(sel, items)

	require.Len(t, merged, 2)
	require.Equal(t, int64(2), merged[0].ProductID)
	require.Equal(t, "b", merged[0].LineID)
	require.Equal(t, 6.0, merged[0].Quantity)
	require.Equal(t, 300.00, merged[0].Amount)
	require.Equal(t, int64(3), merged[1].ProductID)
	require.NotEmpty(t, merged[1].LineID)
	require.Equal(t, 100.00, merged[1].Amount)
}

func TestMergeSelectionInvariant(t *testing.T) {
	items := []LineItem{
		line("a", 1, 2, 100),
		{LineID: "scratch"},
	}
	sel := Sync(items)
	sel[9] = line("", 9, 1, 10)

	merged := Merge(sel, items)

	got := make(map[int64]bool)
	for _, li := range merged {
		require.False(t, li.Blank())
		got[li.ProductID] = true
	}
	want := make(map[int64]bool)
	for id := range sel {
		want[id] = true
	}
	require.Equal(t, want, got)
}
