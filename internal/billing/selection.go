package billing

import (
	"sort"

	"github.com/google/uuid"
)

// SelectionMap mirrors the non-blank line items keyed by product id. It is a
// pure projection of the line-item list, computed on read; the ordered list
// stays the single source of truth.
type SelectionMap map[int64]LineItem

// Sync projects the current selection state out of the line-item list. Rows
// without a product are ignored. When the same product appears on several
// rows the last row wins.
func Sync(items []LineItem) SelectionMap {
	sel := make(SelectionMap, len(items))
	for _, li := range items {
		if li.Blank() {
			continue
		}
		sel[li.ProductID] = li
	}
	return sel
}

// Merge folds an edited selection map back into the line-item list after a
// bulk product selection is confirmed:
//
//   - rows whose product was deselected are dropped,
//   - rows still selected are refreshed with the map's latest state while
//     keeping their line id and position,
//   - map entries with no existing row are appended as new rows,
//   - blank scratch rows are discarded.
//
// Derived fields are recomputed on every surviving row.
func Merge(sel SelectionMap, items []LineItem) []LineItem {
	merged := make([]LineItem, 0, len(sel))
	seen := make(map[int64]bool, len(sel))

	for _, li := range items {
		if li.Blank() {
			continue
		}
		entry, ok := sel[li.ProductID]
		if !ok {
			continue
		}
		entry.LineID = li.LineID
		entry.ProductID = li.ProductID
		merged = append(merged, entry)
		seen[li.ProductID] = true
	}

	appended := make([]LineItem, 0, len(sel))
	for productID, entry := range sel {
		if seen[productID] {
			continue
		}
		entry.ProductID = productID
		if entry.LineID == "" {
			entry.LineID = uuid.NewString()
		}
		appended = append(appended, entry)
	}
	sort.Slice(appended, func(i, j int) bool {
		return appended[i].ProductID < appended[j].ProductID
	})
	merged = append(merged, appended...)

	return RecomputeLines(merged)
}
