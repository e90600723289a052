// Package drafts persists named snapshots of in-progress invoices, scoped
// to the user who saved them.
package drafts

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gstbill-erp/gstbill/internal/billing"
)

// Snapshot is the saved working state of an invoice in progress. Loading a
// draft replaces the working state wholesale; nothing is merged.
type Snapshot struct {
	Customer    billing.Customer    `json:"customer"`
	Products    []billing.LineItem  `json:"products"`
	SummaryData billing.SummaryData `json:"summaryData"`
	EwayData    *billing.EwayBill   `json:"ewayData,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// Draft is a stored snapshot together with its storage key.
type Draft struct {
	Key string `json:"key"`
	Snapshot
}

// KeyPrefix returns the namespace all of a user's draft keys live under.
// Ownership is enforced at every read and delete by comparing the caller's
// id against this prefix.
func KeyPrefix(userID int64) string {
	return fmt.Sprintf("draft_%d_", userID)
}

// Key builds the storage key for a user's draft sequence number.
func Key(userID int64, seq int) string {
	return KeyPrefix(userID) + strconv.Itoa(seq)
}

// Owns reports whether the given key belongs to the user.
func Owns(userID int64, key string) bool {
	return strings.HasPrefix(key, KeyPrefix(userID))
}

// SequenceOf parses the sequence number out of a draft key. The second
// return is false for keys that do not follow the draft_<user>_<seq> shape.
func SequenceOf(userID int64, key string) (int, bool) {
	suffix, ok := strings.CutPrefix(key, KeyPrefix(userID))
	if !ok {
		return 0, false
	}
	seq, err := strconv.Atoi(suffix)
	if err != nil || seq < 1 {
		return 0, false
	}
	return seq, true
}
