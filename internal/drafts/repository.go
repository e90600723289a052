package drafts

import (
	"context"
	"errors"
)

// ErrCorrupt marks a stored draft whose payload no longer parses. Corrupt
// drafts are excluded from listings but kept in the store so an operator
// can inspect them; only an explicit per-draft delete removes one.
var ErrCorrupt = errors.New("drafts: stored draft is corrupt")

// Repository is durable, user-scoped draft storage. The storage medium is
// an implementation detail; every method enforces that callers only reach
// their own keys.
type Repository interface {
	// Save allocates the next sequence number for the user, stores the
	// snapshot under it and returns the new key. Sequence numbers are not
	// compacted after deletions.
	Save(ctx context.Context, userID int64, snap Snapshot) (string, error)
	// List returns all of the user's drafts ordered by sequence. Corrupt
	// entries are skipped, not raised.
	List(ctx context.Context, userID int64) ([]Draft, error)
	// LoadOne fetches a single draft. It fails with shared.ErrNotOwner
	// before touching the store when the key lies outside the user's
	// namespace.
	LoadOne(ctx context.Context, userID int64, key string) (*Draft, error)
	// DeleteOne removes a single draft under the same ownership rule.
	DeleteOne(ctx context.Context, userID int64, key string) error
	// ClearAll removes every draft belonging to the user and returns how
	// many were deleted. Other users' keys are never touched.
	ClearAll(ctx context.Context, userID int64) (int, error)
}
