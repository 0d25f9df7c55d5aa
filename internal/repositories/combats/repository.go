package combats

//go:generate mockgen -destination=mock/mock_repository.go -package=mockcombatrepo -source=repository.go

import (
	"context"

	"github.com/petrichor-games/duelist/internal/domain/combat"
)

// Event notifies subscribers that a combat record changed. Delivery is
// at-least-once and unordered; consumers must re-read the record and
// discard stale versions rather than trust event ordering.
type Event struct {
	RoomID   string
	CombatID string
}

// Repository defines the interface for combat storage operations. All
// writes are whole-record; Update enforces optimistic concurrency against
// the version the caller read.
type Repository interface {
	// Create stores a new combat. When the combat is active it atomically
	// claims the room's active slot and fails with an already-exists error
	// if another active combat holds it.
	Create(ctx context.Context, c *combat.Combat) error

	// Get retrieves a combat by ID
	Get(ctx context.Context, id string) (*combat.Combat, error)

	// Update writes the whole record back. It fails with a conflict error
	// when the stored version no longer matches expectedVersion; on
	// success the record's version is bumped to expectedVersion+1.
	Update(ctx context.Context, c *combat.Combat, expectedVersion int64) error

	// ListByRoom retrieves all combats for a room
	ListByRoom(ctx context.Context, roomID string) ([]*combat.Combat, error)

	// GetActiveByRoom retrieves the room's pending or in-progress combat
	GetActiveByRoom(ctx context.Context, roomID string) (*combat.Combat, error)
}

// Watcher streams change events for a room
type Watcher interface {
	// Watch subscribes to change events for the room until ctx is done.
	// The returned channel is closed when the subscription ends.
	Watch(ctx context.Context, roomID string) (<-chan Event, error)
}
