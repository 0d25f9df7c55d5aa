package combats

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/petrichor-games/duelist/internal/domain/combat"
	apperr "github.com/petrichor-games/duelist/internal/errors"
	"github.com/petrichor-games/duelist/internal/uuid"
)

// inMemoryRepo implements Repository and Watcher with a mutex-guarded map.
// It mirrors the Redis implementation's semantics (active-slot guard,
// version check, change events) for tests and store-less development runs.
type inMemoryRepo struct {
	mu           sync.RWMutex
	combats      map[string]*combat.Combat
	activeByRoom map[string]string
	watchers     map[string][]chan Event

	uuidGenerator uuid.Generator
}

// NewInMemory creates an in-memory combat repository
func NewInMemory() *inMemoryRepo {
	return &inMemoryRepo{
		combats:       make(map[string]*combat.Combat),
		activeByRoom:  make(map[string]string),
		watchers:      make(map[string][]chan Event),
		uuidGenerator: uuid.NewGoogleUUIDGenerator(),
	}
}

// Create stores a new combat, claiming the room's active slot first
func (r *inMemoryRepo) Create(_ context.Context, c *combat.Combat) error {
	if c == nil {
		return apperr.InvalidArgument("combat cannot be nil")
	}
	if c.RoomID == "" {
		return apperr.InvalidArgument("combat room id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		c.ID = r.uuidGenerator.New()
	}
	if c.Active() {
		if _, taken := r.activeByRoom[c.RoomID]; taken {
			return apperr.AlreadyExistsf("room %s already has an active combat", c.RoomID)
		}
		r.activeByRoom[c.RoomID] = c.ID
	}

	c.Version = 1
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	r.combats[c.ID] = c.Clone()
	r.notifyLocked(c.RoomID, c.ID)
	return nil
}

// Get retrieves a combat by ID
func (r *inMemoryRepo) Get(_ context.Context, id string) (*combat.Combat, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("combat id is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.combats[id]
	if !ok {
		return nil, apperr.NotFoundf("combat not found: %s", id)
	}
	return c.Clone(), nil
}

// Update writes the whole record back under an optimistic version check
func (r *inMemoryRepo) Update(_ context.Context, c *combat.Combat, expectedVersion int64) error {
	if c == nil {
		return apperr.InvalidArgument("combat cannot be nil")
	}
	if c.ID == "" {
		return apperr.InvalidArgument("combat id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.combats[c.ID]
	if !ok {
		return apperr.NotFoundf("combat not found: %s", c.ID)
	}
	if stored.Version != expectedVersion {
		return apperr.Conflictf("combat %s changed underneath you (read version %d, stored %d)",
			c.ID, expectedVersion, stored.Version).
			WithMeta("stored_version", stored.Version)
	}

	c.Version = expectedVersion + 1
	c.UpdatedAt = time.Now().UTC()
	if c.Terminal() && r.activeByRoom[c.RoomID] == c.ID {
		delete(r.activeByRoom, c.RoomID)
	}

	r.combats[c.ID] = c.Clone()
	r.notifyLocked(c.RoomID, c.ID)
	return nil
}

// ListByRoom retrieves all combats for a room, oldest first
func (r *inMemoryRepo) ListByRoom(_ context.Context, roomID string) ([]*combat.Combat, error) {
	if roomID == "" {
		return nil, apperr.InvalidArgument("room id is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*combat.Combat
	for _, c := range r.combats {
		if c.RoomID == roomID {
			result = append(result, c.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// GetActiveByRoom retrieves the room's pending or in-progress combat
func (r *inMemoryRepo) GetActiveByRoom(_ context.Context, roomID string) (*combat.Combat, error) {
	if roomID == "" {
		return nil, apperr.InvalidArgument("room id is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.activeByRoom[roomID]
	if !ok {
		return nil, apperr.NotFoundf("no active combat in room %s", roomID)
	}
	c, ok := r.combats[id]
	if !ok || !c.Active() {
		return nil, apperr.NotFoundf("no active combat in room %s", roomID)
	}
	return c.Clone(), nil
}

// Watch subscribes to change events for a room
func (r *inMemoryRepo) Watch(ctx context.Context, roomID string) (<-chan Event, error) {
	if roomID == "" {
		return nil, apperr.InvalidArgument("room id is required")
	}

	ch := make(chan Event, 16)

	r.mu.Lock()
	r.watchers[roomID] = append(r.watchers[roomID], ch)
	r.mu.Unlock()

	go func() {
		<-ctx.Done()

		r.mu.Lock()
		watchers := r.watchers[roomID]
		for i, w := range watchers {
			if w == ch {
				r.watchers[roomID] = append(watchers[:i], watchers[i+1:]...)
				break
			}
		}
		r.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}

// notifyLocked fans an event out to the room's watchers. Callers hold the
// write lock. Slow watchers drop events; the poll loop reconciles them.
func (r *inMemoryRepo) notifyLocked(roomID, combatID string) {
	for _, ch := range r.watchers[roomID] {
		select {
		case ch <- Event{RoomID: roomID, CombatID: combatID}:
		default:
		}
	}
}
