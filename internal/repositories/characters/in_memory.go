package characters

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/petrichor-games/duelist/internal/domain/sheet"
	apperr "github.com/petrichor-games/duelist/internal/errors"
)

// inMemoryRepo implements the Repository interface with a mutex-guarded map
type inMemoryRepo struct {
	mu         sync.RWMutex
	characters map[string]*sheet.Character
}

// NewInMemory creates an in-memory character repository
func NewInMemory() *inMemoryRepo {
	return &inMemoryRepo{
		characters: make(map[string]*sheet.Character),
	}
}

// Get retrieves a character by ID
func (r *inMemoryRepo) Get(_ context.Context, id string) (*sheet.Character, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("character id is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.characters[id]
	if !ok {
		return nil, apperr.NotFoundf("character not found: %s", id)
	}
	return cloneCharacter(c)
}

// Put stores a character sheet
func (r *inMemoryRepo) Put(_ context.Context, c *sheet.Character) error {
	if c == nil {
		return apperr.InvalidArgument("character cannot be nil")
	}
	if c.ID == "" {
		return apperr.InvalidArgument("character id is required")
	}

	clone, err := cloneCharacter(c)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.characters[c.ID] = clone
	return nil
}

// ListByRoom retrieves all characters in a room, sorted by name
func (r *inMemoryRepo) ListByRoom(_ context.Context, roomID string) ([]*sheet.Character, error) {
	if roomID == "" {
		return nil, apperr.InvalidArgument("room id is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*sheet.Character
	for _, c := range r.characters {
		if c.RoomID == roomID {
			clone, err := cloneCharacter(c)
			if err != nil {
				return nil, err
			}
			result = append(result, clone)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// cloneCharacter deep-copies through JSON, the same shape the Redis
// implementation round-trips.
func cloneCharacter(c *sheet.Character) (*sheet.Character, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to marshal character")
	}
	var clone sheet.Character
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, apperr.Wrap(err, "failed to unmarshal character")
	}
	return &clone, nil
}
