package characters

//go:generate mockgen -destination=mock/mock_repository.go -package=mockcharrepo -source=repository.go

import (
	"context"

	"github.com/petrichor-games/duelist/internal/domain/sheet"
)

// Repository defines the interface for character sheet reads the combat
// engine depends on, plus the writes the surrounding tool uses to seed
// them. Combat never writes sheets.
type Repository interface {
	// Get retrieves a character by ID
	Get(ctx context.Context, id string) (*sheet.Character, error)

	// Put stores a character sheet
	Put(ctx context.Context, c *sheet.Character) error

	// ListByRoom retrieves all characters in a room
	ListByRoom(ctx context.Context, roomID string) ([]*sheet.Character, error)
}
