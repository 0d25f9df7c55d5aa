package testutils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petrichor-games/duelist/internal/domain/sheet"
	"github.com/petrichor-games/duelist/internal/repositories/characters"
)

// Weapon builds a test weapon with the given dice count and load time
func Weapon(key string, diceCount, loadTime int) *sheet.Weapon {
	return &sheet.Weapon{
		Key:       key,
		Name:      key,
		DiceCount: diceCount,
		LoadTime:  loadTime,
		Damage:    2,
	}
}

// Character builds a single-mode test character with the given weapons and
// defense dice count
func Character(id, roomID, name string, defenseDice int, weapons ...*sheet.Weapon) *sheet.Character {
	return &sheet.Character{
		ID:      id,
		OwnerID: "owner-" + id,
		RoomID:  roomID,
		Name:    name,
		Modes: map[string]*sheet.Mode{
			"standard": {
				Key:         "standard",
				Name:        "Standard",
				Weapons:     weapons,
				DefenseDice: defenseDice,
			},
		},
		ActiveMode: "standard",
	}
}

// SeedCharacters stores the given characters, failing the test on error
func SeedCharacters(t *testing.T, repo characters.Repository, chars ...*sheet.Character) {
	t.Helper()
	for _, c := range chars {
		require.NoError(t, repo.Put(context.Background(), c))
	}
}
