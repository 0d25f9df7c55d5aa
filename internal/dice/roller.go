package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Sides is the number of faces on every combat die
const Sides = 6

// MaxPreviewFrames bounds the ephemeral animation sequences a single roll
// may produce
const MaxPreviewFrames = 12

// Roller provides an interface for rolling dice
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls count six-sided dice and returns the committed result
	Roll(count int) (*RollResult, error)

	// Preview produces up to frames ephemeral roll sequences with the same
	// distribution as Roll. Previews are perceptual feedback only and are
	// never persisted.
	Preview(count, frames int) ([][]int, error)
}

// RollResult holds the outcome of a dice roll
type RollResult struct {
	Faces []int
	Total int
}

// Sum returns the sum of a face sequence
func Sum(faces []int) int {
	total := 0
	for _, f := range faces {
		total += f
	}
	return total
}
