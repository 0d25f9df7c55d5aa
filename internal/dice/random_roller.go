package dice

import (
	"math/rand/v2"

	"github.com/petrichor-games/duelist/internal/errors"
)

// randomRoller implements Roller with uniform pseudo-random faces
type randomRoller struct{}

// NewRandomRoller creates a new random dice roller
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count int) (*RollResult, error) {
	faces, err := rollFaces(count)
	if err != nil {
		return nil, err
	}

	return &RollResult{
		Faces: faces,
		Total: Sum(faces),
	}, nil
}

// Preview implements Roller.Preview
func (r *randomRoller) Preview(count, frames int) ([][]int, error) {
	if frames < 1 {
		return nil, errors.InvalidArgumentf("invalid preview frame count: %d", frames)
	}
	if frames > MaxPreviewFrames {
		frames = MaxPreviewFrames
	}

	previews := make([][]int, 0, frames)
	for i := 0; i < frames; i++ {
		faces, err := rollFaces(count)
		if err != nil {
			return nil, err
		}
		previews = append(previews, faces)
	}

	return previews, nil
}

func rollFaces(count int) ([]int, error) {
	if count < 1 {
		return nil, errors.InvalidArgumentf("invalid dice count: %d", count)
	}

	faces := make([]int, count)
	for i := range faces {
		faces[i] = rand.IntN(Sides) + 1
	}
	return faces, nil
}
