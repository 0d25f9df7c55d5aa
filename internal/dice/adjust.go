package dice

import (
	"github.com/petrichor-games/duelist/internal/errors"
)

// Adjust replaces an already-rolled face sequence with a manually edited
// one and recomputes the total. Each face must stay within 1..6. The
// sequence may shrink by one die but never grow, and can never shrink to
// nothing. Callers are responsible for restricting who may adjust and
// until when; this only validates the sequence itself.
func Adjust(existing, faces []int) (*RollResult, error) {
	if len(existing) == 0 {
		return nil, errors.FailedPrecondition("no roll to adjust")
	}
	if len(faces) == 0 {
		return nil, errors.InvalidArgument("adjusted roll must keep at least one die")
	}
	if len(faces) > len(existing) {
		return nil, errors.InvalidArgumentf("adjusted roll cannot grow from %d to %d dice", len(existing), len(faces))
	}
	if len(faces) < len(existing)-1 {
		return nil, errors.InvalidArgumentf("adjusted roll may remove at most one die, got %d of %d", len(faces), len(existing))
	}

	for _, f := range faces {
		if f < 1 || f > Sides {
			return nil, errors.InvalidArgumentf("die face out of range: %d", f)
		}
	}

	adjusted := make([]int, len(faces))
	copy(adjusted, faces)

	return &RollResult{
		Faces: adjusted,
		Total: Sum(adjusted),
	}, nil
}
