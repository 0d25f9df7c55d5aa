package combat

import (
	"github.com/petrichor-games/duelist/internal/errors"
)

// SkipPolicy selects one of the degenerate no-retaliation sequences. The
// two variants existed as distinct code paths in the original tool and are
// deliberately kept as separately named policies a caller must pick;
// BuildSequence never infers one from the other.
type SkipPolicy string

const (
	// SkipPolicyNone builds the full attack/counter sequence
	SkipPolicyNone SkipPolicy = ""

	// SkipPolicySingleAttack yields a single attack round
	SkipPolicySingleAttack SkipPolicy = "single_attack"

	// SkipPolicyDoubleAttack yields two attack rounds
	SkipPolicyDoubleAttack SkipPolicy = "double_attack"
)

// SequenceInput are the parameters for building a round sequence
type SequenceInput struct {
	// AttackerSpeed and DefenderSpeed are the weapons' load times.
	// Lower is faster; the faster side earns extra rounds.
	AttackerSpeed int
	DefenderSpeed int
	Skip          SkipPolicy
}

// BuildSequence computes the ordered round list for a combat. With no skip
// policy the sequence always opens and closes with an attack round, always
// contains at least one counter round, and carries one extra round per
// point of speed difference for the faster side:
//
//	5 vs 5 -> [attack, counter, attack]
//	3 vs 5 -> [attack, attack, attack, counter, attack]
//	5 vs 3 -> [attack, counter, counter, counter, attack]
func BuildSequence(input SequenceInput) ([]*Round, error) {
	switch input.Skip {
	case SkipPolicySingleAttack:
		return numbered([]ActionType{ActionAttack}), nil
	case SkipPolicyDoubleAttack:
		return numbered([]ActionType{ActionAttack, ActionAttack}), nil
	case SkipPolicyNone:
		// Full sequence below
	default:
		return nil, errors.InvalidArgumentf("unknown skip policy: %q", input.Skip)
	}

	diff := input.AttackerSpeed - input.DefenderSpeed

	actions := []ActionType{ActionAttack}
	if diff < 0 {
		for i := 0; i < -diff; i++ {
			actions = append(actions, ActionAttack)
		}
	} else {
		for i := 0; i < diff; i++ {
			actions = append(actions, ActionCounter)
		}
	}

	// The defender always gets a reaction round before the closing attack
	actions = append(actions, ActionCounter, ActionAttack)

	return numbered(actions), nil
}

func numbered(actions []ActionType) []*Round {
	rounds := make([]*Round, len(actions))
	for i, action := range actions {
		rounds[i] = &Round{
			Number:     i + 1,
			ActionType: action,
		}
	}
	return rounds
}
