package combat

import (
	"github.com/petrichor-games/duelist/internal/domain/sheet"
	"github.com/petrichor-games/duelist/internal/errors"
)

// ActionType identifies who acts in a round
type ActionType string

const (
	ActionAttack      ActionType = "attack"      // Original attacker acts
	ActionCounter     ActionType = "counter"     // Original defender acts
	ActionOpportunity ActionType = "opportunity" // An observer acts
)

// RollState is one seat's dice outcome within a round
type RollState struct {
	Rolled bool  `json:"rolled"`
	Roll   []int `json:"roll,omitempty"`
	Total  int   `json:"total"`
}

// Round is one unit of turn resolution: one acting seat, one reacting
// seat, two rolls.
type Round struct {
	Number     int        `json:"round"` // 1-based, always equals position+1
	ActionType ActionType `json:"action_type"`

	// Opportunity rounds only
	ActorID   string        `json:"actor_id,omitempty"`
	ActorName string        `json:"actor_name,omitempty"`
	Weapon    *sheet.Weapon `json:"weapon,omitempty"`
	Target    Target        `json:"target,omitempty"`

	Attacker  RollState `json:"attacker"`
	Defender  RollState `json:"defender"`
	Completed bool      `json:"completed"`
}

// ActingSeat returns the seat that must roll first in this round
func (r *Round) ActingSeat() Seat {
	if r.ActionType == ActionCounter {
		return SeatDefender
	}
	return SeatAttacker
}

func (r *Round) seatState(seat Seat) *RollState {
	if seat == SeatAttacker {
		return &r.Attacker
	}
	return &r.Defender
}

// refreshCompleted marks the round completed once both seats have rolled.
// Completion is never un-set.
func (r *Round) refreshCompleted() {
	if r.Attacker.Rolled && r.Defender.Rolled {
		r.Completed = true
	}
}

func (r *Round) clone() *Round {
	clone := *r
	if r.Weapon != nil {
		w := *r.Weapon
		clone.Weapon = &w
	}
	clone.Attacker.Roll = append([]int(nil), r.Attacker.Roll...)
	clone.Defender.Roll = append([]int(nil), r.Defender.Roll...)
	return &clone
}

// Round editing. Rounds may only be edited while rolling, and only at
// indices at or past the current round that are not yet completed. Every
// edit renumbers so that Rounds[i].Number == i+1 holds.

// AppendRound adds a round to the end of the sequence. The caller chooses
// the acting role; opportunity rounds go through InjectOpportunity instead.
func (c *Combat) AppendRound(actorID string, action ActionType) error {
	if err := c.editable(actorID); err != nil {
		return err
	}
	if action != ActionAttack && action != ActionCounter {
		return errors.InvalidArgumentf("cannot append a %q round", action)
	}

	c.Rounds = append(c.Rounds, &Round{
		Number:     len(c.Rounds) + 1,
		ActionType: action,
	})
	c.TotalRounds = len(c.Rounds)
	return nil
}

// RemoveLastRound drops the final round. Refused when only one round
// remains, or when the final round is in progress or already resolved.
func (c *Combat) RemoveLastRound(actorID string) error {
	if err := c.editable(actorID); err != nil {
		return err
	}
	if len(c.Rounds) <= 1 {
		return errors.FailedPrecondition("cannot remove the only round")
	}
	if c.CurrentRound >= len(c.Rounds) {
		return errors.FailedPrecondition("cannot remove the round in progress")
	}
	if c.Rounds[len(c.Rounds)-1].Completed {
		return errors.FailedPrecondition("cannot remove a completed round")
	}

	c.Rounds = c.Rounds[:len(c.Rounds)-1]
	c.TotalRounds = len(c.Rounds)
	return nil
}

// SwapRounds exchanges the rounds numbered n and n+1 and renumbers. Both
// must be uncompleted and no earlier than the current round.
func (c *Combat) SwapRounds(actorID string, n int) error {
	if err := c.editable(actorID); err != nil {
		return err
	}
	if n < 1 || n+1 > len(c.Rounds) {
		return errors.InvalidArgumentf("no adjacent pair at round %d", n)
	}
	if n < c.CurrentRound {
		return errors.FailedPrecondition("cannot reorder past rounds")
	}
	if c.Rounds[n-1].Completed || c.Rounds[n].Completed {
		return errors.FailedPrecondition("cannot reorder completed rounds")
	}

	c.Rounds[n-1], c.Rounds[n] = c.Rounds[n], c.Rounds[n-1]
	c.renumber()
	return nil
}

func (c *Combat) editable(actorID string) error {
	if !c.IsParticipant(actorID) {
		return errors.PermissionDenied("only a combat participant can edit rounds")
	}
	if c.Terminal() {
		return errors.FailedPrecondition("combat has ended")
	}
	if c.Phase != PhaseRolling {
		return errors.FailedPreconditionf("rounds can only be edited in the rolling phase (phase: %s)", c.Phase)
	}
	return nil
}

func (c *Combat) renumber() {
	for i, r := range c.Rounds {
		r.Number = i + 1
	}
}
