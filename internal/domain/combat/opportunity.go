package combat

import (
	"slices"

	"github.com/petrichor-games/duelist/internal/domain/sheet"
	"github.com/petrichor-games/duelist/internal/errors"
)

// InjectOpportunity appends an opportunity round for an observer. Only
// non-participants may inject, at most once per observer per combat, only
// while rounds are being rolled, and only when the combat allows it. The
// observer fills the attacker seat of the new round; the chosen target
// fills the defender seat.
func (c *Combat) InjectOpportunity(actorID, actorName string, weapon *sheet.Weapon, target Target) error {
	if actorID == "" {
		return errors.InvalidArgument("actor id is required")
	}
	if c.IsParticipant(actorID) {
		return errors.PermissionDenied("combat participants cannot make opportunity attacks")
	}
	if c.Terminal() {
		return errors.FailedPrecondition("combat has ended")
	}
	if c.Phase != PhaseRolling {
		return errors.FailedPreconditionf("opportunity attacks are only possible while rolling (phase: %s)", c.Phase)
	}
	if !c.AllowOpportunityAttacks {
		return errors.FailedPrecondition("this combat does not allow opportunity attacks")
	}
	if slices.Contains(c.OpportunityAttacksUsed, actorID) {
		return errors.FailedPrecondition("you already made an opportunity attack in this combat")
	}
	if err := validWeapon(weapon); err != nil {
		return err
	}
	if target != TargetAttacker && target != TargetDefender {
		return errors.InvalidArgumentf("invalid opportunity target: %q", target)
	}

	c.Rounds = append(c.Rounds, &Round{
		Number:     len(c.Rounds) + 1,
		ActionType: ActionOpportunity,
		ActorID:    actorID,
		ActorName:  actorName,
		Weapon:     weapon,
		Target:     target,
	})
	c.TotalRounds = len(c.Rounds)
	c.OpportunityAttacksUsed = append(c.OpportunityAttacksUsed, actorID)
	return nil
}
