package combat

import (
	"github.com/petrichor-games/duelist/internal/domain/sheet"
	"github.com/petrichor-games/duelist/internal/errors"
)

// Weapon selection transitions out of PhaseWeaponSelection, and the
// combat-scoped equipment overrides.

// SelectDefenderWeapon records the defender's retaliation weapon, builds
// the round sequence from the two load times and enters the rolling phase.
func (c *Combat) SelectDefenderWeapon(actorID string, weapon *sheet.Weapon) error {
	if err := c.selectable(actorID); err != nil {
		return err
	}
	if err := validWeapon(weapon); err != nil {
		return err
	}

	rounds, err := BuildSequence(SequenceInput{
		AttackerSpeed: c.AttackData.LoadTime,
		DefenderSpeed: weapon.LoadTime,
	})
	if err != nil {
		return err
	}

	c.DefenderWeapon = weapon
	c.startRolling(rounds)
	return nil
}

// DeclineRetaliation records that the defender will not fight back. The
// attacker gets the two-attack degenerate sequence.
func (c *Combat) DeclineRetaliation(actorID string) error {
	if err := c.selectable(actorID); err != nil {
		return err
	}

	rounds, err := BuildSequence(SequenceInput{Skip: SkipPolicyDoubleAttack})
	if err != nil {
		return err
	}

	c.startRolling(rounds)
	return nil
}

// AutoStart enters the rolling phase without defender input with the
// single-attack degenerate sequence. Used at creation when the combat type
// disallows counter-attacks.
func (c *Combat) AutoStart() error {
	if c.AllowCounterAttack {
		return errors.FailedPrecondition("combat allows counter-attacks; the defender must choose")
	}
	if c.Phase != PhaseWeaponSelection {
		return errors.FailedPreconditionf("combat already started (phase: %s)", c.Phase)
	}

	rounds, err := BuildSequence(SequenceInput{Skip: SkipPolicySingleAttack})
	if err != nil {
		return err
	}

	c.startRolling(rounds)
	return nil
}

func (c *Combat) selectable(actorID string) error {
	if c.Terminal() {
		return errors.FailedPrecondition("combat has ended")
	}
	if c.Phase != PhaseWeaponSelection {
		return errors.FailedPreconditionf("weapon selection is over (phase: %s)", c.Phase)
	}
	if !c.AllowCounterAttack {
		return errors.FailedPrecondition("this combat does not allow counter-attacks")
	}
	if actorID != c.DefenderID {
		return errors.PermissionDenied("only the defender can choose a retaliation weapon")
	}
	return nil
}

func (c *Combat) startRolling(rounds []*Round) {
	c.Rounds = rounds
	c.TotalRounds = len(rounds)
	c.CurrentRound = 1
	c.Phase = PhaseRolling
	c.Status = StatusInProgress
}

// SetWeaponOverride swaps the actor's weapon descriptor for the remainder
// of the combat. The character sheet keeps its base equipment.
func (c *Combat) SetWeaponOverride(actorID string, weapon *sheet.Weapon) error {
	if !c.IsParticipant(actorID) {
		return errors.PermissionDenied("only a combat participant can swap weapons")
	}
	if c.Terminal() {
		return errors.FailedPrecondition("combat has ended")
	}
	if err := validWeapon(weapon); err != nil {
		return err
	}

	if actorID == c.AttackerID {
		c.AttackData = weapon
		return nil
	}

	if c.DefenderWeapon == nil {
		return errors.FailedPrecondition("defender has no retaliation weapon to swap")
	}
	c.DefenderWeapon = weapon
	return nil
}

// SetDefenseDiceOverride pins the actor's defense dice count for the
// remainder of the combat.
func (c *Combat) SetDefenseDiceOverride(actorID string, count int) error {
	if !c.IsParticipant(actorID) {
		return errors.PermissionDenied("only a combat participant can change defense dice")
	}
	if c.Terminal() {
		return errors.FailedPrecondition("combat has ended")
	}
	if count < 1 {
		return errors.InvalidArgumentf("invalid defense dice count: %d", count)
	}

	if actorID == c.AttackerID {
		c.AttackerDefenseDice = &count
	} else {
		c.DefenderDefenseDice = &count
	}
	return nil
}

// SetMode selects the actor's stat mode for the remainder of the combat
func (c *Combat) SetMode(actorID, mode string) error {
	if !c.IsParticipant(actorID) {
		return errors.PermissionDenied("only a combat participant can change modes")
	}
	if c.Terminal() {
		return errors.FailedPrecondition("combat has ended")
	}
	if mode == "" {
		return errors.InvalidArgument("mode is required")
	}

	if actorID == c.AttackerID {
		c.AttackerMode = mode
	} else {
		c.DefenderMode = mode
	}
	return nil
}

// ActingDiceCount resolves how many dice the acting seat of a round rolls:
// the acting side always rolls its weapon's dice.
func (c *Combat) ActingDiceCount(r *Round) (int, error) {
	var weapon *sheet.Weapon
	switch r.ActionType {
	case ActionAttack:
		weapon = c.AttackData
	case ActionCounter:
		weapon = c.DefenderWeapon
	case ActionOpportunity:
		weapon = r.Weapon
	default:
		return 0, errors.Internalf("unknown action type: %q", r.ActionType)
	}

	if weapon == nil {
		return 0, errors.FailedPrecondition("round has no weapon to roll with")
	}
	if weapon.DiceCount < 1 {
		return 0, errors.InvalidArgumentf("weapon %q has no dice", weapon.Name)
	}
	return weapon.DiceCount, nil
}

// DefenseDiceOverrideFor returns the participant's combat-scoped defense
// dice override, or nil when the sheet's base value applies.
func (c *Combat) DefenseDiceOverrideFor(participantID string) *int {
	if participantID == c.AttackerID {
		return c.AttackerDefenseDice
	}
	if participantID == c.DefenderID {
		return c.DefenderDefenseDice
	}
	return nil
}

// ModeFor returns the participant's combat-scoped mode selection, empty
// when the sheet's active mode applies.
func (c *Combat) ModeFor(participantID string) string {
	if participantID == c.AttackerID {
		return c.AttackerMode
	}
	if participantID == c.DefenderID {
		return c.DefenderMode
	}
	return ""
}

func validWeapon(weapon *sheet.Weapon) error {
	if weapon == nil {
		return errors.InvalidArgument("weapon is required")
	}
	if weapon.DiceCount < 1 {
		return errors.InvalidArgumentf("weapon %q has no dice", weapon.Name)
	}
	return nil
}
