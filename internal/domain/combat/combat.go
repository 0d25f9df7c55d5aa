package combat

import (
	"time"

	"github.com/petrichor-games/duelist/internal/dice"
	"github.com/petrichor-games/duelist/internal/domain/sheet"
	"github.com/petrichor-games/duelist/internal/errors"
)

// Phase represents the coarse lifecycle stage of a combat
type Phase string

const (
	PhaseWeaponSelection Phase = "weapon_selection" // Defender choosing a retaliation weapon
	PhaseRolling         Phase = "rolling"          // Rounds being resolved
	PhaseResults         Phase = "results"          // Terminal display state
)

// Status represents the record status, orthogonal to Phase
type Status string

const (
	StatusPending    Status = "pending"     // Created, waiting on defender
	StatusInProgress Status = "in_progress" // Rounds being resolved
	StatusCompleted  Status = "completed"   // All rounds resolved
	StatusCancelled  Status = "cancelled"   // Explicitly ended by a participant
)

// Target identifies which original combatant an opportunity round hits
type Target string

const (
	TargetAttacker Target = "attacker"
	TargetDefender Target = "defender"
)

// Seat identifies one of the two roll sub-records of a round
type Seat string

const (
	SeatAttacker Seat = "attacker"
	SeatDefender Seat = "defender"
)

// Combat is the single shared mutable record for one fight. Every client
// mutates it by whole-record read-modify-write through the repository;
// Version is bumped by the store on every accepted write and writers must
// present the version they read.
type Combat struct {
	ID      string `json:"id"`
	RoomID  string `json:"room_id"`
	Version int64  `json:"version"`

	AttackerID   string `json:"attacker_id"`
	AttackerName string `json:"attacker_name"`
	DefenderID   string `json:"defender_id"`
	DefenderName string `json:"defender_name"`

	// AttackData is the initiating weapon. It is edited in place when the
	// attacker swaps equipment mid-combat.
	AttackData *sheet.Weapon `json:"attack_data"`
	// DefenderWeapon is the chosen retaliation weapon, absent when
	// retaliation was declined or not allowed.
	DefenderWeapon *sheet.Weapon `json:"defender_weapon,omitempty"`

	AllowCounterAttack      bool     `json:"allow_counter_attack"`
	AllowOpportunityAttacks bool     `json:"allow_opportunity_attacks"`
	OpportunityAttacksUsed  []string `json:"opportunity_attacks_used,omitempty"`

	// Combat-scoped overrides. Absent means fall back to the character
	// sheet's base value; the sheet itself is never touched.
	AttackerDefenseDice *int   `json:"attacker_defense_dice,omitempty"`
	DefenderDefenseDice *int   `json:"defender_defense_dice,omitempty"`
	AttackerMode        string `json:"attacker_mode,omitempty"`
	DefenderMode        string `json:"defender_mode,omitempty"`

	Phase  Phase  `json:"phase"`
	Status Status `json:"status"`

	CurrentRound int      `json:"current_round"` // 1-based index into Rounds
	TotalRounds  int      `json:"total_rounds"`  // Always len(Rounds)
	Rounds       []*Round `json:"round_data"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a combat record in weapon selection. Callers that disallow
// counter-attacks should follow up with AutoStart before persisting.
func New(id, roomID string, attacker, defender Participant, attack *sheet.Weapon, allowCounter, allowOpportunity bool) *Combat {
	return &Combat{
		ID:                      id,
		RoomID:                  roomID,
		AttackerID:              attacker.ID,
		AttackerName:            attacker.Name,
		DefenderID:              defender.ID,
		DefenderName:            defender.Name,
		AttackData:              attack,
		AllowCounterAttack:      allowCounter,
		AllowOpportunityAttacks: allowOpportunity,
		Phase:                   PhaseWeaponSelection,
		Status:                  StatusPending,
		CreatedAt:               time.Now().UTC(),
	}
}

// Participant names one of the two original combatants
type Participant struct {
	ID   string
	Name string
}

// IsParticipant reports whether id is the attacker or the defender
func (c *Combat) IsParticipant(id string) bool {
	return id != "" && (id == c.AttackerID || id == c.DefenderID)
}

// Active reports whether the combat still accepts actions
func (c *Combat) Active() bool {
	return c.Status == StatusPending || c.Status == StatusInProgress
}

// Terminal reports whether the record reached a final status
func (c *Combat) Terminal() bool {
	return c.Status == StatusCompleted || c.Status == StatusCancelled
}

// Current returns the round at CurrentRound, or nil outside the rolling phase
func (c *Combat) Current() *Round {
	if c.CurrentRound < 1 || c.CurrentRound > len(c.Rounds) {
		return nil
	}
	return c.Rounds[c.CurrentRound-1]
}

// SeatParticipant resolves which identity occupies a seat of a round. For
// opportunity rounds the attacker seat is the injecting observer and the
// defender seat is the chosen target.
func (c *Combat) SeatParticipant(r *Round, seat Seat) string {
	if r.ActionType == ActionOpportunity {
		if seat == SeatAttacker {
			return r.ActorID
		}
		if r.Target == TargetAttacker {
			return c.AttackerID
		}
		return c.DefenderID
	}
	if seat == SeatAttacker {
		return c.AttackerID
	}
	return c.DefenderID
}

// CanAct is the single authorization check consumed by every rolling
// mutation: it returns the seat the actor may fill in the current round,
// or an error describing why the actor may not act now.
func (c *Combat) CanAct(actorID string) (Seat, error) {
	if actorID == "" {
		return "", errors.InvalidArgument("actor id is required")
	}
	if c.Terminal() {
		return "", errors.FailedPrecondition("combat has ended")
	}
	if c.Phase != PhaseRolling {
		return "", errors.FailedPreconditionf("combat is not in the rolling phase (phase: %s)", c.Phase)
	}

	r := c.Current()
	if r == nil {
		return "", errors.Internalf("current round %d out of range (total %d)", c.CurrentRound, len(c.Rounds))
	}

	actingSeat := r.ActingSeat()
	reactingSeat := otherSeat(actingSeat)
	actingID := c.SeatParticipant(r, actingSeat)
	reactingID := c.SeatParticipant(r, reactingSeat)

	switch actorID {
	case actingID:
		if r.seatState(actingSeat).Rolled {
			return "", errors.FailedPrecondition("you already rolled this round")
		}
		return actingSeat, nil
	case reactingID:
		if !r.seatState(actingSeat).Rolled {
			return "", errors.FailedPrecondition("waiting for the acting side to roll first")
		}
		if r.seatState(reactingSeat).Rolled {
			return "", errors.FailedPrecondition("you already rolled this round")
		}
		return reactingSeat, nil
	default:
		return "", errors.PermissionDenied("it is not your turn to roll")
	}
}

// ApplyRoll records a committed roll for the actor in the current round.
// Completion is monotonic: once both seats have rolled the round stays
// completed.
func (c *Combat) ApplyRoll(actorID string, faces []int) error {
	seat, err := c.CanAct(actorID)
	if err != nil {
		return err
	}
	if len(faces) == 0 {
		return errors.InvalidArgument("a roll needs at least one die")
	}
	for _, f := range faces {
		if f < 1 || f > dice.Sides {
			return errors.InvalidArgumentf("die face out of range: %d", f)
		}
	}

	r := c.Current()
	st := r.seatState(seat)
	st.Rolled = true
	st.Roll = append([]int(nil), faces...)
	st.Total = dice.Sum(faces)
	r.refreshCompleted()
	return nil
}

// AdjustRoll replaces an already-submitted roll. Only the original roller
// may adjust, only while its round is still the current round, and only
// within the dice.Adjust bounds.
func (c *Combat) AdjustRoll(actorID string, roundNumber int, faces []int) error {
	if c.Terminal() {
		return errors.FailedPrecondition("combat has ended")
	}
	if c.Phase != PhaseRolling {
		return errors.FailedPreconditionf("rolls can only be adjusted in the rolling phase (phase: %s)", c.Phase)
	}
	if roundNumber != c.CurrentRound {
		return errors.FailedPreconditionf("round %d is no longer adjustable (current round: %d)", roundNumber, c.CurrentRound)
	}

	r := c.Current()
	seat, err := c.seatOf(r, actorID)
	if err != nil {
		return err
	}

	st := r.seatState(seat)
	if !st.Rolled {
		return errors.FailedPrecondition("no roll to adjust")
	}

	adjusted, err := dice.Adjust(st.Roll, faces)
	if err != nil {
		return err
	}

	st.Roll = adjusted.Faces
	st.Total = adjusted.Total
	return nil
}

// Advance moves to the next round, or into results when the last round is
// done. Advancement is always an explicit client action, never automatic.
func (c *Combat) Advance(actorID string) error {
	if actorID == "" {
		return errors.InvalidArgument("actor id is required")
	}
	if c.Terminal() {
		return errors.FailedPrecondition("combat has ended")
	}
	if c.Phase != PhaseRolling {
		return errors.FailedPreconditionf("combat is not in the rolling phase (phase: %s)", c.Phase)
	}

	r := c.Current()
	if r == nil {
		return errors.Internalf("current round %d out of range (total %d)", c.CurrentRound, len(c.Rounds))
	}
	if !r.Completed {
		return errors.FailedPrecondition("current round is not completed")
	}

	if c.CurrentRound < c.TotalRounds {
		c.CurrentRound++
		return nil
	}

	// CurrentRound stays parked on the last round for the results view
	c.Phase = PhaseResults
	c.Status = StatusCompleted
	return nil
}

// End cancels the combat. Either participant may end it at any time from
// any phase; the transition is terminal.
func (c *Combat) End(actorID string) error {
	if !c.IsParticipant(actorID) {
		return errors.PermissionDenied("only a combat participant can end the combat")
	}
	if c.Status == StatusCancelled {
		return errors.FailedPrecondition("combat is already cancelled")
	}
	c.Status = StatusCancelled
	return nil
}

// seatOf returns the seat actorID occupies in a round, regardless of whose
// turn it is.
func (c *Combat) seatOf(r *Round, actorID string) (Seat, error) {
	if actorID == "" {
		return "", errors.InvalidArgument("actor id is required")
	}
	if c.SeatParticipant(r, SeatAttacker) == actorID {
		return SeatAttacker, nil
	}
	if c.SeatParticipant(r, SeatDefender) == actorID {
		return SeatDefender, nil
	}
	return "", errors.PermissionDenied("you are not part of this round")
}

func otherSeat(s Seat) Seat {
	if s == SeatAttacker {
		return SeatDefender
	}
	return SeatAttacker
}

// Clone returns a deep copy of the combat record
func (c *Combat) Clone() *Combat {
	clone := *c

	if c.AttackData != nil {
		w := *c.AttackData
		clone.AttackData = &w
	}
	if c.DefenderWeapon != nil {
		w := *c.DefenderWeapon
		clone.DefenderWeapon = &w
	}
	if c.AttackerDefenseDice != nil {
		v := *c.AttackerDefenseDice
		clone.AttackerDefenseDice = &v
	}
	if c.DefenderDefenseDice != nil {
		v := *c.DefenderDefenseDice
		clone.DefenderDefenseDice = &v
	}
	clone.OpportunityAttacksUsed = append([]string(nil), c.OpportunityAttacksUsed...)

	clone.Rounds = make([]*Round, len(c.Rounds))
	for i, r := range c.Rounds {
		clone.Rounds[i] = r.clone()
	}

	return &clone
}
