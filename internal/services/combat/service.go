package combat

//go:generate mockgen -destination=mock/mock_service.go -package=mockcombat -source=service.go

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/petrichor-games/duelist/internal/dice"
	"github.com/petrichor-games/duelist/internal/domain/combat"
	apperr "github.com/petrichor-games/duelist/internal/errors"
	"github.com/petrichor-games/duelist/internal/repositories/characters"
	"github.com/petrichor-games/duelist/internal/repositories/combats"
	"github.com/petrichor-games/duelist/internal/uuid"
)

// maxUpdateRetries bounds how often a mutation is replayed against a fresh
// read after losing an optimistic-concurrency race
const maxUpdateRetries = 3

// Service defines the combat service interface. Every mutation is a
// whole-record read-modify-write: read the latest record, apply the domain
// transition, write back with the version that was read. Clients render
// only the canonical pushed state, so every mutation returns the record as
// stored.
type Service interface {
	// CreateCombat creates a combat between two characters in a room
	CreateCombat(ctx context.Context, input *CreateCombatInput) (*combat.Combat, error)

	// GetCombat retrieves a combat by ID
	GetCombat(ctx context.Context, combatID string) (*combat.Combat, error)

	// GetActiveCombat retrieves the room's pending or in-progress combat
	GetActiveCombat(ctx context.Context, roomID string) (*combat.Combat, error)

	// ListRoomCombats retrieves all combats for a room
	ListRoomCombats(ctx context.Context, roomID string) ([]*combat.Combat, error)

	// SelectWeapon records the defender's retaliation weapon and starts rolling
	SelectWeapon(ctx context.Context, combatID, actorID, weaponKey string) (*combat.Combat, error)

	// DeclineRetaliation records that the defender will not fight back
	DeclineRetaliation(ctx context.Context, combatID, actorID string) (*combat.Combat, error)

	// SubmitRoll rolls for the actor in the current round
	SubmitRoll(ctx context.Context, combatID, actorID string) (*combat.Combat, error)

	// PreviewRoll produces ephemeral animation frames for the actor's
	// pending roll; nothing is persisted
	PreviewRoll(ctx context.Context, combatID, actorID string, frames int) ([][]int, error)

	// AdjustRoll replaces the actor's submitted roll in the current round
	AdjustRoll(ctx context.Context, combatID, actorID string, round int, faces []int) (*combat.Combat, error)

	// AdvanceRound explicitly moves to the next round or into results
	AdvanceRound(ctx context.Context, combatID, actorID string) (*combat.Combat, error)

	// AppendRound adds a round with the chosen acting role to the sequence
	AppendRound(ctx context.Context, combatID, actorID string, action combat.ActionType) (*combat.Combat, error)

	// RemoveLastRound drops the final uncompleted round
	RemoveLastRound(ctx context.Context, combatID, actorID string) (*combat.Combat, error)

	// SwapRounds exchanges the rounds numbered round and round+1
	SwapRounds(ctx context.Context, combatID, actorID string, round int) (*combat.Combat, error)

	// InjectOpportunity appends an observer's opportunity round
	InjectOpportunity(ctx context.Context, combatID string, input *OpportunityInput) (*combat.Combat, error)

	// SetWeapon swaps the actor's weapon for the remainder of the combat
	SetWeapon(ctx context.Context, combatID, actorID, weaponKey string) (*combat.Combat, error)

	// SetDefenseDice overrides the actor's defense dice for the combat
	SetDefenseDice(ctx context.Context, combatID, actorID string, count int) (*combat.Combat, error)

	// SetMode selects the actor's stat mode for the combat
	SetMode(ctx context.Context, combatID, actorID, mode string) (*combat.Combat, error)

	// EndCombat cancels the combat; terminal, available from any phase
	EndCombat(ctx context.Context, combatID, actorID string) (*combat.Combat, error)
}

// CreateCombatInput contains data for creating a combat
type CreateCombatInput struct {
	RoomID     string
	AttackerID string
	DefenderID string
	// WeaponKey names the attacking weapon on the attacker's sheet,
	// resolved in the attacker's active mode
	WeaponKey               string
	AllowCounterAttack      bool
	AllowOpportunityAttacks bool
}

// OpportunityInput contains data for an observer's opportunity attack
type OpportunityInput struct {
	ActorID   string
	WeaponKey string
	Target    combat.Target
}

type service struct {
	repository          combats.Repository
	characterRepository characters.Repository
	roller              dice.Roller
	uuidGenerator       uuid.Generator
	log                 zerolog.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository          combats.Repository
	CharacterRepository characters.Repository
	Roller              dice.Roller
	UUIDGenerator       uuid.Generator
	Logger              zerolog.Logger
}

// NewService creates a new combat service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("combat repository is required")
	}
	if cfg.CharacterRepository == nil {
		panic("character repository is required")
	}

	svc := &service{
		repository:          cfg.Repository,
		characterRepository: cfg.CharacterRepository,
		roller:              cfg.Roller,
		uuidGenerator:       cfg.UUIDGenerator,
		log:                 cfg.Logger,
	}
	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

// CreateCombat creates a combat between two characters in a room
func (s *service) CreateCombat(ctx context.Context, input *CreateCombatInput) (*combat.Combat, error) {
	if input == nil {
		return nil, apperr.InvalidArgument("create combat input is required")
	}
	if input.RoomID == "" {
		return nil, apperr.InvalidArgument("room id is required")
	}
	if input.AttackerID == "" || input.DefenderID == "" {
		return nil, apperr.InvalidArgument("attacker and defender are required")
	}
	if input.AttackerID == input.DefenderID {
		return nil, apperr.InvalidArgument("a character cannot attack itself")
	}
	if input.WeaponKey == "" {
		return nil, apperr.InvalidArgument("an attacking weapon must be selected")
	}

	attacker, err := s.characterRepository.Get(ctx, input.AttackerID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load attacker")
	}
	defender, err := s.characterRepository.Get(ctx, input.DefenderID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load defender")
	}

	weapon := attacker.WeaponByKey("", input.WeaponKey)
	if weapon == nil {
		return nil, apperr.InvalidArgumentf("character %s has no weapon %q", attacker.Name, input.WeaponKey)
	}
	if weapon.DiceCount < 1 {
		return nil, apperr.InvalidArgumentf("weapon %q has no dice", weapon.Name)
	}

	c := combat.New(
		s.uuidGenerator.New(),
		input.RoomID,
		combat.Participant{ID: attacker.ID, Name: attacker.Name},
		combat.Participant{ID: defender.ID, Name: defender.Name},
		weapon,
		input.AllowCounterAttack,
		input.AllowOpportunityAttacks,
	)

	// Without counter-attacks there is nothing for the defender to choose;
	// the combat enters rolling straight away with its single attack round.
	if !input.AllowCounterAttack {
		if err := c.AutoStart(); err != nil {
			return nil, err
		}
	}

	if err := s.repository.Create(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("combat_id", c.ID).
		Str("room_id", c.RoomID).
		Str("attacker", c.AttackerName).
		Str("defender", c.DefenderName).
		Bool("counter_attacks", c.AllowCounterAttack).
		Msg("combat created")

	return c, nil
}

// GetCombat retrieves a combat by ID
func (s *service) GetCombat(ctx context.Context, combatID string) (*combat.Combat, error) {
	return s.repository.Get(ctx, combatID)
}

// GetActiveCombat retrieves the room's pending or in-progress combat
func (s *service) GetActiveCombat(ctx context.Context, roomID string) (*combat.Combat, error) {
	return s.repository.GetActiveByRoom(ctx, roomID)
}

// ListRoomCombats retrieves all combats for a room
func (s *service) ListRoomCombats(ctx context.Context, roomID string) ([]*combat.Combat, error) {
	return s.repository.ListByRoom(ctx, roomID)
}

// SelectWeapon records the defender's retaliation weapon and starts rolling
func (s *service) SelectWeapon(ctx context.Context, combatID, actorID, weaponKey string) (*combat.Combat, error) {
	if weaponKey == "" {
		return nil, apperr.InvalidArgument("a weapon must be selected")
	}

	return s.mutate(ctx, combatID, func(c *combat.Combat) error {
		char, err := s.characterRepository.Get(ctx, actorID)
		if err != nil {
			return apperr.Wrap(err, "failed to load defender")
		}
		weapon := char.WeaponByKey(c.ModeFor(actorID), weaponKey)
		if weapon == nil {
			return apperr.InvalidArgumentf("character %s has no weapon %q", char.Name, weaponKey)
		}
		return c.SelectDefenderWeapon(actorID, weapon)
	})
}

// DeclineRetaliation records that the defender will not fight back
func (s *service) DeclineRetaliation(ctx context.Context, combatID, actorID string) (*combat.Combat, error) {
	return s.mutate(ctx, combatID, func(c *combat.Combat) error {
		return c.DeclineRetaliation(actorID)
	})
}

// SubmitRoll rolls for the actor in the current round
func (s *service) SubmitRoll(ctx context.Context, combatID, actorID string) (*combat.Combat, error) {
	return s.mutate(ctx, combatID, func(c *combat.Combat) error {
		seat, err := c.CanAct(actorID)
		if err != nil {
			return err
		}

		count, err := s.resolveRollCount(ctx, c, seat)
		if err != nil {
			return err
		}

		roll, err := s.roller.Roll(count)
		if err != nil {
			return err
		}

		return c.ApplyRoll(actorID, roll.Faces)
	})
}

// PreviewRoll produces ephemeral animation frames for the actor's pending roll
func (s *service) PreviewRoll(ctx context.Context, combatID, actorID string, frames int) ([][]int, error) {
	c, err := s.repository.Get(ctx, combatID)
	if err != nil {
		return nil, err
	}

	seat, err := c.CanAct(actorID)
	if err != nil {
		return nil, err
	}

	count, err := s.resolveRollCount(ctx, c, seat)
	if err != nil {
		return nil, err
	}

	return s.roller.Preview(count, frames)
}

// AdjustRoll replaces the actor's submitted roll in the current round
func (s *service) AdjustRoll(ctx context.Context, combatID, actorID string, round int, faces []int) (*combat.Combat, error) {
	return s.mutate(ctx, combatID, func(c *combat.Combat) error {
		return c.AdjustRoll(actorID, round, faces)
	})
}

// AdvanceRound explicitly moves to the next round or into results
func (s *service) AdvanceRound(ctx context.Context, combatID, actorID string) (*combat.Combat, error) {
	return s.mutate(ctx, combatID, func(c *combat.Combat) error {
		return c.Advance(actorID)
	})
}

// AppendRound adds a round with the chosen acting role to the sequence
func (s *service) AppendRound(ctx context.Context, combatID, actorID string, action combat.ActionType) (*combat.Combat, error) {
	return s.mutate(ctx, combatID, func(c *combat.Combat) error {
		return c.AppendRound(actorID, action)
	})
}

// RemoveLastRound drops the final uncompleted round
func (s *service) RemoveLastRound(ctx context.Context, combatID, actorID string) (*combat.Combat, error) {
	return s.mutate(ctx, combatID, func(c *combat.Combat) error {
		return c.RemoveLastRound(actorID)
	})
}

// SwapRounds exchanges the rounds numbered round and round+1
func (s *service) SwapRounds(ctx context.Context, combatID, actorID string, round int) (*combat.Combat, error) {
	return s.mutate(ctx, combatID, func(c *combat.Combat) error {
		return c.SwapRounds(actorID, round)
	})
}

// InjectOpportunity appends an observer's opportunity round
func (s *service) InjectOpportunity(ctx context.Context, combatID string, input *OpportunityInput) (*combat.Combat, error) {
	if input == nil {
		return nil, apperr.InvalidArgument("opportunity input is required")
	}
	if input.ActorID == "" {
		return nil, apperr.InvalidArgument("actor id is required")
	}
	if input.WeaponKey == "" {
		return nil, apperr.InvalidArgument("an opportunity attack needs a weapon")
	}
	if input.Target == "" {
		return nil, apperr.InvalidArgument("an opportunity attack needs a target")
	}

	return s.mutate(ctx, combatID, func(c *combat.Combat) error {
		char, err := s.characterRepository.Get(ctx, input.ActorID)
		if err != nil {
			return apperr.Wrap(err, "failed to load observer")
		}
		weapon := char.WeaponByKey("", input.WeaponKey)
		if weapon == nil {
			return apperr.InvalidArgumentf("character %s has no weapon %q", char.Name, input.WeaponKey)
		}
		return c.InjectOpportunity(char.ID, char.Name, weapon, input.Target)
	})
}

// SetWeapon swaps the actor's weapon for the remainder of the combat
func (s *service) SetWeapon(ctx context.Context, combatID, actorID, weaponKey string) (*combat.Combat, error) {
	if weaponKey == "" {
		return nil, apperr.InvalidArgument("a weapon must be selected")
	}

	return s.mutate(ctx, combatID, func(c *combat.Combat) error {
		char, err := s.characterRepository.Get(ctx, actorID)
		if err != nil {
			return apperr.Wrap(err, "failed to load character")
		}
		weapon := char.WeaponByKey(c.ModeFor(actorID), weaponKey)
		if weapon == nil {
			return apperr.InvalidArgumentf("character %s has no weapon %q", char.Name, weaponKey)
		}
		return c.SetWeaponOverride(actorID, weapon)
	})
}

// SetDefenseDice overrides the actor's defense dice for the combat
func (s *service) SetDefenseDice(ctx context.Context, combatID, actorID string, count int) (*combat.Combat, error) {
	return s.mutate(ctx, combatID, func(c *combat.Combat) error {
		return c.SetDefenseDiceOverride(actorID, count)
	})
}

// SetMode selects the actor's stat mode for the combat
func (s *service) SetMode(ctx context.Context, combatID, actorID, mode string) (*combat.Combat, error) {
	return s.mutate(ctx, combatID, func(c *combat.Combat) error {
		return c.SetMode(actorID, mode)
	})
}

// EndCombat cancels the combat
func (s *service) EndCombat(ctx context.Context, combatID, actorID string) (*combat.Combat, error) {
	c, err := s.mutate(ctx, combatID, func(c *combat.Combat) error {
		return c.End(actorID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("combat_id", c.ID).
		Str("room_id", c.RoomID).
		Str("ended_by", actorID).
		Msg("combat ended")

	return c, nil
}

// mutate replays fn against fresh reads until the write is accepted or the
// retry budget is spent. fn must be side-effect free apart from mutating
// the record it is handed.
func (s *service) mutate(ctx context.Context, combatID string, fn func(c *combat.Combat) error) (*combat.Combat, error) {
	if combatID == "" {
		return nil, apperr.InvalidArgument("combat id is required")
	}

	var lastErr error
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		c, err := s.repository.Get(ctx, combatID)
		if err != nil {
			return nil, err
		}

		readVersion := c.Version
		if err := fn(c); err != nil {
			return nil, err
		}

		err = s.repository.Update(ctx, c, readVersion)
		if err == nil {
			return c, nil
		}
		if !apperr.IsConflict(err) {
			return nil, err
		}

		lastErr = err
		s.log.Debug().
			Str("combat_id", combatID).
			Int("attempt", attempt+1).
			Msg("combat write conflict, retrying against fresh read")
	}

	return nil, lastErr
}

// resolveRollCount determines how many dice the seat rolls now. The acting
// seat rolls its weapon's dice. The reacting seat rolls its defense dice,
// preferring the combat-scoped override over the sheet's base value.
func (s *service) resolveRollCount(ctx context.Context, c *combat.Combat, seat combat.Seat) (int, error) {
	r := c.Current()
	if r == nil {
		return 0, apperr.Internal("no current round")
	}

	if seat == r.ActingSeat() {
		return c.ActingDiceCount(r)
	}

	participantID := c.SeatParticipant(r, seat)
	if override := c.DefenseDiceOverrideFor(participantID); override != nil {
		if *override < 1 {
			return 0, apperr.InvalidArgumentf("invalid defense dice override: %d", *override)
		}
		return *override, nil
	}

	char, err := s.characterRepository.Get(ctx, participantID)
	if err != nil {
		return 0, apperr.Wrap(err, "failed to load defender sheet")
	}

	count := char.BaseDefenseDice(c.ModeFor(participantID))
	if count < 1 {
		return 0, apperr.InvalidArgumentf("character %s has no defense dice", char.Name)
	}
	return count, nil
}
