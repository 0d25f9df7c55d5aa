package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrichor-games/duelist/internal/domain/combat"
	"github.com/petrichor-games/duelist/internal/domain/sheet"
	apperr "github.com/petrichor-games/duelist/internal/errors"
)

const (
	attackerID = "char-attacker"
	defenderID = "char-defender"
	observerID = "char-observer"
)

func testWeapon(key string, diceCount, loadTime int) *sheet.Weapon {
	return &sheet.Weapon{
		Key:       key,
		Name:      key,
		DiceCount: diceCount,
		LoadTime:  loadTime,
		Damage:    2,
	}
}

// newPendingCombat returns a combat waiting on the defender's weapon choice
func newPendingCombat(allowCounter, allowOpportunity bool) *combat.Combat {
	return combat.New(
		"combat-1",
		"room-1",
		combat.Participant{ID: attackerID, Name: "Aria"},
		combat.Participant{ID: defenderID, Name: "Dax"},
		testWeapon("sabre", 3, 5),
		allowCounter,
		allowOpportunity,
	)
}

// newRollingCombat returns a combat in the rolling phase with the sequence
// built from the given load times.
func newRollingCombat(t *testing.T, attackerSpeed, defenderSpeed int) *combat.Combat {
	t.Helper()

	c := combat.New(
		"combat-1",
		"room-1",
		combat.Participant{ID: attackerID, Name: "Aria"},
		combat.Participant{ID: defenderID, Name: "Dax"},
		testWeapon("sabre", 3, attackerSpeed),
		true,
		true,
	)
	require.NoError(t, c.SelectDefenderWeapon(defenderID, testWeapon("pike", 2, defenderSpeed)))
	return c
}

// completeCurrentRound rolls both seats of the current round in order
func completeCurrentRound(t *testing.T, c *combat.Combat) {
	t.Helper()

	r := c.Current()
	require.NotNil(t, r)

	acting := c.SeatParticipant(r, r.ActingSeat())
	require.NoError(t, c.ApplyRoll(acting, []int{3, 4}))

	reacting := c.SeatParticipant(r, reactingSeatOf(r))
	require.NoError(t, c.ApplyRoll(reacting, []int{2}))
}

func reactingSeatOf(r *combat.Round) combat.Seat {
	if r.ActingSeat() == combat.SeatAttacker {
		return combat.SeatDefender
	}
	return combat.SeatAttacker
}

func TestCanAct_ActingSeatRollsFirst(t *testing.T) {
	c := newRollingCombat(t, 5, 5)

	// Round 1 is an attack round, so the defender must wait
	_, err := c.CanAct(defenderID)
	require.Error(t, err)
	assert.True(t, apperr.IsFailedPrecondition(err))

	seat, err := c.CanAct(attackerID)
	require.NoError(t, err)
	assert.Equal(t, combat.SeatAttacker, seat)

	require.NoError(t, c.ApplyRoll(attackerID, []int{1, 2, 3}))

	// Now the defender may react, the attacker may not roll again
	seat, err = c.CanAct(defenderID)
	require.NoError(t, err)
	assert.Equal(t, combat.SeatDefender, seat)

	_, err = c.CanAct(attackerID)
	require.Error(t, err)
	assert.True(t, apperr.IsFailedPrecondition(err))
}

func TestCanAct_CounterRoundFlipsSeats(t *testing.T) {
	c := newRollingCombat(t, 5, 5)
	completeCurrentRound(t, c)
	require.NoError(t, c.Advance(attackerID))

	// Round 2 is a counter round, so the defender acts first
	r := c.Current()
	require.Equal(t, combat.ActionCounter, r.ActionType)

	_, err := c.CanAct(attackerID)
	require.Error(t, err)
	assert.True(t, apperr.IsFailedPrecondition(err))

	seat, err := c.CanAct(defenderID)
	require.NoError(t, err)
	assert.Equal(t, combat.SeatDefender, seat)
}

func TestCanAct_Stranger(t *testing.T) {
	c := newRollingCombat(t, 5, 5)

	_, err := c.CanAct(observerID)
	require.Error(t, err)
	assert.True(t, apperr.IsPermissionDenied(err))
}

func TestCanAct_OutsideRollingPhase(t *testing.T) {
	c := newPendingCombat(true, false)

	_, err := c.CanAct(attackerID)
	require.Error(t, err)
	assert.True(t, apperr.IsFailedPrecondition(err))
}

func TestApplyRoll_SecondRollCompletesRound(t *testing.T) {
	c := newRollingCombat(t, 5, 5)

	require.NoError(t, c.ApplyRoll(attackerID, []int{6, 6, 1}))
	assert.False(t, c.Current().Completed)

	require.NoError(t, c.ApplyRoll(defenderID, []int{4}))
	r := c.Current()
	assert.True(t, r.Completed)
	assert.Equal(t, 13, r.Attacker.Total)
	assert.Equal(t, 4, r.Defender.Total)
}

func TestApplyRoll_RejectsBadFaces(t *testing.T) {
	c := newRollingCombat(t, 5, 5)

	err := c.ApplyRoll(attackerID, []int{3, 7})
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))

	err = c.ApplyRoll(attackerID, nil)
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))
}

func TestAdjustRoll(t *testing.T) {
	c := newRollingCombat(t, 5, 5)
	require.NoError(t, c.ApplyRoll(attackerID, []int{3, 4, 5}))

	// The roller may edit faces and drop one die
	require.NoError(t, c.AdjustRoll(attackerID, 1, []int{6, 6}))
	r := c.Current()
	assert.Equal(t, []int{6, 6}, r.Attacker.Roll)
	assert.Equal(t, 12, r.Attacker.Total)

	// The other seat has no roll yet
	err := c.AdjustRoll(defenderID, 1, []int{1})
	require.Error(t, err)
	assert.True(t, apperr.IsFailedPrecondition(err))
}

func TestAdjustRoll_OnlyCurrentRound(t *testing.T) {
	c := newRollingCombat(t, 5, 5)
	completeCurrentRound(t, c)
	require.NoError(t, c.Advance(attackerID))

	// Round 1 is settled once the combat moved on
	err := c.AdjustRoll(attackerID, 1, []int{6, 6})
	require.Error(t, err)
	assert.True(t, apperr.IsFailedPrecondition(err))
}

func TestAdvance_RequiresCompletedRound(t *testing.T) {
	c := newRollingCombat(t, 5, 5)

	err := c.Advance(attackerID)
	require.Error(t, err)
	assert.True(t, apperr.IsFailedPrecondition(err))

	require.NoError(t, c.ApplyRoll(attackerID, []int{2}))
	err = c.Advance(attackerID)
	require.Error(t, err)
	assert.True(t, apperr.IsFailedPrecondition(err))

	require.NoError(t, c.ApplyRoll(defenderID, []int{5}))
	require.NoError(t, c.Advance(attackerID))
	assert.Equal(t, 2, c.CurrentRound)
}

func TestAdvance_LastRoundEntersResults(t *testing.T) {
	c := newRollingCombat(t, 5, 5)
	require.Equal(t, 3, c.TotalRounds)

	for i := 0; i < 3; i++ {
		completeCurrentRound(t, c)
		require.NoError(t, c.Advance(defenderID))
	}

	assert.Equal(t, combat.PhaseResults, c.Phase)
	assert.Equal(t, combat.StatusCompleted, c.Status)
	assert.True(t, c.Terminal())
	// The results view stays parked on the final round
	assert.Equal(t, c.TotalRounds, c.CurrentRound)

	// Nothing moves after completion
	err := c.Advance(attackerID)
	require.Error(t, err)
	assert.True(t, apperr.IsFailedPrecondition(err))
}

func TestEnd(t *testing.T) {
	c := newRollingCombat(t, 5, 5)

	err := c.End(observerID)
	require.Error(t, err)
	assert.True(t, apperr.IsPermissionDenied(err))

	require.NoError(t, c.End(defenderID))
	assert.Equal(t, combat.StatusCancelled, c.Status)
	assert.True(t, c.Terminal())

	err = c.End(attackerID)
	require.Error(t, err)
	assert.True(t, apperr.IsFailedPrecondition(err))
}

func TestEnd_FromWeaponSelection(t *testing.T) {
	c := newPendingCombat(true, false)
	require.NoError(t, c.End(attackerID))
	assert.Equal(t, combat.StatusCancelled, c.Status)
}

func TestClone_Isolated(t *testing.T) {
	c := newRollingCombat(t, 5, 5)
	require.NoError(t, c.ApplyRoll(attackerID, []int{1, 2, 3}))

	clone := c.Clone()
	clone.Rounds[0].Attacker.Roll[0] = 6
	clone.AttackData.DiceCount = 99

	assert.Equal(t, []int{1, 2, 3}, c.Rounds[0].Attacker.Roll)
	assert.Equal(t, 3, c.AttackData.DiceCount)
}
