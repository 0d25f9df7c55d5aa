package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrichor-games/duelist/internal/domain/combat"
	apperr "github.com/petrichor-games/duelist/internal/errors"
)

func TestAppendRound(t *testing.T) {
	c := newRollingCombat(t, 5, 5)
	require.Equal(t, 3, c.TotalRounds)

	require.NoError(t, c.AppendRound(attackerID, combat.ActionCounter))
	assert.Equal(t, 4, c.TotalRounds)
	assert.Equal(t, 4, c.Rounds[3].Number)
	assert.Equal(t, combat.ActionCounter, c.Rounds[3].ActionType)
}

func TestAppendRound_Guards(t *testing.T) {
	c := newRollingCombat(t, 5, 5)

	err := c.AppendRound(observerID, combat.ActionAttack)
	require.Error(t, err)
	assert.True(t, apperr.IsPermissionDenied(err))

	err = c.AppendRound(attackerID, combat.ActionOpportunity)
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))

	pending := newPendingCombat(true, false)
	err = pending.AppendRound(attackerID, combat.ActionAttack)
	require.Error(t, err)
	assert.True(t, apperr.IsFailedPrecondition(err))
}

func TestRemoveLastRound(t *testing.T) {
	c := newRollingCombat(t, 5, 5)
	require.Equal(t, 3, c.TotalRounds)

	require.NoError(t, c.RemoveLastRound(defenderID))
	assert.Equal(t, 2, c.TotalRounds)
	assert.Len(t, c.Rounds, 2)
}

func TestRemoveLastRound_Guards(t *testing.T) {
	t.Run("cannot remove the round in progress", func(t *testing.T) {
		c := newRollingCombat(t, 5, 5)
		require.NoError(t, c.RemoveLastRound(attackerID))
		require.NoError(t, c.RemoveLastRound(attackerID))

		// Only the current round remains
		err := c.RemoveLastRound(attackerID)
		require.Error(t, err)
		assert.True(t, apperr.IsFailedPrecondition(err))
	})

	t.Run("cannot remove once current", func(t *testing.T) {
		c := newRollingCombat(t, 5, 5)
		completeCurrentRound(t, c)
		require.NoError(t, c.Advance(attackerID))
		completeCurrentRound(t, c)
		require.NoError(t, c.Advance(attackerID))

		// The last round is now the current round
		err := c.RemoveLastRound(attackerID)
		require.Error(t, err)
		assert.True(t, apperr.IsFailedPrecondition(err))
	})
}

func TestSwapRounds(t *testing.T) {
	c := newRollingCombat(t, 3, 5) // [attack, attack, attack, counter, attack]

	require.NoError(t, c.SwapRounds(attackerID, 3))
	assert.Equal(t, combat.ActionCounter, c.Rounds[2].ActionType)
	assert.Equal(t, combat.ActionAttack, c.Rounds[3].ActionType)

	// Numbers stay contiguous after the swap
	for i, r := range c.Rounds {
		assert.Equal(t, i+1, r.Number)
	}
}

func TestSwapRounds_Guards(t *testing.T) {
	c := newRollingCombat(t, 5, 5)

	err := c.SwapRounds(attackerID, 3)
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err), "no pair past the last round")

	err = c.SwapRounds(attackerID, 0)
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))

	completeCurrentRound(t, c)
	require.NoError(t, c.Advance(attackerID))

	err = c.SwapRounds(attackerID, 1)
	require.Error(t, err)
	assert.True(t, apperr.IsFailedPrecondition(err), "round 1 is behind the current round")
}
