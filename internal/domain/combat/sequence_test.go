package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrichor-games/duelist/internal/domain/combat"
	apperr "github.com/petrichor-games/duelist/internal/errors"
)

func actions(rounds []*combat.Round) []combat.ActionType {
	result := make([]combat.ActionType, len(rounds))
	for i, r := range rounds {
		result[i] = r.ActionType
	}
	return result
}

func TestBuildSequence(t *testing.T) {
	tests := []struct {
		name          string
		attackerSpeed int
		defenderSpeed int
		want          []combat.ActionType
	}{
		{
			name:          "equal speeds",
			attackerSpeed: 5,
			defenderSpeed: 5,
			want: []combat.ActionType{
				combat.ActionAttack,
				combat.ActionCounter,
				combat.ActionAttack,
			},
		},
		{
			name:          "attacker two faster",
			attackerSpeed: 3,
			defenderSpeed: 5,
			want: []combat.ActionType{
				combat.ActionAttack,
				combat.ActionAttack,
				combat.ActionAttack,
				combat.ActionCounter,
				combat.ActionAttack,
			},
		},
		{
			name:          "defender two faster",
			attackerSpeed: 5,
			defenderSpeed: 3,
			want: []combat.ActionType{
				combat.ActionAttack,
				combat.ActionCounter,
				combat.ActionCounter,
				combat.ActionCounter,
				combat.ActionAttack,
			},
		},
		{
			name:          "attacker four faster",
			attackerSpeed: 2,
			defenderSpeed: 6,
			want: []combat.ActionType{
				combat.ActionAttack,
				combat.ActionAttack,
				combat.ActionAttack,
				combat.ActionAttack,
				combat.ActionAttack,
				combat.ActionCounter,
				combat.ActionAttack,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rounds, err := combat.BuildSequence(combat.SequenceInput{
				AttackerSpeed: tt.attackerSpeed,
				DefenderSpeed: tt.defenderSpeed,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, actions(rounds))

			// Rounds are numbered 1..n in order
			for i, r := range rounds {
				assert.Equal(t, i+1, r.Number)
			}
		})
	}
}

func TestBuildSequence_Shape(t *testing.T) {
	// Regardless of speeds, the full sequence opens and closes with an
	// attack and carries one extra round per point of difference.
	for attacker := 1; attacker <= 8; attacker++ {
		for defender := 1; defender <= 8; defender++ {
			rounds, err := combat.BuildSequence(combat.SequenceInput{
				AttackerSpeed: attacker,
				DefenderSpeed: defender,
			})
			require.NoError(t, err)

			diff := attacker - defender
			if diff < 0 {
				diff = -diff
			}
			assert.Len(t, rounds, 3+diff, "speeds %d vs %d", attacker, defender)
			assert.Equal(t, combat.ActionAttack, rounds[0].ActionType)
			assert.Equal(t, combat.ActionAttack, rounds[len(rounds)-1].ActionType)
			assert.Equal(t, combat.ActionCounter, rounds[len(rounds)-2].ActionType)
		}
	}
}

func TestBuildSequence_SkipPolicies(t *testing.T) {
	single, err := combat.BuildSequence(combat.SequenceInput{Skip: combat.SkipPolicySingleAttack})
	require.NoError(t, err)
	assert.Equal(t, []combat.ActionType{combat.ActionAttack}, actions(single))

	double, err := combat.BuildSequence(combat.SequenceInput{Skip: combat.SkipPolicyDoubleAttack})
	require.NoError(t, err)
	assert.Equal(t, []combat.ActionType{combat.ActionAttack, combat.ActionAttack}, actions(double))

	// Skip policies ignore speeds entirely
	singleFast, err := combat.BuildSequence(combat.SequenceInput{
		AttackerSpeed: 2,
		DefenderSpeed: 6,
		Skip:          combat.SkipPolicySingleAttack,
	})
	require.NoError(t, err)
	assert.Len(t, singleFast, 1)
}

func TestBuildSequence_UnknownPolicy(t *testing.T) {
	_, err := combat.BuildSequence(combat.SequenceInput{Skip: combat.SkipPolicy("bogus")})
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))
}
