package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrichor-games/duelist/internal/dice"
	mockdice "github.com/petrichor-games/duelist/internal/dice/mock"
	apperr "github.com/petrichor-games/duelist/internal/errors"
)

func TestRandomRoller_Roll(t *testing.T) {
	roller := dice.NewRandomRoller()

	result, err := roller.Roll(4)
	require.NoError(t, err)
	assert.Len(t, result.Faces, 4)
	for _, f := range result.Faces {
		assert.GreaterOrEqual(t, f, 1)
		assert.LessOrEqual(t, f, dice.Sides)
	}
	assert.Equal(t, dice.Sum(result.Faces), result.Total)
	assert.GreaterOrEqual(t, result.Total, 4)
	assert.LessOrEqual(t, result.Total, 4*dice.Sides)
}

func TestRandomRoller_RollInvalidCount(t *testing.T) {
	roller := dice.NewRandomRoller()

	for _, count := range []int{0, -1} {
		_, err := roller.Roll(count)
		require.Error(t, err)
		assert.True(t, apperr.IsInvalidArgument(err))
	}
}

func TestRandomRoller_Preview(t *testing.T) {
	roller := dice.NewRandomRoller()

	previews, err := roller.Preview(3, 5)
	require.NoError(t, err)
	require.Len(t, previews, 5)
	for _, frame := range previews {
		assert.Len(t, frame, 3)
		for _, f := range frame {
			assert.GreaterOrEqual(t, f, 1)
			assert.LessOrEqual(t, f, dice.Sides)
		}
	}
}

func TestRandomRoller_PreviewBounds(t *testing.T) {
	roller := dice.NewRandomRoller()

	// Frame counts past the cap are clamped, not rejected
	previews, err := roller.Preview(2, dice.MaxPreviewFrames+10)
	require.NoError(t, err)
	assert.Len(t, previews, dice.MaxPreviewFrames)

	_, err = roller.Preview(2, 0)
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))

	_, err = roller.Preview(0, 3)
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))
}

func TestManualMockRoller_SequentialRolls(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetFaces([]int{6, 6, 1, 4, 2})

	result, err := roller.Roll(3)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 6, 1}, result.Faces)
	assert.Equal(t, 13, result.Total)

	result, err = roller.Roll(2)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2}, result.Faces)
	assert.Equal(t, 6, result.Total)

	// Queue is spent
	_, err = roller.Roll(1)
	assert.Error(t, err)
}

func TestManualMockRoller_PreviewDoesNotConsume(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetFaces([]int{3, 5})

	previews, err := roller.Preview(2, 4)
	require.NoError(t, err)
	require.Len(t, previews, 4)
	for _, frame := range previews {
		assert.Equal(t, []int{3, 5}, frame)
	}

	// The committed roll still sees the queued faces
	result, err := roller.Roll(2)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5}, result.Faces)
}
