package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelStateEncodeParse(t *testing.T) {
	state := LevelState{Level: 3, Sublevel: "2"}
	assert.Equal(t, "3.2", state.Encode())

	parsed, err := ParseLevelState("3.2")
	require.NoError(t, err)
	assert.Equal(t, state, parsed)

	_, err = ParseLevelState("3.4")
	assert.Error(t, err)
	_, err = ParseLevelState("abc")
	assert.Error(t, err)
	_, err = ParseLevelState("3")
	assert.Error(t, err)
}

func TestLevelStateValue(t *testing.T) {
	assert.InDelta(t, 3.2, LevelState{Level: 3, Sublevel: "2"}.Value(), 1e-9)
	assert.InDelta(t, 7.3, LevelState{Level: 7, Sublevel: "3"}.Value(), 1e-9)
}

func TestStepUpRollsIntoNextLevel(t *testing.T) {
	state := LevelState{Level: 2, Sublevel: "3"}
	assert.Equal(t, LevelState{Level: 3, Sublevel: "1"}, state.StepUp(7))
}

func TestStepUpClampsAtMax(t *testing.T) {
	state := LevelState{Level: 7, Sublevel: "3"}
	assert.Equal(t, state, state.StepUp(7))
}

func TestStepDownRollsIntoPreviousLevel(t *testing.T) {
	state := LevelState{Level: 3, Sublevel: "1"}
	assert.Equal(t, LevelState{Level: 2, Sublevel: "3"}, state.StepDown(1))
}

func TestStepDownClampsAtMin(t *testing.T) {
	state := LevelState{Level: 1, Sublevel: "1"}
	assert.Equal(t, state, state.StepDown(1))
}

func TestStepNClampsEveryStep(t *testing.T) {
	state := LevelState{Level: 7, Sublevel: "2"}
	assert.Equal(t, LevelState{Level: 7, Sublevel: "3"}, state.StepN(5, 1, 7))

	state = LevelState{Level: 1, Sublevel: "2"}
	assert.Equal(t, LevelState{Level: 1, Sublevel: "1"}, state.StepN(-5, 1, 7))
}

func TestQuantizeLevel(t *testing.T) {
	cases := []struct {
		raw  float64
		want LevelState
	}{
		{4.2, LevelState{Level: 4, Sublevel: "2"}},
		{4.0, LevelState{Level: 4, Sublevel: "1"}},
		{3.05, LevelState{Level: 3, Sublevel: "1"}},
		{4.25, LevelState{Level: 4, Sublevel: "3"}},
		{4.5, LevelState{Level: 4, Sublevel: "3"}},
		{4.9, LevelState{Level: 4, Sublevel: "3"}},
		{0.3, LevelState{Level: 1, Sublevel: "1"}},
		{9.0, LevelState{Level: 7, Sublevel: "3"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, QuantizeLevel(tc.raw, 1, 7), "raw %v", tc.raw)
	}
}
