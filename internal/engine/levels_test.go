package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inov8tr/placement-api/internal/config"
	"github.com/inov8tr/placement-api/internal/model"
)

func testCfg() config.EngineConfig {
	return config.DefaultEngineConfig()
}

func at(level int, sublevel string) model.LevelState {
	return model.LevelState{Level: level, Sublevel: sublevel}
}

func TestAdvanceResetsOppositeStreak(t *testing.T) {
	cfg := testCfg()

	s := Advance(StreakState{Level: at(3, "1"), StreakDown: 2}, true, cfg)
	assert.Equal(t, 0, s.StreakDown)
	assert.Equal(t, 1, s.StreakUp)

	s = Advance(StreakState{Level: at(3, "1"), StreakUp: 2}, false, cfg)
	assert.Equal(t, 0, s.StreakUp)
	assert.Equal(t, 1, s.StreakDown)
}

func TestAdvanceStepsOneSublevelAtThreshold(t *testing.T) {
	cfg := testCfg()

	// Three straight correct answers from 3.1: one-sublevel step on the
	// third, streak deliberately not reset.
	s := StreakState{Level: at(3, "1")}
	for i := 0; i < 3; i++ {
		s = Advance(s, true, cfg)
	}
	assert.Equal(t, at(3, "2"), s.Level)
	assert.Equal(t, 3, s.StreakUp)
}

func TestAdvanceSkipsAtSkipThreshold(t *testing.T) {
	cfg := testCfg()

	// Streak sits exactly at SkipThreshold-1; the next correct answer must
	// jump by the skip delta and zero the streak.
	s := StreakState{Level: at(3, "1"), StreakUp: cfg.SkipThreshold - 1}
	s = Advance(s, true, cfg)
	assert.Equal(t, at(3, "1").StepN(cfg.SkipDelta, cfg.MinLevel, cfg.MaxLevel), s.Level)
	assert.Equal(t, 0, s.StreakUp)
}

func TestAdvanceStepBetweenThresholds(t *testing.T) {
	cfg := testCfg()

	// Strictly between the step and skip thresholds: exactly one sublevel.
	s := StreakState{Level: at(3, "2"), StreakUp: 3}
	s = Advance(s, true, cfg)
	assert.Equal(t, at(3, "3"), s.Level)
	assert.Equal(t, 4, s.StreakUp)
}

func TestAdvanceMirrorsDownward(t *testing.T) {
	cfg := testCfg()

	s := StreakState{Level: at(3, "2")}
	for i := 0; i < cfg.DownThreshold; i++ {
		s = Advance(s, false, cfg)
	}
	assert.Equal(t, at(3, "1"), s.Level)
	assert.Equal(t, cfg.DownThreshold, s.StreakDown)

	s = StreakState{Level: at(3, "2"), StreakDown: cfg.SkipDownThreshold - 1}
	s = Advance(s, false, cfg)
	assert.Equal(t, at(3, "2").StepN(-cfg.SkipDelta, cfg.MinLevel, cfg.MaxLevel), s.Level)
	assert.Equal(t, 0, s.StreakDown)
}

func TestAdvanceStaysInBounds(t *testing.T) {
	cfg := testCfg()

	// Long runs of the same outcome never leave [MinLevel, MaxLevel].
	s := StreakState{Level: at(cfg.MaxLevel, "2")}
	for i := 0; i < 50; i++ {
		s = Advance(s, true, cfg)
		assert.LessOrEqual(t, s.Level.Level, cfg.MaxLevel)
		assert.Contains(t, model.Sublevels, s.Level.Sublevel)
	}
	assert.Equal(t, at(cfg.MaxLevel, "3"), s.Level)

	s = StreakState{Level: at(cfg.MinLevel, "2")}
	for i := 0; i < 50; i++ {
		s = Advance(s, false, cfg)
		assert.GreaterOrEqual(t, s.Level.Level, cfg.MinLevel)
		assert.Contains(t, model.Sublevels, s.Level.Sublevel)
	}
	assert.Equal(t, at(cfg.MinLevel, "1"), s.Level)
}
