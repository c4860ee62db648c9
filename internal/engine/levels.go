package engine

import (
	"github.com/inov8tr/placement-api/internal/config"
	"github.com/inov8tr/placement-api/internal/model"
)

// StreakState bundles a section's live level with its streak counters.
type StreakState struct {
	Level      model.LevelState
	StreakUp   int
	StreakDown int
}

// Advance applies one graded answer to the level state machine and returns
// the new state. Pure: callers persist the result.
//
// A correct answer zeroes the down streak and grows the up streak; hitting
// the skip threshold jumps by the skip delta and resets the streak, while
// hitting the smaller step threshold moves one step without resetting, so a
// sustained run keeps stepping until the skip absorbs it. Incorrect answers
// mirror the same rules downward.
func Advance(s StreakState, correct bool, cfg config.EngineConfig) StreakState {
	if correct {
		s.StreakDown = 0
		s.StreakUp++
		if s.StreakUp >= cfg.SkipThreshold {
			s.Level = s.Level.StepN(cfg.SkipDelta, cfg.MinLevel, cfg.MaxLevel)
			s.StreakUp = 0
		} else if s.StreakUp >= cfg.UpThreshold {
			s.Level = s.Level.StepN(cfg.StepDelta, cfg.MinLevel, cfg.MaxLevel)
		}
		return s
	}

	s.StreakUp = 0
	s.StreakDown++
	if s.StreakDown >= cfg.SkipDownThreshold {
		s.Level = s.Level.StepN(-cfg.SkipDelta, cfg.MinLevel, cfg.MaxLevel)
		s.StreakDown = 0
	} else if s.StreakDown >= cfg.DownThreshold {
		s.Level = s.Level.StepN(-cfg.StepDelta, cfg.MinLevel, cfg.MaxLevel)
	}
	return s
}
