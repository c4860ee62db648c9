package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Sublevels supported within each level, in ascending order.
var Sublevels = []string{"1", "2", "3"}

// LevelState is the two-part ordinal ability estimate (e.g. 3.2 = level 3,
// sublevel 2) that drives content difficulty.
type LevelState struct {
	Level    int    `json:"level" bson:"level"`
	Sublevel string `json:"sublevel" bson:"sublevel"`
}

// Encode serializes a LevelState as its decimal form, e.g. "3.2".
func (s LevelState) Encode() string {
	return fmt.Sprintf("%d.%s", s.Level, s.Sublevel)
}

// Value returns the LevelState as a comparable float (level + sublevel/10).
func (s LevelState) Value() float64 {
	n, _ := strconv.Atoi(s.Sublevel)
	return float64(s.Level) + float64(n)/10.0
}

// SublevelIndex returns the 0-based position of the sublevel, or 0 when the
// sublevel is not a recognized value.
func (s LevelState) SublevelIndex() int {
	for i, sub := range Sublevels {
		if sub == s.Sublevel {
			return i
		}
	}
	return 0
}

// ParseLevelState parses the decimal encoding produced by Encode.
func ParseLevelState(enc string) (LevelState, error) {
	parts := strings.SplitN(strings.TrimSpace(enc), ".", 2)
	if len(parts) != 2 {
		return LevelState{}, fmt.Errorf("invalid level state %q", enc)
	}
	level, err := strconv.Atoi(parts[0])
	if err != nil {
		return LevelState{}, fmt.Errorf("invalid level in %q", enc)
	}
	valid := false
	for _, sub := range Sublevels {
		if sub == parts[1] {
			valid = true
			break
		}
	}
	if !valid {
		return LevelState{}, fmt.Errorf("invalid sublevel in %q", enc)
	}
	return LevelState{Level: level, Sublevel: parts[1]}, nil
}

// StepUp advances the state one sublevel, rolling into the next level past
// the top sublevel and clamping at maxLevel sublevel "3".
func (s LevelState) StepUp(maxLevel int) LevelState {
	idx := s.SublevelIndex()
	if idx < len(Sublevels)-1 {
		return LevelState{Level: s.Level, Sublevel: Sublevels[idx+1]}
	}
	if s.Level >= maxLevel {
		return LevelState{Level: maxLevel, Sublevel: Sublevels[len(Sublevels)-1]}
	}
	return LevelState{Level: s.Level + 1, Sublevel: Sublevels[0]}
}

// StepDown retreats the state one sublevel, rolling into the previous level
// below the bottom sublevel and clamping at minLevel sublevel "1".
func (s LevelState) StepDown(minLevel int) LevelState {
	idx := s.SublevelIndex()
	if idx > 0 {
		return LevelState{Level: s.Level, Sublevel: Sublevels[idx-1]}
	}
	if s.Level <= minLevel {
		return LevelState{Level: minLevel, Sublevel: Sublevels[0]}
	}
	return LevelState{Level: s.Level - 1, Sublevel: Sublevels[len(Sublevels)-1]}
}

// StepN applies n single sublevel steps (positive = up, negative = down),
// clamping at the bounds on every step.
func (s LevelState) StepN(n, minLevel, maxLevel int) LevelState {
	state := s
	for i := 0; i < abs(n); i++ {
		if n > 0 {
			state = state.StepUp(maxLevel)
		} else {
			state = state.StepDown(minLevel)
		}
	}
	return state
}

// QuantizeLevel snaps a raw arithmetic level value to the nearest supported
// level/sublevel boundary, clamped to [minLevel, maxLevel].
func QuantizeLevel(raw float64, minLevel, maxLevel int) LevelState {
	if raw < float64(minLevel)+0.1 {
		return LevelState{Level: minLevel, Sublevel: Sublevels[0]}
	}
	if raw > float64(maxLevel)+0.3 {
		return LevelState{Level: maxLevel, Sublevel: Sublevels[len(Sublevels)-1]}
	}
	level := int(raw)
	frac := raw - float64(level)
	idx := int(frac*10.0 + 0.5)
	if idx < 1 {
		idx = 1
	}
	if idx > len(Sublevels) {
		// Fractions past the top sublevel clamp within the level so a
		// negative modifier can never quantize above its base.
		idx = len(Sublevels)
	}
	return LevelState{Level: level, Sublevel: Sublevels[idx-1]}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
