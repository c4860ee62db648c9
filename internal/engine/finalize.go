package engine

import (
	"math"

	"github.com/inov8tr/placement-api/internal/config"
	"github.com/inov8tr/placement-api/internal/model"
)

// Outcome is the aggregated result of a finished test session.
type Outcome struct {
	WeightedLevel model.LevelState
	WeightedRaw   float64
	TotalScore    int
}

// Finalize combines all section results into the overall weighted level and
// percentage score. Sections without a stamped final level (time expiry)
// contribute their last-known live state. Pure and deterministic, so
// re-invoking it over the same rows yields identical output.
func Finalize(sections []*model.TestSection, cfg config.EngineConfig) Outcome {
	var weighted, totalWeight float64
	served, correct := 0, 0

	for _, sec := range sections {
		state := sec.State()
		if sec.FinalLevel != "" {
			if parsed, err := model.ParseLevelState(sec.FinalLevel); err == nil {
				state = parsed
			}
		}
		weight := model.SectionWeights[sec.Section]
		weighted += weight * state.Value()
		totalWeight += weight
		served += sec.QuestionsServed
		correct += sec.CorrectCount
	}

	if totalWeight > 0 {
		weighted /= totalWeight
	}

	score := 0
	if served > 0 {
		score = int(math.Round(100 * float64(correct) / float64(served)))
	}

	return Outcome{
		WeightedLevel: model.QuantizeLevel(weighted, cfg.MinLevel, cfg.MaxLevel),
		WeightedRaw:   weighted,
		TotalScore:    score,
	}
}
