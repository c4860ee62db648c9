package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inov8tr/placement-api/internal/model"
)

func section(name model.Section, level int, sublevel string, served, correct int, completed bool) *model.TestSection {
	sec := &model.TestSection{
		Section:         name,
		CurrentLevel:    level,
		CurrentSublevel: sublevel,
		QuestionsServed: served,
		CorrectCount:    correct,
		IncorrectCount:  served - correct,
		Completed:       completed,
	}
	if completed {
		sec.FinalLevel = sec.State().Encode()
	}
	return sec
}

func TestFinalizeWeightsSections(t *testing.T) {
	sections := []*model.TestSection{
		section(model.SectionGrammar, 4, "1", 20, 15, true),
		section(model.SectionReading, 4, "1", 20, 15, true),
		section(model.SectionListening, 4, "1", 20, 15, true),
		section(model.SectionDialog, 4, "1", 20, 15, true),
	}

	outcome := Finalize(sections, testCfg())
	assert.InDelta(t, 4.1, outcome.WeightedRaw, 1e-9)
	assert.Equal(t, "4.1", outcome.WeightedLevel.Encode())
	assert.Equal(t, 75, outcome.TotalScore)
}

func TestFinalizeUnevenSections(t *testing.T) {
	sections := []*model.TestSection{
		section(model.SectionGrammar, 5, "1", 20, 18, true),
		section(model.SectionReading, 4, "2", 20, 14, true),
		section(model.SectionListening, 3, "3", 20, 10, true),
		section(model.SectionDialog, 4, "1", 20, 12, true),
	}

	outcome := Finalize(sections, testCfg())
	// 0.3*5.1 + 0.3*4.2 + 0.2*3.3 + 0.2*4.1
	assert.InDelta(t, 4.27, outcome.WeightedRaw, 1e-9)
	assert.Equal(t, "4.3", outcome.WeightedLevel.Encode())
	assert.Equal(t, 68, outcome.TotalScore) // 54/80
}

func TestFinalizeUsesLiveStateForIncompleteSections(t *testing.T) {
	// Time expiry: dialog never finished, contributes its current level.
	sections := []*model.TestSection{
		section(model.SectionGrammar, 4, "1", 20, 15, true),
		section(model.SectionReading, 4, "1", 20, 15, true),
		section(model.SectionListening, 4, "1", 20, 15, true),
		section(model.SectionDialog, 4, "1", 5, 3, false),
	}

	outcome := Finalize(sections, testCfg())
	assert.InDelta(t, 4.1, outcome.WeightedRaw, 1e-9)
	assert.Equal(t, 74, outcome.TotalScore) // 48/65
}

func TestFinalizeDeterministic(t *testing.T) {
	sections := []*model.TestSection{
		section(model.SectionGrammar, 5, "2", 20, 17, true),
		section(model.SectionReading, 4, "3", 18, 12, true),
		section(model.SectionListening, 4, "1", 20, 13, true),
		section(model.SectionDialog, 3, "2", 20, 9, true),
	}

	first := Finalize(sections, testCfg())
	second := Finalize(sections, testCfg())
	assert.Equal(t, first, second)
}

func TestFinalizeEmptySession(t *testing.T) {
	sections := []*model.TestSection{
		section(model.SectionGrammar, 3, "1", 0, 0, false),
		section(model.SectionReading, 3, "1", 0, 0, false),
		section(model.SectionListening, 3, "1", 0, 0, false),
		section(model.SectionDialog, 3, "1", 0, 0, false),
	}

	outcome := Finalize(sections, testCfg())
	assert.Equal(t, 0, outcome.TotalScore)
	assert.InDelta(t, 3.1, outcome.WeightedRaw, 1e-9)
}
