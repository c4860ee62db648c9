package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inov8tr/placement-api/internal/model"
)

func surveyWith(data model.SurveyData) *model.ParentSurvey {
	return &model.ParentSurvey{ID: "sv1", StudentID: "st1", Data: data}
}

func TestSeedMiddleSchoolHighScorer(t *testing.T) {
	// 중2 → grade index 8 → base 4.0; score 96 → +0.2; 1 book/week → no
	// reading adjustment; no academies → no background adjustment.
	seeder := NewSeeder(testCfg())
	result := seeder.Seed(surveyWith(model.SurveyData{
		Grade:             "중2",
		HighestScore:      "96",
		WeeklyReadingBook: "1",
	}))

	assert.InDelta(t, 4.2, result.BaseLevel, 1e-9)
	for _, section := range model.SectionOrder {
		assert.Equal(t, "4.2", result.Sections[section].Encode())
	}
	assert.Contains(t, result.ProfileTags, "grade:middle")
	assert.Contains(t, result.ProfileTags, "adjust:score-95")
	assert.Contains(t, result.ProfileTags, "score-band:top")
	assert.Contains(t, result.ProfileTags, "reading-band:light")
}

func TestSeedSectionModifiers(t *testing.T) {
	seeder := NewSeeder(testCfg())
	result := seeder.Seed(surveyWith(model.SurveyData{
		Grade:            "middle 2",
		StrongestSubject: "reading",
		WeakestSubject:   "듣기",
	}))

	require.InDelta(t, 4.0, result.BaseLevel, 1e-9)
	assert.Equal(t, "4.1", result.Sections[model.SectionReading].Encode())   // +0.1
	assert.Equal(t, "3.3", result.Sections[model.SectionListening].Encode()) // -0.2 -> 3.8 snaps down
	assert.Equal(t, "4.1", result.Sections[model.SectionGrammar].Encode())   // 4.0 snaps to first sublevel
	assert.Contains(t, result.ProfileTags, "strength:reading")
	assert.Contains(t, result.ProfileTags, "weakness:listening")
}

func TestSeedOverseasOverridesBase(t *testing.T) {
	seeder := NewSeeder(testCfg())
	result := seeder.Seed(surveyWith(model.SurveyData{
		Grade:        "초3",
		Motivation:   "Lived abroad for two years.",
		HighestScore: "99",
	}))

	assert.InDelta(t, OverseasBaseLevel, result.BaseLevel, 1e-9)
	assert.Contains(t, result.ProfileTags, "background:overseas")
	// Score adjustments do not stack on top of the overseas override.
	assert.NotContains(t, result.ProfileTags, "adjust:score-95")
}

func TestSeedWorksheetOnlyBackground(t *testing.T) {
	seeder := NewSeeder(testCfg())
	result := seeder.Seed(surveyWith(model.SurveyData{
		Grade:      "초5",
		Motivation: "Has only done 학습지 at home.",
	}))

	// Base 3.0 - 0.1 worksheet-only.
	assert.InDelta(t, 2.9, result.BaseLevel, 1e-9)
	assert.Contains(t, result.ProfileTags, "background:worksheet_only")
}

func TestSeedMultiAcademy(t *testing.T) {
	seeder := NewSeeder(testCfg())
	result := seeder.Seed(surveyWith(model.SurveyData{
		Grade:     "고1",
		Academies: []string{"Math Academy", "English Academy"},
	}))

	// Base 5.0 + 0.2 multi-academy.
	assert.InDelta(t, 5.2, result.BaseLevel, 1e-9)
	assert.Contains(t, result.ProfileTags, "background:multi_academy")
}

func TestSeedUnparseableGradeFallsBack(t *testing.T) {
	seeder := NewSeeder(testCfg())
	result := seeder.Seed(surveyWith(model.SurveyData{Grade: "???"}))

	assert.InDelta(t, DefaultBaseLevel, result.BaseLevel, 1e-9)
	assert.Contains(t, result.ProfileTags, "grade:unknown")
}

func TestSeedMalformedNumbersTreatedAsAbsent(t *testing.T) {
	seeder := NewSeeder(testCfg())
	result := seeder.Seed(surveyWith(model.SurveyData{
		Grade:             "중1",
		HighestScore:      "not a number",
		WeeklyReadingBook: "",
	}))

	// Base 4.0 with no score/reading adjustments.
	assert.InDelta(t, 4.0, result.BaseLevel, 1e-9)
	assert.NotContains(t, result.ProfileTags, "reading-band:none")
}

func TestSeedResultStaysWithinBounds(t *testing.T) {
	seeder := NewSeeder(testCfg())
	result := seeder.Seed(surveyWith(model.SurveyData{
		Grade:             "고3",
		Academies:         []string{"A", "B", "C"},
		HighestScore:      "100",
		WeeklyReadingBook: "10",
	}))

	cfg := testCfg()
	for _, state := range result.Sections {
		assert.GreaterOrEqual(t, state.Level, cfg.MinLevel)
		assert.LessOrEqual(t, state.Level, cfg.MaxLevel)
		assert.Contains(t, model.Sublevels, state.Sublevel)
	}
}

func TestParseGradeEncodings(t *testing.T) {
	cases := map[string]int{
		"초1":           1,
		"초6":           6,
		"중2":           8,
		"고3":           12,
		"elementary 4": 4,
		"middle 1":     7,
		"high 2":       11,
		"8":            8,
		"":             0,
		"garbage":      0,
	}
	for raw, want := range cases {
		assert.Equal(t, want, parseGrade(raw), "grade %q", raw)
	}
}

func TestDefaultState(t *testing.T) {
	seeder := NewSeeder(testCfg())
	assert.Equal(t, "3.1", seeder.DefaultState().Encode())
}
