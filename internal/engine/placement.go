package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inov8tr/placement-api/internal/config"
	"github.com/inov8tr/placement-api/internal/model"
)

// BackgroundCategory is the closed set of study backgrounds the seeder
// recognizes in survey free text.
type BackgroundCategory string

const (
	BackgroundWorksheetOnly BackgroundCategory = "worksheet_only"
	BackgroundMixed         BackgroundCategory = "mixed"
	BackgroundSingleExtra   BackgroundCategory = "single_academy_plus"
	BackgroundMultiAcademy  BackgroundCategory = "multi_academy"
	BackgroundOverseas      BackgroundCategory = "overseas"
)

const (
	// DefaultBaseLevel is used when the grade string cannot be parsed.
	DefaultBaseLevel = 2.0
	// OverseasBaseLevel overrides the grade-based base entirely.
	OverseasBaseLevel = 5.5

	sectionModifierMin = -0.6
	sectionModifierMax = 0.3
)

// SeedResult is the seeder's output before persistence identifiers are
// attached: one starting LevelState per section plus audit metadata.
type SeedResult struct {
	Sections    map[model.Section]model.LevelState
	BaseLevel   float64
	Modifiers   map[model.Section]float64
	ProfileTags []string
}

// Seeder converts a parent survey into per-section placement levels.
type Seeder struct {
	cfg config.EngineConfig
}

// NewSeeder creates a placement seeder with the given engine tuning.
func NewSeeder(cfg config.EngineConfig) *Seeder {
	return &Seeder{cfg: cfg}
}

// adjustmentRule is one ordered heuristic: when applies returns true the
// bounded delta is added to the base level and the tag recorded.
type adjustmentRule struct {
	tag     string
	applies func(f *surveyFacts) bool
	delta   float64
}

// surveyFacts is the parsed, normalized view of the raw survey payload.
type surveyFacts struct {
	gradeIndex   int // 1..12, 0 when unparseable
	academyCount int
	background   BackgroundCategory
	highestScore int // -1 when absent/malformed
	weeklyBooks  int // -1 when absent/malformed
	strongest    string
	weakest      string
}

var baseAdjustments = []adjustmentRule{
	{"multi-academy", func(f *surveyFacts) bool { return f.background == BackgroundMultiAcademy }, 0.2},
	{"academy-plus", func(f *surveyFacts) bool { return f.background == BackgroundSingleExtra }, 0.1},
	{"worksheet-only", func(f *surveyFacts) bool { return f.background == BackgroundWorksheetOnly }, -0.1},
	{"score-95", func(f *surveyFacts) bool { return f.highestScore >= 95 }, 0.2},
	{"score-85", func(f *surveyFacts) bool { return f.highestScore >= 85 && f.highestScore < 95 }, 0.1},
	{"score-low", func(f *surveyFacts) bool { return f.highestScore >= 0 && f.highestScore < 60 }, -0.2},
	{"reading-5", func(f *surveyFacts) bool { return f.weeklyBooks >= 5 }, 0.2},
	{"reading-3", func(f *surveyFacts) bool { return f.weeklyBooks >= 3 && f.weeklyBooks < 5 }, 0.1},
	{"reading-none", func(f *surveyFacts) bool { return f.weeklyBooks == 0 }, -0.1},
}

// Seed computes the placement seed for the given survey. The caller falls
// back to DefaultState when no survey is on file; survey must be non-nil.
func (s *Seeder) Seed(survey *model.ParentSurvey) *SeedResult {
	facts := parseFacts(&survey.Data)

	base := gradeBaseLevel(facts.gradeIndex)
	tags := []string{
		fmt.Sprintf("grade:%s", gradeBand(facts.gradeIndex)),
		fmt.Sprintf("background:%s", facts.background),
	}

	if facts.background == BackgroundOverseas {
		base = OverseasBaseLevel
	} else {
		for _, rule := range baseAdjustments {
			if rule.applies(facts) {
				base += rule.delta
				tags = append(tags, fmt.Sprintf("adjust:%s", rule.tag))
			}
		}
	}

	if facts.highestScore >= 0 {
		tags = append(tags, fmt.Sprintf("score-band:%s", scoreBand(facts.highestScore)))
	}
	if facts.weeklyBooks >= 0 {
		tags = append(tags, fmt.Sprintf("reading-band:%s", readingBand(facts.weeklyBooks)))
	}

	modifiers := make(map[model.Section]float64, len(model.SectionOrder))
	sections := make(map[model.Section]model.LevelState, len(model.SectionOrder))
	strongSection, strongOK := matchSection(facts.strongest)
	weakSection, weakOK := matchSection(facts.weakest)
	if strongOK {
		tags = append(tags, fmt.Sprintf("strength:%s", strongSection))
	}
	if weakOK {
		tags = append(tags, fmt.Sprintf("weakness:%s", weakSection))
	}

	for _, section := range model.SectionOrder {
		mod := 0.0
		if weakOK && section == weakSection {
			mod -= 0.2
		}
		if strongOK && section == strongSection {
			mod += 0.1
		}
		mod = clampFloat(mod, sectionModifierMin, sectionModifierMax)
		modifiers[section] = mod
		sections[section] = model.QuantizeLevel(base+mod, s.cfg.MinLevel, s.cfg.MaxLevel)
	}

	return &SeedResult{
		Sections:    sections,
		BaseLevel:   base,
		Modifiers:   modifiers,
		ProfileTags: tags,
	}
}

// DefaultState is the fixed starting level used when no survey is on file.
func (s *Seeder) DefaultState() model.LevelState {
	return model.QuantizeLevel(3.1, s.cfg.MinLevel, s.cfg.MaxLevel)
}

func parseFacts(data *model.SurveyData) *surveyFacts {
	f := &surveyFacts{
		gradeIndex:   parseGrade(data.Grade),
		academyCount: len(data.Academies),
		highestScore: parseBoundedInt(data.HighestScore, 0, 100),
		weeklyBooks:  parseBoundedInt(data.WeeklyReadingBook, 0, 50),
		strongest:    strings.ToLower(data.StrongestSubject),
		weakest:      strings.ToLower(data.WeakestSubject),
	}
	f.background = classifyBackground(data, f.academyCount)
	return f
}

var overseasKeywords = []string{"overseas", "abroad", "유학", "해외"}
var worksheetKeywords = []string{"worksheet", "학습지", "눈높이", "구몬"}

// classifyBackground buckets the student's study history using academy
// count plus keyword presence in the free-text fields.
func classifyBackground(data *model.SurveyData, academyCount int) BackgroundCategory {
	blob := strings.ToLower(strings.Join(data.Academies, " ") + " " + data.Motivation)

	if containsAny(blob, overseasKeywords) {
		return BackgroundOverseas
	}
	worksheet := containsAny(blob, worksheetKeywords)
	switch {
	case academyCount >= 2:
		return BackgroundMultiAcademy
	case academyCount == 1 && worksheet:
		return BackgroundSingleExtra
	case academyCount == 1:
		return BackgroundMixed
	case worksheet:
		return BackgroundWorksheetOnly
	default:
		return BackgroundMixed
	}
}

// parseGrade understands Korean (초/중/고 + digit) and English
// ("elementary/middle/high N") grade encodings. Returns 0 when unparseable.
func parseGrade(raw string) int {
	grade := strings.ToLower(strings.TrimSpace(raw))
	if grade == "" {
		return 0
	}

	n := trailingNumber(grade)
	if n == 0 {
		return 0
	}

	switch {
	case strings.Contains(grade, "초") || strings.Contains(grade, "elementary"):
		if n >= 1 && n <= 6 {
			return n
		}
	case strings.Contains(grade, "중") || strings.Contains(grade, "middle"):
		if n >= 1 && n <= 3 {
			return 6 + n
		}
	case strings.Contains(grade, "고") || strings.Contains(grade, "high"):
		if n >= 1 && n <= 3 {
			return 9 + n
		}
	default:
		// Bare number treated as an absolute grade index.
		if n >= 1 && n <= 12 {
			return n
		}
	}
	return 0
}

// gradeBaseLevel maps a grade index onto the starting level scale.
func gradeBaseLevel(gradeIndex int) float64 {
	switch {
	case gradeIndex == 0:
		return DefaultBaseLevel
	case gradeIndex <= 2:
		return 1.0
	case gradeIndex <= 4:
		return 2.0
	case gradeIndex <= 6:
		return 3.0
	case gradeIndex <= 8:
		return 4.0
	case gradeIndex <= 10:
		return 5.0
	default:
		return 6.0
	}
}

var sectionKeywords = map[model.Section][]string{
	model.SectionGrammar:   {"grammar", "문법"},
	model.SectionReading:   {"reading", "독해", "읽기"},
	model.SectionListening: {"listening", "듣기"},
	model.SectionDialog:    {"dialog", "speaking", "conversation", "회화", "말하기"},
}

func matchSection(subject string) (model.Section, bool) {
	if subject == "" {
		return "", false
	}
	for _, section := range model.SectionOrder {
		if containsAny(subject, sectionKeywords[section]) {
			return section, true
		}
	}
	return "", false
}

func gradeBand(gradeIndex int) string {
	switch {
	case gradeIndex == 0:
		return "unknown"
	case gradeIndex <= 6:
		return "elementary"
	case gradeIndex <= 9:
		return "middle"
	default:
		return "high"
	}
}

func scoreBand(score int) string {
	switch {
	case score >= 95:
		return "top"
	case score >= 85:
		return "high"
	case score >= 60:
		return "mid"
	default:
		return "low"
	}
}

func readingBand(books int) string {
	switch {
	case books >= 5:
		return "heavy"
	case books >= 3:
		return "regular"
	case books >= 1:
		return "light"
	default:
		return "none"
	}
}

// parseBoundedInt extracts the first number in a free-form field; malformed
// or out-of-range values are treated as absent (-1), never fatal.
func parseBoundedInt(raw string, min, max int) int {
	digits := ""
	for _, r := range strings.TrimSpace(raw) {
		if r >= '0' && r <= '9' {
			digits += string(r)
		} else if digits != "" {
			break
		}
	}
	if digits == "" {
		return -1
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < min || n > max {
		return -1
	}
	return n
}

func trailingNumber(s string) int {
	digits := ""
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits += string(r)
		}
	}
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
