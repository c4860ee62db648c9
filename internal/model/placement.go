package model

import "time"

// PlacementSeed is the per-section starting ability computed once from the
// student's most recent parent survey. Immutable after creation: a later
// test gets its own seed rather than rewriting this one.
type PlacementSeed struct {
	ID        string             `json:"id" bson:"_id,omitempty"`
	StudentID string             `json:"studentId" bson:"studentId"`
	TestID    string             `json:"testId" bson:"testId"`
	SurveyID  string             `json:"surveyId" bson:"surveyId"`
	Sections  map[Section]string `json:"sections" bson:"sections"` // encoded LevelStates
	Meta      PlacementSeedMeta  `json:"meta" bson:"meta"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// PlacementSeedMeta keeps the seeder's working figures for audit.
type PlacementSeedMeta struct {
	BaseLevel   float64             `json:"baseLevel" bson:"baseLevel"`
	Modifiers   map[Section]float64 `json:"modifiers" bson:"modifiers"`
	ProfileTags []string            `json:"profileTags" bson:"profileTags"`
}

// SectionState decodes the seeded LevelState for a section, falling back to
// the given default when the section is missing or malformed.
func (p *PlacementSeed) SectionState(section Section, fallback LevelState) LevelState {
	if p == nil {
		return fallback
	}
	enc, ok := p.Sections[section]
	if !ok {
		return fallback
	}
	state, err := ParseLevelState(enc)
	if err != nil {
		return fallback
	}
	return state
}
