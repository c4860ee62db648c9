package model

import "time"

// TestStatus tracks the lifecycle of a placement test session.
type TestStatus string

const (
	TestAssigned   TestStatus = "assigned"
	TestInProgress TestStatus = "in_progress"
	TestCompleted  TestStatus = "completed"
	TestReviewed   TestStatus = "reviewed"
)

// Section names the four assessment areas.
type Section string

const (
	SectionGrammar   Section = "grammar"
	SectionReading   Section = "reading"
	SectionListening Section = "listening"
	SectionDialog    Section = "dialog"
)

// SectionOrder is the fixed administration order for every test.
var SectionOrder = []Section{SectionGrammar, SectionReading, SectionListening, SectionDialog}

// SectionWeights combine section levels into the overall weighted level.
var SectionWeights = map[Section]float64{
	SectionGrammar:   0.3,
	SectionReading:   0.3,
	SectionListening: 0.2,
	SectionDialog:    0.2,
}

// Test is one placement test session for one student.
type Test struct {
	ID               string     `json:"id" bson:"_id,omitempty"`
	StudentID        string     `json:"studentId" bson:"studentId"`
	Status           TestStatus `json:"status" bson:"status"`
	TimeLimitSeconds int        `json:"timeLimitSeconds" bson:"timeLimitSeconds"`
	ElapsedMs        int64      `json:"elapsedMs" bson:"elapsedMs"`
	WeightedLevel    string     `json:"weightedLevel,omitempty" bson:"weightedLevel,omitempty"`
	WeightedRaw      float64    `json:"weightedRaw,omitempty" bson:"weightedRaw,omitempty"`
	TotalScore       int        `json:"totalScore" bson:"totalScore"`
	AssignedAt       time.Time  `json:"assignedAt" bson:"assignedAt"`
	CompletedAt      *time.Time `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

// TimeRemainingSeconds returns the whole seconds left in the budget.
func (t *Test) TimeRemainingSeconds() int {
	remaining := int64(t.TimeLimitSeconds)*1000 - t.ElapsedMs
	if remaining < 0 {
		remaining = 0
	}
	return int(remaining / 1000)
}

// TimeExpired reports whether the session budget is used up.
func (t *Test) TimeExpired() bool {
	return t.ElapsedMs >= int64(t.TimeLimitSeconds)*1000
}

// Finalized reports whether the test has reached a terminal status.
func (t *Test) Finalized() bool {
	return t.Status == TestCompleted || t.Status == TestReviewed
}

// TestSection is the live adaptive state for one section of one test.
type TestSection struct {
	ID              string  `json:"id" bson:"_id,omitempty"`
	TestID          string  `json:"testId" bson:"testId"`
	Section         Section `json:"section" bson:"section"`
	CurrentLevel    int     `json:"currentLevel" bson:"currentLevel"`
	CurrentSublevel string  `json:"currentSublevel" bson:"currentSublevel"`
	StreakUp        int     `json:"streakUp" bson:"streakUp"`
	StreakDown      int     `json:"streakDown" bson:"streakDown"`
	QuestionsServed int     `json:"questionsServed" bson:"questionsServed"`
	CorrectCount    int     `json:"correctCount" bson:"correctCount"`
	IncorrectCount  int     `json:"incorrectCount" bson:"incorrectCount"`
	Completed       bool    `json:"completed" bson:"completed"`
	FinalLevel      string  `json:"finalLevel,omitempty" bson:"finalLevel,omitempty"`

	// Reading passage rotation state.
	CurrentPassageID            string `json:"currentPassageId,omitempty" bson:"currentPassageId,omitempty"`
	CurrentPassageQuestionCount int    `json:"currentPassageQuestionCount" bson:"currentPassageQuestionCount"`
}

// State returns the section's live LevelState.
func (s *TestSection) State() LevelState {
	return LevelState{Level: s.CurrentLevel, Sublevel: s.CurrentSublevel}
}

// SetState stores a LevelState onto the section row fields.
func (s *TestSection) SetState(state LevelState) {
	s.CurrentLevel = state.Level
	s.CurrentSublevel = state.Sublevel
}
