package model

// AssignTestRequest provisions a new test for a student.
type AssignTestRequest struct {
	StudentID        string `json:"studentId"`
	TimeLimitSeconds int    `json:"timeLimitSeconds,omitempty"` // 0 = engine default
}

// AssignTestResponse returns the provisioned test and a session token the
// student client uses for all further calls.
type AssignTestResponse struct {
	Test         *Test              `json:"test"`
	StudentToken string             `json:"studentToken"`
	Seeded       map[Section]string `json:"seeded"`
}

// PresentedQuestion is a question as shown to the test-taker: options are
// freshly shuffled and OptionOrder maps presented index -> canonical index.
type PresentedQuestion struct {
	ID           string   `json:"id"`
	Stem         string   `json:"stem"`
	Options      []string `json:"options"`
	OptionOrder  []int    `json:"optionOrder"`
	SkillTags    []string `json:"skillTags,omitempty"`
	MediaURL     string   `json:"mediaUrl,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
}

// NextItemResponse is the result of a "next question" call.
type NextItemResponse struct {
	Done             bool               `json:"done"`
	SectionCompleted bool               `json:"sectionCompleted,omitempty"`
	Section          Section            `json:"section,omitempty"`
	Level            string             `json:"level,omitempty"`
	TimeRemaining    int                `json:"timeRemainingSeconds"`
	Question         *PresentedQuestion `json:"question,omitempty"`
	Passage          *Passage           `json:"passage,omitempty"`
	Summary          *TestSummary       `json:"summary,omitempty"`
}

// SubmitAnswerRequest is a graded submission. SelectedIndex refers to the
// presented (shuffled) option order from the preceding next-item call.
type SubmitAnswerRequest struct {
	QuestionID    string `json:"questionId"`
	SelectedIndex int    `json:"selectedIndex"`
	TimeSpentMs   int64  `json:"timeSpentMs"`
}

// SubmitAnswerResponse reports grading and session progress.
type SubmitAnswerResponse struct {
	Correct          bool         `json:"correct"`
	SectionCompleted bool         `json:"sectionCompleted"`
	AllCompleted     bool         `json:"allCompleted"`
	TimeExpired      bool         `json:"timeExpired"`
	Summary          *TestSummary `json:"finalized,omitempty"`
}

// HeartbeatRequest reports wall-clock time elapsed on the client since the
// last heartbeat.
type HeartbeatRequest struct {
	ElapsedDeltaMs int64 `json:"elapsedDeltaMs"`
}

// HeartbeatResponse returns the remaining budget.
type HeartbeatResponse struct {
	TimeRemaining int          `json:"timeRemainingSeconds"`
	TimeExpired   bool         `json:"timeExpired"`
	Summary       *TestSummary `json:"finalized,omitempty"`
}

// TestReport is the admin view of a test: the summary plus the placement
// seed the session started from.
type TestReport struct {
	Summary      *TestSummary       `json:"summary"`
	SeededLevels map[Section]string `json:"seededLevels"`
	ProfileTags  []string           `json:"profileTags,omitempty"`
}

// SectionSummary is the per-section slice of a test summary.
type SectionSummary struct {
	Section         Section `json:"section"`
	FinalLevel      string  `json:"finalLevel"`
	QuestionsServed int     `json:"questionsServed"`
	CorrectCount    int     `json:"correctCount"`
	IncorrectCount  int     `json:"incorrectCount"`
	Completed       bool    `json:"completed"`
}

// TestSummary is the finalized (or in-flight) view of a whole test.
type TestSummary struct {
	TestID        string           `json:"testId"`
	StudentID     string           `json:"studentId"`
	Status        TestStatus       `json:"status"`
	WeightedLevel string           `json:"weightedLevel,omitempty"`
	WeightedRaw   float64          `json:"weightedRaw,omitempty"`
	TotalScore    int              `json:"totalScore"`
	ElapsedMs     int64            `json:"elapsedMs"`
	Sections      []SectionSummary `json:"sections"`
}
