package engine

import "github.com/inov8tr/placement-api/internal/model"

// RecordAnswer applies one graded answer to the section counters.
func RecordAnswer(sec *model.TestSection, correct bool) {
	sec.QuestionsServed++
	if correct {
		sec.CorrectCount++
	} else {
		sec.IncorrectCount++
	}
}

// AtQuestionCap reports whether the section has served its fixed maximum.
func AtQuestionCap(sec *model.TestSection, cap int) bool {
	return sec.QuestionsServed >= cap
}

// CompleteSection marks a section finished and stamps its final level from
// the live state. Safe to call on an already-completed section.
func CompleteSection(sec *model.TestSection) {
	if sec.Completed {
		return
	}
	sec.Completed = true
	sec.FinalLevel = sec.State().Encode()
}

// ApplyElapsed accumulates elapsed milliseconds onto the test, clamped so
// elapsed never exceeds the session time limit.
func ApplyElapsed(test *model.Test, deltaMs int64) {
	if deltaMs < 0 {
		return
	}
	limit := int64(test.TimeLimitSeconds) * 1000
	test.ElapsedMs += deltaMs
	if test.ElapsedMs > limit {
		test.ElapsedMs = limit
	}
}
