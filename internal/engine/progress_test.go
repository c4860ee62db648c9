package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inov8tr/placement-api/internal/model"
)

func TestRecordAnswerCounts(t *testing.T) {
	sec := &model.TestSection{}
	RecordAnswer(sec, true)
	RecordAnswer(sec, true)
	RecordAnswer(sec, false)

	assert.Equal(t, 3, sec.QuestionsServed)
	assert.Equal(t, 2, sec.CorrectCount)
	assert.Equal(t, 1, sec.IncorrectCount)
}

func TestCompleteSectionStampsFinalLevel(t *testing.T) {
	sec := &model.TestSection{CurrentLevel: 4, CurrentSublevel: "2"}
	CompleteSection(sec)

	assert.True(t, sec.Completed)
	assert.Equal(t, "4.2", sec.FinalLevel)

	// A second call must not restamp.
	sec.CurrentSublevel = "3"
	CompleteSection(sec)
	assert.Equal(t, "4.2", sec.FinalLevel)
}

func TestAtQuestionCap(t *testing.T) {
	sec := &model.TestSection{QuestionsServed: 19}
	assert.False(t, AtQuestionCap(sec, 20))
	sec.QuestionsServed = 20
	assert.True(t, AtQuestionCap(sec, 20))
}

func TestApplyElapsedClampsAtLimit(t *testing.T) {
	test := &model.Test{TimeLimitSeconds: 10}

	ApplyElapsed(test, 4000)
	assert.Equal(t, int64(4000), test.ElapsedMs)
	assert.False(t, test.TimeExpired())
	assert.Equal(t, 6, test.TimeRemainingSeconds())

	ApplyElapsed(test, 60000)
	assert.Equal(t, int64(10000), test.ElapsedMs)
	assert.True(t, test.TimeExpired())
	assert.Equal(t, 0, test.TimeRemainingSeconds())

	// Negative deltas are ignored.
	ApplyElapsed(test, -500)
	assert.Equal(t, int64(10000), test.ElapsedMs)
}
