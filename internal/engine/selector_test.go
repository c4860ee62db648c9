package engine

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inov8tr/placement-api/internal/model"
)

// fakePool is an in-memory ContentPool for deterministic selector tests.
type fakePool struct {
	questions []*model.Question
	passages  []*model.Passage
}

func (p *fakePool) Questions(_ context.Context, section model.Section, level int, sublevel string) ([]*model.Question, error) {
	var out []*model.Question
	for _, q := range p.questions {
		if q.Section == section && q.Level == level && q.Sublevel == sublevel {
			out = append(out, q)
		}
	}
	return out, nil
}

func (p *fakePool) Passage(_ context.Context, passageID string) (*model.Passage, error) {
	for _, ps := range p.passages {
		if ps.ID == passageID {
			return ps, nil
		}
	}
	return nil, nil
}

func (p *fakePool) Passages(_ context.Context, section model.Section, level int, sublevel string) ([]*model.Passage, error) {
	var out []*model.Passage
	for _, ps := range p.passages {
		if ps.Section == section && ps.Level == level && ps.Sublevel == sublevel {
			out = append(out, ps)
		}
	}
	return out, nil
}

func (p *fakePool) PassageQuestions(_ context.Context, passageID string) ([]*model.Question, error) {
	var out []*model.Question
	for _, q := range p.questions {
		if q.PassageID == passageID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (p *fakePool) addQuestions(section model.Section, level int, sublevel string, n int) {
	for i := 0; i < n; i++ {
		p.questions = append(p.questions, &model.Question{
			ID:       fmt.Sprintf("%s-%d.%s-%d", section, level, sublevel, i),
			Section:  section,
			Level:    level,
			Sublevel: sublevel,
			Stem:     "stem",
			Options:  []string{"a", "b", "c", "d"},
			Active:   true,
		})
	}
}

func (p *fakePool) addPassage(id string, level int, sublevel string, questions int) {
	p.passages = append(p.passages, &model.Passage{
		ID:       id,
		Section:  model.SectionReading,
		Level:    level,
		Sublevel: sublevel,
		Title:    id,
		Body:     "body",
		Active:   true,
	})
	for i := 0; i < questions; i++ {
		p.questions = append(p.questions, &model.Question{
			ID:        fmt.Sprintf("%s-q%d", id, i),
			Section:   model.SectionReading,
			Level:     level,
			Sublevel:  sublevel,
			PassageID: id,
			Stem:      "stem",
			Options:   []string{"a", "b", "c", "d"},
			Active:    true,
		})
	}
}

func newTestSelector(pool *fakePool) *Selector {
	return NewSelector(pool, testCfg(), rand.New(rand.NewSource(1)))
}

func TestSelectorNeverRepeatsQuestions(t *testing.T) {
	pool := &fakePool{}
	pool.addQuestions(model.SectionGrammar, 3, "2", 5)
	sel := newTestSelector(pool)

	answered := map[string]bool{}
	for i := 0; i < 5; i++ {
		pick, err := sel.Next(context.Background(), model.SectionGrammar, at(3, "2"), answered, Rotation{})
		require.NoError(t, err)
		assert.False(t, answered[pick.Question.ID], "question served twice")
		answered[pick.Question.ID] = true
	}
}

func TestSelectorWidensToNeighborLevels(t *testing.T) {
	pool := &fakePool{}
	// Nothing at 3.2; content one sublevel below.
	pool.addQuestions(model.SectionGrammar, 3, "1", 2)
	sel := newTestSelector(pool)

	pick, err := sel.Next(context.Background(), model.SectionGrammar, at(3, "2"), map[string]bool{}, Rotation{})
	require.NoError(t, err)
	assert.Equal(t, at(3, "1"), pick.State)
	assert.True(t, pick.LevelAdjusted)
}

func TestSelectorSignalsExhaustion(t *testing.T) {
	pool := &fakePool{}
	sel := newTestSelector(pool)

	_, err := sel.Next(context.Background(), model.SectionGrammar, at(3, "2"), map[string]bool{}, Rotation{})
	assert.ErrorIs(t, err, ErrContentExhausted)
}

func TestSelectorExhaustionAfterAnsweringEverything(t *testing.T) {
	pool := &fakePool{}
	pool.addQuestions(model.SectionGrammar, 3, "2", 3)
	sel := newTestSelector(pool)

	answered := map[string]bool{}
	for i := 0; i < 3; i++ {
		pick, err := sel.Next(context.Background(), model.SectionGrammar, at(3, "2"), answered, Rotation{})
		require.NoError(t, err)
		answered[pick.Question.ID] = true
	}
	_, err := sel.Next(context.Background(), model.SectionGrammar, at(3, "2"), answered, Rotation{})
	assert.ErrorIs(t, err, ErrContentExhausted)
}

func TestSelectorReadingStartsPassage(t *testing.T) {
	pool := &fakePool{}
	pool.addPassage("p1", 3, "2", 4)
	sel := newTestSelector(pool)

	pick, err := sel.Next(context.Background(), model.SectionReading, at(3, "2"), map[string]bool{}, Rotation{})
	require.NoError(t, err)
	require.NotNil(t, pick.Passage)
	assert.Equal(t, "p1", pick.Passage.ID)
	assert.True(t, pick.NewPassage)
	assert.Equal(t, "p1", pick.Question.PassageID)
}

func TestSelectorReadingKeepsActivePassageUnderQuota(t *testing.T) {
	pool := &fakePool{}
	pool.addPassage("p1", 3, "2", 4)
	pool.addPassage("p2", 3, "2", 4)
	sel := newTestSelector(pool)

	answered := map[string]bool{"p1-q0": true}
	rot := Rotation{PassageID: "p1", QuestionCount: 1}
	pick, err := sel.Next(context.Background(), model.SectionReading, at(3, "2"), answered, rot)
	require.NoError(t, err)
	assert.False(t, pick.NewPassage)
	assert.Equal(t, "p1", pick.Question.PassageID)
}

func TestSelectorReadingRotatesOnLevelChange(t *testing.T) {
	pool := &fakePool{}
	pool.addPassage("p1", 3, "2", 4)
	pool.addPassage("p2", 3, "3", 4)
	sel := newTestSelector(pool)

	// The level machine moved 3.2 -> 3.3 mid-passage: p1 still has quota
	// left, but it belongs to 3.2 and must not survive the step.
	answered := map[string]bool{"p1-q0": true}
	rot := Rotation{PassageID: "p1", QuestionCount: 1}
	pick, err := sel.Next(context.Background(), model.SectionReading, at(3, "3"), answered, rot)
	require.NoError(t, err)
	assert.True(t, pick.NewPassage)
	require.NotNil(t, pick.Passage)
	assert.Equal(t, "p2", pick.Passage.ID)
	assert.Equal(t, at(3, "3"), pick.State)
}

func TestSelectorReadingKeepsPassageOnMatchingWidenedRung(t *testing.T) {
	pool := &fakePool{}
	pool.addPassage("p1", 3, "2", 4)
	sel := newTestSelector(pool)

	// No content at 3.3; the ladder widens back to 3.2, where the active
	// passage still matches and keeps its rotation.
	answered := map[string]bool{"p1-q0": true}
	rot := Rotation{PassageID: "p1", QuestionCount: 1}
	pick, err := sel.Next(context.Background(), model.SectionReading, at(3, "3"), answered, rot)
	require.NoError(t, err)
	assert.False(t, pick.NewPassage)
	assert.Equal(t, "p1", pick.Question.PassageID)
	assert.Equal(t, at(3, "2"), pick.State)
	assert.True(t, pick.LevelAdjusted)
}

func TestSelectorReadingRotatesAtQuota(t *testing.T) {
	cfg := testCfg()
	pool := &fakePool{}
	pool.addPassage("p1", 3, "2", 6)
	pool.addPassage("p2", 3, "2", 4)
	sel := newTestSelector(pool)

	// p1 has reached the set size; the next pick must come from p2.
	answered := map[string]bool{}
	for i := 0; i < cfg.PassageSetSize; i++ {
		answered[fmt.Sprintf("p1-q%d", i)] = true
	}
	rot := Rotation{PassageID: "p1", QuestionCount: cfg.PassageSetSize}
	pick, err := sel.Next(context.Background(), model.SectionReading, at(3, "2"), answered, rot)
	require.NoError(t, err)
	assert.True(t, pick.NewPassage)
	assert.Equal(t, "p2", pick.Passage.ID)
}

func TestSelectorReadingSkipsDrainedPassages(t *testing.T) {
	pool := &fakePool{}
	pool.addPassage("p1", 3, "2", 2)
	pool.addPassage("p2", 3, "2", 2)
	sel := newTestSelector(pool)

	// Every p1 question answered: only p2 is eligible for a fresh rotation.
	answered := map[string]bool{"p1-q0": true, "p1-q1": true}
	for i := 0; i < 10; i++ {
		pick, err := sel.Next(context.Background(), model.SectionReading, at(3, "2"), answered, Rotation{})
		require.NoError(t, err)
		assert.Equal(t, "p2", pick.Passage.ID)
	}
}

func TestPresentShufflesWithRoundTrip(t *testing.T) {
	pool := &fakePool{}
	sel := newTestSelector(pool)

	q := &model.Question{
		ID:           "q1",
		Options:      []string{"alpha", "beta", "gamma", "delta"},
		CorrectIndex: 2,
	}

	for i := 0; i < 20; i++ {
		presented := sel.Present(q)
		require.Len(t, presented.Options, 4)
		require.Len(t, presented.OptionOrder, 4)
		for shown, text := range presented.Options {
			canonical, ok := CanonicalIndex(presented.OptionOrder, shown)
			require.True(t, ok)
			assert.Equal(t, q.Options[canonical], text)
		}
	}
}

func TestCanonicalIndexRejectsOutOfRange(t *testing.T) {
	_, ok := CanonicalIndex([]int{2, 0, 1}, 3)
	assert.False(t, ok)
	_, ok = CanonicalIndex([]int{2, 0, 1}, -1)
	assert.False(t, ok)

	idx, ok := CanonicalIndex([]int{2, 0, 1}, 0)
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}
