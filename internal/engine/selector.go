package engine

import (
	"context"
	"errors"
	"math/rand"

	"github.com/inov8tr/placement-api/internal/config"
	"github.com/inov8tr/placement-api/internal/model"
)

// ErrContentExhausted signals that no candidate level has presentable
// content left for the section. It is a completion signal, not a failure.
var ErrContentExhausted = errors.New("section content exhausted")

// ContentPool is the read-only question/passage catalog the selector draws
// from. Implemented by the mongo repositories; tests use an in-memory fake.
type ContentPool interface {
	Questions(ctx context.Context, section model.Section, level int, sublevel string) ([]*model.Question, error)
	Passage(ctx context.Context, passageID string) (*model.Passage, error)
	Passages(ctx context.Context, section model.Section, level int, sublevel string) ([]*model.Passage, error)
	PassageQuestions(ctx context.Context, passageID string) ([]*model.Question, error)
}

// Rotation is the reading-section passage rotation state carried on the
// section row.
type Rotation struct {
	PassageID     string
	QuestionCount int
}

// Pick is a successful selection.
type Pick struct {
	Question *model.Question
	Passage  *model.Passage
	// State is the candidate level the content was actually found at. When
	// it differs from the section's stored level the caller syncs the row.
	State         model.LevelState
	LevelAdjusted bool
	// NewPassage is set when the reading rotation moved to a fresh passage.
	NewPassage bool
}

// Selector finds the next unanswered question near the current ability
// estimate. The random source is injectable for deterministic tests.
type Selector struct {
	pool ContentPool
	cfg  config.EngineConfig
	rng  *rand.Rand
}

// NewSelector creates an item/passage selector.
func NewSelector(pool ContentPool, cfg config.EngineConfig, rng *rand.Rand) *Selector {
	return &Selector{pool: pool, cfg: cfg, rng: rng}
}

// candidates returns the ordered ladder of level states to try: the current
// state first, then nearby neighbors, deduped after bound clamping.
func (s *Selector) candidates(state model.LevelState) []model.LevelState {
	ladder := []model.LevelState{
		state,
		state.StepN(-1, s.cfg.MinLevel, s.cfg.MaxLevel),
		state.StepN(1, s.cfg.MinLevel, s.cfg.MaxLevel),
		state.StepN(-2, s.cfg.MinLevel, s.cfg.MaxLevel),
	}
	seen := make(map[string]bool, len(ladder))
	out := ladder[:0]
	for _, c := range ladder {
		key := c.Encode()
		if !seen[key] {
			seen[key] = true
			out = append(out, c)
		}
	}
	return out
}

// Next picks the next question for the section, widening to nearby levels
// when the exact level has nothing left. Returns ErrContentExhausted when
// every candidate is dry.
func (s *Selector) Next(ctx context.Context, section model.Section, state model.LevelState, answered map[string]bool, rot Rotation) (*Pick, error) {
	for _, candidate := range s.candidates(state) {
		pick, err := s.tryCandidate(ctx, section, candidate, answered, rot)
		if err != nil {
			return nil, err
		}
		if pick != nil {
			pick.LevelAdjusted = candidate != state
			return pick, nil
		}
	}
	return nil, ErrContentExhausted
}

// tryCandidate attempts one rung of the ladder. A nil, nil return means the
// candidate has no content and the caller should widen.
func (s *Selector) tryCandidate(ctx context.Context, section model.Section, candidate model.LevelState, answered map[string]bool, rot Rotation) (*Pick, error) {
	if section != model.SectionReading {
		questions, err := s.pool.Questions(ctx, section, candidate.Level, candidate.Sublevel)
		if err != nil {
			return nil, err
		}
		q := s.randomUnanswered(questions, answered)
		if q == nil {
			return nil, nil
		}
		return &Pick{Question: q, State: candidate}, nil
	}
	return s.tryReading(ctx, candidate, answered, rot)
}

// tryReading handles the passage rotation rules for the reading section.
func (s *Selector) tryReading(ctx context.Context, candidate model.LevelState, answered map[string]bool, rot Rotation) (*Pick, error) {
	// A rotation survives only while its passage still matches the candidate
	// level and has quota left. A level change mid-passage forces a fresh
	// passage at the new level.
	if rot.PassageID != "" && rot.QuestionCount < s.cfg.PassageSetSize {
		active, err := s.pool.Passage(ctx, rot.PassageID)
		if err != nil {
			return nil, err
		}
		if active != nil && active.Level == candidate.Level && active.Sublevel == candidate.Sublevel {
			questions, err := s.pool.PassageQuestions(ctx, rot.PassageID)
			if err != nil {
				return nil, err
			}
			if q := s.randomUnanswered(questions, answered); q != nil {
				return &Pick{Question: q, State: candidate}, nil
			}
			// Active passage drained early; fall through to a new one.
		}
	}

	passages, err := s.pool.Passages(ctx, model.SectionReading, candidate.Level, candidate.Sublevel)
	if err != nil {
		return nil, err
	}

	type option struct {
		passage  *model.Passage
		question *model.Question
	}
	var eligible []option
	for _, p := range passages {
		if p.ID == rot.PassageID {
			continue
		}
		questions, err := s.pool.PassageQuestions(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		used := 0
		var remaining []*model.Question
		for _, q := range questions {
			if answered[q.ID] {
				used++
			} else {
				remaining = append(remaining, q)
			}
		}
		if len(remaining) == 0 || used >= s.cfg.PassageSetSize {
			continue
		}
		eligible = append(eligible, option{passage: p, question: remaining[s.rng.Intn(len(remaining))]})
	}
	if len(eligible) == 0 {
		return nil, nil
	}
	chosen := eligible[s.rng.Intn(len(eligible))]
	return &Pick{Question: chosen.question, Passage: chosen.passage, State: candidate, NewPassage: true}, nil
}

func (s *Selector) randomUnanswered(questions []*model.Question, answered map[string]bool) *model.Question {
	var remaining []*model.Question
	for _, q := range questions {
		if !answered[q.ID] {
			remaining = append(remaining, q)
		}
	}
	if len(remaining) == 0 {
		return nil
	}
	return remaining[s.rng.Intn(len(remaining))]
}

// Present shuffles a question's options for display. OptionOrder maps each
// presented index back to the canonical index; the shuffle is re-rolled on
// every call and never persisted.
func (s *Selector) Present(q *model.Question) *model.PresentedQuestion {
	order := s.rng.Perm(len(q.Options))
	options := make([]string, len(q.Options))
	for presented, canonical := range order {
		options[presented] = q.Options[canonical]
	}
	return &model.PresentedQuestion{
		ID:           q.ID,
		Stem:         q.Stem,
		Options:      options,
		OptionOrder:  order,
		SkillTags:    q.SkillTags,
		MediaURL:     q.MediaURL,
		Instructions: q.Instructions,
	}
}

// CanonicalIndex translates a presented (shuffled) option index back to the
// question's canonical option order.
func CanonicalIndex(order []int, presented int) (int, bool) {
	if presented < 0 || presented >= len(order) {
		return 0, false
	}
	return order[presented], true
}
