package repository

import (
	"context"

	"github.com/inov8tr/placement-api/internal/model"
)

// ContentPool composes the question and passage repositories into the
// single read-only catalog view the selector consumes.
type ContentPool struct {
	questions QuestionRepo
	passages  PassageRepo
}

// NewContentPool creates the selector-facing catalog adapter.
func NewContentPool(questions QuestionRepo, passages PassageRepo) *ContentPool {
	return &ContentPool{questions: questions, passages: passages}
}

func (p *ContentPool) Questions(ctx context.Context, section model.Section, level int, sublevel string) ([]*model.Question, error) {
	return p.questions.Questions(ctx, section, level, sublevel)
}

func (p *ContentPool) Passage(ctx context.Context, passageID string) (*model.Passage, error) {
	return p.passages.GetByID(ctx, passageID)
}

func (p *ContentPool) Passages(ctx context.Context, section model.Section, level int, sublevel string) ([]*model.Passage, error) {
	return p.passages.Passages(ctx, section, level, sublevel)
}

func (p *ContentPool) PassageQuestions(ctx context.Context, passageID string) ([]*model.Question, error) {
	return p.questions.PassageQuestions(ctx, passageID)
}
