package service

import (
	"context"
	"strings"

	"github.com/inov8tr/placement-api/internal/model"
	"github.com/inov8tr/placement-api/internal/repository"
)

// ContentService handles admin CRUD for the question/passage catalog. The
// adaptive engine itself only ever reads this content.
type ContentService struct {
	questionRepo repository.QuestionRepo
	passageRepo  repository.PassageRepo
}

// NewContentService creates a new content service.
func NewContentService(questionRepo repository.QuestionRepo, passageRepo repository.PassageRepo) *ContentService {
	return &ContentService{questionRepo: questionRepo, passageRepo: passageRepo}
}

func validSection(section model.Section) bool {
	for _, s := range model.SectionOrder {
		if s == section {
			return true
		}
	}
	return false
}

// CreateQuestion validates and stores a question.
func (s *ContentService) CreateQuestion(ctx context.Context, q *model.Question) (string, error) {
	if !validSection(q.Section) || strings.TrimSpace(q.Stem) == "" ||
		len(q.Options) < 2 || q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return "", ErrInvalidPayload
	}
	if q.Section == model.SectionReading && q.PassageID == "" {
		return "", ErrInvalidPayload
	}
	q.Active = true
	if err := s.questionRepo.Create(ctx, q); err != nil {
		return "", err
	}
	return q.ID, nil
}

// ListQuestions returns all questions for a section.
func (s *ContentService) ListQuestions(ctx context.Context, section model.Section) ([]*model.Question, error) {
	if !validSection(section) {
		return nil, ErrInvalidPayload
	}
	return s.questionRepo.GetBySection(ctx, section)
}

// DeleteQuestion removes a question from the pool.
func (s *ContentService) DeleteQuestion(ctx context.Context, id string) error {
	return s.questionRepo.Delete(ctx, id)
}

// CreatePassage validates and stores a reading passage.
func (s *ContentService) CreatePassage(ctx context.Context, p *model.Passage) (string, error) {
	if p.Section != model.SectionReading || strings.TrimSpace(p.Body) == "" {
		return "", ErrInvalidPayload
	}
	p.Active = true
	if err := s.passageRepo.Create(ctx, p); err != nil {
		return "", err
	}
	return p.ID, nil
}

// GetPassage returns one passage, or nil when it does not exist.
func (s *ContentService) GetPassage(ctx context.Context, id string) (*model.Passage, error) {
	return s.passageRepo.GetByID(ctx, id)
}

// DeletePassage removes a passage from the pool.
func (s *ContentService) DeletePassage(ctx context.Context, id string) error {
	return s.passageRepo.Delete(ctx, id)
}
