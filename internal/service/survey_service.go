package service

import (
	"context"
	"strings"

	"github.com/inov8tr/placement-api/internal/model"
	"github.com/inov8tr/placement-api/internal/repository"
)

// SurveyService handles parent survey intake.
type SurveyService struct {
	surveyRepo repository.SurveyRepo
}

// NewSurveyService creates a new survey service.
func NewSurveyService(surveyRepo repository.SurveyRepo) *SurveyService {
	return &SurveyService{surveyRepo: surveyRepo}
}

// Create records a new parent survey for a student.
func (s *SurveyService) Create(ctx context.Context, survey *model.ParentSurvey) (string, error) {
	if strings.TrimSpace(survey.StudentID) == "" {
		return "", ErrInvalidPayload
	}
	if err := s.surveyRepo.Create(ctx, survey); err != nil {
		return "", err
	}
	return survey.ID, nil
}

// ListByStudent returns a student's surveys, newest first.
func (s *SurveyService) ListByStudent(ctx context.Context, studentID string) ([]*model.ParentSurvey, error) {
	return s.surveyRepo.ListByStudent(ctx, studentID)
}

// LatestByStudent returns the most recent survey, or nil when none exists.
func (s *SurveyService) LatestByStudent(ctx context.Context, studentID string) (*model.ParentSurvey, error) {
	return s.surveyRepo.LatestByStudent(ctx, studentID)
}
