package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/inov8tr/placement-api/internal/cache"
	"github.com/inov8tr/placement-api/internal/config"
	"github.com/inov8tr/placement-api/internal/engine"
	"github.com/inov8tr/placement-api/internal/model"
	"github.com/inov8tr/placement-api/internal/repository"
)

// TestService orchestrates the whole test session: provisioning with
// placement seeding, adaptive item selection, answer grading, time budget
// accounting and finalization. All durable state lives in mongo; the
// service itself is stateless between calls.
type TestService struct {
	testRepo     repository.TestRepo
	sectionRepo  repository.SectionRepo
	responseRepo repository.ResponseRepo
	questionRepo repository.QuestionRepo
	passageRepo  repository.PassageRepo
	surveyRepo   repository.SurveyRepo
	seedRepo     repository.SeedRepo

	sessions cache.SessionCache
	locks    cache.SectionLock

	seeder   *engine.Seeder
	selector *engine.Selector
	cfg      config.EngineConfig

	authSvc     *AuthService
	broadcaster Broadcaster
	logger      *zap.Logger
}

// NewTestService creates the session orchestrator.
func NewTestService(
	testRepo repository.TestRepo,
	sectionRepo repository.SectionRepo,
	responseRepo repository.ResponseRepo,
	questionRepo repository.QuestionRepo,
	passageRepo repository.PassageRepo,
	surveyRepo repository.SurveyRepo,
	seedRepo repository.SeedRepo,
	sessions cache.SessionCache,
	locks cache.SectionLock,
	seeder *engine.Seeder,
	selector *engine.Selector,
	cfg config.EngineConfig,
	authSvc *AuthService,
	logger *zap.Logger,
) *TestService {
	return &TestService{
		testRepo:     testRepo,
		sectionRepo:  sectionRepo,
		responseRepo: responseRepo,
		questionRepo: questionRepo,
		passageRepo:  passageRepo,
		surveyRepo:   surveyRepo,
		seedRepo:     seedRepo,
		sessions:     sessions,
		locks:        locks,
		seeder:       seeder,
		selector:     selector,
		cfg:          cfg,
		authSvc:      authSvc,
		logger:       logger,
	}
}

// SetBroadcaster sets the proctor event broadcaster.
func (s *TestService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

func (s *TestService) broadcast(testID, event string, payload interface{}) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToMonitors(testID, event, payload)
	}
}

// Assign provisions a test session for a student: one Test row, one section
// row per section in administration order, seeded from the student's most
// recent parent survey (fixed default when none is on file), plus a
// test-scoped student token.
func (s *TestService) Assign(ctx context.Context, req *model.AssignTestRequest) (*model.AssignTestResponse, error) {
	if strings.TrimSpace(req.StudentID) == "" {
		return nil, ErrInvalidPayload
	}

	limit := req.TimeLimitSeconds
	if limit <= 0 {
		limit = s.cfg.TimeLimitSeconds
	}

	test := &model.Test{
		StudentID:        req.StudentID,
		Status:           model.TestAssigned,
		TimeLimitSeconds: limit,
		AssignedAt:       time.Now(),
	}
	if err := s.testRepo.Create(ctx, test); err != nil {
		return nil, fmt.Errorf("create test: %w", err)
	}

	states := make(map[model.Section]model.LevelState, len(model.SectionOrder))
	fallback := s.seeder.DefaultState()
	for _, section := range model.SectionOrder {
		states[section] = fallback
	}

	survey, err := s.surveyRepo.LatestByStudent(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("load survey: %w", err)
	}
	if survey != nil {
		result := s.seeder.Seed(survey)
		encoded := make(map[model.Section]string, len(result.Sections))
		for section, state := range result.Sections {
			states[section] = state
			encoded[section] = state.Encode()
		}
		seed := &model.PlacementSeed{
			StudentID: req.StudentID,
			TestID:    test.ID,
			SurveyID:  survey.ID,
			Sections:  encoded,
			Meta: model.PlacementSeedMeta{
				BaseLevel:   result.BaseLevel,
				Modifiers:   result.Modifiers,
				ProfileTags: result.ProfileTags,
			},
		}
		if err := s.seedRepo.Create(ctx, seed); err != nil {
			// The seed is audit metadata; the section rows carry the levels.
			s.logger.Warn("placement seed write failed",
				zap.String("testId", test.ID), zap.Error(err))
		}
	}

	sections := make([]*model.TestSection, 0, len(model.SectionOrder))
	seeded := make(map[model.Section]string, len(model.SectionOrder))
	for _, name := range model.SectionOrder {
		sec := &model.TestSection{TestID: test.ID, Section: name}
		sec.SetState(states[name])
		sections = append(sections, sec)
		seeded[name] = states[name].Encode()
	}
	if err := s.sectionRepo.CreateMany(ctx, sections); err != nil {
		return nil, fmt.Errorf("create sections: %w", err)
	}

	token, err := s.authSvc.GenerateStudentToken(req.StudentID, test.ID)
	if err != nil {
		return nil, fmt.Errorf("mint student token: %w", err)
	}

	s.broadcast(test.ID, "test_assigned", map[string]interface{}{
		"studentId": req.StudentID,
		"seeded":    seeded,
	})

	return &model.AssignTestResponse{Test: test, StudentToken: token, Seeded: seeded}, nil
}

// loadOwnedTest fetches a test and checks the caller owns it.
func (s *TestService) loadOwnedTest(ctx context.Context, studentID, testID string) (*model.Test, error) {
	test, err := s.testRepo.GetByID(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("load test: %w", err)
	}
	if test == nil {
		return nil, ErrTestNotFound
	}
	if test.StudentID != studentID {
		return nil, ErrForbidden
	}
	return test, nil
}

// NextItem serves the next question for the test's active section. Order of
// checks per call: time budget first, then section progress, then the
// selector. A finalized or expired session returns the summary.
func (s *TestService) NextItem(ctx context.Context, studentID, testID string) (*model.NextItemResponse, error) {
	test, err := s.loadOwnedTest(ctx, studentID, testID)
	if err != nil {
		return nil, err
	}
	if test.Finalized() {
		summary, err := s.summarize(ctx, test)
		if err != nil {
			return nil, err
		}
		return &model.NextItemResponse{Done: true, Summary: summary}, nil
	}

	sections, err := s.sectionRepo.GetByTest(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}
	if len(sections) == 0 {
		return nil, ErrSectionStateMissing
	}

	if test.TimeExpired() {
		summary, err := s.finalize(ctx, test, sections)
		if err != nil {
			return nil, err
		}
		return &model.NextItemResponse{Done: true, Summary: summary}, nil
	}

	var active *model.TestSection
	for _, sec := range sections {
		if !sec.Completed {
			active = sec
			break
		}
	}
	if active == nil {
		summary, err := s.finalize(ctx, test, sections)
		if err != nil {
			return nil, err
		}
		return &model.NextItemResponse{Done: true, Summary: summary}, nil
	}

	answered, err := s.responseRepo.AnsweredIDs(ctx, testID, active.Section)
	if err != nil {
		return nil, fmt.Errorf("load answered ids: %w", err)
	}

	rot := engine.Rotation{
		PassageID:     active.CurrentPassageID,
		QuestionCount: active.CurrentPassageQuestionCount,
	}
	pick, err := s.selector.Next(ctx, active.Section, active.State(), answered, rot)
	if errors.Is(err, engine.ErrContentExhausted) {
		engine.CompleteSection(active)
		if err := s.sectionRepo.Update(ctx, active); err != nil {
			return nil, fmt.Errorf("complete section: %w", err)
		}
		s.broadcast(testID, "section_completed", map[string]interface{}{
			"section":    active.Section,
			"finalLevel": active.FinalLevel,
			"reason":     "content_exhausted",
		})
		return &model.NextItemResponse{
			SectionCompleted: true,
			Section:          active.Section,
			TimeRemaining:    test.TimeRemainingSeconds(),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select item: %w", err)
	}

	// Keep the stored ability in sync with where content was actually
	// found. Failures here must not block the question from being served.
	dirty := false
	if pick.LevelAdjusted {
		active.SetState(pick.State)
		dirty = true
	}
	if pick.NewPassage {
		active.CurrentPassageID = pick.Passage.ID
		active.CurrentPassageQuestionCount = 0
		dirty = true
	}
	if dirty {
		if err := s.sectionRepo.Update(ctx, active); err != nil {
			s.logger.Warn("section state sync failed",
				zap.String("testId", testID),
				zap.String("section", string(active.Section)),
				zap.Error(err))
		}
	}

	if test.Status == model.TestAssigned {
		test.Status = model.TestInProgress
		if err := s.testRepo.Update(ctx, test); err != nil {
			s.logger.Warn("test status update failed",
				zap.String("testId", testID), zap.Error(err))
		}
	}

	presented := s.selector.Present(pick.Question)
	if err := s.sessions.SetOptionOrder(ctx, testID, pick.Question.ID, presented.OptionOrder); err != nil {
		// Grading falls back to canonical order if the cache misses.
		s.logger.Warn("option order cache write failed",
			zap.String("testId", testID),
			zap.String("questionId", pick.Question.ID),
			zap.Error(err))
	}

	passage := pick.Passage
	if passage == nil && pick.Question.PassageID != "" {
		passage, err = s.passageRepo.GetByID(ctx, pick.Question.PassageID)
		if err != nil {
			s.logger.Warn("passage load failed",
				zap.String("passageId", pick.Question.PassageID), zap.Error(err))
		}
	}

	return &model.NextItemResponse{
		Section:       active.Section,
		Level:         pick.State.Encode(),
		TimeRemaining: test.TimeRemainingSeconds(),
		Question:      presented,
		Passage:       passage,
	}, nil
}

// SubmitAnswer grades a submission and advances the session state. The
// submitted index is in the presented (shuffled) order and is translated
// back through the cached option order before grading.
func (s *TestService) SubmitAnswer(ctx context.Context, studentID, testID string, req *model.SubmitAnswerRequest) (*model.SubmitAnswerResponse, error) {
	if req == nil || strings.TrimSpace(req.QuestionID) == "" || req.SelectedIndex < 0 || req.TimeSpentMs < 0 {
		return nil, ErrInvalidPayload
	}

	test, err := s.loadOwnedTest(ctx, studentID, testID)
	if err != nil {
		return nil, err
	}
	if test.Finalized() {
		summary, err := s.summarize(ctx, test)
		if err != nil {
			return nil, err
		}
		return &model.SubmitAnswerResponse{
			AllCompleted: true,
			TimeExpired:  test.TimeExpired(),
			Summary:      summary,
		}, nil
	}

	question, err := s.questionRepo.GetByID(ctx, req.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("load question: %w", err)
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}
	if req.SelectedIndex >= len(question.Options) {
		return nil, ErrInvalidPayload
	}

	release, err := s.locks.Acquire(ctx, testID, string(question.Section))
	if errors.Is(err, cache.ErrLockHeld) {
		return nil, ErrSubmissionInFlight
	}
	if err != nil {
		return nil, fmt.Errorf("acquire section lock: %w", err)
	}
	defer release()

	sec, err := s.sectionRepo.GetByTestAndSection(ctx, testID, question.Section)
	if err != nil {
		return nil, fmt.Errorf("load section: %w", err)
	}
	if sec == nil {
		return nil, ErrSectionStateMissing
	}

	canonical := req.SelectedIndex
	order, err := s.sessions.GetOptionOrder(ctx, testID, question.ID)
	if err != nil {
		s.logger.Warn("option order cache read failed",
			zap.String("testId", testID),
			zap.String("questionId", question.ID),
			zap.Error(err))
	}
	if order != nil {
		idx, ok := engine.CanonicalIndex(order, req.SelectedIndex)
		if !ok {
			return nil, ErrInvalidPayload
		}
		canonical = idx
	}
	correct := canonical == question.CorrectIndex

	if sec.Completed {
		// Late submission after the section closed: grade but change nothing.
		return &model.SubmitAnswerResponse{Correct: correct, SectionCompleted: true}, nil
	}

	response := &model.Response{
		TestID:        testID,
		Section:       question.Section,
		QuestionID:    question.ID,
		SelectedIndex: canonical,
		Correct:       correct,
		TimeSpentMs:   req.TimeSpentMs,
	}
	if err := s.responseRepo.Create(ctx, response); err != nil {
		if errors.Is(err, repository.ErrDuplicateResponse) {
			// Same question submitted twice: no state mutation.
			return &model.SubmitAnswerResponse{Correct: correct, SectionCompleted: sec.Completed}, nil
		}
		return nil, fmt.Errorf("record response: %w", err)
	}
	if err := s.sessions.ClearOptionOrder(ctx, testID, question.ID); err != nil {
		s.logger.Debug("option order cleanup failed", zap.Error(err))
	}

	next := engine.Advance(engine.StreakState{
		Level:      sec.State(),
		StreakUp:   sec.StreakUp,
		StreakDown: sec.StreakDown,
	}, correct, s.cfg)
	sec.SetState(next.Level)
	sec.StreakUp = next.StreakUp
	sec.StreakDown = next.StreakDown

	engine.RecordAnswer(sec, correct)
	if question.PassageID != "" && question.PassageID == sec.CurrentPassageID {
		sec.CurrentPassageQuestionCount++
	}
	if engine.AtQuestionCap(sec, s.cfg.MaxQuestionsPerSection) {
		engine.CompleteSection(sec)
	}
	if err := s.sectionRepo.Update(ctx, sec); err != nil {
		return nil, fmt.Errorf("update section: %w", err)
	}

	engine.ApplyElapsed(test, req.TimeSpentMs)
	if test.Status == model.TestAssigned {
		test.Status = model.TestInProgress
	}

	s.broadcast(testID, "answer_submitted", map[string]interface{}{
		"section":    sec.Section,
		"questionId": question.ID,
		"correct":    correct,
		"level":      sec.State().Encode(),
		"served":     sec.QuestionsServed,
	})
	if sec.Completed {
		s.broadcast(testID, "section_completed", map[string]interface{}{
			"section":    sec.Section,
			"finalLevel": sec.FinalLevel,
			"reason":     "question_cap",
		})
	}

	sections, err := s.sectionRepo.GetByTest(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}
	allDone := true
	for _, other := range sections {
		if !other.Completed {
			allDone = false
			break
		}
	}

	resp := &model.SubmitAnswerResponse{
		Correct:          correct,
		SectionCompleted: sec.Completed,
		AllCompleted:     allDone,
		TimeExpired:      test.TimeExpired(),
	}

	if allDone || test.TimeExpired() {
		summary, err := s.finalize(ctx, test, sections)
		if err != nil {
			return nil, err
		}
		resp.AllCompleted = true
		resp.Summary = summary
		return resp, nil
	}

	if err := s.testRepo.Update(ctx, test); err != nil {
		return nil, fmt.Errorf("update test: %w", err)
	}
	return resp, nil
}

// Heartbeat accumulates client-reported wall-clock time and finalizes the
// session if the budget has run out.
func (s *TestService) Heartbeat(ctx context.Context, studentID, testID string, req *model.HeartbeatRequest) (*model.HeartbeatResponse, error) {
	if req == nil || req.ElapsedDeltaMs < 0 {
		return nil, ErrInvalidPayload
	}

	test, err := s.loadOwnedTest(ctx, studentID, testID)
	if err != nil {
		return nil, err
	}
	if test.Finalized() {
		summary, err := s.summarize(ctx, test)
		if err != nil {
			return nil, err
		}
		return &model.HeartbeatResponse{TimeExpired: true, Summary: summary}, nil
	}

	engine.ApplyElapsed(test, req.ElapsedDeltaMs)

	if test.TimeExpired() {
		sections, err := s.sectionRepo.GetByTest(ctx, testID)
		if err != nil {
			return nil, fmt.Errorf("load sections: %w", err)
		}
		summary, err := s.finalize(ctx, test, sections)
		if err != nil {
			return nil, err
		}
		return &model.HeartbeatResponse{TimeExpired: true, Summary: summary}, nil
	}

	if err := s.testRepo.Update(ctx, test); err != nil {
		return nil, fmt.Errorf("update test: %w", err)
	}
	return &model.HeartbeatResponse{TimeRemaining: test.TimeRemainingSeconds()}, nil
}

// Summary returns the current (or finalized) view of a test. Admin callers
// pass an empty studentID to skip the ownership check.
func (s *TestService) Summary(ctx context.Context, studentID, testID string) (*model.TestSummary, error) {
	var test *model.Test
	var err error
	if studentID == "" {
		test, err = s.testRepo.GetByID(ctx, testID)
		if err != nil {
			return nil, fmt.Errorf("load test: %w", err)
		}
		if test == nil {
			return nil, ErrTestNotFound
		}
	} else {
		test, err = s.loadOwnedTest(ctx, studentID, testID)
		if err != nil {
			return nil, err
		}
	}
	return s.summarize(ctx, test)
}

// Report builds the admin report: the summary plus the seeded starting
// levels, so reviewers can compare where each section began and ended. A
// missing seed row falls back to the default start per section.
func (s *TestService) Report(ctx context.Context, testID string) (*model.TestReport, error) {
	summary, err := s.Summary(ctx, "", testID)
	if err != nil {
		return nil, err
	}

	seed, err := s.seedRepo.GetByTest(ctx, testID)
	if err != nil {
		s.logger.Warn("placement seed load failed",
			zap.String("testId", testID), zap.Error(err))
	}

	fallback := s.seeder.DefaultState()
	seeded := make(map[model.Section]string, len(model.SectionOrder))
	for _, section := range model.SectionOrder {
		seeded[section] = seed.SectionState(section, fallback).Encode()
	}

	report := &model.TestReport{Summary: summary, SeededLevels: seeded}
	if seed != nil {
		report.ProfileTags = seed.Meta.ProfileTags
	}
	return report, nil
}

// ListByStudent returns every test assigned to a student.
func (s *TestService) ListByStudent(ctx context.Context, studentID string) ([]*model.Test, error) {
	return s.testRepo.GetByStudentID(ctx, studentID)
}

// Review moves a completed test to reviewed status.
func (s *TestService) Review(ctx context.Context, testID string) (*model.Test, error) {
	test, err := s.testRepo.GetByID(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("load test: %w", err)
	}
	if test == nil {
		return nil, ErrTestNotFound
	}
	if test.Status != model.TestCompleted {
		return nil, ErrInvalidPayload
	}
	test.Status = model.TestReviewed
	if err := s.testRepo.Update(ctx, test); err != nil {
		return nil, fmt.Errorf("update test: %w", err)
	}
	return test, nil
}

// finalize aggregates section outcomes onto the test and moves it to
// completed. Idempotent: an already-finalized test is summarized as-is.
func (s *TestService) finalize(ctx context.Context, test *model.Test, sections []*model.TestSection) (*model.TestSummary, error) {
	if test.Finalized() {
		return s.buildSummary(test, sections), nil
	}

	for _, sec := range sections {
		if sec.Completed {
			continue
		}
		// Time expiry: stamp the last-known live level as final.
		engine.CompleteSection(sec)
		if err := s.sectionRepo.Update(ctx, sec); err != nil {
			s.logger.Warn("section finalize write failed",
				zap.String("testId", test.ID),
				zap.String("section", string(sec.Section)),
				zap.Error(err))
		}
	}

	outcome := engine.Finalize(sections, s.cfg)
	test.WeightedLevel = outcome.WeightedLevel.Encode()
	test.WeightedRaw = outcome.WeightedRaw
	test.TotalScore = outcome.TotalScore
	test.Status = model.TestCompleted
	now := time.Now()
	test.CompletedAt = &now

	if err := s.testRepo.Update(ctx, test); err != nil {
		return nil, fmt.Errorf("finalize test: %w", err)
	}

	summary := s.buildSummary(test, sections)
	s.broadcast(test.ID, "test_finalized", summary)
	return summary, nil
}

// summarize loads sections and builds the summary view.
func (s *TestService) summarize(ctx context.Context, test *model.Test) (*model.TestSummary, error) {
	sections, err := s.sectionRepo.GetByTest(ctx, test.ID)
	if err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}
	return s.buildSummary(test, sections), nil
}

func (s *TestService) buildSummary(test *model.Test, sections []*model.TestSection) *model.TestSummary {
	summary := &model.TestSummary{
		TestID:        test.ID,
		StudentID:     test.StudentID,
		Status:        test.Status,
		WeightedLevel: test.WeightedLevel,
		WeightedRaw:   test.WeightedRaw,
		TotalScore:    test.TotalScore,
		ElapsedMs:     test.ElapsedMs,
	}
	for _, sec := range sections {
		final := sec.FinalLevel
		if final == "" {
			final = sec.State().Encode()
		}
		summary.Sections = append(summary.Sections, model.SectionSummary{
			Section:         sec.Section,
			FinalLevel:      final,
			QuestionsServed: sec.QuestionsServed,
			CorrectCount:    sec.CorrectCount,
			IncorrectCount:  sec.IncorrectCount,
			Completed:       sec.Completed,
		})
	}
	return summary
}
