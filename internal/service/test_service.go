package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"lexile_eval_backend/internal/config"
	"lexile_eval_backend/internal/lexile"
	"lexile_eval_backend/internal/model"
	"lexile_eval_backend/internal/repository"
	"lexile_eval_backend/internal/util"
	"lexile_eval_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FlowState is the test lifecycle of one student. Transitions:
//
//	dashboard        --StartTest-->      test_in_progress
//	test_in_progress --SubmitAnswers-->  test_completed
//	test_in_progress --Abandon-->        dashboard
//	test_completed   --StartTest-->      test_in_progress
//
// The state lives server-side in redis so correct answers never reach the
// client before submission and a refresh cannot fake a fresh attempt.
type FlowState string

const (
	StateDashboard      FlowState = "dashboard"
	StateTestInProgress FlowState = "test_in_progress"
	StateTestCompleted  FlowState = "test_completed"
)

// attemptTTL bounds how long an open or completed attempt survives in redis.
const attemptTTL = time.Hour

// testAttempt is the redis-held attempt record, including the answer keys.
type testAttempt struct {
	AttemptID    string           `json:"attemptId"`
	SessionID    uint             `json:"sessionId"`
	StudentID    string           `json:"studentId"`
	Topic        string           `json:"topic"`
	TargetLexile int              `json:"targetLexile"`
	Content      string           `json:"content"`
	Questions    []model.Question `json:"questions"`
	State        FlowState        `json:"state"`
	StartedAt    time.Time        `json:"startedAt"`
}

// PublicQuestion is a question as shown to the student: no answer key.
type PublicQuestion struct {
	Text             string   `json:"text"`
	Options          []string `json:"options"`
	EvaluationFactor string   `json:"evaluationFactor"`
}

type StartTestResult struct {
	AttemptID    string           `json:"attemptId"`
	Topic        string           `json:"topic"`
	TargetLexile int              `json:"targetLexile"`
	Content      string           `json:"content"`
	Questions    []PublicQuestion `json:"questions"`
}

type QuestionResult struct {
	Index         int    `json:"index"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
}

type TestResult struct {
	PercentageCorrect float64          `json:"percentageCorrect"`
	OldLexileLevel    int              `json:"oldLexileLevel"`
	NewLexileLevel    int              `json:"newLexileLevel"`
	Band              lexile.Band      `json:"band"`
	ScaleDisplay      string           `json:"scaleDisplay"`
	Questions         []QuestionResult `json:"questions"`
}

type TestService struct {
	UserRepo    *repository.UserRepository
	FactorRepo  *repository.FactorScoreRepository
	SessionRepo *repository.TestSessionRepository
	Generator   *GenerationService
	Redis       *redis.Client
	Cfg         *config.Config
}

func NewTestService(
	userRepo *repository.UserRepository,
	factorRepo *repository.FactorScoreRepository,
	sessionRepo *repository.TestSessionRepository,
	generator *GenerationService,
	rdb *redis.Client,
	cfg *config.Config,
) *TestService {
	return &TestService{
		UserRepo:    userRepo,
		FactorRepo:  factorRepo,
		SessionRepo: sessionRepo,
		Generator:   generator,
		Redis:       rdb,
		Cfg:         cfg,
	}
}

func attemptKey(studentID string) string {
	return "lexile:attempt:" + studentID
}

// StartTest generates a new story and question set and moves the student's
// flow to test_in_progress. The generation target is the midpoint of the
// chosen difficulty tier's Lexile range.
func (s *TestService) StartTest(ctx context.Context, user *model.User, topic, difficulty string) (*StartTestResult, error) {
	curriculum := s.Cfg.CurriculumView()
	if !curriculum.HasTopic(topic) {
		return nil, util.ErrUnknownTopic
	}
	tier, ok := curriculum.Tier(difficulty)
	if !ok {
		return nil, util.ErrUnknownDifficulty
	}
	targetLexile := (tier.MinLexile + tier.MaxLexile) / 2

	result, err := s.Generator.Generate(ctx, user.Age, topic, targetLexile)
	if err != nil {
		return nil, err
	}

	session := &model.TestSession{
		StudentID:   user.StudentID,
		Topic:       topic,
		LexileLevel: targetLexile,
		Content:     result.Content,
	}
	if err := s.SessionRepo.Create(session); err != nil {
		// The student still gets their test; only the history record is lost.
		logger.Log.Error("failed to save test session",
			zap.String("studentId", user.StudentID), zap.Error(err))
	}

	attempt := testAttempt{
		AttemptID:    uuid.NewString(),
		SessionID:    session.ID,
		StudentID:    user.StudentID,
		Topic:        topic,
		TargetLexile: targetLexile,
		Content:      result.Content,
		Questions:    result.Questions,
		State:        StateTestInProgress,
		StartedAt:    time.Now(),
	}
	if err := s.storeAttempt(ctx, &attempt); err != nil {
		return nil, err
	}

	public := make([]PublicQuestion, len(result.Questions))
	for i, q := range result.Questions {
		public[i] = PublicQuestion{
			Text:             q.Text,
			Options:          q.Options,
			EvaluationFactor: q.EvaluationFactor,
		}
	}

	return &StartTestResult{
		AttemptID:    attempt.AttemptID,
		Topic:        topic,
		TargetLexile: targetLexile,
		Content:      result.Content,
		Questions:    public,
	}, nil
}

// SubmitAnswers grades an open attempt, applies factor deltas and the Lexile
// adjustment, and moves the flow to test_completed. Store failures after
// evaluation are logged but do not hide the result from the student.
func (s *TestService) SubmitAnswers(ctx context.Context, user *model.User, attemptID string, answers []string) (*TestResult, error) {
	attempt, err := s.loadAttempt(ctx, user.StudentID)
	if err != nil {
		return nil, err
	}
	if attempt.AttemptID != attemptID {
		return nil, util.ErrAttemptNotFound
	}
	if attempt.State == StateTestCompleted {
		return nil, util.ErrTestAlreadySubmitted
	}

	deltas, percentage, err := lexile.EvaluateAnswers(attempt.Questions, answers)
	if err != nil {
		return nil, err
	}

	oldLevel := user.LexileLevel
	newLevel := lexile.Adjust(oldLevel, percentage)

	if err := s.FactorRepo.ApplyDeltas(user.StudentID, deltas); err != nil {
		logger.Log.Error("failed to apply factor score deltas",
			zap.String("studentId", user.StudentID), zap.Error(err))
	}
	if err := s.UserRepo.UpdateLexileLevel(user.StudentID, newLevel); err != nil {
		logger.Log.Error("failed to update lexile level",
			zap.String("studentId", user.StudentID), zap.Error(err))
	}
	if attempt.SessionID != 0 {
		if err := s.SessionRepo.Complete(attempt.SessionID, percentage, newLevel); err != nil {
			logger.Log.Error("failed to complete test session",
				zap.Uint("sessionId", attempt.SessionID), zap.Error(err))
		}
	}

	attempt.State = StateTestCompleted
	if err := s.storeAttempt(ctx, attempt); err != nil {
		logger.Log.Warn("failed to persist completed attempt state", zap.Error(err))
	}

	results := make([]QuestionResult, len(attempt.Questions))
	for i, q := range attempt.Questions {
		answer := lexile.NormalizeAnswer(answers[i])
		results[i] = QuestionResult{
			Index:         i + 1,
			Correct:       answer != model.Unanswered && answer == q.CorrectAnswer,
			CorrectAnswer: q.CorrectAnswer,
		}
	}

	return &TestResult{
		PercentageCorrect: percentage,
		OldLexileLevel:    oldLevel,
		NewLexileLevel:    newLevel,
		Band:              lexile.Classify(newLevel),
		ScaleDisplay:      lexile.ScaleDisplay(newLevel),
		Questions:         results,
	}, nil
}

// Abandon drops any open attempt, returning the flow to dashboard.
func (s *TestService) Abandon(ctx context.Context, studentID string) error {
	return s.Redis.Del(ctx, attemptKey(studentID)).Err()
}

// FlowStateFor reports the student's current lifecycle state.
func (s *TestService) FlowStateFor(ctx context.Context, studentID string) FlowState {
	attempt, err := s.loadAttempt(ctx, studentID)
	if err != nil {
		return StateDashboard
	}
	return attempt.State
}

func (s *TestService) storeAttempt(ctx context.Context, attempt *testAttempt) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return err
	}
	return s.Redis.Set(ctx, attemptKey(attempt.StudentID), data, attemptTTL).Err()
}

func (s *TestService) loadAttempt(ctx context.Context, studentID string) (*testAttempt, error) {
	data, err := s.Redis.Get(ctx, attemptKey(studentID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, util.ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}

	var attempt testAttempt
	if err := json.Unmarshal(data, &attempt); err != nil {
		return nil, err
	}
	return &attempt, nil
}
