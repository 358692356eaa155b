package service

import (
	"context"
	"testing"
	"time"

	"lexile_eval_backend/internal/config"
	"lexile_eval_backend/internal/lexile"
	"lexile_eval_backend/internal/model"
	"lexile_eval_backend/internal/util"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFlowService wires a TestService against an in-process redis. The
// repository and generator fields stay nil: the lifecycle guards under test
// reject before any of them is touched.
func newFlowService(t *testing.T) (*TestService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewTestService(nil, nil, nil, nil, rdb, &config.Config{}), mr
}

func openAttempt(t *testing.T, svc *TestService, studentID string) *testAttempt {
	t.Helper()
	attempt := &testAttempt{
		AttemptID:    "attempt-1",
		StudentID:    studentID,
		Topic:        "Animals",
		TargetLexile: 600,
		Content:      "A fox ran.",
		Questions: []model.Question{
			{Text: "What ran?", Options: []string{"A fox", "A dog", "A cat", "A bird"}, CorrectAnswer: "A", EvaluationFactor: "Comprehension"},
			{Text: "Where?", Options: []string{"Town", "Forest", "Beach", "Farm"}, CorrectAnswer: "B", EvaluationFactor: "Detail Recall"},
		},
		State:     StateTestInProgress,
		StartedAt: time.Now(),
	}
	require.NoError(t, svc.storeAttempt(context.Background(), attempt))
	return attempt
}

func TestFlowStateFor_NoAttemptIsDashboard(t *testing.T) {
	svc, _ := newFlowService(t)

	assert.Equal(t, StateDashboard, svc.FlowStateFor(context.Background(), "s1"))
}

func TestFlowStateFor_ReflectsStoredAttempt(t *testing.T) {
	svc, _ := newFlowService(t)
	attempt := openAttempt(t, svc, "s1")

	assert.Equal(t, StateTestInProgress, svc.FlowStateFor(context.Background(), "s1"))

	attempt.State = StateTestCompleted
	require.NoError(t, svc.storeAttempt(context.Background(), attempt))
	assert.Equal(t, StateTestCompleted, svc.FlowStateFor(context.Background(), "s1"))
}

func TestSubmitAnswers_NoOpenAttempt(t *testing.T) {
	svc, _ := newFlowService(t)
	user := &model.User{StudentID: "s1"}

	_, err := svc.SubmitAnswers(context.Background(), user, "attempt-1", []string{"A", "B"})
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}

func TestSubmitAnswers_WrongAttemptID(t *testing.T) {
	svc, _ := newFlowService(t)
	openAttempt(t, svc, "s1")
	user := &model.User{StudentID: "s1"}

	_, err := svc.SubmitAnswers(context.Background(), user, "someone-elses-attempt", []string{"A", "B"})
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}

func TestSubmitAnswers_CompletedAttemptConflicts(t *testing.T) {
	svc, _ := newFlowService(t)
	attempt := openAttempt(t, svc, "s1")
	attempt.State = StateTestCompleted
	require.NoError(t, svc.storeAttempt(context.Background(), attempt))
	user := &model.User{StudentID: "s1"}

	_, err := svc.SubmitAnswers(context.Background(), user, attempt.AttemptID, []string{"A", "B"})
	assert.ErrorIs(t, err, util.ErrTestAlreadySubmitted)
}

func TestSubmitAnswers_ExpiredAttempt(t *testing.T) {
	svc, mr := newFlowService(t)
	attempt := openAttempt(t, svc, "s1")
	user := &model.User{StudentID: "s1"}

	mr.FastForward(attemptTTL + time.Minute)

	_, err := svc.SubmitAnswers(context.Background(), user, attempt.AttemptID, []string{"A", "B"})
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
	assert.Equal(t, StateDashboard, svc.FlowStateFor(context.Background(), "s1"))
}

func TestSubmitAnswers_AnswerCountMismatch(t *testing.T) {
	svc, _ := newFlowService(t)
	attempt := openAttempt(t, svc, "s1")
	user := &model.User{StudentID: "s1"}

	_, err := svc.SubmitAnswers(context.Background(), user, attempt.AttemptID, []string{"A"})
	assert.ErrorIs(t, err, lexile.ErrAnswerCountMismatch)
}

func TestAbandon_ReturnsFlowToDashboard(t *testing.T) {
	svc, _ := newFlowService(t)
	attempt := openAttempt(t, svc, "s1")
	user := &model.User{StudentID: "s1"}

	require.NoError(t, svc.Abandon(context.Background(), "s1"))
	assert.Equal(t, StateDashboard, svc.FlowStateFor(context.Background(), "s1"))

	_, err := svc.SubmitAnswers(context.Background(), user, attempt.AttemptID, []string{"A", "B"})
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}
