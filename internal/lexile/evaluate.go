package lexile

import (
	"errors"
	"strings"

	"lexile_eval_backend/internal/model"
)

// Score deltas applied to a question's evaluation factor. An incorrect or
// unanswered question costs a point rather than scoring zero; the stored
// per-factor score is clamped at zero when the delta is applied, so early
// misses cannot push a student negative.
const (
	ScoreDeltaCorrect   = 1
	ScoreDeltaIncorrect = -1
)

// ErrAnswerCountMismatch indicates a caller bug: the submitted answer list
// does not line up with the question list.
var ErrAnswerCountMismatch = errors.New("answer count does not match question count")

// NormalizeAnswer maps a submitted answer to its canonical form: trimmed and
// upper case, so "a" and " B " grade the same as "A" and "B". A blank or
// whitespace-only submission normalizes to model.Unanswered.
func NormalizeAnswer(answer string) string {
	return strings.ToUpper(strings.TrimSpace(answer))
}

// EvaluateAnswers grades answers against questions. answers[i] is the letter
// chosen for questions[i], or model.Unanswered. It returns the per-factor
// score deltas and the percentage of correct answers. Pure; persisting the
// deltas is the caller's responsibility.
func EvaluateAnswers(questions []model.Question, answers []string) (map[string]int, float64, error) {
	if len(questions) != len(answers) {
		return nil, 0, ErrAnswerCountMismatch
	}

	deltas := make(map[string]int, len(questions))
	if len(questions) == 0 {
		return deltas, 0, nil
	}

	correct := 0
	for i, q := range questions {
		answer := NormalizeAnswer(answers[i])
		if answer != model.Unanswered && answer == q.CorrectAnswer {
			deltas[q.EvaluationFactor] += ScoreDeltaCorrect
			correct++
		} else {
			deltas[q.EvaluationFactor] += ScoreDeltaIncorrect
		}
	}

	percentage := float64(correct) / float64(len(questions)) * 100
	return deltas, percentage, nil
}
