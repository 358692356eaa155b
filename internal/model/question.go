package model

// Unanswered is the sentinel submitted for a question the student skipped.
// It never matches a correct answer letter.
const Unanswered = ""

// OptionsPerQuestion is fixed by the prompt format: options A through D.
const OptionsPerQuestion = 4

// QuestionsPerTest is fixed by the prompt format: one question per
// evaluation factor.
const QuestionsPerTest = 10

// Question is one parsed multiple-choice question. Not persisted as-is;
// the full question set lives in the attempt record while a test is open.
type Question struct {
	Text             string   `json:"text"`
	Options          []string `json:"options"`
	CorrectAnswer    string   `json:"correctAnswer"`
	EvaluationFactor string   `json:"evaluationFactor"`
}

// Valid reports whether the question satisfies its structural invariant:
// exactly four options and a correct answer letter indexing one of them.
func (q Question) Valid() bool {
	if len(q.Options) != OptionsPerQuestion {
		return false
	}
	if len(q.CorrectAnswer) != 1 {
		return false
	}
	c := q.CorrectAnswer[0]
	return c >= 'A' && c < 'A'+OptionsPerQuestion
}

// GenerationResult is a story plus its question set. A result is only ever
// constructed whole: content and questions are both present or the
// generation failed.
type GenerationResult struct {
	Content   string     `json:"content"`
	Questions []Question `json:"questions"`
}
