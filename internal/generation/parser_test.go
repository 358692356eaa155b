package generation

import (
	"fmt"
	"strings"
	"testing"

	"lexile_eval_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionBlock(n int, factor string) string {
	return fmt.Sprintf(`%d. %s: What did the fox do?
   A) It ran through the forest.
   B) It slept all day.
   C) It swam in the river.
   D) It climbed a tree.
   Correct Answer: A
`, n, factor)
}

func wellFormedResponse() string {
	var b strings.Builder
	b.WriteString("Content:\nA quick fox ran through the quiet forest.\n\nQuestions:\n")
	for i := 1; i <= 10; i++ {
		b.WriteString(questionBlock(i, fmt.Sprintf("Factor %d", i)))
		b.WriteString("\n")
	}
	return b.String()
}

func TestParse_SingleQuestion(t *testing.T) {
	raw := "Content: A fox ran. Questions: 1. Vocabulary: What ran?\nA) A fox\nB) A cat\nC) A dog\nD) A bird\nCorrect Answer: A"

	content, questions := Parse(raw)
	assert.Equal(t, "A fox ran.", content)
	require.Len(t, questions, 1)

	q := questions[0]
	assert.Equal(t, "What ran?", q.Text)
	assert.Equal(t, []string{"A fox", "A cat", "A dog", "A bird"}, q.Options)
	assert.Equal(t, "A", q.CorrectAnswer)
	assert.Equal(t, "Vocabulary", q.EvaluationFactor)
	assert.True(t, q.Valid())
}

func TestParse_FullResponse(t *testing.T) {
	content, questions := Parse(wellFormedResponse())
	assert.Equal(t, "A quick fox ran through the quiet forest.", content)
	require.Len(t, questions, 10)
	for i, q := range questions {
		assert.True(t, q.Valid(), "question %d", i+1)
		assert.Equal(t, fmt.Sprintf("Factor %d", i+1), q.EvaluationFactor)
	}
}

func TestParse_MissingContentMarker(t *testing.T) {
	content, questions := Parse("Here is a story. Questions: 1. Vocabulary: What?\nA) x\nB) y\nC) z\nD) w\nCorrect Answer: B")
	assert.Empty(t, content)
	assert.Nil(t, questions)
}

func TestParse_MissingQuestionsMarker(t *testing.T) {
	content, questions := Parse("Content: just a story, nothing else")
	assert.Empty(t, content)
	assert.Nil(t, questions)
}

func TestParse_SkipsShortBlocks(t *testing.T) {
	raw := "Content: Story here. Questions:\n" +
		questionBlock(1, "Comprehension") +
		"\n2. Inference: Incomplete question?\n   A) only one option\n"

	content, questions := Parse(raw)
	assert.Equal(t, "Story here.", content)
	require.Len(t, questions, 1)
	assert.Equal(t, "Comprehension", questions[0].EvaluationFactor)
}

func TestParse_SkipsBlockWithoutHeaderColon(t *testing.T) {
	raw := "Content: Story here. Questions:\n" +
		"1. a header line with no colon\n   A) a\n   B) b\n   C) c\n   D) d\n   Correct Answer: A\n\n" +
		questionBlock(2, "Sequencing")

	_, questions := Parse(raw)
	require.Len(t, questions, 1)
	assert.Equal(t, "Sequencing", questions[0].EvaluationFactor)
}

func TestParse_MissingCorrectAnswerLineYieldsInvalidQuestion(t *testing.T) {
	raw := "Content: Story. Questions:\n" +
		"1. Vocabulary: What ran?\n   A) a\n   B) b\n   C) c\n   D) d\n   Explanation: none given\n"

	_, questions := Parse(raw)
	require.Len(t, questions, 1)
	assert.False(t, questions[0].Valid())
}

func TestParse_CleansMarkdownAndWhitespace(t *testing.T) {
	raw := "Content: **A  bold**\n  story. Questions:\n" +
		"1. **Vocabulary**:   What   ran?\n   A) **A fox**\n   B) b\n   C) c\n   D) d\n   Correct Answer: A\n"

	content, questions := Parse(raw)
	assert.Equal(t, "A bold story.", content)
	require.Len(t, questions, 1)
	assert.Equal(t, "Vocabulary", questions[0].EvaluationFactor)
	assert.Equal(t, "What ran?", questions[0].Text)
	assert.Equal(t, "A fox", questions[0].Options[0])
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "plain words", CleanText("  **plain**\n\twords  "))
	assert.Equal(t, "", CleanText("  ***  "))
}

func TestQuestionValid(t *testing.T) {
	q := model.Question{
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: "D",
	}
	assert.True(t, q.Valid())

	q.CorrectAnswer = "E"
	assert.False(t, q.Valid())

	q.CorrectAnswer = "A"
	q.Options = q.Options[:3]
	assert.False(t, q.Valid())
}
