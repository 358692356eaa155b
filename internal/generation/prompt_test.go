package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	factors := []string{"Comprehension", "Vocabulary", "Inference"}
	prompt := BuildPrompt(10, "Space", 900, factors)

	assert.Contains(t, prompt, "10-year-old student")
	assert.Contains(t, prompt, "on the topic of Space")
	assert.Contains(t, prompt, "900 Lexile level")
	assert.Contains(t, prompt, "Comprehension, Vocabulary, Inference")

	// the format the parser depends on
	assert.Contains(t, prompt, "Content:")
	assert.Contains(t, prompt, "Questions:")
	assert.Contains(t, prompt, "Correct Answer:")
	assert.Contains(t, prompt, "EXACTLY 10 multiple-choice questions")
}
