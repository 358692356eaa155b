package generation

import (
	"fmt"
	"strings"

	"lexile_eval_backend/internal/model"
)

// TargetStoryWords is the requested story length. The model is asked for
// exactly this many words but the output is not mechanically enforced.
const TargetStoryWords = 200

const promptTemplate = `You are an AI assistant trained to generate educational content and multiple-choice questions (MCQs) for students.
Please generate an engaging short story of EXACTLY %d words suitable for a %d-year-old student on the topic of %s.
The content should be at approximately a %d Lexile level.
The story should be interesting, have a clear beginning, middle, and end, and incorporate educational elements related to the topic.

Then, create EXACTLY %d multiple-choice questions based on this story. Each question should evaluate a different skill from the following list:
%s

The questions should be challenging but appropriate for the age group and Lexile level.

Format your response EXACTLY as follows:
Content:
[Your generated story here]

Questions:
1. [Evaluation Factor]: [Question 1]
   A) [Option A]
   B) [Option B]
   C) [Option C]
   D) [Option D]
   Correct Answer: [Correct option letter]

2. [Evaluation Factor]: [Question 2]
   A) [Option A]
   B) [Option B]
   C) [Option C]
   D) [Option D]
   Correct Answer: [Correct option letter]

[Repeat for questions 3-%d]

Important:
- Ensure that each question and option is a complete sentence.
- Do not include any additional text or formatting.
- Do not include asterisks (**) or other markdown formatting.
- Do not include "Question X" in the question text.
- Place the Evaluation Factor before the question, separated by a colon.

Generated Content and Questions:
`

// BuildPrompt renders the story-and-questions instruction for one generation
// attempt.
func BuildPrompt(age int, topic string, targetLexile int, factors []string) string {
	return fmt.Sprintf(promptTemplate,
		TargetStoryWords,
		age,
		topic,
		targetLexile,
		model.QuestionsPerTest,
		strings.Join(factors, ", "),
		model.QuestionsPerTest,
	)
}
