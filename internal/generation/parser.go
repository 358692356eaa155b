// Package generation turns a free-form model response into a story plus
// structured questions. The expected grammar is the one the prompt demands:
// a "Content:" section, a "Questions:" section, numbered question blocks of
// a "Factor: text" header, four "X) option" lines and a "Correct Answer: L"
// line. Output rarely matches perfectly, so the parser tolerates and skips
// malformed blocks; the caller decides whether enough survived.
package generation

import (
	"regexp"
	"strings"

	"lexile_eval_backend/internal/model"
)

const (
	contentMarker   = "Content:"
	questionsMarker = "Questions:"

	// "A) ", "B) " etc. Fixed-width option label stripped from each option line.
	optionLabelWidth = 3

	// header + four options + at least one answer line
	minBlockLines = 6

	correctAnswerTag = "correct answer:"
)

var (
	contentPattern  = regexp.MustCompile(`(?s)` + contentMarker + `(.*?)` + questionsMarker)
	questionDivider = regexp.MustCompile(`\n\s*\d+\.`)
	leadingNumber   = regexp.MustCompile(`^\s*\d+\.\s*`)
	emphasisRuns    = regexp.MustCompile(`\*+`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
)

// CleanText strips markdown emphasis markers and collapses whitespace runs
// into single spaces.
func CleanText(text string) string {
	text = emphasisRuns.ReplaceAllString(text, "")
	text = whitespaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Parse extracts the story and the question list from a raw model response.
// A missing content marker fails the whole parse ("", nil); a malformed
// question block only loses that block. The returned questions may number
// fewer than the caller requested; enforcing the expected count is the
// caller's job.
func Parse(raw string) (string, []model.Question) {
	contentMatch := contentPattern.FindStringSubmatch(raw)
	if contentMatch == nil {
		return "", nil
	}
	content := CleanText(contentMatch[1])

	_, questionsRaw, found := strings.Cut(raw, questionsMarker)
	if !found {
		return "", nil
	}

	blocks := questionDivider.Split(strings.TrimSpace(questionsRaw), -1)
	var questions []model.Question
	for _, block := range blocks {
		q, ok := parseBlock(block)
		if ok {
			questions = append(questions, q)
		}
	}

	return content, questions
}

// parseBlock parses one numbered question block. ok is false for empty or
// malformed blocks, which the caller silently drops.
func parseBlock(block string) (model.Question, bool) {
	if strings.TrimSpace(block) == "" {
		return model.Question{}, false
	}

	var lines []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < minBlockLines {
		return model.Question{}, false
	}

	// The first block keeps its "1." prefix because the divider only matches
	// after a newline.
	header := leadingNumber.ReplaceAllString(lines[0], "")
	factor, text, found := strings.Cut(header, ":")
	if !found {
		return model.Question{}, false
	}

	options := make([]string, 0, model.OptionsPerQuestion)
	for _, line := range lines[1 : 1+model.OptionsPerQuestion] {
		if len(line) < optionLabelWidth {
			return model.Question{}, false
		}
		options = append(options, CleanText(line[optionLabelWidth:]))
	}

	correctAnswer := ""
	for _, line := range lines[1+model.OptionsPerQuestion:] {
		if strings.HasPrefix(strings.ToLower(line), correctAnswerTag) {
			_, after, _ := strings.Cut(line, ":")
			correctAnswer = strings.TrimSpace(after)
			break
		}
	}

	return model.Question{
		Text:             CleanText(text),
		Options:          options,
		CorrectAnswer:    correctAnswer,
		EvaluationFactor: CleanText(factor),
	}, true
}
