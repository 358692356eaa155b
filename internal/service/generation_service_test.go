package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"lexile_eval_backend/internal/config"
	"lexile_eval_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedCompleter struct {
	responses []string
	errs      []error
	calls     int
}

func (f *scriptedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	i := f.calls
	f.calls++
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	return f.responses[i], f.errs[i]
}

func generationConfig() *config.Config {
	return &config.Config{
		Curriculum: config.CurriculumConfig{
			EvaluationFactors: []string{"Comprehension", "Vocabulary", "Inference"},
		},
	}
}

func wellFormedRaw() string {
	var b strings.Builder
	b.WriteString("Content:\nA quick fox ran through the quiet forest.\n\nQuestions:\n")
	for i := 1; i <= model.QuestionsPerTest; i++ {
		fmt.Fprintf(&b, "%d. Factor %d: What did the fox do?\n", i, i)
		b.WriteString("   A) It ran.\n   B) It slept.\n   C) It swam.\n   D) It climbed.\n   Correct Answer: A\n\n")
	}
	return b.String()
}

func TestGenerate_Success(t *testing.T) {
	ai := &scriptedCompleter{responses: []string{wellFormedRaw()}, errs: []error{nil}}
	svc := NewGenerationService(ai, generationConfig())

	result, err := svc.Generate(context.Background(), 10, "Animals", 700)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, ai.calls)
	assert.NotEmpty(t, result.Content)
	require.Len(t, result.Questions, model.QuestionsPerTest)
	for _, q := range result.Questions {
		assert.True(t, q.Valid())
	}
}

func TestGenerate_RecoversFromOneMalformedResponse(t *testing.T) {
	ai := &scriptedCompleter{
		responses: []string{"no markers at all", wellFormedRaw()},
		errs:      []error{nil, nil},
	}
	svc := NewGenerationService(ai, generationConfig())

	result, err := svc.Generate(context.Background(), 10, "Animals", 700)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 2, ai.calls)
}

func TestGenerate_ExhaustsAttemptsOnMalformedOutput(t *testing.T) {
	ai := &scriptedCompleter{
		responses: []string{"garbage", "garbage", "garbage"},
		errs:      []error{nil, nil, nil},
	}
	svc := NewGenerationService(ai, generationConfig())

	result, err := svc.Generate(context.Background(), 10, "Animals", 700)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Nil(t, result)
	assert.Equal(t, 3, ai.calls)
}

func TestGenerate_ExhaustsAttemptsOnTransportErrors(t *testing.T) {
	boom := errors.New("connection refused")
	ai := &scriptedCompleter{
		responses: []string{"", "", ""},
		errs:      []error{boom, boom, boom},
	}
	svc := NewGenerationService(ai, generationConfig())

	result, err := svc.Generate(context.Background(), 10, "Animals", 700)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Nil(t, result)
	assert.Equal(t, 3, ai.calls)
}

func TestGenerate_TooFewQuestionsIsMalformed(t *testing.T) {
	short := "Content: A story. Questions:\n1. Vocabulary: What?\n   A) a\n   B) b\n   C) c\n   D) d\n   Correct Answer: A\n"
	ai := &scriptedCompleter{
		responses: []string{short, short, short},
		errs:      []error{nil, nil, nil},
	}
	svc := NewGenerationService(ai, generationConfig())

	result, err := svc.Generate(context.Background(), 10, "Animals", 700)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Nil(t, result)
	assert.Equal(t, 3, ai.calls)
}
