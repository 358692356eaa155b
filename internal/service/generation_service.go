package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lexile_eval_backend/internal/config"
	"lexile_eval_backend/internal/generation"
	"lexile_eval_backend/internal/model"
	"lexile_eval_backend/pkg/monitoring"

	"github.com/avast/retry-go"
)

// ErrGenerationFailed is returned once every attempt produced unusable
// output. Callers never see a partial story or question set.
var ErrGenerationFailed = errors.New("content generation failed after all attempts")

const maxGenerationAttempts = 3

// GenerationService produces a story plus its ten questions via the AI
// boundary, retrying the full generate-and-parse cycle on malformed output.
type GenerationService struct {
	AI  Completer
	Cfg *config.Config
}

func NewGenerationService(ai Completer, cfg *config.Config) *GenerationService {
	return &GenerationService{AI: ai, Cfg: cfg}
}

// Generate runs up to maxGenerationAttempts generate-and-parse cycles and
// returns a complete result or ErrGenerationFailed. The result invariant
// holds on success: non-empty content and exactly model.QuestionsPerTest
// valid questions.
func (s *GenerationService) Generate(ctx context.Context, age int, topic string, targetLexile int) (*model.GenerationResult, error) {
	prompt := generation.BuildPrompt(age, topic, targetLexile, s.Cfg.CurriculumView().EvaluationFactors)

	var result *model.GenerationResult
	err := retry.Do(
		func() error {
			raw, err := s.AI.Complete(ctx, prompt)
			if err != nil {
				monitoring.GenerationAttempts.WithLabelValues("error").Inc()
				return err
			}

			content, questions := generation.Parse(raw)
			if err := validateResult(content, questions); err != nil {
				monitoring.GenerationAttempts.WithLabelValues("malformed").Inc()
				return err
			}

			monitoring.GenerationAttempts.WithLabelValues("ok").Inc()
			result = &model.GenerationResult{Content: content, Questions: questions}
			return nil
		},
		retry.Attempts(maxGenerationAttempts),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return result, nil
}

func validateResult(content string, questions []model.Question) error {
	if content == "" {
		return errors.New("no content section in model output")
	}
	if len(questions) != model.QuestionsPerTest {
		return fmt.Errorf("parsed %d of %d questions", len(questions), model.QuestionsPerTest)
	}
	for i, q := range questions {
		if !q.Valid() {
			return fmt.Errorf("question %d is malformed", i+1)
		}
	}
	return nil
}
