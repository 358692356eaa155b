package config

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurriculumLookups(t *testing.T) {
	cur := CurriculumConfig{
		Topics: []string{"Animals", "Space"},
		DifficultyTiers: []DifficultyTier{
			{Name: "Easy", MinLexile: 400, MaxLexile: 800},
		},
	}

	assert.True(t, cur.HasTopic("Space"))
	assert.False(t, cur.HasTopic("Cooking"))

	tier, ok := cur.Tier("Easy")
	assert.True(t, ok)
	assert.Equal(t, 400, tier.MinLexile)

	_, ok = cur.Tier("Impossible")
	assert.False(t, ok)
}

// Reloads happen on the watcher goroutine while handlers read; both sides
// must go through the guarded accessors without tearing.
func TestCurriculumSwapIsSafeUnderConcurrentReads(t *testing.T) {
	cfg := &Config{
		Curriculum: CurriculumConfig{
			Topics:            []string{"Animals"},
			EvaluationFactors: []string{"Comprehension"},
			DifficultyTiers:   []DifficultyTier{{Name: "Easy", MinLexile: 400, MaxLexile: 800}},
		},
	}

	const iterations = 1000
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			cfg.SetCurriculum(CurriculumConfig{
				Topics:            []string{"Animals", fmt.Sprintf("Topic %d", i)},
				EvaluationFactors: []string{"Comprehension", "Vocabulary"},
				DifficultyTiers:   []DifficultyTier{{Name: "Easy", MinLexile: 400, MaxLexile: 800}},
			})
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				cur := cfg.CurriculumView()
				assert.True(t, cur.HasTopic("Animals"))
				_, _ = cur.Tier("Easy")
				assert.NotEmpty(t, cur.EvaluationFactors)
			}
		}()
	}

	wg.Wait()
	assert.True(t, cfg.CurriculumView().HasTopic("Animals"))
}
