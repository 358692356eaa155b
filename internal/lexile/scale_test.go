package lexile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialForAge_InsideDomain(t *testing.T) {
	for age := 0; age <= 25; age++ {
		level := InitialForAge(age)
		assert.GreaterOrEqual(t, level, MinLevel, "age %d", age)
		assert.LessOrEqual(t, level, MaxLevel, "age %d", age)
	}
}

func TestInitialForAge_ClampsToTableEnds(t *testing.T) {
	assert.Equal(t, InitialForAge(5), InitialForAge(3))
	assert.Equal(t, InitialForAge(18), InitialForAge(40))
}

func TestClassify_PartitionsDomain(t *testing.T) {
	for level := MinLevel; level <= MaxLevel; level++ {
		band := Classify(level)
		switch {
		case level < 500:
			assert.Equal(t, BandBelowBasic, band, "level %d", level)
		case level < 1000:
			assert.Equal(t, BandBasic, band, "level %d", level)
		case level < 1500:
			assert.Equal(t, BandProficient, band, "level %d", level)
		default:
			assert.Equal(t, BandAdvanced, band, "level %d", level)
		}
	}
}

func TestClassify_TotalOutsideDomain(t *testing.T) {
	assert.Equal(t, BandBelowBasic, Classify(-100))
	assert.Equal(t, BandAdvanced, Classify(99999))
}

func TestAdjust_NeutralMidpointIsIdentity(t *testing.T) {
	for _, level := range []int{0, 500, 1000, 2000} {
		assert.Equal(t, level, Adjust(level, NeutralPercentage), "level %d", level)
	}
}

func TestAdjust_MonotonicInPercentage(t *testing.T) {
	for _, level := range []int{0, 250, 700, 1300, 2000} {
		prev := Adjust(level, 0)
		for pct := 1.0; pct <= 100; pct++ {
			next := Adjust(level, pct)
			assert.GreaterOrEqual(t, next, prev, "level %d pct %.0f", level, pct)
			prev = next
		}
	}
}

func TestAdjust_StaysInDomain(t *testing.T) {
	assert.Equal(t, MaxLevel, Adjust(MaxLevel, 100))
	assert.Equal(t, MinLevel, Adjust(MinLevel, 0))
	assert.Equal(t, MaxLevel, Adjust(MaxLevel-10, 100))
	assert.Equal(t, MinLevel, Adjust(MinLevel+10, 0))

	// out-of-range percentages clamp rather than overshoot
	assert.Equal(t, Adjust(1000, 100), Adjust(1000, 250))
	assert.Equal(t, Adjust(1000, 0), Adjust(1000, -50))
}

func TestAdjust_DirectionAroundNeutral(t *testing.T) {
	assert.Greater(t, Adjust(1000, 90), 1000)
	assert.Less(t, Adjust(1000, 40), 1000)
}

func TestScaleDisplay_MarksCurrentBand(t *testing.T) {
	out := ScaleDisplay(1050)
	assert.Contains(t, out, ">>Proficient<<")
	assert.Contains(t, out, "1050L")
	assert.NotContains(t, out, ">>Basic<<")
}
