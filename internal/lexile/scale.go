package lexile

import (
	"fmt"
	"math"
	"strings"
)

// The Lexile scale used throughout the system. Levels are clamped to
// [MinLevel, MaxLevel] and displayed in DisplayStep increments.
const (
	MinLevel    = 0
	MaxLevel    = 2000
	DisplayStep = 50

	// NeutralPercentage is the score at which a test leaves the level
	// unchanged. Below it the level drops, above it the level rises.
	NeutralPercentage = 70.0

	// PointsPerPercent is how many Lexile points one percentage point away
	// from neutral is worth.
	PointsPerPercent = 2.0
)

// Band is a human-readable tier of the Lexile scale.
type Band string

const (
	BandBelowBasic Band = "Below Basic"
	BandBasic      Band = "Basic"
	BandProficient Band = "Proficient"
	BandAdvanced   Band = "Advanced"
)

// Band lower bounds. Together with MaxLevel these partition the scale with no
// gaps or overlaps: [0,500) [500,1000) [1000,1500) [1500,2000].
const (
	basicFloor      = 500
	proficientFloor = 1000
	advancedFloor   = 1500
)

// initialByAge maps a student's age to a starting Lexile estimate, used at
// registration when no level is supplied. Ages outside the table clamp to its
// ends.
var initialByAge = map[int]int{
	5:  0,
	6:  100,
	7:  250,
	8:  450,
	9:  600,
	10: 700,
	11: 800,
	12: 900,
	13: 1000,
	14: 1050,
	15: 1100,
	16: 1150,
	17: 1200,
	18: 1250,
}

const (
	minTableAge = 5
	maxTableAge = 18
)

// InitialForAge returns the starting Lexile estimate for a student of the
// given age.
func InitialForAge(age int) int {
	if age < minTableAge {
		age = minTableAge
	}
	if age > maxTableAge {
		age = maxTableAge
	}
	return initialByAge[age]
}

// Clamp restricts a level to the legal Lexile domain.
func Clamp(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// Classify maps a level to its band. Total over the clamped domain.
func Classify(level int) Band {
	level = Clamp(level)
	switch {
	case level < basicFloor:
		return BandBelowBasic
	case level < proficientFloor:
		return BandBasic
	case level < advancedFloor:
		return BandProficient
	default:
		return BandAdvanced
	}
}

// Adjust returns the updated level after a test scored percentageCorrect.
// Monotonic in percentageCorrect, identity at NeutralPercentage, and always
// inside [MinLevel, MaxLevel].
func Adjust(level int, percentageCorrect float64) int {
	if percentageCorrect < 0 {
		percentageCorrect = 0
	}
	if percentageCorrect > 100 {
		percentageCorrect = 100
	}

	delta := int(math.Round((percentageCorrect - NeutralPercentage) * PointsPerPercent))
	return Clamp(level + delta)
}

// ScaleDisplay renders the band layout of the scale with the student's band
// marked, e.g. "0 [Below Basic] 500 [Basic] 1000 >>Proficient<< 1500 [Advanced] 2000 - 1050L".
func ScaleDisplay(level int) string {
	level = Clamp(level)
	current := Classify(level)

	bands := []struct {
		band  Band
		floor int
	}{
		{BandBelowBasic, MinLevel},
		{BandBasic, basicFloor},
		{BandProficient, proficientFloor},
		{BandAdvanced, advancedFloor},
	}

	var b strings.Builder
	for _, entry := range bands {
		fmt.Fprintf(&b, "%d ", entry.floor)
		if entry.band == current {
			fmt.Fprintf(&b, ">>%s<< ", entry.band)
		} else {
			fmt.Fprintf(&b, "[%s] ", entry.band)
		}
	}
	fmt.Fprintf(&b, "%d - %dL", MaxLevel, level)
	return b.String()
}
