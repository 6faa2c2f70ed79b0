package misconception

import "strings"

// Difficulty is a practice tier.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// tiers is ordered from easiest to hardest.
var tiers = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// ParseDifficulty normalizes s to a known tier. Unknown values return "" and false.
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range tiers {
		if t == d {
			return t, true
		}
	}
	return "", false
}

// Next returns the tier above d, saturating at advanced. An unknown tier
// moves to beginner.
func (d Difficulty) Next() Difficulty {
	for i, t := range tiers {
		if t == d {
			if i == len(tiers)-1 {
				return t
			}
			return tiers[i+1]
		}
	}
	return tiers[0]
}
