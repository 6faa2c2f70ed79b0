package feedback

import "github.com/abhisek/quizsense/internal/analysis"

const (
	// StrengthThreshold is the minimum category accuracy (inclusive) that
	// counts as a strength.
	StrengthThreshold = 80.0

	// WeaknessThreshold is the category accuracy below which a category is
	// a weakness.
	WeaknessThreshold = 60.0
)

// Highlights splits category results into strengths and weaknesses, keeping
// the input order. Categories in between appear in neither list.
func Highlights(categories []analysis.CategoryResult) (strengths, weaknesses []string) {
	for _, c := range categories {
		switch {
		case c.Accuracy >= StrengthThreshold:
			strengths = append(strengths, c.Name)
		case c.Accuracy < WeaknessThreshold:
			weaknesses = append(weaknesses, c.Name)
		}
	}
	return strengths, weaknesses
}
