package analysis

// levelThreshold is the minimum accuracy (inclusive) for a level.
type levelThreshold struct {
	min   float64
	level PerformanceLevel
}

// levelThresholds are checked in order; the first satisfied threshold wins.
var levelThresholds = []levelThreshold{
	{90, LevelExcellent},
	{80, LevelVeryGood},
	{70, LevelGood},
	{60, LevelFair},
}

// Classify maps an accuracy percentage (0–100) to a performance level.
// Boundaries belong to the upper class: Classify(90) is excellent.
func Classify(accuracyPercent float64) PerformanceLevel {
	for _, t := range levelThresholds {
		if accuracyPercent >= t.min {
			return t.level
		}
	}
	return LevelNeedsImprovement
}
