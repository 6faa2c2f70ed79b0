package analysis

import "fmt"

const (
	// consistentVarianceLimit is the exclusive upper variance for the
	// Consistent trend and label.
	consistentVarianceLimit = 0.25

	veryConsistentVarianceLimit     = 0.1
	somewhatConsistentVarianceLimit = 0.4
)

// AnalyzePattern computes streaks, trend and consistency from correctness
// values in submission order. The sequence must not be empty.
func AnalyzePattern(correctness []bool) (*PatternResult, error) {
	if len(correctness) == 0 {
		return nil, fmt.Errorf("analyze pattern: empty sequence: %w", ErrInvalidInput)
	}

	correctStreak, incorrectStreak := longestStreaks(correctness)
	correct := countTrue(correctness)

	res := &PatternResult{
		Total:                  len(correctness),
		Correct:                correct,
		AccuracyPercent:        Accuracy(correct, len(correctness)),
		LongestCorrectStreak:   correctStreak,
		LongestIncorrectStreak: incorrectStreak,
	}

	// A single answer has nothing to compare against: both halves would be
	// the same element, so it is reported as Consistent with zero variance.
	if len(correctness) == 1 {
		res.Variance = 0
		res.Trend = TrendConsistent
		res.Consistency = consistencyLabel(0)
		return res, nil
	}

	res.Variance = variance(correctness)
	res.Trend = trend(correctness, res.Variance)
	res.Consistency = consistencyLabel(res.Variance)
	return res, nil
}

// CorrectnessSequence extracts the correctness flags of answers in order.
func CorrectnessSequence(answers []Answer) []bool {
	seq := make([]bool, len(answers))
	for i, a := range answers {
		seq[i] = a.IsCorrect
	}
	return seq
}

func longestStreaks(seq []bool) (maxCorrect, maxIncorrect int) {
	var curCorrect, curIncorrect int
	for _, ok := range seq {
		if ok {
			curCorrect++
			curIncorrect = 0
			maxCorrect = max(maxCorrect, curCorrect)
		} else {
			curIncorrect++
			curCorrect = 0
			maxIncorrect = max(maxIncorrect, curIncorrect)
		}
	}
	return maxCorrect, maxIncorrect
}

// trend expects at least two values so both halves are non-empty.
// Improving takes priority over the variance check.
func trend(seq []bool, v float64) Trend {
	mid := len(seq) / 2
	if mean(seq[mid:]) > mean(seq[:mid]) {
		return TrendImproving
	}
	if v < consistentVarianceLimit {
		return TrendConsistent
	}
	return TrendVariable
}

func consistencyLabel(v float64) Consistency {
	switch {
	case v < veryConsistentVarianceLimit:
		return ConsistencyVeryConsistent
	case v < consistentVarianceLimit:
		return ConsistencyConsistent
	case v < somewhatConsistentVarianceLimit:
		return ConsistencySomewhatConsistent
	default:
		return ConsistencyInconsistent
	}
}

// variance is the population variance of seq mapped to 0/1.
func variance(seq []bool) float64 {
	m := mean(seq)
	var sum float64
	for _, ok := range seq {
		d := b2f(ok) - m
		sum += d * d
	}
	return sum / float64(len(seq))
}

func mean(seq []bool) float64 {
	if len(seq) == 0 {
		return 0
	}
	return float64(countTrue(seq)) / float64(len(seq))
}

func countTrue(seq []bool) int {
	n := 0
	for _, ok := range seq {
		if ok {
			n++
		}
	}
	return n
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
