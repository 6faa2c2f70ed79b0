package analysis

// UncategorizedLabel names the bucket for answers without a known category.
const UncategorizedLabel = "uncategorized"

// CategoryResult is the per-category accuracy for one attempt.
type CategoryResult struct {
	Name     string  `json:"name"`
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// CategoryBreakdown groups answers by the category of their question.
// categoryOf maps question IDs to categories. Results are ordered by first
// appearance in answers.
func CategoryBreakdown(answers []Answer, categoryOf map[string]string) []CategoryResult {
	index := make(map[string]int)
	var results []CategoryResult

	for _, a := range answers {
		name := categoryOf[a.QuestionID]
		if name == "" {
			name = UncategorizedLabel
		}
		i, ok := index[name]
		if !ok {
			i = len(results)
			index[name] = i
			results = append(results, CategoryResult{Name: name})
		}
		results[i].Total++
		if a.IsCorrect {
			results[i].Correct++
		}
	}

	for i := range results {
		results[i].Accuracy = Accuracy(results[i].Correct, results[i].Total)
	}
	return results
}
