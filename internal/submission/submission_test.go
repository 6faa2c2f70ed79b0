package submission

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizsense/internal/analysis"
	"github.com/abhisek/quizsense/internal/misconception"
)

const sampleDoc = `{
  "quizId": "neuro-101",
  "learnerId": "ana",
  "questions": [
    {
      "id": "q1",
      "text": "What carries signals away from the cell body?",
      "category": "Neuroscience",
      "difficulty": "beginner",
      "tags": ["neurons"],
      "explanation": "Axons conduct impulses away from the soma.",
      "options": [
        {"id": "a", "text": "Axon", "isCorrect": true},
        {"id": "b", "text": "Dendrite"}
      ]
    }
  ],
  "answers": [
    {"questionId": "q1", "selectedOptionId": "b", "timeSpent": 12.5},
    {"questionId": "q1", "selectedOptionId": "a", "isCorrect": true, "timeSpent": 3}
  ],
  "history": {"totalQuizzesTaken": 2, "averageAccuracy": 70, "weakAreas": ["Synapses"]}
}`

func TestParse(t *testing.T) {
	sub, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, "neuro-101", sub.QuizID)
	assert.Equal(t, "ana", sub.LearnerID)
	_, err = uuid.Parse(sub.AttemptID)
	assert.NoError(t, err, "generated attempt id must be a UUID")

	require.Len(t, sub.Questions, 1)
	q := sub.Questions[0]
	assert.Equal(t, misconception.Difficulty("beginner"), q.Difficulty)
	assert.Equal(t, []string{"neurons"}, q.Tags)
	assert.True(t, q.Options[0].IsCorrect)
	assert.False(t, q.Options[1].IsCorrect)

	assert.Equal(t, []analysis.Answer{
		{QuestionID: "q1", SelectedOptionID: "b", IsCorrect: false, TimeSpentSeconds: 12.5},
		{QuestionID: "q1", SelectedOptionID: "a", IsCorrect: true, TimeSpentSeconds: 3},
	}, sub.Answers)

	require.NotNil(t, sub.History)
	assert.Equal(t, 2, sub.History.TotalQuizzesTaken)
	assert.Equal(t, []string{"Synapses"}, sub.History.WeakAreas)
}

func TestParseDerivesCorrectness(t *testing.T) {
	doc := strings.Replace(sampleDoc, `"selectedOptionId": "b"`, `"selectedOptionId": "a"`, 1)
	sub, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.True(t, sub.Answers[0].IsCorrect)
}

func TestParseIgnoresClientCorrectness(t *testing.T) {
	doc := strings.Replace(sampleDoc,
		`"selectedOptionId": "b", "timeSpent"`,
		`"selectedOptionId": "b", "isCorrect": true, "timeSpent"`, 1)
	doc = strings.Replace(doc,
		`"selectedOptionId": "a", "isCorrect": true`,
		`"selectedOptionId": "a", "isCorrect": false`, 1)
	require.Contains(t, doc, `"selectedOptionId": "b", "isCorrect": true`)

	sub, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.False(t, sub.Answers[0].IsCorrect)
	assert.True(t, sub.Answers[1].IsCorrect)
}

func TestParseKeepsAttemptID(t *testing.T) {
	doc := strings.Replace(sampleDoc, `"quizId"`, `"attemptId": "att-7", "quizId"`, 1)
	sub, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "att-7", sub.AttemptID)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"not json":          `{"questions":`,
		"missing answers":   `{"questions": []}`,
		"negative time":     `{"questions": [], "answers": [{"questionId": "q1", "timeSpent": -1}]}`,
		"bad difficulty":    `{"questions": [{"id": "q", "category": "c", "difficulty": "expert", "options": []}], "answers": []}`,
		"option without id": `{"questions": [{"id": "q", "category": "c", "options": [{"text": "x"}]}], "answers": []}`,
		"wrong type":        `{"questions": {}, "answers": []}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(doc))
			assert.ErrorIs(t, err, analysis.ErrInvalidInput)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attempt.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o600))

	sub, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, sub.Answers, 2)
	assert.NotNil(t, sub.Question("q1"))
	assert.Nil(t, sub.Question("q9"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
