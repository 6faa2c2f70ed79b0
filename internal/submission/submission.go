// Package submission loads quiz attempts from JSON files.
package submission

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/quizsense/internal/analysis"
	"github.com/abhisek/quizsense/internal/misconception"
	"github.com/abhisek/quizsense/internal/narrative"
)

//go:embed schema.json
var schemaJSON []byte

// Submission is one quiz attempt: the questions shown and the answers given.
type Submission struct {
	AttemptID string
	QuizID    string
	LearnerID string
	Questions []misconception.Question
	Answers   []analysis.Answer

	// History is optional.
	History *narrative.History
}

// Question returns the question with the given ID, or nil.
func (s *Submission) Question(id string) *misconception.Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

type fileAnswer struct {
	QuestionID       string  `json:"questionId"`
	SelectedOptionID string  `json:"selectedOptionId"`
	TimeSpentSeconds float64 `json:"timeSpent"`
}

type file struct {
	AttemptID string                   `json:"attemptId"`
	QuizID    string                   `json:"quizId"`
	LearnerID string                   `json:"learnerId"`
	Questions []misconception.Question `json:"questions"`
	Answers   []fileAnswer             `json:"answers"`
	History   *narrative.History       `json:"history"`
}

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema://submission.json", doc); err != nil {
		return nil, err
	}
	return c.Compile("schema://submission.json")
})

// Parse reads a submission document. The document is checked against the
// submission schema before decoding. Answers are graded against the selected
// option; an isCorrect value in the document is ignored. A missing attemptId
// gets a fresh UUID.
func Parse(r io.Reader) (*Submission, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read submission: %w", err)
	}

	schema, err := compiled()
	if err != nil {
		return nil, fmt.Errorf("compile submission schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode submission: %v: %w", err, analysis.ErrInvalidInput)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("submission does not match schema: %v: %w", err, analysis.ErrInvalidInput)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode submission: %v: %w", err, analysis.ErrInvalidInput)
	}

	sub := &Submission{
		AttemptID: f.AttemptID,
		QuizID:    f.QuizID,
		LearnerID: f.LearnerID,
		Questions: f.Questions,
		History:   f.History,
	}
	if sub.AttemptID == "" {
		sub.AttemptID = uuid.NewString()
	}

	sub.Answers = make([]analysis.Answer, len(f.Answers))
	for i, a := range f.Answers {
		ans := analysis.Answer{
			QuestionID:       a.QuestionID,
			SelectedOptionID: a.SelectedOptionID,
			TimeSpentSeconds: a.TimeSpentSeconds,
		}
		if q := sub.Question(a.QuestionID); q != nil {
			if opt := q.Option(a.SelectedOptionID); opt != nil {
				ans.IsCorrect = opt.IsCorrect
			}
		}
		sub.Answers[i] = ans
	}

	return sub, nil
}

// Load parses the submission file at path; "-" reads stdin.
func Load(path string) (*Submission, error) {
	if path == "-" {
		return Parse(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open submission: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
