package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUserMessage(t *testing.T) {
	msg := buildUserMessage(sampleRequest())

	assert.Contains(t, msg, "- Accuracy: 75%\n")
	assert.Contains(t, msg, "- Total Questions: 4\n")
	assert.Contains(t, msg, "- Correct Answers: 3\n")
	assert.Contains(t, msg, "- Average Time per Question: 12.5 seconds\n")
	assert.Contains(t, msg, "- Synapses: 50% (1/2)\n")
	assert.Contains(t, msg, "1. Category: Neurons, Difficulty: beginner, Correct: true, Time Taken: 10.0 seconds\n")
	assert.Contains(t, msg, "2. Category: Synapses, Correct: false, Time Taken: 20.0 seconds\n")
	assert.NotContains(t, msg, "User History")
}

func TestBuildUserMessageHistory(t *testing.T) {
	req := sampleRequest()
	req.History = &History{TotalQuizzesTaken: 7, AverageAccuracy: 68.5, WeakAreas: []string{"Synapses", "Brain Anatomy"}}

	msg := buildUserMessage(req)
	assert.Contains(t, msg, "- Total Quizzes Taken: 7\n")
	assert.Contains(t, msg, "- Average Accuracy: 68.5%\n")
	assert.Contains(t, msg, "- Weak Areas: Synapses, Brain Anatomy\n")

	req.History.WeakAreas = nil
	assert.Contains(t, buildUserMessage(req), "- Weak Areas: None\n")
}
