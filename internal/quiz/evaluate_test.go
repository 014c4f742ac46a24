package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalQuestions() []Question {
	return []Question{
		{ID: "q1", Category: "Naming", Text: "one", CorrectOption: "A", Explanation: "a is right"},
		{ID: "q2", Category: "Refactoring", Text: "two", CorrectOption: "B"},
		{ID: "q3", Text: "three", CorrectOption: "C", Explanation: "c is right"},
	}
}

func TestEvaluate_GradesEveryQuestion(t *testing.T) {
	results := Evaluate(evalQuestions(), map[string]string{
		"q1": "A",
		"q2": "D",
	})
	require.Len(t, results, 3)

	assert.True(t, results[0].IsCorrect)
	require.NotNil(t, results[0].UserAnswer)
	assert.Equal(t, "A", *results[0].UserAnswer)
	assert.Equal(t, "a is right", results[0].Explanation)

	assert.False(t, results[1].IsCorrect)
	require.NotNil(t, results[1].UserAnswer)
	assert.Equal(t, "D", *results[1].UserAnswer)

	// Unanswered: graded incorrect with a nil answer.
	assert.False(t, results[2].IsCorrect)
	assert.Nil(t, results[2].UserAnswer)
}

func TestEvaluate_FillsDefaults(t *testing.T) {
	results := Evaluate(evalQuestions(), nil)
	require.Len(t, results, 3)

	assert.Equal(t, defaultExplanation, results[1].Explanation)
	assert.Equal(t, uncategorized, results[2].Category)
}

func TestEvaluate_IgnoresUnknownQuestionIDs(t *testing.T) {
	results := Evaluate(evalQuestions(), map[string]string{"ghost": "A"})
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Nil(t, r.UserAnswer)
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		correct []bool
		want    Summary
	}{
		{
			name:    "all correct",
			correct: []bool{true, true},
			want:    Summary{TotalQuestions: 2, CorrectQuestions: 2, CorrectRate: 100},
		},
		{
			name:    "rate rounds to nearest",
			correct: []bool{true, false, false},
			want:    Summary{TotalQuestions: 3, CorrectQuestions: 1, CorrectRate: 33},
		},
		{
			name:    "two of three rounds up",
			correct: []bool{true, true, false},
			want:    Summary{TotalQuestions: 3, CorrectQuestions: 2, CorrectRate: 67},
		},
		{
			name: "empty",
			want: Summary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make([]Result, len(tt.correct))
			for i, c := range tt.correct {
				results[i] = Result{IsCorrect: c}
			}
			assert.Equal(t, tt.want, Summarize(results))
		})
	}
}
