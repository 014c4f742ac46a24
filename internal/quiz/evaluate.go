package quiz

import "math"

// defaultExplanation stands in when a question carries no explanation text.
const defaultExplanation = "No explanation is available for this question."

// uncategorized buckets questions without a category for the results view.
const uncategorized = "Uncategorized"

// Evaluate grades a set of answers against the session's questions. Every
// question yields a Result, answered or not; answers for unknown question IDs
// are ignored.
func Evaluate(questions []Question, answers map[string]string) []Result {
	results := make([]Result, 0, len(questions))
	for _, q := range questions {
		var userAnswer *string
		if picked, ok := answers[q.ID]; ok && picked != "" {
			answer := picked
			userAnswer = &answer
		}

		category := q.Category
		if category == "" {
			category = uncategorized
		}
		explanation := q.Explanation
		if explanation == "" {
			explanation = defaultExplanation
		}

		results = append(results, Result{
			QuestionID:    q.ID,
			Category:      category,
			Question:      q.Text,
			Options:       q.Options,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectOption,
			IsCorrect:     userAnswer != nil && *userAnswer == q.CorrectOption,
			Explanation:   explanation,
		})
	}
	return results
}

// Summarize rolls results up into the dashboard header numbers.
func Summarize(results []Result) Summary {
	correct := 0
	for _, r := range results {
		if r.IsCorrect {
			correct++
		}
	}
	rate := 0
	if len(results) > 0 {
		rate = int(math.Round(float64(correct) / float64(len(results)) * 100))
	}
	return Summary{
		TotalQuestions:   len(results),
		CorrectQuestions: correct,
		CorrectRate:      rate,
	}
}
