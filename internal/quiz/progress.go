package quiz

import (
	"math"
	"sort"
)

// CategoryProgress is the per-category aggregation behind the results chart
// and the category filter.
type CategoryProgress struct {
	Category      string `json:"category"`
	SuccessRate   int    `json:"successRate"`
	TotalAttempts int    `json:"totalAttempts"`
	CorrectCount  int    `json:"correctCount"`
	Description   string `json:"description"`
}

var categoryDescriptions = map[string]string{
	"Readability":    "Readable code is code other developers understand at a glance: consistent naming, honest comments, sensible structure.",
	"Naming":         "A variable name should state what the variable holds and why it exists.",
	"Refactoring":    "Refactoring restructures existing code without changing behavior: extracting shared logic, removing duplication, applying patterns.",
	"ErrorHandling":  "Error handling manages the failures a program can hit at runtime so they surface predictably instead of corrupting state.",
	"ObjectOriented": "Object-oriented design encapsulates data with the operations on it; inheritance and polymorphism build on that base.",
}

func categoryDescription(category string) string {
	if d, ok := categoryDescriptions[category]; ok {
		return d
	}
	return "No detailed description is available for this category."
}

// AggregateByCategory folds graded results into per-category progress rows,
// sorted by category name so output is stable.
func AggregateByCategory(results []Result) []CategoryProgress {
	if len(results) == 0 {
		return nil
	}

	type group struct {
		total   int
		correct int
	}
	groups := make(map[string]*group)
	for _, r := range results {
		g, ok := groups[r.Category]
		if !ok {
			g = &group{}
			groups[r.Category] = g
		}
		g.total++
		if r.IsCorrect {
			g.correct++
		}
	}

	progress := make([]CategoryProgress, 0, len(groups))
	for category, g := range groups {
		rate := 0
		if g.total > 0 {
			rate = int(math.Round(float64(g.correct) / float64(g.total) * 100))
		}
		progress = append(progress, CategoryProgress{
			Category:      category,
			SuccessRate:   rate,
			TotalAttempts: g.total,
			CorrectCount:  g.correct,
			Description:   categoryDescription(category),
		})
	}
	sort.Slice(progress, func(i, j int) bool { return progress[i].Category < progress[j].Category })
	return progress
}
