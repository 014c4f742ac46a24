package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateByCategory(t *testing.T) {
	results := []Result{
		{Category: "Naming", IsCorrect: true},
		{Category: "Naming", IsCorrect: false},
		{Category: "Refactoring", IsCorrect: true},
		{Category: "Refactoring", IsCorrect: true},
		{Category: "Refactoring", IsCorrect: false},
	}

	progress := AggregateByCategory(results)
	require.Len(t, progress, 2)

	// Sorted by category name.
	assert.Equal(t, "Naming", progress[0].Category)
	assert.Equal(t, 2, progress[0].TotalAttempts)
	assert.Equal(t, 1, progress[0].CorrectCount)
	assert.Equal(t, 50, progress[0].SuccessRate)
	assert.NotEmpty(t, progress[0].Description)

	assert.Equal(t, "Refactoring", progress[1].Category)
	assert.Equal(t, 3, progress[1].TotalAttempts)
	assert.Equal(t, 2, progress[1].CorrectCount)
	assert.Equal(t, 67, progress[1].SuccessRate)
}

func TestAggregateByCategory_UnknownCategoryGetsDefaultDescription(t *testing.T) {
	progress := AggregateByCategory([]Result{{Category: "Astronomy", IsCorrect: true}})
	require.Len(t, progress, 1)
	assert.Equal(t, "No detailed description is available for this category.", progress[0].Description)
}

func TestAggregateByCategory_Empty(t *testing.T) {
	assert.Nil(t, AggregateByCategory(nil))
}
