package quiz

// DefaultQuestions is the bundled question set used by the CLI, the seed
// tool fallback, and tests. The server normally imports larger sets via the
// trivia bank client.
func DefaultQuestions() []Question {
	return []Question{
		{
			ID:       "rc-001",
			Source:   BookSourceReadableCode,
			Category: "Refactoring",
			Text:     "Which refactoring technique best reduces code duplication?",
			Options: []Option{
				{ID: "A", Text: "Copy and paste the logic wherever it is needed"},
				{ID: "B", Text: "Extract the shared logic into a function or method"},
				{ID: "C", Text: "Prefer functionality over readability regardless of length"},
				{ID: "D", Text: "Ignore errors when they occur"},
			},
			CorrectOption: "B",
			Explanation:   "Extracting shared logic into a function removes duplication and improves maintainability and readability.",
		},
		{
			ID:       "rc-002",
			Source:   BookSourceReadableCode,
			Category: "ErrorHandling",
			Text:     "Which is the most appropriate approach to error handling in application code?",
			Options: []Option{
				{ID: "A", Text: "Always ignore errors"},
				{ID: "B", Text: "Only print the error message to the console"},
				{ID: "C", Text: "Show users the full technical details of every error"},
				{ID: "D", Text: "Catch the error and surface a user-friendly message"},
			},
			CorrectOption: "D",
			Explanation:   "Catch failures where you can handle them and translate them into something the user can act on.",
		},
		{
			ID:       "rc-003",
			Source:   BookSourceReadableCode,
			Category: "ObjectOriented",
			Text:     "Which statement correctly describes the Dependency Inversion principle?",
			Options: []Option{
				{ID: "A", Text: "High-level modules should depend on low-level modules"},
				{ID: "B", Text: "Depend on abstractions (interfaces) rather than concrete implementations"},
				{ID: "C", Text: "Remove every dependency between modules"},
				{ID: "D", Text: "Always depend on the concrete implementation"},
			},
			CorrectOption: "B",
			Explanation:   "Both high- and low-level modules should depend on abstractions, not on concrete implementations.",
		},
		{
			ID:       "rc-004",
			Source:   BookSourceReadableCode,
			Category: "Readability",
			Text:     "Which naming convention is recommended to make a variable's intent clear?",
			Options: []Option{
				{ID: "A", Text: "Use the shortest possible name"},
				{ID: "B", Text: "Use a specific name that conveys the meaning"},
				{ID: "C", Text: "Encode the type in the name (Hungarian notation)"},
				{ID: "D", Text: "Always use lowercase with underscores"},
			},
			CorrectOption: "B",
			Explanation:   "A concrete, meaningful name that shows the variable's purpose at a glance does the most for readability.",
		},
		{
			ID:       "rc-005",
			Source:   BookSourceReadableCode,
			Category: "Naming",
			Text:     "Which names are conventionally used for short-lived loop counters?",
			Options: []Option{
				{ID: "A", Text: "counterValue"},
				{ID: "B", Text: "loopIndexNumber"},
				{ID: "C", Text: "i, j, k"},
				{ID: "D", Text: "temp"},
			},
			CorrectOption: "C",
			Explanation:   "For tight scopes, i, j and k are the accepted convention; wider scopes deserve more descriptive names.",
		},
		{
			ID:       "pp-001",
			Source:   BookSourcePrinciples,
			Category: "Refactoring",
			Text:     "What does the DRY principle say about program knowledge?",
			Options: []Option{
				{ID: "A", Text: "Every piece of knowledge should have a single authoritative representation"},
				{ID: "B", Text: "Code should be rewritten from scratch regularly"},
				{ID: "C", Text: "Documentation should duplicate the code"},
				{ID: "D", Text: "Tests may freely duplicate production logic"},
			},
			CorrectOption: "A",
			Explanation:   "Don't Repeat Yourself: duplicated knowledge drifts apart and breeds inconsistency.",
		},
		{
			ID:       "pp-002",
			Source:   BookSourcePrinciples,
			Category: "ObjectOriented",
			Text:     "What does KISS recommend when choosing between designs?",
			Options: []Option{
				{ID: "A", Text: "Pick the design that exercises the most language features"},
				{ID: "B", Text: "Pick the simplest design that solves the problem"},
				{ID: "C", Text: "Pick the design with the most layers of abstraction"},
				{ID: "D", Text: "Pick whichever design is newest"},
			},
			CorrectOption: "B",
			Explanation:   "Keep It Simple: the simplest thing that works is easiest to understand, test and change.",
		},
		{
			ID:       "pp-003",
			Source:   BookSourcePrinciples,
			Category: "ErrorHandling",
			Text:     "According to the fail-fast principle, when should a program report a defect?",
			Options: []Option{
				{ID: "A", Text: "As close as possible to where it occurs"},
				{ID: "B", Text: "Only at process exit"},
				{ID: "C", Text: "Never; defects should be hidden from operators"},
				{ID: "D", Text: "After retrying silently a few times"},
			},
			CorrectOption: "A",
			Explanation:   "Failing fast keeps the defect near its cause, which makes diagnosis far cheaper.",
		},
	}
}
