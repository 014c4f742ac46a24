package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/hmakino/quizrush/internal/events"
	"github.com/hmakino/quizrush/internal/quiz"
	"github.com/hmakino/quizrush/internal/session"
)

const maxAttempts = 3

// Options configures a terminal quiz run. The zero value uses the defaults
// the selection screen would offer.
type Options struct {
	Source        quiz.BookSource
	QuestionCount int
	TimeLimitSec  int
}

// Run plays one timed quiz in the terminal: it starts a session over the
// bundled question bank, walks the questions while the countdown runs, and
// prints the graded results. Timer warnings surface between prompts; when
// time runs out mid-question the session auto-submits whatever was answered.
func Run(ctx context.Context, in io.Reader, out io.Writer, opts Options) error {
	// Terminal runs do not want structured log noise between prompts.
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)

	store := quiz.NewSeededMemoryStore()
	printer := &eventPrinter{out: out}
	manager := session.NewManager(clockwork.NewRealClock(), store, store, printer, nil)
	defer manager.Close()

	reader := bufio.NewReader(in)
	confirm := session.ConfirmerFunc(func(unanswered int) bool {
		fmt.Fprintf(out, "\n%d questions are unanswered. Submit anyway? [y/N] ", unanswered)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	})

	sess, err := manager.StartSession(ctx, session.StartConfig{
		Source:        opts.Source,
		QuestionCount: opts.QuestionCount,
		TimeLimitSec:  opts.TimeLimitSec,
	}, confirm)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	snap := sess.Timer.Snapshot()
	fmt.Fprintf(out, "\n%d questions, %s on the clock. Good luck!\n",
		len(sess.Questions), snap.FormattedRemaining)

	for idx, question := range sess.Questions {
		if sess.Guard.Submitted() {
			break
		}
		printQuestion(out, idx+1, question)

		optionID, ok := readChoice(reader, out, question.Options)
		if !ok {
			fmt.Fprintln(out, "Skipping.")
			continue
		}
		if !sess.Guard.SelectAnswer(question.ID, optionID) {
			fmt.Fprintln(out, "\nTime is up; answers are locked.")
			break
		}
	}

	if !sess.Guard.Submitted() {
		outcome, err := sess.Guard.Submit(ctx, session.ReasonManual)
		switch {
		case errors.Is(err, session.ErrSubmissionDeclined):
			fmt.Fprintln(out, "Submission canceled.")
			return nil
		case errors.Is(err, session.ErrAlreadySubmitted), errors.Is(err, session.ErrSubmissionInFlight):
			// The countdown beat us to it; results were already printed.
		case err != nil:
			return fmt.Errorf("submitting answers: %w", err)
		default:
			printOutcome(out, outcome)
			return nil
		}
	}

	return nil
}

func printQuestion(out io.Writer, number int, question quiz.Question) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Q%d [%s]: %s\n\n", number, question.Category, question.Text)
	for _, option := range question.Options {
		fmt.Fprintf(out, "%s. %s\n", option.ID, option.Text)
	}
	fmt.Fprintln(out)
}

// readChoice prompts until a valid option letter arrives or the attempts run
// out. Returns the matching option ID.
func readChoice(reader *bufio.Reader, out io.Writer, options []quiz.Option) (string, bool) {
	if len(options) == 0 {
		return "", false
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		fmt.Fprint(out, "> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", false
		}

		picked := strings.ToUpper(strings.TrimSpace(line))
		for _, option := range options {
			if strings.EqualFold(option.ID, picked) {
				return option.ID, true
			}
		}

		if attempt < maxAttempts {
			fmt.Fprintf(out, "Invalid input. Please enter a letter A-%s.\n", options[len(options)-1].ID)
		}
	}
	return "", false
}

func printOutcome(out io.Writer, outcome *session.Outcome) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Score: %d/%d (%d%%)\n",
		outcome.Summary.CorrectQuestions, outcome.Summary.TotalQuestions, outcome.Summary.CorrectRate)

	for _, result := range outcome.Results {
		mark := "✗"
		if result.IsCorrect {
			mark = "✓"
		}
		picked := "-"
		if result.UserAnswer != nil {
			picked = *result.UserAnswer
		}
		fmt.Fprintf(out, "%s %s  (you: %s, correct: %s)\n", mark, result.Question, picked, result.CorrectAnswer)
		fmt.Fprintf(out, "   %s\n", result.Explanation)
	}

	if len(outcome.Progress) > 0 {
		fmt.Fprintln(out, "\nBy category:")
		for _, p := range outcome.Progress {
			fmt.Fprintf(out, "  %-16s %d/%d (%d%%)\n", p.Category, p.CorrectCount, p.TotalAttempts, p.SuccessRate)
		}
	}
}

// eventPrinter is the terminal's event feed: timer warnings and the final
// submission land on the console instead of a message bus.
type eventPrinter struct {
	mu  sync.Mutex
	out io.Writer
}

func (p *eventPrinter) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch event.Type {
	case events.TypeWarningRaised:
		var payload events.WarningRaisedPayload
		if err := unmarshalPayload(event, &payload); err != nil {
			return err
		}
		fmt.Fprintf(p.out, "\n[timer] %s\n", payload.Message)
	case events.TypeTimeExpired:
		fmt.Fprintf(p.out, "\n[timer] Time's up! Submitting your answers.\n")
	}
	return nil
}

func unmarshalPayload(event events.Event, target any) error {
	if err := json.Unmarshal(event.Payload, target); err != nil {
		return fmt.Errorf("decoding %s payload: %w", event.Type, err)
	}
	return nil
}
