package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmakino/quizrush/internal/quiz"
)

func guardQuestions() []quiz.Question {
	return []quiz.Question{
		{ID: "q1", Category: "Naming", Text: "one", CorrectOption: "A"},
		{ID: "q2", Category: "Naming", Text: "two", CorrectOption: "B"},
		{ID: "q3", Category: "Readability", Text: "three", CorrectOption: "C"},
	}
}

// acceptingSubmit returns a SubmitFunc that records the payloads it
// receives and succeeds.
func acceptingSubmit(payloads *[][]quiz.AnswerSubmission) SubmitFunc {
	return func(_ context.Context, _ SubmitReason, answers []quiz.AnswerSubmission) (*Outcome, error) {
		*payloads = append(*payloads, answers)
		return &Outcome{}, nil
	}
}

func TestGuard_SelectAnswerRecordsChoice(t *testing.T) {
	guard := NewGuard(guardQuestions(), nil, nil, nil, nil)

	assert.True(t, guard.SelectAnswer("q1", "A"))
	assert.True(t, guard.SelectAnswer("q1", "B")) // reselect replaces

	answers := guard.Answers()
	assert.Equal(t, map[string]string{"q1": "B"}, answers)
	assert.Equal(t, 2, guard.Unanswered())
}

func TestGuard_SelectAnswerRejectsUnknownQuestion(t *testing.T) {
	guard := NewGuard(guardQuestions(), nil, nil, nil, nil)

	assert.False(t, guard.SelectAnswer("nope", "A"))
	assert.Empty(t, guard.Answers())
}

func TestGuard_SelectAnswerRejectedAfterExpiry(t *testing.T) {
	expired := false
	guard := NewGuard(guardQuestions(), func() bool { return expired }, nil, nil, nil)

	require.True(t, guard.SelectAnswer("q1", "A"))

	expired = true
	assert.False(t, guard.SelectAnswer("q2", "B"))
	assert.Equal(t, map[string]string{"q1": "A"}, guard.Answers())
}

func TestGuard_SubmitFreezesPayloadInQuestionOrder(t *testing.T) {
	var payloads [][]quiz.AnswerSubmission
	guard := NewGuard(guardQuestions(), nil, acceptingSubmit(&payloads), nil, nil)

	guard.SelectAnswer("q3", "C")
	guard.SelectAnswer("q1", "A")

	_, err := guard.Submit(context.Background(), ReasonTimeUp)
	require.NoError(t, err)

	require.Len(t, payloads, 1)
	payload := payloads[0]
	require.Len(t, payload, 3)
	assert.Equal(t, "q1", payload[0].QuestionID)
	require.NotNil(t, payload[0].Answer)
	assert.Equal(t, "A", *payload[0].Answer)
	assert.Equal(t, "q2", payload[1].QuestionID)
	assert.Nil(t, payload[1].Answer)
	assert.Equal(t, "q3", payload[2].QuestionID)
	require.NotNil(t, payload[2].Answer)
	assert.Equal(t, "C", *payload[2].Answer)
}

func TestGuard_SecondSubmitIsDropped(t *testing.T) {
	var payloads [][]quiz.AnswerSubmission
	guard := NewGuard(guardQuestions(), nil, acceptingSubmit(&payloads), nil, nil)
	for _, q := range guardQuestions() {
		guard.SelectAnswer(q.ID, "A")
	}

	_, err := guard.Submit(context.Background(), ReasonManual)
	require.NoError(t, err)
	require.True(t, guard.Submitted())

	_, err = guard.Submit(context.Background(), ReasonManual)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	_, err = guard.Submit(context.Background(), ReasonTimeUp)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Len(t, payloads, 1)
}

func TestGuard_ConcurrentSubmitIsDropped(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	guard := NewGuard(guardQuestions(), nil, func(context.Context, SubmitReason, []quiz.AnswerSubmission) (*Outcome, error) {
		close(entered)
		<-release
		return &Outcome{}, nil
	}, nil, nil)
	for _, q := range guardQuestions() {
		guard.SelectAnswer(q.ID, "A")
	}

	done := make(chan error, 1)
	go func() {
		_, err := guard.Submit(context.Background(), ReasonManual)
		done <- err
	}()

	<-entered
	require.True(t, guard.Submitting())
	_, err := guard.Submit(context.Background(), ReasonTimeUp)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	// Answer changes while a submission is in flight are rejected.
	assert.False(t, guard.SelectAnswer("q1", "B"))

	close(release)
	require.NoError(t, <-done)
	assert.True(t, guard.Submitted())
}

func TestGuard_DeclinedConfirmationAborts(t *testing.T) {
	var payloads [][]quiz.AnswerSubmission
	asked := 0
	confirm := ConfirmerFunc(func(unanswered int) bool {
		asked++
		assert.Equal(t, 2, unanswered)
		return false
	})
	guard := NewGuard(guardQuestions(), nil, acceptingSubmit(&payloads), confirm, nil)
	guard.SelectAnswer("q1", "A")

	_, err := guard.Submit(context.Background(), ReasonManual)
	assert.ErrorIs(t, err, ErrSubmissionDeclined)
	assert.Equal(t, 1, asked)
	assert.Empty(t, payloads)
	assert.False(t, guard.Submitted())
	assert.NoError(t, guard.LastError())

	// The session stays fully usable after declining.
	assert.True(t, guard.SelectAnswer("q2", "B"))
}

func TestGuard_TimeUpNeverPrompts(t *testing.T) {
	var payloads [][]quiz.AnswerSubmission
	confirm := ConfirmerFunc(func(int) bool {
		t.Fatal("time-up submit must not prompt for confirmation")
		return false
	})
	guard := NewGuard(guardQuestions(), nil, acceptingSubmit(&payloads), confirm, nil)

	_, err := guard.Submit(context.Background(), ReasonTimeUp)
	require.NoError(t, err)
	assert.Len(t, payloads, 1)
}

func TestGuard_FullyAnsweredManualSubmitSkipsPrompt(t *testing.T) {
	var payloads [][]quiz.AnswerSubmission
	confirm := ConfirmerFunc(func(int) bool {
		t.Fatal("fully answered submit must not prompt")
		return false
	})
	guard := NewGuard(guardQuestions(), nil, acceptingSubmit(&payloads), confirm, nil)
	for _, q := range guardQuestions() {
		guard.SelectAnswer(q.ID, "A")
	}

	_, err := guard.Submit(context.Background(), ReasonManual)
	require.NoError(t, err)
}

func TestGuard_FailedSubmitStaysRetryable(t *testing.T) {
	boom := errors.New("store unavailable")
	failures := 1
	guard := NewGuard(guardQuestions(), nil, func(context.Context, SubmitReason, []quiz.AnswerSubmission) (*Outcome, error) {
		if failures > 0 {
			failures--
			return nil, boom
		}
		return &Outcome{}, nil
	}, nil, nil)
	for _, q := range guardQuestions() {
		guard.SelectAnswer(q.ID, "A")
	}

	_, err := guard.Submit(context.Background(), ReasonManual)
	assert.ErrorIs(t, err, boom)
	assert.False(t, guard.Submitted())
	assert.ErrorIs(t, guard.LastError(), boom)
	assert.Equal(t, 0, guard.Unanswered())

	_, err = guard.Submit(context.Background(), ReasonManual)
	require.NoError(t, err)
	assert.True(t, guard.Submitted())
	assert.NoError(t, guard.LastError())
}

func TestGuard_OnResultsReceivesOutcome(t *testing.T) {
	want := &Outcome{Summary: quiz.Summary{TotalQuestions: 3}}
	var got *Outcome
	guard := NewGuard(guardQuestions(), nil, func(context.Context, SubmitReason, []quiz.AnswerSubmission) (*Outcome, error) {
		return want, nil
	}, nil, func(o *Outcome) { got = o })
	for _, q := range guardQuestions() {
		guard.SelectAnswer(q.ID, "A")
	}

	outcome, err := guard.Submit(context.Background(), ReasonManual)
	require.NoError(t, err)
	assert.Same(t, want, outcome)
	assert.Same(t, want, got)
}
