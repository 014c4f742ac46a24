package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hmakino/quizrush/internal/quiz"
	"github.com/hmakino/quizrush/internal/session"
)

// Handler serves the quiz JSON API over a session manager.
type Handler struct {
	sessions *session.Manager
	attempts quiz.AttemptRepository
}

// NewHandler wires the API over the session manager. attempts may be nil,
// which disables the attempt lookup endpoint.
func NewHandler(sessions *session.Manager, attempts quiz.AttemptRepository) *Handler {
	return &Handler{sessions: sessions, attempts: attempts}
}

// StartSession handles GET /questions: draws a question set, starts the
// session countdown and returns the redacted questions with the duration.
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	cfg := session.StartConfig{Source: quiz.DefaultBookSource}
	query := r.URL.Query()

	if raw := query.Get("bookSource"); raw != "" {
		cfg.Source = quiz.BookSource(raw)
	}
	var err error
	if cfg.QuestionCount, err = intParam(query.Get("count"), quiz.DefaultQuestionCount); err != nil {
		writeError(w, http.StatusBadRequest, "count must be an integer")
		return
	}
	if cfg.TimeLimitSec, err = intParam(query.Get("timeLimit"), quiz.DefaultTimeLimitSec); err != nil {
		writeError(w, http.StatusBadRequest, "timeLimit must be an integer")
		return
	}

	sess, err := h.sessions.StartSession(r.Context(), cfg, session.AutoConfirm)
	if err != nil {
		if errors.Is(err, quiz.ErrQuestionBankEmpty) {
			writeError(w, http.StatusNotFound, "no questions available for the requested source")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, startSessionResponse{
		SessionID:    sess.ID.String(),
		Questions:    sess.RedactedQuestions(),
		TimeLimitSec: sess.TimeLimitSec,
		TotalSeconds: sess.TotalSeconds,
		StartedAt:    sess.StartedAt,
		DeadlineAt:   sess.StartedAt.Add(time.Duration(sess.TotalSeconds) * time.Second),
	})
}

// SubmitAnswers handles POST /answers: records the posted selections and
// runs the manual submission for the session.
func (h *Handler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "sessionId must be a valid UUID")
		return
	}

	// Selections rejected by the guard (time already up, question unknown)
	// are dropped; the submit payload is whatever the guard accepted.
	for _, a := range req.Answers {
		if a.Answer == nil || *a.Answer == "" {
			continue
		}
		if _, err := h.sessions.SelectAnswer(sessionID, a.QuestionID, *a.Answer); err != nil {
			writeSessionError(w, err)
			return
		}
	}

	outcome, err := h.sessions.SubmitAnswers(r.Context(), sessionID)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		Results:          outcome.Results,
		Summary:          outcome.Summary,
		CategoryProgress: outcome.Progress,
	})
}

// SelectAnswer handles POST /sessions/{sessionID}/answers: records a single
// choice mid-session.
func (h *Handler) SelectAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathSessionID(w, r)
	if !ok {
		return
	}

	var req selectAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.QuestionID == "" || req.Answer == "" {
		writeError(w, http.StatusBadRequest, "questionId and answer are required")
		return
	}

	accepted, err := h.sessions.SelectAnswer(sessionID, req.QuestionID, req.Answer)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, selectAnswerResponse{Accepted: accepted})
}

// Timer handles GET /sessions/{sessionID}/timer: the authoritative countdown
// snapshot plus the currently visible notification.
func (h *Handler) Timer(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathSessionID(w, r)
	if !ok {
		return
	}

	sess, err := h.sessions.Get(sessionID)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, timerResponse{
		Timer:        sess.Timer.Snapshot(),
		Notification: sess.Timer.Notifier().Current(),
	})
}

// Attempt handles GET /attempts/{sessionID}: the persisted record of a
// submitted session.
func (h *Handler) Attempt(w http.ResponseWriter, r *http.Request) {
	if h.attempts == nil {
		writeError(w, http.StatusNotFound, "attempt storage is not configured")
		return
	}
	sessionID := chi.URLParam(r, "sessionID")

	attempt, err := h.attempts.GetAttempt(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, quiz.ErrAttemptNotFound) {
			writeError(w, http.StatusNotFound, "attempt not found")
			return
		}
		log.Error().Err(err).Str("session_id", sessionID).Msg("attempt lookup failed")
		writeError(w, http.StatusInternalServerError, "attempt lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, attempt)
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func pathSessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "sessionID must be a valid UUID")
		return uuid.Nil, false
	}
	return sessionID, true
}

func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, session.ErrAlreadySubmitted):
		writeError(w, http.StatusConflict, "session already submitted")
	case errors.Is(err, session.ErrSubmissionInFlight):
		writeError(w, http.StatusConflict, "submission already in flight")
	case errors.Is(err, session.ErrSubmissionDeclined):
		writeError(w, http.StatusConflict, "submission declined")
	default:
		log.Error().Err(err).Msg("session operation failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
