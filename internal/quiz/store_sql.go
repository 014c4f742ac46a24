package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hmakino/quizrush/internal/sqlutil"
)

func unixTime(sec int64) time.Time { return time.Unix(sec, 0).UTC() }

// SQLStore persists questions and attempts in a relational database. It
// works against both the sqlite and postgres schemas set up by the db
// package.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore wraps an opened database handle.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) PutQuestions(ctx context.Context, questions []Question) error {
	return sqlutil.Run(ctx, s.db, func(tx *sql.Tx) error {
		for _, q := range questions {
			optionsJSON, err := json.Marshal(q.Options)
			if err != nil {
				return fmt.Errorf("marshal options for %s: %w", q.ID, err)
			}
			// Portable upsert: delete-then-insert keeps one statement shape
			// for both drivers.
			if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, q.ID); err != nil {
				return fmt.Errorf("replace question %s: %w", q.ID, err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO questions (id, source, category, text, options_json, correct_option, explanation)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				q.ID, string(q.Source), q.Category, q.Text, string(optionsJSON), q.CorrectOption, q.Explanation,
			)
			if err != nil {
				return fmt.Errorf("insert question %s: %w", q.ID, err)
			}
		}
		return nil
	})
}

func (s *SQLStore) QuestionsForSource(ctx context.Context, source BookSource, count int) ([]Question, error) {
	query := `
		SELECT id, source, category, text, options_json, correct_option, explanation
		FROM questions`
	args := []any{}
	if source != BookSourceBoth {
		query += ` WHERE source = $1`
		args = append(args, string(source))
	}
	// Random order so repeat sessions vary; both drivers accept RANDOM().
	query += ` ORDER BY RANDOM()`
	if count > 0 {
		query += fmt.Sprintf(` LIMIT %d`, count)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		var q Question
		var src, optionsJSON string
		if err := rows.Scan(&q.ID, &src, &q.Category, &q.Text, &optionsJSON, &q.CorrectOption, &q.Explanation); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(optionsJSON), &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options for %s: %w", q.ID, err)
		}
		q.Source = BookSource(src)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrQuestionBankEmpty
	}
	return questions, nil
}

func (s *SQLStore) SaveAttempt(ctx context.Context, attempt Attempt) error {
	answersJSON, err := json.Marshal(attempt.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	return sqlutil.Run(ctx, s.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM attempts WHERE session_id = $1`, attempt.SessionID).Scan(&exists)
		switch {
		case err == nil:
			return ErrAttemptExists
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("check attempt: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO attempts (session_id, source, answers_json, correct, total, submitted_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			attempt.SessionID, string(attempt.Source), string(answersJSON),
			attempt.Correct, attempt.Total, attempt.SubmittedAt.Unix(),
		)
		if err != nil {
			return fmt.Errorf("insert attempt: %w", err)
		}
		return nil
	})
}

func (s *SQLStore) GetAttempt(ctx context.Context, sessionID string) (Attempt, error) {
	var (
		attempt     Attempt
		src         string
		answersJSON string
		submittedAt int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT session_id, source, answers_json, correct, total, submitted_at
		FROM attempts WHERE session_id = $1`, sessionID,
	).Scan(&attempt.SessionID, &src, &answersJSON, &attempt.Correct, &attempt.Total, &submittedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Attempt{}, ErrAttemptNotFound
	}
	if err != nil {
		return Attempt{}, fmt.Errorf("query attempt: %w", err)
	}
	if err := json.Unmarshal([]byte(answersJSON), &attempt.Answers); err != nil {
		return Attempt{}, fmt.Errorf("unmarshal answers: %w", err)
	}
	attempt.Source = BookSource(src)
	attempt.SubmittedAt = unixTime(submittedAt)
	return attempt, nil
}
