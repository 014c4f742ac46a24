package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/hmakino/quizrush/internal/events"
	"github.com/hmakino/quizrush/internal/gateway"
	"github.com/hmakino/quizrush/internal/httpapi"
	"github.com/hmakino/quizrush/internal/quiz"
	"github.com/hmakino/quizrush/internal/session"
)

// Services holds the wired application graph.
type Services struct {
	Store       *quiz.SQLStore
	Sessions    *session.Manager
	Connections *gateway.ConnectionManager
	API         *httpapi.Handler
	WS          *gateway.Handler

	natsPublisher *events.JetStreamPublisher
}

// setupServices wires storage, events, the websocket gateway and the session
// manager together.
func setupServices(ctx context.Context, database *sql.DB, config *Config) (*Services, error) {
	store := quiz.NewSQLStore(database)

	if config.Quiz.SeedDefaultQuestions {
		if err := seedQuestionsIfEmpty(ctx, store); err != nil {
			return nil, fmt.Errorf("seeding default questions: %w", err)
		}
	}

	publishers := []events.Publisher{events.NewLogPublisher()}
	var natsPublisher *events.JetStreamPublisher
	if config.NATS.Enabled {
		natsCfg := events.DefaultJetStreamConfig()
		if config.NATS.URL != "" {
			natsCfg.URL = config.NATS.URL
		}
		if config.NATS.StreamName != "" {
			natsCfg.StreamName = config.NATS.StreamName
		}
		if config.NATS.SubjectPrefix != "" {
			natsCfg.SubjectPrefix = config.NATS.SubjectPrefix
		}
		if config.NATS.MaxAge > 0 {
			natsCfg.MaxAge = config.NATS.MaxAge
		}

		var err error
		natsPublisher, err = events.NewJetStreamPublisher(natsCfg)
		if err != nil {
			return nil, fmt.Errorf("connecting to NATS: %w", err)
		}
		publishers = append(publishers, natsPublisher)
	}

	connections := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	sessions := session.NewManager(
		clockwork.NewRealClock(),
		store,
		store,
		events.NewFanout(publishers...),
		connections,
	)

	return &Services{
		Store:         store,
		Sessions:      sessions,
		Connections:   connections,
		API:           httpapi.NewHandler(sessions, store),
		WS:            gateway.NewHandler(connections, sessions),
		natsPublisher: natsPublisher,
	}, nil
}

// seedQuestionsIfEmpty loads the bundled question set when the bank has no
// questions for the default source yet.
func seedQuestionsIfEmpty(ctx context.Context, store *quiz.SQLStore) error {
	_, err := store.QuestionsForSource(ctx, quiz.BookSourceBoth, 1)
	if err == nil {
		return nil
	}
	if !errors.Is(err, quiz.ErrQuestionBankEmpty) {
		return err
	}

	defaults := quiz.DefaultQuestions()
	if err := store.PutQuestions(ctx, defaults); err != nil {
		return err
	}
	log.Info().Int("count", len(defaults)).Msg("seeded default question set")
	return nil
}

// Close tears the service graph down in dependency order.
func (s *Services) Close() {
	s.Sessions.Close()
	if s.natsPublisher != nil {
		s.natsPublisher.Close()
	}
}
