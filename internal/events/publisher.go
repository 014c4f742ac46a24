package events

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Publisher delivers session events to an external feed.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// LogPublisher writes events to the structured log. It is the default when
// no message bus is configured.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher { return &LogPublisher{} }

func (p *LogPublisher) Publish(_ context.Context, event Event) error {
	log.Info().
		Str("event_id", event.ID.String()).
		Str("event_type", event.Type).
		Str("session_id", event.SessionID.String()).
		Msg("publishing event")
	return nil
}

// Fanout forwards each event to every wrapped publisher. A failing publisher
// is logged and skipped; the event still reaches the others.
type Fanout struct {
	publishers []Publisher
}

func NewFanout(publishers ...Publisher) *Fanout {
	return &Fanout{publishers: publishers}
}

func (f *Fanout) Publish(ctx context.Context, event Event) error {
	for _, p := range f.publishers {
		if err := p.Publish(ctx, event); err != nil {
			log.Error().
				Err(err).
				Str("event_type", event.Type).
				Str("session_id", event.SessionID.String()).
				Msg("event publisher failed")
		}
	}
	return nil
}
