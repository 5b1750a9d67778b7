package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	PlayerRegistered = "player.registered"
	MatchReported    = "match.reported"
	PlayersCleared   = "players.cleared"
	MatchesCleared   = "matches.cleared"
)

// Event is the envelope published for every tournament write.
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

type natsPublisher struct {
	conn          *nats.Conn
	subjectPrefix string
}

func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url, nats.Name("swiss-tournament"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return nc, nil
}

// NewNATSPublisher publishes each event on "<prefix>.<event type>".
func NewNATSPublisher(conn *nats.Conn, subjectPrefix string) Publisher {
	return &natsPublisher{conn: conn, subjectPrefix: subjectPrefix}
}

func Subject(prefix, eventType string) string {
	if prefix == "" {
		return eventType
	}
	return prefix + "." + eventType
}

func (p *natsPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}
	subject := Subject(p.subjectPrefix, event.Type)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}
