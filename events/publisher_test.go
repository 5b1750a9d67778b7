package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "tournament.match.reported", Subject("tournament", MatchReported))
	assert.Equal(t, "players.cleared", Subject("", PlayersCleared))
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), Event{Type: PlayerRegistered}))
}

func TestNATSPublisherHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewNATSPublisher(nil, "tournament")
	assert.ErrorIs(t, p.Publish(ctx, Event{Type: MatchReported}), context.Canceled)
}
