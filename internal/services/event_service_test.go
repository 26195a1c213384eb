package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwambugu/glassauth/internal/models"
)

type feedMessage struct {
	action  string
	payload interface{}
}

type captureBroadcaster struct {
	messages []feedMessage
}

func (c *captureBroadcaster) Publish(action string, payload interface{}) {
	c.messages = append(c.messages, feedMessage{action: action, payload: payload})
}

func TestEventService_RecordAndRecent(t *testing.T) {
	sink := &captureBroadcaster{}
	svc := NewEventService(newTestDB(t), sink)
	ctx := context.Background()

	svc.Record(ctx, models.EventSignup, models.LevelInfo, "New account registered", "jane@example.com")
	svc.Record(ctx, models.EventLoginFailed, models.LevelWarning, "Failed login attempt", "joe@example.com")

	events, err := svc.GetRecentEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.EventLoginFailed, events[0].Type)
	assert.Equal(t, "joe@example.com", events[0].Email)

	// Every recorded event reaches the live feed.
	require.Len(t, sink.messages, 2)
	assert.Equal(t, "auth_event", sink.messages[0].action)
	first, ok := sink.messages[0].payload.(models.Event)
	require.True(t, ok)
	assert.Equal(t, "jane@example.com", first.Email)
}

func TestEventService_Prune(t *testing.T) {
	svc := NewEventService(newTestDB(t), nil)
	ctx := context.Background()

	svc.Record(ctx, models.EventLogin, models.LevelInfo, "User logged in", "jane@example.com")

	// A cutoff in the past removes nothing.
	removed, err := svc.PruneOlderThan(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, removed)

	// A cutoff in the future removes the event just recorded.
	removed, err = svc.PruneOlderThan(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	events, err := svc.GetRecentEvents(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}
