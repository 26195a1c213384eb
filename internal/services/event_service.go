package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pwambugu/glassauth/internal/models"
)

// Broadcaster pushes an event to any connected feed clients.
type Broadcaster interface {
	Publish(action string, payload interface{})
}

// EventServiceProvider defines the interface for the auth activity log.
type EventServiceProvider interface {
	Record(ctx context.Context, eventType, level, message, email string)
	GetRecentEvents(ctx context.Context, limit int) ([]models.Event, error)
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// EventService persists auth events and fans them out to the live feed.
type EventService struct {
	db          *sql.DB
	broadcaster Broadcaster
}

// NewEventService creates a new EventService. broadcaster may be nil.
func NewEventService(db *sql.DB, broadcaster Broadcaster) *EventService {
	return &EventService{db: db, broadcaster: broadcaster}
}

// Record logs a new event to the database and broadcasts it. Failures are
// logged and swallowed: the activity log never fails a request.
func (s *EventService) Record(ctx context.Context, eventType, level, message, email string) {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO auth_events (id, type, level, message, email, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		event.ID, event.Type, event.Level, event.Message, event.Email, event.CreatedAt)
	if err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to record auth event")
		return
	}

	if s.broadcaster != nil {
		s.broadcaster.Publish("auth_event", event)
	}
}

// GetRecentEvents retrieves the most recent events from the database.
func (s *EventService) GetRecentEvents(ctx context.Context, limit int) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, type, level, message, email, created_at FROM auth_events ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		var email sql.NullString
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &email, &event.CreatedAt); err != nil {
			return nil, err
		}
		event.Email = email.String
		events = append(events, event)
	}
	return events, rows.Err()
}

// PruneOlderThan deletes events created before the cutoff and returns the
// number of rows removed.
func (s *EventService) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM auth_events WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
