package models

import "time"

// Event levels.
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
)

// Auth event types recorded by the service.
const (
	EventSignup      = "signup"
	EventLogin       = "login"
	EventLoginFailed = "login_failed"
	EventVerified    = "email_verified"
	EventMailFailure = "mail_failure"
)

// Event is a single entry in the auth activity log.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
