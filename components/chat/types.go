package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry is one logged chat exchange: what the visitor asked and what the
// assistant answered.
type Entry struct {
	ID          uuid.UUID `json:"id"`
	SessionID   string    `json:"session_id"`
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
	Topic       string    `json:"topic,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// LogStore persists chat exchanges for the insights views.
type LogStore interface {
	AppendEntry(ctx context.Context, entry Entry) error
	ListEntries(ctx context.Context, since time.Time) ([]Entry, error)
}

// Reply is the assistant's answer to one message.
type Reply struct {
	Response string `json:"response"`
	HTML     string `json:"html,omitempty"`
	Topic    string `json:"topic,omitempty"`
}

// Responder produces an answer when the built-in knowledge base has none.
type Responder interface {
	Respond(ctx context.Context, sessionID, message string) (string, error)
}

// Telemetry mirrors the content component's telemetry contract.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
