package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Options configures the chat service.
type Options struct {
	Logs      LogStore
	Responder Responder
	Telemetry Telemetry
	Clock     func() time.Time
}

// Service answers visitor messages from the built-in knowledge base, with an
// optional AI responder behind it, and logs every exchange.
type Service struct {
	opts Options
}

// NewService applies defaults and builds the service.
func NewService(opts Options) *Service {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{opts: opts}
}

// Reply answers one message. Resolution order: keyword match against the
// knowledge base, then the configured responder, then canned small talk.
// Logging is best-effort; a log failure never loses the answer.
func (s *Service) Reply(ctx context.Context, sessionID, message string) (Reply, error) {
	if strings.TrimSpace(message) == "" {
		return Reply{}, errors.New("chat: message is required")
	}

	answer, topic, ok := MatchTopic(message)
	if !ok {
		if s.opts.Responder != nil {
			if generated, err := s.opts.Responder.Respond(ctx, sessionID, message); err == nil && generated != "" {
				answer, topic = generated, "assistant"
				ok = true
			}
		}
	}
	if !ok {
		answer = FallbackReply(message)
	}

	htmlOut, err := RenderMarkdown(answer)
	if err != nil {
		htmlOut = ""
	}

	if s.opts.Logs != nil {
		entry := Entry{
			ID:          uuid.New(),
			SessionID:   sessionID,
			UserMessage: message,
			BotResponse: answer,
			Topic:       topic,
			CreatedAt:   s.opts.Clock().UTC(),
		}
		if err := s.opts.Logs.AppendEntry(ctx, entry); err != nil {
			s.opts.Telemetry.Record(ctx, "chat.log.error", map[string]any{"error": err.Error()})
		}
	}

	s.opts.Telemetry.Record(ctx, "chat.message", map[string]any{
		"session_id": sessionID,
		"topic":      topic,
	})
	return Reply{Response: answer, HTML: htmlOut, Topic: topic}, nil
}
