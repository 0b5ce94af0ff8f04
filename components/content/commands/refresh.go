package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	content "github.com/JasirTK/shopifysmartpromo/components/content"
)

// RefreshContentInput emits refresh notifications for a section.
type RefreshContentInput struct {
	Event content.ContentEvent
}

type refreshNotifier interface {
	NotifyContentUpdated(ctx context.Context, event content.ContentEvent) error
}

// RefreshContentCommand triggers refresh hooks without forcing transports.
type RefreshContentCommand struct {
	service   refreshNotifier
	telemetry Telemetry
}

// NewRefreshContentCommand creates the command.
func NewRefreshContentCommand(service refreshNotifier, telemetry Telemetry) *RefreshContentCommand {
	return &RefreshContentCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshContentInput] = (*RefreshContentCommand)(nil)

// Execute notifies the content service's refresh hooks.
func (c *RefreshContentCommand) Execute(ctx context.Context, msg RefreshContentInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	if err := c.service.NotifyContentUpdated(ctx, msg.Event); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "content.section.refresh", map[string]any{
		"key":    msg.Event.Key,
		"reason": msg.Event.Reason,
	})
	return nil
}
