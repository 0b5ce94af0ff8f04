package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	content "github.com/JasirTK/shopifysmartpromo/components/content"
)

// UpdateSectionInput captures section update payloads.
type UpdateSectionInput struct {
	Key     string        `json:"key"`
	Content content.Value `json:"content"`
	ActorID string        `json:"actor_id"`
}

type updateService interface {
	Update(ctx context.Context, key string, value content.Value) (content.ContentSection, error)
}

// UpdateSectionCommand wraps Service.Update so transports can upsert a
// section without linking directly against the service.
type UpdateSectionCommand struct {
	service   updateService
	telemetry Telemetry
}

// NewUpdateSectionCommand creates the command.
func NewUpdateSectionCommand(service updateService, telemetry Telemetry) *UpdateSectionCommand {
	return &UpdateSectionCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateSectionInput] = (*UpdateSectionCommand)(nil)

// Execute validates and stores the section content.
func (c *UpdateSectionCommand) Execute(ctx context.Context, msg UpdateSectionInput) error {
	if c.service == nil {
		return errors.New("update command requires service")
	}
	if msg.Key == "" {
		return errors.New("update command requires section key")
	}
	if _, err := c.service.Update(ctx, msg.Key, msg.Content); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "content.section.update", map[string]any{
		"key":      msg.Key,
		"actor_id": msg.ActorID,
	})
	return nil
}
