package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	content "github.com/JasirTK/shopifysmartpromo/components/content"
)

// SeedContentInput controls bootstrap behavior.
type SeedContentInput struct {
	// Keys restricts seeding to the named sections; empty means all.
	Keys []string
}

// SeedContentCommand writes starter content for missing sections.
type SeedContentCommand struct {
	store     content.SectionStore
	telemetry Telemetry
}

// NewSeedContentCommand wires dependencies.
func NewSeedContentCommand(store content.SectionStore, telemetry Telemetry) *SeedContentCommand {
	return &SeedContentCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SeedContentInput] = (*SeedContentCommand)(nil)

// Execute runs the bootstrap pipeline.
func (c *SeedContentCommand) Execute(ctx context.Context, msg SeedContentInput) error {
	if c.store == nil {
		return errors.New("seed command requires section store")
	}
	if len(msg.Keys) == 0 {
		if err := content.SeedSections(ctx, c.store); err != nil {
			return err
		}
		c.telemetry.Record(ctx, "content.seed", map[string]any{"keys": "all"})
		return nil
	}
	var seedErr error
	for _, key := range msg.Keys {
		seed, ok := content.DefaultSectionContent(key)
		if !ok {
			seedErr = errors.Join(seedErr, errors.New("no starter content for "+key))
			continue
		}
		if _, err := c.store.GetSection(ctx, key); err == nil {
			continue
		} else if !errors.Is(err, content.ErrSectionNotFound) {
			seedErr = errors.Join(seedErr, err)
			continue
		}
		if _, err := c.store.UpsertSection(ctx, content.ContentSection{Key: key, Content: seed}); err != nil {
			seedErr = errors.Join(seedErr, err)
		}
	}
	if seedErr != nil {
		return seedErr
	}
	c.telemetry.Record(ctx, "content.seed", map[string]any{"keys": msg.Keys})
	return nil
}
