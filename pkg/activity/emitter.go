package activity

import "context"

// DefaultChannel is applied to events that do not name one.
const DefaultChannel = "admin"

// Config toggles activity emission.
type Config struct {
	Enabled bool
}

// Emitter delivers activity events to configured hooks. A disabled emitter
// swallows events, so call sites never need their own guards.
type Emitter struct {
	hooks   Hooks
	enabled bool
}

// NewEmitter builds an emitter. It is disabled when no hooks are registered.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	return &Emitter{
		hooks:   hooks,
		enabled: cfg.Enabled && len(hooks) > 0,
	}
}

// Enabled reports whether events will be delivered.
func (e *Emitter) Enabled() bool {
	return e != nil && e.enabled
}

// Emit delivers the event, defaulting the channel when unset.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	if evt.Channel == "" {
		evt.Channel = DefaultChannel
	}
	return e.hooks.Notify(ctx, evt)
}
