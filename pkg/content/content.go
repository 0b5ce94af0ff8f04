package content

import (
	core "github.com/JasirTK/shopifysmartpromo/components/content"
)

// Service exposes the underlying components/content.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// ContentSection re-export so callers can avoid importing the component.
type ContentSection = core.ContentSection

// Value re-export for building section content programmatically.
type Value = core.Value

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}
