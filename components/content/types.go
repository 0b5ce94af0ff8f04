package content

import (
	"context"
	"errors"
	"time"
)

// ErrSectionNotFound is returned when a section key has no stored content.
var ErrSectionNotFound = errors.New("content: section not found")

// ContentSection is one named, independently editable block of the public
// page. Content is schema-less; the backend owns the canonical copy.
type ContentSection struct {
	Key         string    `json:"key"`
	Content     Value     `json:"content"`
	LastUpdated time.Time `json:"last_updated"`
}

// SectionStore encapsulates section persistence. Implementations ensure
// thread safety and upsert semantics on write.
type SectionStore interface {
	ListSections(ctx context.Context) ([]ContentSection, error)
	GetSection(ctx context.Context, key string) (ContentSection, error)
	UpsertSection(ctx context.Context, section ContentSection) (ContentSection, error)
}

// SectionDefinition describes a known section: display name, canonical
// position, and an optional JSON schema enforced on save.
type SectionDefinition struct {
	Key         string         `json:"key" yaml:"key"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Schema      map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// ContentEvent describes a section change that transports might care about.
type ContentEvent struct {
	Key     string         `json:"key"`
	Section ContentSection `json:"section"`
	Reason  string         `json:"reason"`
}

// RefreshHook notifies transports (WebSocket/SSE) about content changes.
type RefreshHook interface {
	ContentUpdated(ctx context.Context, event ContentEvent) error
}

// Uploader stores an uploaded asset and returns its public URL. The editor's
// image controls write the returned URL back into the edit buffer.
type Uploader interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
}
