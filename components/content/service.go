package content

import (
	"context"
	"errors"
	"time"
)

var (
	errMissingSectionStore = errors.New("content: section store not configured")
	errInvalidSectionKey   = errors.New("content: section key is required")
)

// Options configures the content Service. Every collaborator is provided via
// interface so applications can swap implementations without importing
// internal packages.
type Options struct {
	Store       SectionStore
	Registry    *SectionRegistry
	Validator   ConfigValidator
	RefreshHook RefreshHook
	Telemetry   Telemetry
	Order       []string
	Clock       func() time.Time
}

// Service orchestrates content sections: canonical listing, lookups, and
// validated upserts with refresh notifications.
type Service struct {
	opts Options
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Registry == nil {
		opts.Registry = NewSectionRegistry()
	}
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if len(opts.Order) == 0 {
		opts.Order = opts.Registry.Order()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Service{opts: opts}
}

// List returns all sections in canonical order. Unknown keys follow the
// known ones, preserving the store's relative order.
func (s *Service) List(ctx context.Context) ([]ContentSection, error) {
	store, err := s.sectionStore()
	if err != nil {
		return nil, err
	}
	sections, err := store.ListSections(ctx)
	if err != nil {
		return nil, err
	}
	sorted := SortSections(sections, s.opts.Order)
	s.opts.Telemetry.Record(ctx, "content.section.list", map[string]any{
		"count": len(sorted),
	})
	return sorted, nil
}

// Get fetches a single section by key.
func (s *Service) Get(ctx context.Context, key string) (ContentSection, error) {
	store, err := s.sectionStore()
	if err != nil {
		return ContentSection{}, err
	}
	if key == "" {
		return ContentSection{}, errInvalidSectionKey
	}
	return store.GetSection(ctx, key)
}

// Update validates and persists new content for a section, creating the
// section if it does not exist yet. The stored section with its fresh
// last_updated stamp is returned so callers can patch their local copies.
func (s *Service) Update(ctx context.Context, key string, value Value) (ContentSection, error) {
	store, err := s.sectionStore()
	if err != nil {
		return ContentSection{}, err
	}
	if key == "" {
		return ContentSection{}, errInvalidSectionKey
	}
	if def, ok := s.opts.Registry.Definition(key); ok {
		if err := s.opts.Validator.Validate(def, value); err != nil {
			return ContentSection{}, err
		}
	}
	section, err := store.UpsertSection(ctx, ContentSection{
		Key:         key,
		Content:     value,
		LastUpdated: s.opts.Clock().UTC(),
	})
	if err != nil {
		return ContentSection{}, err
	}
	event := ContentEvent{
		Key:     key,
		Section: section,
		Reason:  "update",
	}
	if err := s.opts.RefreshHook.ContentUpdated(ctx, event); err != nil {
		return ContentSection{}, err
	}
	s.opts.Telemetry.Record(ctx, "content.section.update", map[string]any{
		"key": key,
	})
	return section, nil
}

// Registry exposes the section registry for controllers and tooling.
func (s *Service) Registry() *SectionRegistry {
	return s.opts.Registry
}

// NotifyContentUpdated exposes refresh hook invocation for commands and
// transports.
func (s *Service) NotifyContentUpdated(ctx context.Context, event ContentEvent) error {
	if err := s.opts.RefreshHook.ContentUpdated(ctx, event); err != nil {
		return err
	}
	s.opts.Telemetry.Record(ctx, "content.section.event", map[string]any{
		"key":    event.Key,
		"reason": event.Reason,
	})
	return nil
}

func (s *Service) sectionStore() (SectionStore, error) {
	if s.opts.Store == nil {
		return nil, errMissingSectionStore
	}
	return s.opts.Store, nil
}

type noopRefreshHook struct{}

func (noopRefreshHook) ContentUpdated(context.Context, ContentEvent) error {
	return nil
}
