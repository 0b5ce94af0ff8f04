package commands

import (
	"context"
	"testing"

	content "github.com/JasirTK/shopifysmartpromo/components/content"
)

func TestUpdateSectionCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewUpdateSectionCommand(service, nil)
	msg := UpdateSectionInput{
		Key:     "hero",
		Content: content.MustParseValue(`{"slides":[{"title":"Hi"}]}`),
	}
	if err := cmd.Execute(context.Background(), msg); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.updateCalls != 1 {
		t.Fatalf("expected update call")
	}
}

func TestUpdateSectionCommandRequiresKey(t *testing.T) {
	cmd := NewUpdateSectionCommand(&stubService{}, nil)
	if err := cmd.Execute(context.Background(), UpdateSectionInput{}); err == nil {
		t.Fatalf("expected error for missing key")
	}
}

func TestSeedContentCommand(t *testing.T) {
	store := newStubStore()
	telemetry := &stubTelemetry{}
	cmd := NewSeedContentCommand(store, telemetry)
	if err := cmd.Execute(context.Background(), SeedContentInput{}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if store.upsertCalls != len(content.DefaultSectionOrder) {
		t.Fatalf("expected %d upserts, got %d", len(content.DefaultSectionOrder), store.upsertCalls)
	}
	if telemetry.calls == 0 {
		t.Fatalf("expected telemetry to record events")
	}
}

func TestSeedContentCommandSkipsExisting(t *testing.T) {
	store := newStubStore()
	cmd := NewSeedContentCommand(store, nil)
	if err := cmd.Execute(context.Background(), SeedContentInput{Keys: []string{"hero"}}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if err := cmd.Execute(context.Background(), SeedContentInput{Keys: []string{"hero"}}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if store.upsertCalls != 1 {
		t.Fatalf("expected 1 upsert, got %d", store.upsertCalls)
	}
}

func TestRefreshContentCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewRefreshContentCommand(service, nil)
	event := content.ContentEvent{Key: "hero", Reason: "update"}
	if err := cmd.Execute(context.Background(), RefreshContentInput{Event: event}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.refreshCalls != 1 {
		t.Fatalf("expected refresh call")
	}
}

type stubService struct {
	updateCalls  int
	refreshCalls int
}

func (s *stubService) Update(_ context.Context, key string, value content.Value) (content.ContentSection, error) {
	s.updateCalls++
	return content.ContentSection{Key: key, Content: value}, nil
}

func (s *stubService) NotifyContentUpdated(context.Context, content.ContentEvent) error {
	s.refreshCalls++
	return nil
}

type stubStore struct {
	sections    map[string]content.ContentSection
	upsertCalls int
}

func newStubStore() *stubStore {
	return &stubStore{sections: map[string]content.ContentSection{}}
}

func (s *stubStore) ListSections(context.Context) ([]content.ContentSection, error) {
	out := make([]content.ContentSection, 0, len(s.sections))
	for _, sec := range s.sections {
		out = append(out, sec)
	}
	return out, nil
}

func (s *stubStore) GetSection(_ context.Context, key string) (content.ContentSection, error) {
	sec, ok := s.sections[key]
	if !ok {
		return content.ContentSection{}, content.ErrSectionNotFound
	}
	return sec, nil
}

func (s *stubStore) UpsertSection(_ context.Context, section content.ContentSection) (content.ContentSection, error) {
	s.upsertCalls++
	s.sections[section.Key] = section
	return section, nil
}

type stubTelemetry struct {
	calls int
}

func (t *stubTelemetry) Record(context.Context, string, map[string]any) {
	t.calls++
}
