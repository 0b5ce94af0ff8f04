package content

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newSessionService(t *testing.T, store SectionStore) *Service {
	t.Helper()
	return NewService(Options{
		Store: store,
		Order: []string{"hero", "pricing"},
	})
}

func seedSessionStore(t *testing.T) *fakeSectionStore {
	t.Helper()
	store := newFakeSectionStore()
	seed := []ContentSection{
		{Key: "pricing", Content: MustParseValue(`{"plans":[{"name":"Free"}]}`)},
		{Key: "hero", Content: MustParseValue(`{"title":"Welcome","slides":[{"title":"One","desc":"D"}]}`)},
	}
	for _, section := range seed {
		if _, err := store.UpsertSection(context.Background(), section); err != nil {
			t.Fatalf("seed %s: %v", section.Key, err)
		}
	}
	return store
}

func TestNewEditorSessionSelectsFirstCanonical(t *testing.T) {
	store := seedSessionStore(t)
	s, err := NewEditorSession(context.Background(), newSessionService(t, store))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if s.State() != StateReady {
		t.Fatalf("expected ready state, got %v", s.State())
	}
	// The store listed pricing first; canonical order puts hero first.
	if s.Selected() != "hero" {
		t.Fatalf("expected hero selected, got %q", s.Selected())
	}
}

func TestNewEditorSessionEmptyStore(t *testing.T) {
	s, err := NewEditorSession(context.Background(), newSessionService(t, newFakeSectionStore()))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if s.State() != StateReady || s.Selected() != "" {
		t.Fatalf("empty store should yield ready session without selection")
	}
}

func TestSelectDiscardsBuffer(t *testing.T) {
	store := seedSessionStore(t)
	s, err := NewEditorSession(context.Background(), newSessionService(t, store))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	if err := s.Edit(mustPath(t, "title"), String("Dirty")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := s.Select("pricing"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := s.Select("hero"); err != nil {
		t.Fatalf("select back: %v", err)
	}
	got, _ := s.Buffer().At(mustPath(t, "title"))
	if got.Text() != "Welcome" {
		t.Fatalf("buffer should reload canonical content, got %q", got.Text())
	}
}

func TestSelectUnknownSection(t *testing.T) {
	store := seedSessionStore(t)
	s, err := NewEditorSession(context.Background(), newSessionService(t, store))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := s.Select("nope"); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
	if s.Selected() != "hero" {
		t.Fatalf("failed select must not change selection")
	}
}

func TestSaveSuccessPatchesSectionsAndRaisesNotice(t *testing.T) {
	store := seedSessionStore(t)
	s, err := NewEditorSession(context.Background(), newSessionService(t, store))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	now := time.Now()
	s.clock = func() time.Time { return now }

	if err := s.Edit(mustPath(t, "title"), String("Saved")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("save: %v", err)
	}

	stored, err := store.GetSection(context.Background(), "hero")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got, _ := stored.Content.At(mustPath(t, "title"))
	if got.Text() != "Saved" {
		t.Fatalf("store missing saved edit: %q", got.Text())
	}

	section, ok := s.SelectedSection()
	if !ok {
		t.Fatalf("selected section missing")
	}
	got, _ = section.Content.At(mustPath(t, "title"))
	if got.Text() != "Saved" {
		t.Fatalf("cached section not patched: %q", got.Text())
	}
	if s.Notice() == "" {
		t.Fatalf("expected success notice")
	}

	// Notice expires on the session clock.
	s.clock = func() time.Time { return now.Add(noticeTTL + time.Second) }
	if s.Notice() != "" {
		t.Fatalf("notice should expire")
	}
}

func TestSaveFailurePreservesBuffer(t *testing.T) {
	store := seedSessionStore(t)
	store.failUpsert = errors.New("boom")
	s, err := NewEditorSession(context.Background(), newSessionService(t, store))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	if err := s.Edit(mustPath(t, "title"), String("Dirty")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := s.Save(context.Background()); err == nil {
		t.Fatalf("expected save failure")
	}
	if s.State() != StateReady {
		t.Fatalf("state must return to ready after failure")
	}
	got, _ := s.Buffer().At(mustPath(t, "title"))
	if got.Text() != "Dirty" {
		t.Fatalf("failed save must keep the buffer, got %q", got.Text())
	}
	if s.Notice() != "" {
		t.Fatalf("failed save must not raise a notice")
	}
}

func TestSaveWhileSavingIsRejected(t *testing.T) {
	store := seedSessionStore(t)
	s, err := NewEditorSession(context.Background(), newSessionService(t, store))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	s.mu.Lock()
	s.state = StateSaving
	s.mu.Unlock()

	if err := s.Save(context.Background()); !errors.Is(err, ErrSaveInFlight) {
		t.Fatalf("expected ErrSaveInFlight, got %v", err)
	}
}

func TestSaveFinishingAfterSwitchIsDiscarded(t *testing.T) {
	store := seedSessionStore(t)
	svc := newSessionService(t, store)
	s, err := NewEditorSession(context.Background(), svc)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	// Switch sections while the save is in flight; the store hook runs
	// between the service write and the session patching its cache.
	store.onUpsert = func() {
		store.onUpsert = nil
		if err := s.Select("pricing"); err != nil {
			t.Errorf("select during save: %v", err)
		}
	}

	if err := s.Edit(mustPath(t, "title"), String("Late")); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("save: %v", err)
	}

	if s.Selected() != "pricing" {
		t.Fatalf("selection should remain pricing")
	}
	if s.Notice() != "" {
		t.Fatalf("stale save must not raise a notice")
	}
	// The write itself still reached the store.
	stored, err := store.GetSection(context.Background(), "hero")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got, _ := stored.Content.At(mustPath(t, "title"))
	if got.Text() != "Late" {
		t.Fatalf("store should keep the late write, got %q", got.Text())
	}
}

func TestAddItemDerivesFieldFromPath(t *testing.T) {
	store := seedSessionStore(t)
	s, err := NewEditorSession(context.Background(), newSessionService(t, store))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	if err := s.AddItem(mustPath(t, "slides"), NewTemplateRegistry()); err != nil {
		t.Fatalf("add item: %v", err)
	}
	arr, _ := s.Buffer().At(mustPath(t, "slides"))
	if arr.Len() != 2 {
		t.Fatalf("expected 2 slides, got %d", arr.Len())
	}
	// Existing element cloned, strings blanked.
	out, err := arr.Items()[1].MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"title":"","desc":""}` {
		t.Fatalf("unexpected new item: %s", out)
	}

	if err := s.AddItem(mustPath(t, "title"), nil); err == nil {
		t.Fatalf("expected error adding to a non-array path")
	}
}

func TestSessionRegistry(t *testing.T) {
	store := seedSessionStore(t)
	svc := newSessionService(t, store)
	reg := NewSessionRegistry()

	if _, err := reg.GetOrCreate(context.Background(), "", svc); err == nil {
		t.Fatalf("expected error for empty session id")
	}

	a, err := reg.GetOrCreate(context.Background(), "alice", svc)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := reg.GetOrCreate(context.Background(), "alice", svc)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if a != b {
		t.Fatalf("expected the same session instance")
	}

	reg.Drop("alice")
	if _, ok := reg.Get("alice"); ok {
		t.Fatalf("dropped session still present")
	}
}

// fakeSectionStore is an in-memory SectionStore with failure and write hooks.
type fakeSectionStore struct {
	sections   map[string]ContentSection
	order      []string
	failUpsert error
	onUpsert   func()
}

func newFakeSectionStore() *fakeSectionStore {
	return &fakeSectionStore{sections: map[string]ContentSection{}}
}

func (f *fakeSectionStore) ListSections(ctx context.Context) ([]ContentSection, error) {
	out := make([]ContentSection, 0, len(f.order))
	for _, key := range f.order {
		out = append(out, f.sections[key])
	}
	return out, nil
}

func (f *fakeSectionStore) GetSection(ctx context.Context, key string) (ContentSection, error) {
	section, ok := f.sections[key]
	if !ok {
		return ContentSection{}, ErrSectionNotFound
	}
	return section, nil
}

func (f *fakeSectionStore) UpsertSection(ctx context.Context, section ContentSection) (ContentSection, error) {
	if f.failUpsert != nil {
		return ContentSection{}, f.failUpsert
	}
	if _, ok := f.sections[section.Key]; !ok {
		f.order = append(f.order, section.Key)
	}
	f.sections[section.Key] = section
	if f.onUpsert != nil {
		f.onUpsert()
	}
	return section, nil
}