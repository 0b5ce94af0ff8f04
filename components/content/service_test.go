package content

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestServiceListCanonicalOrder(t *testing.T) {
	store := newFakeSectionStore()
	for _, key := range []string{"custom_block", "pricing", "hero"} {
		if _, err := store.UpsertSection(context.Background(), ContentSection{
			Key:     key,
			Content: MustParseValue(`{}`),
		}); err != nil {
			t.Fatalf("seed %s: %v", key, err)
		}
	}
	svc := NewService(Options{Store: store})

	sections, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := make([]string, len(sections))
	for i, s := range sections {
		got[i] = s.Key
	}
	want := []string{"hero", "pricing", "custom_block"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}
}

func TestServiceGet(t *testing.T) {
	store := newFakeSectionStore()
	svc := NewService(Options{Store: store})

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
	if _, err := svc.Get(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestServiceUpdateStampsAndNotifies(t *testing.T) {
	store := newFakeSectionStore()
	hook := &captureHook{}
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := NewService(Options{
		Store:       store,
		RefreshHook: hook,
		Clock:       func() time.Time { return now },
	})

	section, err := svc.Update(context.Background(), "promo_strip", MustParseValue(`{"title":"T"}`))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !section.LastUpdated.Equal(now) {
		t.Fatalf("expected clock stamp, got %v", section.LastUpdated)
	}
	if len(hook.events) != 1 || hook.events[0].Key != "promo_strip" || hook.events[0].Reason != "update" {
		t.Fatalf("unexpected refresh events: %+v", hook.events)
	}
}

func TestServiceUpdateValidatesKnownSections(t *testing.T) {
	store := newFakeSectionStore()
	svc := NewService(Options{Store: store})

	// hero is registered with a schema that requires slides.
	if _, err := svc.Update(context.Background(), "hero", MustParseValue(`{"title":"no slides"}`)); err == nil {
		t.Fatalf("expected schema validation failure")
	}
	if _, err := store.GetSection(context.Background(), "hero"); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("invalid content must not reach the store")
	}

	// Unregistered keys skip validation entirely.
	if _, err := svc.Update(context.Background(), "bespoke", MustParseValue(`{"anything":1}`)); err != nil {
		t.Fatalf("unregistered section should save: %v", err)
	}
}

func TestServiceUpdateEmptyKey(t *testing.T) {
	svc := NewService(Options{Store: newFakeSectionStore()})
	if _, err := svc.Update(context.Background(), "", MustParseValue(`{}`)); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestServiceRequiresStore(t *testing.T) {
	svc := NewService(Options{})
	if _, err := svc.List(context.Background()); err == nil {
		t.Fatalf("expected error without a store")
	}
}

type captureHook struct {
	events []ContentEvent
}

func (c *captureHook) ContentUpdated(ctx context.Context, event ContentEvent) error {
	c.events = append(c.events, event)
	return nil
}