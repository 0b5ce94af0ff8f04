package content

import (
	"context"
	"testing"
)

func TestSeedSectionsFillsEmptyStore(t *testing.T) {
	store := newFakeSectionStore()
	if err := SeedSections(context.Background(), store); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(store.order) != len(DefaultSectionOrder) {
		t.Fatalf("expected %d sections, got %d", len(DefaultSectionOrder), len(store.order))
	}
	for i, key := range DefaultSectionOrder {
		if store.order[i] != key {
			t.Fatalf("seed order at %d: got %q, want %q", i, store.order[i], key)
		}
	}

	hero, err := store.GetSection(context.Background(), "hero")
	if err != nil {
		t.Fatalf("get hero: %v", err)
	}
	slides, ok := hero.Content.At(mustPath(t, "slides"))
	if !ok || slides.Len() != 3 {
		t.Fatalf("expected 3 seeded hero slides")
	}
}

func TestSeedSectionsSkipsExisting(t *testing.T) {
	store := newFakeSectionStore()
	custom := MustParseValue(`{"title":"Kept"}`)
	if _, err := store.UpsertSection(context.Background(), ContentSection{Key: "hero", Content: custom}); err != nil {
		t.Fatalf("seed custom hero: %v", err)
	}

	if err := SeedSections(context.Background(), store); err != nil {
		t.Fatalf("seed: %v", err)
	}
	hero, err := store.GetSection(context.Background(), "hero")
	if err != nil {
		t.Fatalf("get hero: %v", err)
	}
	if !hero.Content.Equal(custom) {
		t.Fatalf("seeding overwrote existing content")
	}
}

func TestDefaultSectionContentReturnsClones(t *testing.T) {
	first, ok := DefaultSectionContent("features")
	if !ok {
		t.Fatalf("expected features seed")
	}
	if _, err := first.SetPath(mustPath(t, "title"), String("Mutated")); err != nil {
		t.Fatalf("set path: %v", err)
	}
	second, _ := DefaultSectionContent("features")
	got, _ := second.At(mustPath(t, "title"))
	if got.Text() == "Mutated" {
		t.Fatalf("seed content should be isolated between calls")
	}

	if _, ok := DefaultSectionContent("nope"); ok {
		t.Fatalf("unknown key should miss")
	}
}

func TestDefaultDefinitionsCoverCanonicalOrder(t *testing.T) {
	defs := DefaultSectionDefinitions()
	byKey := make(map[string]bool, len(defs))
	for _, def := range defs {
		byKey[def.Key] = true
	}
	for _, key := range DefaultSectionOrder {
		if !byKey[key] {
			t.Fatalf("no definition for canonical section %q", key)
		}
	}
}

func TestDefaultSeedsSatisfyTheirSchemas(t *testing.T) {
	validator := NewJSONSchemaValidator()
	for _, def := range DefaultSectionDefinitions() {
		seed, ok := DefaultSectionContent(def.Key)
		if !ok {
			t.Fatalf("no seed for %q", def.Key)
		}
		if err := validator.Validate(def, seed); err != nil {
			t.Fatalf("seed for %q fails its own schema: %v", def.Key, err)
		}
	}
}