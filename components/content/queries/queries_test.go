package queries

import (
	"context"
	"testing"

	content "github.com/JasirTK/shopifysmartpromo/components/content"
)

func TestSectionQuery(t *testing.T) {
	service := &stubService{sections: map[string]content.ContentSection{
		"hero": {Key: "hero", Content: content.MustParseValue(`{"slides":[]}`)},
	}}
	q := NewSectionQuery(service)
	section, err := q.Query(context.Background(), "hero")
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if section.Key != "hero" {
		t.Fatalf("expected hero, got %s", section.Key)
	}
}

func TestSectionQueryMissing(t *testing.T) {
	q := NewSectionQuery(&stubService{sections: map[string]content.ContentSection{}})
	if _, err := q.Query(context.Background(), "nope"); err == nil {
		t.Fatalf("expected error for missing section")
	}
}

func TestListSectionsQuery(t *testing.T) {
	service := &stubService{sections: map[string]content.ContentSection{
		"hero":    {Key: "hero"},
		"pricing": {Key: "pricing"},
	}}
	q := NewListSectionsQuery(service)
	sections, err := q.Query(context.Background(), ListSectionsInput{})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
}

func TestFormQuery(t *testing.T) {
	service := &stubService{sections: map[string]content.ContentSection{
		"cta_bottom": {Key: "cta_bottom", Content: content.MustParseValue(`{"title":"Go","cta_main":"Install","cta_main_url":"#"}`)},
	}}
	q := NewFormQuery(service)
	form, err := q.Query(context.Background(), "cta_bottom")
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if form.Section != "cta_bottom" {
		t.Fatalf("expected cta_bottom form, got %s", form.Section)
	}
	if len(form.Fields) == 0 {
		t.Fatalf("expected derived fields")
	}
}

type stubService struct {
	sections map[string]content.ContentSection
}

func (s *stubService) Get(_ context.Context, key string) (content.ContentSection, error) {
	sec, ok := s.sections[key]
	if !ok {
		return content.ContentSection{}, content.ErrSectionNotFound
	}
	return sec, nil
}

func (s *stubService) List(context.Context) ([]content.ContentSection, error) {
	out := make([]content.ContentSection, 0, len(s.sections))
	for _, sec := range s.sections {
		out = append(out, sec)
	}
	return out, nil
}
