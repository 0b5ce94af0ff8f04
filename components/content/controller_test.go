package content

import (
	"context"
	"io"
	"strings"
	"testing"
)

type recordingRenderer struct {
	names []string
	data  []map[string]any
}

func (r *recordingRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.names = append(r.names, name)
	if m, ok := data.(map[string]any); ok {
		r.data = append(r.data, m)
	} else {
		r.data = append(r.data, nil)
	}
	return "<html>" + name + "</html>", nil
}

func (r *recordingRenderer) last(t *testing.T) map[string]any {
	t.Helper()
	if len(r.data) == 0 {
		t.Fatalf("renderer never called")
	}
	return r.data[len(r.data)-1]
}

func newTestController(t *testing.T) (*Controller, *recordingRenderer, *fakeSectionStore) {
	t.Helper()
	store := seedSessionStore(t)
	renderer := &recordingRenderer{}
	ctl, err := NewController(ControllerOptions{
		Service:  newSessionService(t, store),
		Renderer: renderer,
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return ctl, renderer, store
}

func TestNewControllerValidatesOptions(t *testing.T) {
	if _, err := NewController(ControllerOptions{Renderer: &recordingRenderer{}}); err == nil {
		t.Fatalf("expected error without service")
	}
	if _, err := NewController(ControllerOptions{Service: NewService(Options{})}); err == nil {
		t.Fatalf("expected error without renderer")
	}
}

func TestLandingPageIndexesSectionsByKey(t *testing.T) {
	ctl, renderer, _ := newTestController(t)

	if _, err := ctl.LandingPage(context.Background()); err != nil {
		t.Fatalf("landing: %v", err)
	}
	if renderer.names[0] != "landing" {
		t.Fatalf("expected landing template, got %q", renderer.names[0])
	}
	data := renderer.last(t)
	sections, ok := data["sections"].(map[string]any)
	if !ok {
		t.Fatalf("sections payload missing")
	}
	hero, ok := sections["hero"].(map[string]any)
	if !ok {
		t.Fatalf("hero section missing from payload")
	}
	if hero["title"] != "Welcome" {
		t.Fatalf("unexpected hero payload: %v", hero)
	}
}

func TestLoginPageCarriesError(t *testing.T) {
	ctl, renderer, _ := newTestController(t)
	if _, err := ctl.LoginPage("bad credentials"); err != nil {
		t.Fatalf("login page: %v", err)
	}
	if got := renderer.last(t)["error"]; got != "bad credentials" {
		t.Fatalf("error message lost: %v", got)
	}
}

func TestAdminPageBuildsNavAndForm(t *testing.T) {
	ctl, renderer, _ := newTestController(t)

	if _, err := ctl.AdminPage(context.Background(), "alice"); err != nil {
		t.Fatalf("admin page: %v", err)
	}
	data := renderer.last(t)
	if data["selected"] != "hero" {
		t.Fatalf("expected hero selected, got %v", data["selected"])
	}
	nav, ok := data["nav"].([]map[string]any)
	if !ok || len(nav) != 2 {
		t.Fatalf("expected 2 nav entries, got %v", data["nav"])
	}
	if nav[0]["key"] != "hero" || nav[0]["selected"] != true {
		t.Fatalf("nav should mark hero selected: %v", nav[0])
	}
	form, _ := data["form"].(string)
	if !strings.Contains(form, `name="title"`) {
		t.Fatalf("admin form missing hero fields: %s", form)
	}
}

func TestAdminPageRendersInlineErrorForNonObjectContent(t *testing.T) {
	ctl, renderer, store := newTestController(t)
	if _, err := store.UpsertSection(context.Background(), ContentSection{
		Key:     "hero",
		Content: String("not an object"),
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if _, err := ctl.AdminPage(context.Background(), "alice"); err != nil {
		t.Fatalf("admin page should render despite invalid content: %v", err)
	}
	data := renderer.last(t)
	form, _ := data["form"].(string)
	if !strings.Contains(form, "form-error") || !strings.Contains(form, "Invalid data") {
		t.Fatalf("expected inline error fragment, got %q", form)
	}
	if strings.Contains(form, "<input") {
		t.Fatalf("no controls should render for invalid content: %q", form)
	}
	nav, ok := data["nav"].([]map[string]any)
	if !ok || len(nav) != 2 {
		t.Fatalf("section switcher should stay rendered, got %v", data["nav"])
	}
}

func TestSelectSectionSwitchesForm(t *testing.T) {
	ctl, renderer, _ := newTestController(t)

	if _, err := ctl.SelectSection(context.Background(), "alice", "pricing"); err != nil {
		t.Fatalf("select section: %v", err)
	}
	data := renderer.last(t)
	if data["selected"] != "pricing" {
		t.Fatalf("expected pricing selected, got %v", data["selected"])
	}
	form, _ := data["form"].(string)
	if !strings.Contains(form, `name="plans.0.name"`) {
		t.Fatalf("pricing form missing: %s", form)
	}

	if _, err := ctl.SelectSection(context.Background(), "alice", "nope"); err == nil {
		t.Fatalf("expected error for unknown section")
	}
}

func TestSessionAccessorReusesSessions(t *testing.T) {
	ctl, _, _ := newTestController(t)
	a, err := ctl.Session(context.Background(), "bob")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	b, err := ctl.Session(context.Background(), "bob")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if a != b {
		t.Fatalf("expected the same session instance")
	}
}