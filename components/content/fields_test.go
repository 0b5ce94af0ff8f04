package content

import (
	"strings"
	"testing"
)

func TestBuildFormRejectsNonObject(t *testing.T) {
	for _, raw := range []string{`"scalar"`, `[1,2]`, `null`, `42`} {
		if _, err := BuildForm("hero", MustParseValue(raw)); err == nil {
			t.Fatalf("expected error for root %s", raw)
		}
	}
}

func TestClassifyImageKeys(t *testing.T) {
	form := mustForm(t, "hero", `{"image_url":"/a.png","avatar":"","icon_src":"x","title":"T"}`)
	for _, key := range []string{"image_url", "avatar", "icon_src"} {
		field := fieldByKey(t, form.Fields, key)
		if field.Kind != FieldImage {
			t.Fatalf("expected %s to be an image field, got %v", key, field.Kind)
		}
	}
	if fieldByKey(t, form.Fields, "title").Kind != FieldText {
		t.Fatalf("title should stay a text field")
	}
}

func TestClassifyLongText(t *testing.T) {
	long := strings.Repeat("x", 51)
	form := mustForm(t, "seo", `{"short":"hi","description":"`+long+`"}`)
	if fieldByKey(t, form.Fields, "short").Kind != FieldText {
		t.Fatalf("short string should be a text field")
	}
	if fieldByKey(t, form.Fields, "description").Kind != FieldLongText {
		t.Fatalf("51-char string should be a long text field")
	}
}

func TestClassifyCTAPairing(t *testing.T) {
	form := mustForm(t, "hero", `{"cta_primary":"Install","cta_primary_url":"#app","note":"n"}`)
	field := fieldByKey(t, form.Fields, "cta_primary")
	if field.Kind != FieldCTA {
		t.Fatalf("expected CTA pairing, got %v", field.Kind)
	}
	if field.URLKey != "cta_primary_url" || field.URLValue.Text() != "#app" {
		t.Fatalf("URL side not paired: %+v", field)
	}
	// The _url key must not surface as its own field.
	for _, f := range form.Fields {
		if f.Key == "cta_primary_url" {
			t.Fatalf("paired URL key rendered twice")
		}
	}
}

func TestClassifyArrayAndGroup(t *testing.T) {
	form := mustForm(t, "features", `{"items":[{"title":"A"},"plain"],"meta":{"k":"v"}}`)

	items := fieldByKey(t, form.Fields, "items")
	if items.Kind != FieldArray {
		t.Fatalf("expected array field, got %v", items.Kind)
	}
	if len(items.Items) != 2 {
		t.Fatalf("expected 2 array items, got %d", len(items.Items))
	}
	if items.Items[0].Scalar {
		t.Fatalf("object element misclassified as scalar")
	}
	if !items.Items[1].Scalar {
		t.Fatalf("string element should be scalar")
	}
	if items.Items[0].ID == "" || items.Items[0].ID == items.Items[1].ID {
		t.Fatalf("array items need distinct synthetic ids")
	}
	if items.Items[1].Path.String() != "items.1" {
		t.Fatalf("item path: %q", items.Items[1].Path.String())
	}

	meta := fieldByKey(t, form.Fields, "meta")
	if meta.Kind != FieldGroup {
		t.Fatalf("expected group field, got %v", meta.Kind)
	}
	if len(meta.Fields) != 1 || meta.Fields[0].Path.String() != "meta.k" {
		t.Fatalf("nested field paths wrong: %+v", meta.Fields)
	}
}

func TestFieldOrderingPriorities(t *testing.T) {
	form := mustForm(t, "features", `{"icon":"Star","desc":"D","title":"T"}`)
	got := make([]string, len(form.Fields))
	for i, f := range form.Fields {
		got[i] = f.Key
	}
	want := []string{"title", "desc", "icon"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("field order: got %v, want %v", got, want)
		}
	}
}

func TestFieldOrderingScalarsBeforeStructures(t *testing.T) {
	form := mustForm(t, "hero", `{"slides":[],"badge":"new","extra":{"a":1},"title":"T"}`)
	var sawStructure bool
	for _, f := range form.Fields {
		switch f.Kind {
		case FieldArray, FieldGroup:
			sawStructure = true
		default:
			if sawStructure {
				t.Fatalf("scalar %q rendered after a structure", f.Key)
			}
		}
	}
}

func TestFieldOrderingTiesKeepDeclarationOrder(t *testing.T) {
	form := mustForm(t, "seo", `{"zeta":"1","alpha":"2","mid":"3"}`)
	got := make([]string, len(form.Fields))
	for i, f := range form.Fields {
		got[i] = f.Key
	}
	want := []string{"zeta", "alpha", "mid"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tie order: got %v, want %v", got, want)
		}
	}
}

func TestHumanizeKey(t *testing.T) {
	cases := map[string]string{
		"cta_primary": "Cta Primary",
		"title":       "Title",
		"image_url":   "Image Url",
	}
	for key, want := range cases {
		if got := humanizeKey(key); got != want {
			t.Fatalf("humanize %q: got %q, want %q", key, got, want)
		}
	}
}

func mustForm(t *testing.T, section, raw string) Form {
	t.Helper()
	form, err := BuildForm(section, MustParseValue(raw))
	if err != nil {
		t.Fatalf("build form: %v", err)
	}
	return form
}

func fieldByKey(t *testing.T, fields []Field, key string) Field {
	t.Helper()
	for _, f := range fields {
		if f.Key == key {
			return f
		}
	}
	t.Fatalf("field %q not found", key)
	return Field{}
}