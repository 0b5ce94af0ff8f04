package content

import (
	"testing"
)

func TestParsePathSteps(t *testing.T) {
	path, err := ParsePath("slides.2.title")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(path) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(path))
	}
	if path[0].Key != "slides" || path[1].Index != 2 || path[2].Key != "title" {
		t.Fatalf("unexpected steps: %+v", path)
	}
	if path.String() != "slides.2.title" {
		t.Fatalf("String round trip: %q", path.String())
	}
}

func TestParsePathRejectsEmptySegments(t *testing.T) {
	for _, raw := range []string{".", "a..b", "a."} {
		if _, err := ParsePath(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
	if p, err := ParsePath(""); err != nil || len(p) != 0 {
		t.Fatalf("empty input should yield an empty path, got %v, %v", p, err)
	}
}

func TestSetPathLeavesSiblingsUntouched(t *testing.T) {
	root := MustParseValue(`{"slides":[{"title":"One","subtitle":"S1"},{"title":"Two","subtitle":"S2"}],"badge":"new"}`)

	path := mustPath(t, "slides.0.title")
	next, err := root.SetPath(path, String("Edited"))
	if err != nil {
		t.Fatalf("set path: %v", err)
	}

	if got, _ := next.At(mustPath(t, "slides.0.subtitle")); got.Text() != "S1" {
		t.Fatalf("sibling field changed: %q", got.Text())
	}
	if got, _ := next.At(mustPath(t, "slides.1.title")); got.Text() != "Two" {
		t.Fatalf("sibling element changed: %q", got.Text())
	}
	if got, _ := next.At(mustPath(t, "badge")); got.Text() != "new" {
		t.Fatalf("top-level sibling changed: %q", got.Text())
	}
	// Copy-on-write: the source value still holds the old leaf.
	if got, _ := root.At(path); got.Text() != "One" {
		t.Fatalf("source value mutated: %q", got.Text())
	}
}

func TestSetPathUnknownTarget(t *testing.T) {
	root := MustParseValue(`{"items":[{"a":1}]}`)
	if _, err := root.SetPath(mustPath(t, "items.5.a"), String("x")); err == nil {
		t.Fatalf("expected error for out-of-range index")
	}
	if _, err := root.SetPath(mustPath(t, "missing.child"), String("x")); err == nil {
		t.Fatalf("expected error for missing intermediate key")
	}
}

func TestDeletePathSplicesArray(t *testing.T) {
	root := MustParseValue(`{"items":["a","b","c"]}`)
	next, err := root.DeletePath(mustPath(t, "items.1"))
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	arr, _ := next.At(mustPath(t, "items"))
	if arr.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", arr.Len())
	}
	items := arr.Items()
	if items[0].Text() != "a" || items[1].Text() != "c" {
		t.Fatalf("unexpected items after splice: %v, %v", items[0].Text(), items[1].Text())
	}
	// Source is untouched.
	arr, _ = root.At(mustPath(t, "items"))
	if arr.Len() != 3 {
		t.Fatalf("source array mutated: %d items", arr.Len())
	}
}

func TestDeletePathRemovesObjectKey(t *testing.T) {
	root := MustParseValue(`{"a":1,"b":2}`)
	next, err := root.DeletePath(mustPath(t, "a"))
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	obj, _ := next.Obj()
	if obj.Has("a") {
		t.Fatalf("key not removed")
	}
	if !obj.Has("b") {
		t.Fatalf("sibling key lost")
	}
}

func TestAppendPath(t *testing.T) {
	root := MustParseValue(`{"tags":["x"]}`)
	next, err := root.AppendPath(mustPath(t, "tags"), String("y"))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	arr, _ := next.At(mustPath(t, "tags"))
	if arr.Len() != 2 {
		t.Fatalf("expected 2 tags, got %d", arr.Len())
	}
	if arr.Items()[1].Text() != "y" {
		t.Fatalf("appended value missing")
	}

	if _, err := root.AppendPath(mustPath(t, "missing"), String("y")); err == nil {
		t.Fatalf("expected error appending to missing path")
	}
}

func TestAtMissing(t *testing.T) {
	root := MustParseValue(`{"a":{"b":1}}`)
	if _, ok := root.At(mustPath(t, "a.c")); ok {
		t.Fatalf("expected miss for unknown key")
	}
	if got, ok := root.At(mustPath(t, "a.b")); !ok || got.NumberText() != "1" {
		t.Fatalf("expected hit for a.b")
	}
}

func mustPath(t *testing.T, raw string) Path {
	t.Helper()
	p, err := ParsePath(raw)
	if err != nil {
		t.Fatalf("parse path %q: %v", raw, err)
	}
	return p
}