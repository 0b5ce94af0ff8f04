package content

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Step addresses one level of a nested value: an object field when Key is
// set, otherwise an array index.
type Step struct {
	Key   string
	Index int
}

// FieldStep addresses an object field.
func FieldStep(key string) Step { return Step{Key: key, Index: -1} }

// IndexStep addresses an array element.
func IndexStep(i int) Step { return Step{Index: i} }

func (s Step) isField() bool { return s.Key != "" }

func (s Step) String() string {
	if s.isField() {
		return s.Key
	}
	return strconv.Itoa(s.Index)
}

// Path addresses a nested value inside section content.
type Path []Step

// ParsePath converts a dotted form path ("slides.2.title") into a Path.
// Purely numeric segments address array indices.
func ParsePath(raw string) (Path, error) {
	if raw == "" {
		return nil, nil
	}
	segments := strings.Split(raw, ".")
	path := make(Path, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("content: empty path segment in %q", raw)
		}
		if i, err := strconv.Atoi(seg); err == nil {
			path = append(path, IndexStep(i))
			continue
		}
		path = append(path, FieldStep(seg))
	}
	return path, nil
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

var errPathMiss = errors.New("content: path does not address a value")

// At resolves the value addressed by the path.
func (v Value) At(path Path) (Value, bool) {
	cur := v
	for _, step := range path {
		if step.isField() {
			obj, ok := cur.Obj()
			if !ok {
				return Value{}, false
			}
			child, ok := obj.Get(step.Key)
			if !ok {
				return Value{}, false
			}
			cur = child
			continue
		}
		items := cur.Items()
		if step.Index < 0 || step.Index >= len(items) {
			return Value{}, false
		}
		cur = items[step.Index]
	}
	return cur, true
}

// SetPath returns a copy of the value with the addressed leaf replaced.
// Only the containers along the path are copied; every sibling value is the
// same value as before, which is the editor's isolation guarantee.
func (v Value) SetPath(path Path, nv Value) (Value, error) {
	if len(path) == 0 {
		return nv, nil
	}
	return v.rewrite(path, func(Value) (Value, error) { return nv, nil })
}

// DeletePath returns a copy with the addressed entry removed. Object fields
// are dropped; array elements are spliced out, shifting later indices down.
func (v Value) DeletePath(path Path) (Value, error) {
	if len(path) == 0 {
		return Value{}, errors.New("content: cannot delete the root value")
	}
	parent := path[:len(path)-1]
	last := path[len(path)-1]
	return v.rewrite(parent, func(container Value) (Value, error) {
		if last.isField() {
			obj, ok := container.Obj()
			if !ok || !obj.Has(last.Key) {
				return Value{}, errPathMiss
			}
			c := obj.shallowClone()
			c.Delete(last.Key)
			return ObjectValue(c), nil
		}
		items := container.Items()
		if last.Index < 0 || last.Index >= len(items) {
			return Value{}, errPathMiss
		}
		next := make([]Value, 0, len(items)-1)
		next = append(next, items[:last.Index]...)
		next = append(next, items[last.Index+1:]...)
		return Array(next...), nil
	})
}

// AppendPath returns a copy with item appended to the array addressed by the
// path. New items always land at the end; existing indices never move.
func (v Value) AppendPath(path Path, item Value) (Value, error) {
	return v.rewrite(path, func(container Value) (Value, error) {
		if container.Kind() != KindArray {
			return Value{}, fmt.Errorf("content: path %s is %s, want array", path, container.Kind())
		}
		items := container.Items()
		next := make([]Value, 0, len(items)+1)
		next = append(next, items...)
		next = append(next, item)
		return Array(next...), nil
	})
}

// rewrite walks the path copying containers on the way down and applies fn
// to the addressed value.
func (v Value) rewrite(path Path, fn func(Value) (Value, error)) (Value, error) {
	if len(path) == 0 {
		return fn(v)
	}
	step := path[0]
	if step.isField() {
		obj, ok := v.Obj()
		if !ok {
			return Value{}, fmt.Errorf("content: path step %q addresses %s, want object", step.Key, v.Kind())
		}
		child, ok := obj.Get(step.Key)
		if !ok {
			return Value{}, fmt.Errorf("content: %w: missing key %q", errPathMiss, step.Key)
		}
		updated, err := child.rewrite(path[1:], fn)
		if err != nil {
			return Value{}, err
		}
		c := obj.shallowClone()
		c.Set(step.Key, updated)
		return ObjectValue(c), nil
	}
	items := v.Items()
	if v.Kind() != KindArray || step.Index < 0 || step.Index >= len(items) {
		return Value{}, fmt.Errorf("content: %w: index %d", errPathMiss, step.Index)
	}
	updated, err := items[step.Index].rewrite(path[1:], fn)
	if err != nil {
		return Value{}, err
	}
	next := append([]Value(nil), items...)
	next[step.Index] = updated
	return Array(next...), nil
}
