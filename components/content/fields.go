package content

import (
	"errors"
	"sort"
	"strings"

	"github.com/ettle/strcase"
	"github.com/google/uuid"
)

// ErrInvalidContent is returned when the editor is asked to render a value
// that is not an object. The caller shows an inline error state instead of a
// partially built form.
var ErrInvalidContent = errors.New("content: editor requires an object value")

// FieldKind classifies a content field into an editor control.
type FieldKind int

const (
	// FieldText is a single line input bound directly to a scalar.
	FieldText FieldKind = iota
	// FieldLongText is a multi-line area for strings longer than 50 chars.
	FieldLongText
	// FieldImage is the composite URL/upload/clear/preview control.
	FieldImage
	// FieldCTA groups a button label with its sibling "_url" destination.
	FieldCTA
	// FieldArray is a repeating section with add/delete per item.
	FieldArray
	// FieldGroup nests a recursive subform for an object value.
	FieldGroup
)

const longTextThreshold = 50

// Field is one rendered control in a section form.
type Field struct {
	Key         string
	Label       string
	Kind        FieldKind
	Path        Path
	Value       Value
	Placeholder string

	// CTA pairing.
	URLKey   string
	URLPath  Path
	URLValue Value

	// FieldArray payload.
	Items []ArrayItem

	// FieldGroup payload.
	Fields []Field
}

// ArrayItem is one element of an array section. ID is a synthetic stable
// identifier assigned at form-build time; the wire format never carries it.
type ArrayItem struct {
	ID     string
	Index  int
	Path   Path
	Scalar bool
	Value  Value
	Fields []Field
}

// Form is the fully classified, ordered control tree for one section.
type Form struct {
	Section string
	Fields  []Field
}

// BuildForm classifies an arbitrary object value into an ordered control
// tree. It is a total function over the value variant: every key lands in
// exactly one control, and paired CTA keys land in exactly one control
// together.
func BuildForm(section string, root Value) (Form, error) {
	obj, ok := root.Obj()
	if !ok {
		return Form{}, ErrInvalidContent
	}
	return Form{
		Section: section,
		Fields:  buildFields(section, obj, nil),
	}, nil
}

func buildFields(section string, obj *Object, base Path) []Field {
	keys := sortedKeys(obj)
	consumed := make(map[string]bool, len(keys))
	fields := make([]Field, 0, len(keys))

	for _, key := range keys {
		if consumed[key] {
			continue
		}
		val, _ := obj.Get(key)
		field := classify(section, obj, key, val, base, consumed)
		fields = append(fields, field)
	}
	return fields
}

// classify applies the field-kind inference rules in priority order:
// image-like key, long text, paired CTA, array, nested object, scalar.
func classify(section string, obj *Object, key string, val Value, base Path, consumed map[string]bool) Field {
	consumed[key] = true
	path := childPath(base, FieldStep(key))
	label := humanizeKey(key)

	if val.IsScalar() {
		if isImageKey(key) {
			return Field{
				Key:         key,
				Label:       label,
				Kind:        FieldImage,
				Path:        path,
				Value:       val,
				Placeholder: "https://... or upload file",
			}
		}
		if s, ok := val.AsString(); ok && len(s) > longTextThreshold {
			return Field{Key: key, Label: label, Kind: FieldLongText, Path: path, Value: val}
		}
		urlKey := key + "_url"
		if obj.Has(urlKey) {
			consumed[urlKey] = true
			urlVal, _ := obj.Get(urlKey)
			return Field{
				Key:      key,
				Label:    label,
				Kind:     FieldCTA,
				Path:     path,
				Value:    val,
				URLKey:   urlKey,
				URLPath:  childPath(base, FieldStep(urlKey)),
				URLValue: urlVal,
			}
		}
		return Field{Key: key, Label: label, Kind: FieldText, Path: path, Value: val}
	}

	if val.Kind() == KindArray {
		return Field{
			Key:   key,
			Label: label,
			Kind:  FieldArray,
			Path:  path,
			Value: val,
			Items: buildArrayItems(section, val.Items(), path),
		}
	}

	nested, _ := val.Obj()
	return Field{
		Key:    key,
		Label:  label,
		Kind:   FieldGroup,
		Path:   path,
		Value:  val,
		Fields: buildFields(section, nested, path),
	}
}

func buildArrayItems(section string, items []Value, base Path) []ArrayItem {
	out := make([]ArrayItem, len(items))
	for i, item := range items {
		entry := ArrayItem{
			ID:    uuid.NewString(),
			Index: i,
			Path:  childPath(base, IndexStep(i)),
		}
		if obj, ok := item.Obj(); ok {
			entry.Fields = buildFields(section, obj, entry.Path)
		} else if item.Kind() == KindArray {
			entry.Fields = []Field{{
				Key:   "",
				Label: "Items",
				Kind:  FieldArray,
				Path:  entry.Path,
				Value: item,
				Items: buildArrayItems(section, item.Items(), entry.Path),
			}}
		} else {
			entry.Scalar = true
			entry.Value = item
		}
		out[i] = entry
	}
	return out
}

// sortedKeys orders object keys into presentational priority buckets, ties
// broken by declaration order. The ordering never touches the data itself.
func sortedKeys(obj *Object) []string {
	keys := obj.Keys()
	sort.SliceStable(keys, func(a, b int) bool {
		va, _ := obj.Get(keys[a])
		vb, _ := obj.Get(keys[b])
		return keyPriority(keys[a], va) < keyPriority(keys[b], vb)
	})
	return keys
}

func keyPriority(key string, val Value) int {
	if !val.IsScalar() {
		return 100
	}
	switch strings.ToLower(key) {
	case "title", "name", "heading":
		return 1
	case "subtitle", "subject", "role", "price":
		return 2
	case "description", "desc", "quote", "content":
		return 3
	}
	if isImageKey(key) {
		return 4
	}
	return 10
}

func isImageKey(key string) bool {
	k := strings.ToLower(key)
	return strings.Contains(k, "image") ||
		strings.Contains(k, "avatar") ||
		strings.Contains(k, "src") ||
		strings.Contains(k, "icon")
}

func humanizeKey(key string) string {
	if key == "" {
		return ""
	}
	return strcase.ToCase(key, strcase.TitleCase, ' ')
}

func childPath(base Path, step Step) Path {
	p := make(Path, 0, len(base)+1)
	p = append(p, base...)
	return append(p, step)
}
