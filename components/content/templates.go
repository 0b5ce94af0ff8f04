package content

import (
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	templateManifestVersionV1 = "1"
	// TemplateManifestVersion exposes the current manifest format version for tooling.
	TemplateManifestVersion = templateManifestVersionV1
)

// TemplateRegistry maps (section key, array field name) to the default shape
// of a brand-new item. It is only consulted when an array is empty and there
// is no sibling element to clone from.
type TemplateRegistry struct {
	mu        sync.RWMutex
	templates map[string]map[string]Value
}

// NewTemplateRegistry builds a registry pre-loaded with the built-in item
// templates for the known sections.
func NewTemplateRegistry() *TemplateRegistry {
	reg := &TemplateRegistry{templates: map[string]map[string]Value{}}
	for section, fields := range defaultItemTemplates() {
		for field, tpl := range fields {
			_ = reg.Register(section, field, tpl)
		}
	}
	return reg
}

// Register stores a new-item template for a section/field pair.
func (r *TemplateRegistry) Register(section, field string, tpl Value) error {
	if section == "" || field == "" {
		return fmt.Errorf("content: template registration requires section and field keys")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.templates[section] == nil {
		r.templates[section] = map[string]Value{}
	}
	r.templates[section][field] = tpl
	return nil
}

// Template fetches the template for a section/field pair.
func (r *TemplateRegistry) Template(section, field string) (Value, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fields, ok := r.templates[section]
	if !ok {
		return Value{}, false
	}
	tpl, ok := fields[field]
	return tpl, ok
}

func defaultItemTemplates() map[string]map[string]Value {
	return map[string]map[string]Value{
		"hero": {
			"slides": MustParseValue(`{"title": "New Slide", "subtitle": "Subtitle", "cta_primary": "Button", "cta_secondary": "Button", "style": "light-mode", "image_url": ""}`),
		},
		"features": {
			"items": MustParseValue(`{"title": "New Feature", "desc": "Description", "icon": "Star"}`),
		},
		"how_it_works": {
			"steps": MustParseValue(`{"step": 1, "title": "New Step", "desc": "Description"}`),
		},
		"testimonials": {
			"items": MustParseValue(`{"name": "New User", "role": "Role", "quote": "Quote", "avatar": ""}`),
		},
	}
}

// stringListKeys are field names that imply a list of plain strings, so the
// final add-item fallback synthesizes a string instead of an object.
var stringListKeys = map[string]bool{
	"features": true,
	"items":    true,
	"list":     true,
}

// NewArrayItem synthesizes the element appended by "add item". In order:
// clone the shape of the first existing element with leaf strings blanked,
// else consult the template registry, else fall back to "New Item".
func NewArrayItem(section, field string, items []Value, reg *TemplateRegistry) Value {
	if len(items) > 0 {
		return blankClone(items[0])
	}
	if reg != nil {
		if tpl, ok := reg.Template(section, field); ok {
			return tpl.Clone()
		}
	}
	if stringListKeys[field] {
		return String("New Item")
	}
	fallback := NewObject()
	fallback.Set("title", String("New Item"))
	fallback.Set("description", String(""))
	return ObjectValue(fallback)
}

// blankClone copies a value's shape with every leaf string emptied. Numbers,
// booleans, and nulls keep their values so shaped fields like step counters
// stay usable.
func blankClone(v Value) Value {
	switch v.Kind() {
	case KindString:
		return String("")
	case KindArray:
		items := v.Items()
		out := make([]Value, len(items))
		for i, item := range items {
			out[i] = blankClone(item)
		}
		return Array(out...)
	case KindObject:
		obj, _ := v.Obj()
		out := NewObject()
		for _, key := range obj.Keys() {
			child, _ := obj.Get(key)
			out.Set(key, blankClone(child))
		}
		return ObjectValue(out)
	default:
		return v
	}
}

// TemplateManifestDocument models a YAML manifest registering custom
// new-item templates for deployments with bespoke sections.
type TemplateManifestDocument struct {
	Version   string             `json:"version" yaml:"version"`
	Name      string             `json:"name,omitempty" yaml:"name,omitempty"`
	Templates []ManifestTemplate `json:"templates" yaml:"templates"`
	Source    string             `json:"-" yaml:"-"`
}

// ManifestTemplate describes a single template entry within a manifest.
type ManifestTemplate struct {
	Section string    `json:"section" yaml:"section"`
	Field   string    `json:"field" yaml:"field"`
	Item    yaml.Node `json:"item" yaml:"item"`
}

// LoadManifestFile reads a manifest from disk, registers it against the
// registry, and returns the document.
func (r *TemplateRegistry) LoadManifestFile(path string) (*TemplateManifestDocument, error) {
	doc, err := ReadTemplateManifest(path)
	if err != nil {
		return nil, err
	}
	if err := r.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifestDocument registers every template from a decoded manifest.
func (r *TemplateRegistry) LoadManifestDocument(doc *TemplateManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("content: manifest document is nil")
	}
	for _, tpl := range doc.Templates {
		item, err := yamlNodeToValue(&tpl.Item)
		if err != nil {
			return fmt.Errorf("content: template %s.%s from %s: %w", tpl.Section, tpl.Field, doc.Source, err)
		}
		if err := r.Register(tpl.Section, tpl.Field, item); err != nil {
			return fmt.Errorf("content: register template %s.%s from %s: %w", tpl.Section, tpl.Field, doc.Source, err)
		}
	}
	return nil
}

// ReadTemplateManifest loads a manifest file from disk without registering it.
func ReadTemplateManifest(path string) (*TemplateManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("content: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeTemplateManifest(f)
	if err != nil {
		return nil, fmt.Errorf("content: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeTemplateManifest reads a manifest from any reader.
func DecodeTemplateManifest(r io.Reader) (*TemplateManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc TemplateManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("content: manifest is empty")
		}
		return nil, fmt.Errorf("content: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *TemplateManifestDocument) Validate() error {
	if doc.Version != templateManifestVersionV1 {
		return fmt.Errorf("content: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Templates))
	for idx, tpl := range doc.Templates {
		if tpl.Section == "" {
			return fmt.Errorf("content: manifest template at index %d is missing section", idx)
		}
		if tpl.Field == "" {
			return fmt.Errorf("content: manifest template %s at index %d is missing field", tpl.Section, idx)
		}
		key := tpl.Section + "." + tpl.Field
		if _, exists := seen[key]; exists {
			return fmt.Errorf("content: manifest duplicates template %s", key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func (doc *TemplateManifestDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = templateManifestVersionV1
	}
}

// yamlNodeToValue converts a decoded YAML node into a Value, preserving
// mapping key order the same way JSON decoding does.
func yamlNodeToValue(n *yaml.Node) (Value, error) {
	if n == nil || n.Kind == 0 {
		return Value{}, fmt.Errorf("item is required")
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return yamlNodeToValue(n.Content[0])
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			val, err := yamlNodeToValue(n.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			obj.Set(n.Content[i].Value, val)
		}
		return ObjectValue(obj), nil
	case yaml.SequenceNode:
		items := make([]Value, len(n.Content))
		for i, child := range n.Content {
			val, err := yamlNodeToValue(child)
			if err != nil {
				return Value{}, err
			}
			items[i] = val
		}
		return Array(items...), nil
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return Null(), nil
		case "!!bool":
			return Bool(n.Value == "true"), nil
		case "!!int", "!!float":
			return Number(n.Value), nil
		default:
			return String(n.Value), nil
		}
	}
	return Value{}, fmt.Errorf("unsupported YAML node kind %d", n.Kind)
}
