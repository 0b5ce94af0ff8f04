package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigValidator validates section content against its optional schema.
type ConfigValidator interface {
	Validate(def SectionDefinition, content Value) error
}

// JSONSchemaValidator compiles section schemas and validates content values.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Validate ensures the provided content satisfies the section schema.
// Sections without a schema always pass.
func (v *JSONSchemaValidator) Validate(def SectionDefinition, content Value) error {
	if len(def.Schema) == 0 {
		return nil
	}
	schema, err := v.schemaFor(def)
	if err != nil {
		return err
	}
	if err := schema.Validate(content.Interface()); err != nil {
		return fmt.Errorf("content: section %s failed validation: %w", def.Key, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(def SectionDefinition) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[def.Key]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(def.Schema)
	if err != nil {
		return nil, fmt.Errorf("content: marshal schema %s: %w", def.Key, err)
	}
	compiler := jsonschema.NewCompiler()
	name := def.Key + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("content: load schema %s: %w", def.Key, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("content: compile schema %s: %w", def.Key, err)
	}
	v.mu.Lock()
	v.compiled[def.Key] = compiled
	v.mu.Unlock()
	return compiled, nil
}

type noopConfigValidator struct{}

func (noopConfigValidator) Validate(SectionDefinition, Value) error { return nil }
