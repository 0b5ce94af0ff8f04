package content

import (
	"fmt"
	"sync"
)

// SectionHook lets packages register section definitions during init().
type SectionHook func(reg *SectionRegistry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []SectionHook
)

// RegisterSectionHook registers a hook executed against new registries.
func RegisterSectionHook(h SectionHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// SectionRegistry tracks known section definitions and their canonical order.
type SectionRegistry struct {
	mu          sync.RWMutex
	definitions map[string]SectionDefinition
	order       []string
}

// NewSectionRegistry builds a registry pre-loaded with the default sections
// and applies global hooks.
func NewSectionRegistry() *SectionRegistry {
	reg := &SectionRegistry{
		definitions: map[string]SectionDefinition{},
		order:       append([]string(nil), DefaultSectionOrder...),
	}
	for _, def := range DefaultSectionDefinitions() {
		_ = reg.RegisterDefinition(def)
	}
	_ = reg.ApplyHooks()
	return reg
}

// ApplyHooks executes registered section hooks.
func (r *SectionRegistry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDefinition stores section metadata. Keys not already present in
// the canonical order are appended at the end.
func (r *SectionRegistry) RegisterDefinition(def SectionDefinition) error {
	if def.Key == "" {
		return fmt.Errorf("content: section definition key is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, known := r.definitions[def.Key]; !known {
		found := false
		for _, key := range r.order {
			if key == def.Key {
				found = true
				break
			}
		}
		if !found {
			r.order = append(r.order, def.Key)
		}
	}
	r.definitions[def.Key] = def
	return nil
}

// Definition fetches a section definition by key.
func (r *SectionRegistry) Definition(key string) (SectionDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[key]
	return def, ok
}

// Definitions returns all registered definitions in canonical order.
func (r *SectionRegistry) Definitions() []SectionDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]SectionDefinition, 0, len(r.definitions))
	for _, key := range r.order {
		if def, ok := r.definitions[key]; ok {
			defs = append(defs, def)
		}
	}
	return defs
}

// Order returns the canonical section key order.
func (r *SectionRegistry) Order() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}
