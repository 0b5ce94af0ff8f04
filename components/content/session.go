package content

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// SessionState tracks the admin editing flow.
type SessionState int

const (
	// StateLoading means the section list has not arrived yet.
	StateLoading SessionState = iota
	// StateReady means a buffer is available for editing.
	StateReady
	// StateSaving means a save is in flight and the save control is disabled.
	StateSaving
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSaving:
		return "saving"
	}
	return "unknown"
}

// ErrSaveInFlight is returned when a save is requested while one is running.
var ErrSaveInFlight = errors.New("content: save already in flight")

const noticeTTL = 3 * time.Second

// EditorSession holds one admin session's working state: the cached section
// list, the current selection, and the edit buffer. The buffer is a deep
// copy of the selected section's content and diverges from the canonical
// copy until a save succeeds; switching sections replaces it wholesale.
type EditorSession struct {
	mu sync.Mutex

	svc      *Service
	state    SessionState
	sections []ContentSection
	selected string
	buffer   Value

	// saveSeq increments on every selection change so a save finishing
	// after a switch can tell its result is stale.
	saveSeq int

	notice      string
	noticeUntil time.Time
	clock       func() time.Time
}

// NewEditorSession loads the section list and selects the first section in
// canonical order. An empty store yields a Ready session without selection;
// the UI renders the empty state gracefully.
func NewEditorSession(ctx context.Context, svc *Service) (*EditorSession, error) {
	if svc == nil {
		return nil, errors.New("content: editor session requires a service")
	}
	s := &EditorSession{svc: svc, state: StateLoading, clock: time.Now}
	sections, err := svc.List(ctx)
	if err != nil {
		return nil, err
	}
	s.sections = sections
	s.state = StateReady
	if len(sections) > 0 {
		s.selected = sections[0].Key
		s.buffer = sections[0].Content.Clone()
	}
	return s, nil
}

// State reports the current session state.
func (s *EditorSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Sections returns the session's cached canonical section list.
func (s *EditorSession) Sections() []ContentSection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ContentSection(nil), s.sections...)
}

// Selected returns the key of the section being edited.
func (s *EditorSession) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// SelectedSection returns the canonical copy of the selected section.
func (s *EditorSession) SelectedSection() (ContentSection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(s.selected)
}

// Buffer returns the current edit buffer.
func (s *EditorSession) Buffer() Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// Select switches the edited section. The previous buffer is discarded
// without warning and replaced with a deep copy of the new section's
// canonical content.
func (s *EditorSession) Select(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	section, ok := s.findLocked(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, key)
	}
	s.selected = key
	s.buffer = section.Content.Clone()
	s.saveSeq++
	s.notice = ""
	return nil
}

// Edit replaces one value inside the buffer, leaving siblings untouched.
func (s *EditorSession) Edit(path Path, v Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == "" {
		return errors.New("content: no section selected")
	}
	next, err := s.buffer.SetPath(path, v)
	if err != nil {
		return err
	}
	s.buffer = next
	return nil
}

// RemoveAt splices an element or field out of the buffer.
func (s *EditorSession) RemoveAt(path Path) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == "" {
		return errors.New("content: no section selected")
	}
	next, err := s.buffer.DeletePath(path)
	if err != nil {
		return err
	}
	s.buffer = next
	return nil
}

// AddItem appends a synthesized element to the array addressed by path.
func (s *EditorSession) AddItem(path Path, reg *TemplateRegistry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == "" {
		return errors.New("content: no section selected")
	}
	arr, ok := s.buffer.At(path)
	if !ok || arr.Kind() != KindArray {
		return fmt.Errorf("content: path %s does not address an array", path)
	}
	field := ""
	if len(path) > 0 {
		field = path[len(path)-1].Key
	}
	item := NewArrayItem(s.selected, field, arr.Items(), reg)
	next, err := s.buffer.AppendPath(path, item)
	if err != nil {
		return err
	}
	s.buffer = next
	return nil
}

// Save persists the buffer through the service. On success the canonical
// section is patched in place with the stored content and fresh
// last_updated, and a transient success notice is raised. On failure the
// buffer is left exactly as it was so the user can retry.
//
// A save that completes after the selection has changed discards its local
// effect; the server write still happened and the next load reflects it.
func (s *EditorSession) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.selected == "" {
		s.mu.Unlock()
		return errors.New("content: no section selected")
	}
	if s.state == StateSaving {
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	key := s.selected
	seq := s.saveSeq
	buffer := s.buffer
	s.state = StateSaving
	s.mu.Unlock()

	section, err := s.svc.Update(ctx, key, buffer)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateReady
	if err != nil {
		return err
	}
	if s.saveSeq != seq || s.selected != key {
		// Stale result: the user moved on while the save was in flight.
		return nil
	}
	for i := range s.sections {
		if s.sections[i].Key == key {
			s.sections[i].Content = section.Content
			s.sections[i].LastUpdated = section.LastUpdated
			break
		}
	}
	s.notice = "Changes saved successfully!"
	s.noticeUntil = s.clock().Add(noticeTTL)
	return nil
}

// Notice returns the transient success message, or "" once it has expired.
func (s *EditorSession) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notice == "" || s.clock().After(s.noticeUntil) {
		return ""
	}
	return s.notice
}

func (s *EditorSession) findLocked(key string) (ContentSection, bool) {
	for _, section := range s.sections {
		if section.Key == key {
			return section, true
		}
	}
	return ContentSection{}, false
}

// SessionRegistry is a concurrency-safe map of editor sessions keyed by
// session ID, one per signed-in admin tab.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*EditorSession
}

// NewSessionRegistry creates an empty session registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: map[string]*EditorSession{}}
}

// Get returns the session for an ID.
func (r *SessionRegistry) Get(id string) (*EditorSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// GetOrCreate returns the existing session or loads a fresh one.
func (r *SessionRegistry) GetOrCreate(ctx context.Context, id string, svc *Service) (*EditorSession, error) {
	if id == "" {
		return nil, errors.New("content: session id is required")
	}
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		return s, nil
	}
	s, err := NewEditorSession(ctx, svc)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[id]; ok {
		return existing, nil
	}
	r.sessions[id] = s
	return s, nil
}

// Drop discards a session, typically on logout.
func (r *SessionRegistry) Drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
