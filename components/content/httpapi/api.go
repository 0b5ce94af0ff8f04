package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	gocommand "github.com/goliatone/go-command"

	content "github.com/JasirTK/shopifysmartpromo/components/content"
	"github.com/JasirTK/shopifysmartpromo/components/content/commands"
	"github.com/JasirTK/shopifysmartpromo/components/content/queries"
)

// Executor is the command/query surface transports get to call.
type Executor interface {
	Update(ctx context.Context, input commands.UpdateSectionInput) error
	Seed(ctx context.Context, input commands.SeedContentInput) error
	Refresh(ctx context.Context, input commands.RefreshContentInput) error
	Section(ctx context.Context, key string) (content.ContentSection, error)
	Sections(ctx context.Context) ([]content.ContentSection, error)
}

// CommandExecutor implements Executor on top of shared commands and queries.
type CommandExecutor struct {
	UpdateCmd  gocommand.Commander[commands.UpdateSectionInput]
	SeedCmd    gocommand.Commander[commands.SeedContentInput]
	RefreshCmd gocommand.Commander[commands.RefreshContentInput]
	SectionQ   gocommand.Querier[string, content.ContentSection]
	ListQ      gocommand.Querier[queries.ListSectionsInput, []content.ContentSection]
}

func (e *CommandExecutor) Update(ctx context.Context, input commands.UpdateSectionInput) error {
	if e.UpdateCmd == nil {
		return errors.New("httpapi: update command not configured")
	}
	return e.UpdateCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Seed(ctx context.Context, input commands.SeedContentInput) error {
	if e.SeedCmd == nil {
		return errors.New("httpapi: seed command not configured")
	}
	return e.SeedCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshContentInput) error {
	if e.RefreshCmd == nil {
		return errors.New("httpapi: refresh command not configured")
	}
	return e.RefreshCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Section(ctx context.Context, key string) (content.ContentSection, error) {
	if e.SectionQ == nil {
		return content.ContentSection{}, errors.New("httpapi: section query not configured")
	}
	return e.SectionQ.Query(ctx, key)
}

func (e *CommandExecutor) Sections(ctx context.Context) ([]content.ContentSection, error) {
	if e.ListQ == nil {
		return nil, errors.New("httpapi: list query not configured")
	}
	return e.ListQ.Query(ctx, queries.ListSectionsInput{})
}

// sectionUpdatePayload mirrors the PUT body: the new content wrapped in an
// envelope so future metadata fields do not break clients.
type sectionUpdatePayload struct {
	Content content.Value `json:"content"`
}

// Handlers exposes plain net/http endpoints backed by the executor. The
// fiber/go-router mount wraps these same semantics; Handlers exists for
// embedding into stdlib servers and for tests.
type Handlers struct {
	API      Executor
	Uploader content.Uploader
	// MaxUploadBytes caps multipart uploads; zero means 8 MiB.
	MaxUploadBytes int64
}

func (h *Handlers) HandleGetAllContent(w http.ResponseWriter, r *http.Request) {
	sections, err := h.API.Sections(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, sections)
}

func (h *Handlers) HandleGetContent(w http.ResponseWriter, r *http.Request, key string) {
	section, err := h.API.Section(r.Context(), key)
	if err != nil {
		if errors.Is(err, content.ErrSectionNotFound) {
			respondError(w, http.StatusNotFound, err)
			return
		}
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, section)
}

func (h *Handlers) HandleUpdateContent(w http.ResponseWriter, r *http.Request, key string) {
	var payload sectionUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	input := commands.UpdateSectionInput{Key: key, Content: payload.Content}
	if err := h.API.Update(r.Context(), input); err != nil {
		if errors.Is(err, content.ErrInvalidContent) {
			respondError(w, http.StatusUnprocessableEntity, err)
			return
		}
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	section, err := h.API.Section(r.Context(), key)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, section)
}

func (h *Handlers) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if h.Uploader == nil {
		respondError(w, http.StatusNotImplemented, errors.New("uploads are not configured"))
		return
	}
	max := h.MaxUploadBytes
	if max <= 0 {
		max = 8 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, max)
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	url, err := h.Uploader.Save(r.Context(), header.Filename, data)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"detail": err.Error()})
}
