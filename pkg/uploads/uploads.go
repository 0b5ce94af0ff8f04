package uploads

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Allowed upload extensions. Everything here renders in an <img> tag.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".avif": true,
}

// ErrUnsupportedType is returned for files outside the image allow-list.
var ErrUnsupportedType = errors.New("uploads: unsupported file type")

// Store saves uploaded assets under a directory and serves them back by URL.
type Store struct {
	dir       string
	publicURL string
	maxBytes  int64
}

// Option configures the store.
type Option func(*Store)

// WithMaxBytes caps accepted file sizes.
func WithMaxBytes(n int64) Option {
	return func(s *Store) { s.maxBytes = n }
}

// NewStore creates the upload directory if needed. publicURL is the URL
// prefix the directory is served under, e.g. "/static/uploads".
func NewStore(dir, publicURL string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	s := &Store{
		dir:       dir,
		publicURL: strings.TrimRight(publicURL, "/"),
		maxBytes:  8 << 20,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Save writes the file under a uuid-prefixed sanitized name and returns its
// public URL. The prefix keeps repeated uploads of the same filename from
// silently overwriting each other.
func (s *Store) Save(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("uploads: file exceeds %d bytes", s.maxBytes)
	}
	name := sanitizeFilename(filename)
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	stored := uuid.NewString() + "_" + name
	if err := os.WriteFile(filepath.Join(s.dir, stored), data, 0o644); err != nil {
		return "", fmt.Errorf("saving upload: %w", err)
	}
	return s.publicURL + "/" + stored, nil
}

// Dir returns the directory assets are stored in, for static mounting.
func (s *Store) Dir() string { return s.dir }

// sanitizeFilename strips path components and replaces characters that would
// need escaping in URLs.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		out = "upload"
	}
	return out
}
