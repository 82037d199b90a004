package images

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists recipe images uploaded as base64 data-URIs.
type Store struct {
	dir string
}

// NewStore creates a Store writing into dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// IsDataURI reports whether the value looks like an image data-URI rather
// than a reference to an already stored file.
func IsDataURI(value string) bool {
	return strings.HasPrefix(value, "data:image")
}

// SaveDataURI decodes a "data:image/<subtype>;base64,<payload>" value and
// writes it to a uniquely named file whose extension is taken from the MIME
// subtype. It returns the stored file name.
func (s *Store) SaveDataURI(dataURI string) (string, error) {
	if !IsDataURI(dataURI) {
		return "", fmt.Errorf("value is not an image data-URI")
	}

	meta, payload, found := strings.Cut(dataURI, ";base64,")
	if !found {
		return "", fmt.Errorf("image data-URI is missing the base64 marker")
	}
	ext := meta[strings.LastIndex(meta, "/")+1:]
	if ext == "" {
		return "", fmt.Errorf("image data-URI has no MIME subtype")
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("failed to decode image payload: %w", err)
	}

	name := uuid.New().String() + "." + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return name, nil
}
