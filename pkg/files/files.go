package files

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pyrx/pyrx-cli/pkg/layout"
	"github.com/pyrx/pyrx-cli/pkg/models"
)

const (
	LayoutFileSuffix = "_layout.json"
	ConfigFileName   = ".pyrx.yaml"
)

// requiredDocumentKeys must be present in every loaded layout
var requiredDocumentKeys = []string{"tabs", "panels", "elements", "extensionName"}

var whitespaceRun = regexp.MustCompile(`\s+`)

// DefaultLayoutFileName returns the save file name for an extension, e.g.
// "My Tools" -> "my_tools_layout.json"
func DefaultLayoutFileName(extensionName string) string {
	name := strings.ToLower(whitespaceRun.ReplaceAllString(strings.TrimSpace(extensionName), "_"))
	if name == "" {
		name = "extension"
	}
	return name + LayoutFileSuffix
}

// EncodeDocument renders a layout document as indented JSON
func EncodeDocument(doc *models.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal layout: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeDocument parses a layout document and checks that the required
// top-level keys are present. Structural validation happens in
// layout.Restore.
func DecodeDocument(data []byte) (*models.Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", layout.ErrInvalidDocument, err)
	}
	for _, key := range requiredDocumentKeys {
		value, ok := raw[key]
		if !ok {
			return nil, fmt.Errorf("%w: missing required property %q", layout.ErrInvalidDocument, key)
		}
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return nil, fmt.Errorf("%w: property %q is null", layout.ErrInvalidDocument, key)
		}
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", layout.ErrInvalidDocument, err)
	}
	if doc.Tabs.Len() == 0 {
		return nil, fmt.Errorf("%w: invalid tabs structure", layout.ErrInvalidDocument)
	}
	if len(doc.Panels) == 0 {
		return nil, fmt.Errorf("%w: invalid panels structure", layout.ErrInvalidDocument)
	}
	return &doc, nil
}

// ParseLayout decodes and validates a layout document into a new store
func ParseLayout(data []byte) (*layout.Store, error) {
	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, err
	}
	return layout.Restore(doc)
}

// LoadLayout reads a layout file into a new store. Nothing is returned
// unless the whole file is valid.
func LoadLayout(path string) (*layout.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout %s: %w", path, err)
	}
	store, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout %s: %w", path, err)
	}
	return store, nil
}

// SaveLayout writes the store to path, replacing any previous file in one
// step
func SaveLayout(path string, store *layout.Store) error {
	data, err := EncodeDocument(store.Document())
	if err != nil {
		return err
	}
	if err := WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("failed to write layout %s: %w", path, err)
	}
	return nil
}

// LayoutExists reports whether a layout file is present at path
func LayoutExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteFileAtomic writes data to a temp file next to path and renames it
// into place
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
