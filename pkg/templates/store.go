// Package templates serves the SVG symbols the browser expands node and arc
// use elements with.
package templates

import (
	"bytes"
	_ "embed"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

//go:embed default.svg
var defaultTemplate []byte

// Symbols every template must define
var requiredIDs = []string{"node", "arc"}

// Store holds the current template. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	path     string // empty when using the built-in template
	data     []byte
	revision int
}

// NewStore loads the template at path, or the built-in one if path is empty
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if path == "" {
		s.data = defaultTemplate
		s.revision = 1
		return s, nil
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the template file.
// On failure the previous template stays in place.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}
	if err := Validate(data); err != nil {
		return fmt.Errorf("invalid template %s: %w", s.path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.revision++
	return nil
}

// Path returns the template file path, empty for the built-in template
func (s *Store) Path() string {
	return s.path
}

// Bytes returns the current template and its revision
func (s *Store) Bytes() ([]byte, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data, s.revision
}

// Validate checks that data is well-formed XML defining the node and arc symbols
func Validate(data []byte) error {
	found := make(map[string]bool)
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if start, ok := tok.(xml.StartElement); ok {
			for _, a := range start.Attr {
				if a.Name.Local == "id" {
					found[a.Value] = true
				}
			}
		}
	}

	for _, id := range requiredIDs {
		if !found[id] {
			return fmt.Errorf("missing symbol %q", id)
		}
	}
	return nil
}
