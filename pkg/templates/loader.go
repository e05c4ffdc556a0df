package templates

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-domtemplate/pkg/value"
)

// Store holds templates by name.
type Store struct {
	templates map[string]any
	sources   map[string]string
}

// LoadFS walks the provided filesystem and parses JSON/YAML template files.
// When fsys is nil or no template files are present, the returned store is
// empty. A name defined by more than one file is an error.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{
		templates: make(map[string]any),
		sources:   make(map[string]string),
	}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isTemplateFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("templates: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for _, entry := range doc.Entries() {
			name := strings.TrimSpace(entry.Key)
			if name == "" {
				return fmt.Errorf("templates: file %s defines an empty template name", path)
			}
			if previous, exists := store.sources[name]; exists {
				return fmt.Errorf("templates: duplicate template %q (files %s and %s)", name, previous, path)
			}
			store.templates[name] = entry.Value
			store.sources[name] = path
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Template returns the named template.
func (s *Store) Template(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	template, ok := s.templates[name]
	return template, ok
}

// Source returns the file the named template was loaded from.
func (s *Store) Source(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	source, ok := s.sources[name]
	return source, ok
}

// Names returns the sorted template names.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any templates.
func (s *Store) Empty() bool {
	return s == nil || len(s.templates) == 0
}

func parseDocument(data []byte, source string) (*value.Object, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("templates: file %s is empty", source)
	}

	var (
		decoded any
		err     error
	)
	if strings.EqualFold(filepath.Ext(source), ".json") {
		decoded, err = value.DecodeJSON(data)
	} else {
		decoded, err = value.DecodeYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("templates: parse %s: %w", source, err)
	}

	doc, ok := decoded.(*value.Object)
	if !ok {
		return nil, fmt.Errorf("templates: file %s must map template names to templates", source)
	}
	return doc, nil
}

func isTemplateFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
