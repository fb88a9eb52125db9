package layout

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store holds parsed layouts keyed by id.
type Store struct {
	layouts map[string]Layout
}

// LoadFS walks fsys and parses every JSON/YAML layout document. When fsys is
// nil or holds no layout files, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{layouts: make(map[string]Layout)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isLayoutFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("layout: read %s: %w", path, err)
		}
		return store.add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse reads a single layout document.
func Parse(data []byte, source string) (*Store, error) {
	store := &Store{layouts: make(map[string]Layout)}
	if err := store.add(data, source); err != nil {
		return nil, err
	}
	return store, nil
}

// Layout returns the layout registered under id.
func (s *Store) Layout(id string) (Layout, bool) {
	if s == nil {
		return Layout{}, false
	}
	l, ok := s.layouts[strings.TrimSpace(id)]
	return l, ok
}

// IDs lists layout ids in lexical order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.layouts))
	for id := range s.layouts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any layouts.
func (s *Store) Empty() bool {
	return s == nil || len(s.layouts) == 0
}

func (s *Store) add(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	for rawID, raw := range doc.Layouts {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return fmt.Errorf("layout: file %s defines an empty layout id", source)
		}
		if _, exists := s.layouts[id]; exists {
			return fmt.Errorf("layout: duplicate layout %q (file %s)", id, source)
		}
		if err := validateNode(raw.Root, id, source, "root"); err != nil {
			return err
		}
		s.layouts[id] = Layout{
			ID:     id,
			Title:  strings.TrimSpace(raw.Title),
			Model:  strings.TrimSpace(raw.Model),
			Source: source,
			root:   raw.Root,
		}
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("layout: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("layout: parse %s: %w", source, err)
	}
	return doc, nil
}

func validateNode(n NodeConfig, id, source, where string) error {
	if strings.TrimSpace(n.Widget) == "" {
		return fmt.Errorf("layout: %q (file %s) node %s has no widget", id, source, where)
	}
	for _, role := range n.Roles {
		if _, ok := parseRole(role); !ok {
			return fmt.Errorf("layout: %q (file %s) node %s has unknown role %q", id, source, where, role)
		}
	}
	switch strings.ToLower(strings.TrimSpace(n.Orientation)) {
	case "", "vertical", "horizontal":
	default:
		return fmt.Errorf("layout: %q (file %s) node %s has unknown orientation %q", id, source, where, n.Orientation)
	}
	for idx, child := range n.Children {
		if err := validateNode(child, id, source, fmt.Sprintf("%s.children[%d]", where, idx)); err != nil {
			return err
		}
	}
	return nil
}

func isLayoutFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
