package layout

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pystarter/pkg/project"
)

type documentFile struct {
	Title  string           `json:"title" yaml:"title"`
	Intro  string           `json:"intro" yaml:"intro"`
	Tabs   []Tab            `json:"tabs" yaml:"tabs"`
	Fields map[string]Field `json:"fields" yaml:"fields"`
}

// LoadFile parses a layout document from disk.
func LoadFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS parses the layout document at path inside fsys.
func LoadFS(fsys fs.FS, path string) (*Layout, error) {
	if fsys == nil {
		return nil, fmt.Errorf("layout: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("layout: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a JSON or YAML layout and validates it.
func Parse(data []byte, source string) (*Layout, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}
	return normaliseLayout(doc, source)
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("layout: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("layout: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseLayout(doc documentFile, source string) (*Layout, error) {
	if len(doc.Tabs) == 0 {
		return nil, fmt.Errorf("layout: file %s defines no tabs", source)
	}

	out := &Layout{
		Source: source,
		Title:  strings.TrimSpace(doc.Title),
		Intro:  sanitizeHelp(doc.Intro),
		Tabs:   make([]Tab, 0, len(doc.Tabs)),
		Fields: make(map[string]Field, len(doc.Fields)),
	}

	seen := make(map[string]struct{}, len(doc.Tabs))
	for idx, raw := range doc.Tabs {
		id := strings.TrimSpace(raw.ID)
		if id == "" {
			return nil, fmt.Errorf("layout: file %s tab at index %d has an empty id", source, idx)
		}
		if _, exists := seen[id]; exists {
			return nil, fmt.Errorf("layout: file %s defines duplicate tab %q", source, id)
		}
		seen[id] = struct{}{}

		tab := Tab{
			ID:          id,
			Title:       strings.TrimSpace(raw.Title),
			Description: sanitizeHelp(raw.Description),
			Notes:       sanitizeHelp(raw.Notes),
		}
		if tab.Title == "" {
			tab.Title = id
		}
		for _, kind := range raw.Snippets {
			if trimmed := strings.TrimSpace(kind); trimmed != "" {
				tab.Snippets = append(tab.Snippets, trimmed)
			}
		}
		out.Tabs = append(out.Tabs, tab)
	}

	known := make(map[string]struct{}, len(project.FieldKeys()))
	for _, key := range project.FieldKeys() {
		known[key] = struct{}{}
	}

	for rawKey, raw := range doc.Fields {
		key := strings.TrimSpace(rawKey)
		if _, ok := known[key]; !ok {
			return nil, fmt.Errorf("layout: file %s defines unknown field %q", source, rawKey)
		}
		tabID := strings.TrimSpace(raw.Tab)
		if _, ok := seen[tabID]; !ok {
			return nil, fmt.Errorf("layout: file %s field %q references unknown tab %q", source, key, raw.Tab)
		}
		field := raw
		field.Key = key
		field.Tab = tabID
		field.Label = strings.TrimSpace(raw.Label)
		if field.Label == "" {
			field.Label = key
		}
		field.Help = sanitizeHelp(raw.Help)
		out.Fields[key] = field
	}

	return out, nil
}
