package layout

import (
	"sort"

	"github.com/goliatone/go-pystarter/pkg/project"
)

// Layout is immutable after loading and safe for concurrent readers.
type Layout struct {
	Source string
	Title  string
	Intro  string
	Tabs   []Tab
	Fields map[string]Field
}

// Tab is one section of the page.
type Tab struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Notes       string   `json:"notes" yaml:"notes"`
	Snippets    []string `json:"snippets" yaml:"snippets"`
}

// Field describes a single text input.
type Field struct {
	Key         string `json:"-" yaml:"-"`
	Tab         string `json:"tab" yaml:"tab"`
	Order       int    `json:"order" yaml:"order"`
	Label       string `json:"label" yaml:"label"`
	Help        string `json:"help" yaml:"help"`
	Placeholder string `json:"placeholder" yaml:"placeholder"`
	Default     string `json:"default" yaml:"default"`
}

// Tab returns the tab with the given id.
func (l *Layout) Tab(id string) (Tab, bool) {
	if l == nil {
		return Tab{}, false
	}
	for _, tab := range l.Tabs {
		if tab.ID == id {
			return tab, true
		}
	}
	return Tab{}, false
}

// Field returns the configuration for key.
func (l *Layout) Field(key string) (Field, bool) {
	if l == nil {
		return Field{}, false
	}
	field, ok := l.Fields[key]
	return field, ok
}

// FieldsFor lists the fields placed on a tab ordered by Order, then key
// position in project.FieldKeys.
func (l *Layout) FieldsFor(tabID string) []Field {
	if l == nil {
		return nil
	}
	position := make(map[string]int, len(l.Fields))
	for idx, key := range project.FieldKeys() {
		position[key] = idx
	}

	var out []Field
	for _, field := range l.Fields {
		if field.Tab == tabID {
			out = append(out, field)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return position[out[i].Key] < position[out[j].Key]
	})
	return out
}

// DefaultTab is the first tab, or "" for an empty layout.
func (l *Layout) DefaultTab() string {
	if l == nil || len(l.Tabs) == 0 {
		return ""
	}
	return l.Tabs[0].ID
}

// Defaults returns project.DefaultFields overridden by any layout defaults.
func (l *Layout) Defaults() project.Fields {
	out := project.DefaultFields()
	if l == nil {
		return out
	}
	for key, field := range l.Fields {
		if field.Default != "" {
			out.Set(key, field.Default)
		}
	}
	return out
}
