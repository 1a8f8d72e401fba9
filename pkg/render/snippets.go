package render

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-pystarter/pkg/project"
	rendertemplate "github.com/goliatone/go-pystarter/pkg/render/template"
	gotemplate "github.com/goliatone/go-pystarter/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// Snippet kinds produced for every project.
const (
	SnippetFolderTree  = "folder_tree"
	SnippetShellScript = "shell_script"
	SnippetManifest    = "manifest"
	SnippetDocsConfig  = "docs_config"
)

// Snippet describes one generated text block.
type Snippet struct {
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Filename string `json:"filename,omitempty"`
	// Language is the syntax highlighting hint for presenters.
	Language string `json:"language"`
	Template string `json:"-"`
}

// DefaultSnippets lists the built-in snippets in display order.
func DefaultSnippets() []Snippet {
	return []Snippet{
		{Kind: SnippetFolderTree, Title: "Folder structure", Language: "text", Template: "templates/folder_tree.tpl"},
		{Kind: SnippetShellScript, Title: "Shell commands", Language: "bash", Template: "templates/shell_script.tpl"},
		{Kind: SnippetManifest, Title: "pyproject.toml", Filename: "pyproject.toml", Language: "toml", Template: "templates/manifest.tpl"},
		{Kind: SnippetDocsConfig, Title: "mkdocs.yml", Filename: "mkdocs.yml", Language: "yaml", Template: "templates/docs_config.tpl"},
	}
}

// TemplatesFS exposes the embedded snippet templates.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// Output holds the four generated texts.
type Output struct {
	FolderTree  string `json:"folder_tree"`
	ShellScript string `json:"shell_script"`
	Manifest    string `json:"manifest"`
	DocsConfig  string `json:"docs_config"`
}

// Get returns the text for a snippet kind.
func (o Output) Get(kind string) (string, bool) {
	switch kind {
	case SnippetFolderTree:
		return o.FolderTree, true
	case SnippetShellScript:
		return o.ShellScript, true
	case SnippetManifest:
		return o.Manifest, true
	case SnippetDocsConfig:
		return o.DocsConfig, true
	}
	return "", false
}

func (o *Output) set(kind, content string) bool {
	switch kind {
	case SnippetFolderTree:
		o.FolderTree = content
	case SnippetShellScript:
		o.ShellScript = content
	case SnippetManifest:
		o.Manifest = content
	case SnippetDocsConfig:
		o.DocsConfig = content
	default:
		return false
	}
	return true
}

// SnippetOption configures a SnippetRenderer.
type SnippetOption func(*snippetConfig)

type snippetConfig struct {
	templates fs.FS
	renderer  rendertemplate.TemplateRenderer
	snippets  []Snippet
}

// WithSnippetTemplatesFS swaps the template bundle. Paths must match the
// Template field of each snippet.
func WithSnippetTemplatesFS(files fs.FS) SnippetOption {
	return func(cfg *snippetConfig) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithSnippetTemplateRenderer injects a template engine.
func WithSnippetTemplateRenderer(renderer rendertemplate.TemplateRenderer) SnippetOption {
	return func(cfg *snippetConfig) {
		if renderer != nil {
			cfg.renderer = renderer
		}
	}
}

// WithSnippetTemplate points a snippet kind at another template path.
func WithSnippetTemplate(kind, path string) SnippetOption {
	return func(cfg *snippetConfig) {
		for idx := range cfg.snippets {
			if cfg.snippets[idx].Kind == kind {
				cfg.snippets[idx].Template = path
			}
		}
	}
}

// SnippetRenderer interpolates a project.Spec into every snippet template.
// It holds no per-call state and is safe for concurrent use.
type SnippetRenderer struct {
	templates rendertemplate.TemplateRenderer
	snippets  []Snippet
}

// NewSnippetRenderer builds a renderer over the embedded templates unless
// options say otherwise.
func NewSnippetRenderer(options ...SnippetOption) (*SnippetRenderer, error) {
	cfg := snippetConfig{
		templates: TemplatesFS(),
		snippets:  DefaultSnippets(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.renderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithName("snippets"),
			gotemplate.WithFS(cfg.templates),
			gotemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("render: configure snippet templates: %w", err)
		}
		renderer = engine
	}

	return &SnippetRenderer{templates: renderer, snippets: cfg.snippets}, nil
}

// Snippets returns a copy of the configured snippet descriptors.
func (r *SnippetRenderer) Snippets() []Snippet {
	out := make([]Snippet, len(r.snippets))
	copy(out, r.snippets)
	return out
}

// Render substitutes spec into each template. Any string is accepted;
// errors only come from the template engine.
func (r *SnippetRenderer) Render(ctx context.Context, spec project.Spec) (Output, error) {
	if r == nil || r.templates == nil {
		return Output{}, fmt.Errorf("render: snippet renderer is nil")
	}

	var out Output
	for _, snippet := range r.snippets {
		if err := ctx.Err(); err != nil {
			return Output{}, err
		}
		content, err := r.templates.RenderTemplate(snippet.Template, spec.Values())
		if err != nil {
			return Output{}, fmt.Errorf("render: snippet %q: %w", snippet.Kind, err)
		}
		if !out.set(snippet.Kind, content) {
			return Output{}, fmt.Errorf("render: unknown snippet kind %q", snippet.Kind)
		}
	}
	return out, nil
}

// Panel pairs a snippet with its rendered text.
type Panel struct {
	Snippet
	Content string `json:"content"`
}

// Panels returns the rendered text for the requested kinds, skipping kinds
// that are not part of snippets.
func (o Output) Panels(snippets []Snippet, kinds ...string) []Panel {
	byKind := make(map[string]Snippet, len(snippets))
	for _, snippet := range snippets {
		byKind[snippet.Kind] = snippet
	}
	if len(kinds) == 0 {
		for _, snippet := range snippets {
			kinds = append(kinds, snippet.Kind)
		}
	}

	panels := make([]Panel, 0, len(kinds))
	for _, kind := range kinds {
		snippet, ok := byKind[strings.TrimSpace(kind)]
		if !ok {
			continue
		}
		content, _ := o.Get(snippet.Kind)
		panels = append(panels, Panel{Snippet: snippet, Content: content})
	}
	return panels
}
