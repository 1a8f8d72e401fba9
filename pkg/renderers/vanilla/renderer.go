package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-pystarter/pkg/layout"
	"github.com/goliatone/go-pystarter/pkg/naming"
	"github.com/goliatone/go-pystarter/pkg/project"
	"github.com/goliatone/go-pystarter/pkg/render"
	rendertemplate "github.com/goliatone/go-pystarter/pkg/render/template"
	gotemplate "github.com/goliatone/go-pystarter/pkg/render/template/gotemplate"
)

const pageTemplate = "templates/page.tmpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheetURL    string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheetURL links a stylesheet from the page head. An empty url
// drops the link.
func WithStylesheetURL(url string) Option {
	return func(cfg *config) {
		cfg.stylesheetURL = url
	}
}

// Renderer produces the full HTML form page. Field values and snippet text
// are escaped; layout help text is emitted as already sanitised markup.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	stylesheet string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:    TemplatesFS(),
		stylesheetURL: DefaultStylesheetURL,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithName("vanilla"),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, stylesheet: cfg.stylesheetURL}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, view render.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := r.templates.RenderTemplate(pageTemplate, buildPage(view, options, r.stylesheet))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type pageData struct {
	Title        string    `json:"title"`
	Intro        string    `json:"intro"`
	Action       string    `json:"action"`
	Stylesheet   string    `json:"stylesheet"`
	ThemeName    string    `json:"theme_name"`
	ThemeVariant string    `json:"theme_variant"`
	ThemeStyle   string    `json:"theme_style"`
	Tabs         []pageTab `json:"tabs"`
}

type pageTab struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Notes       string         `json:"notes"`
	Active      bool           `json:"active"`
	Fields      []pageField    `json:"fields"`
	Panels      []render.Panel `json:"panels"`
}

type pageField struct {
	Key         string   `json:"key"`
	Label       string   `json:"label"`
	Help        string   `json:"help"`
	Placeholder string   `json:"placeholder"`
	Value       string   `json:"value"`
	Note        string   `json:"note"`
	Warnings    []string `json:"warnings"`
}

func buildPage(view render.View, options render.RenderOptions, stylesheet string) pageData {
	l := view.Layout
	if l == nil {
		l = layout.Default()
	}

	active := options.Tab
	if _, ok := l.Tab(active); !ok {
		active = l.DefaultTab()
	}

	page := pageData{
		Title:      l.Title,
		Intro:      l.Intro,
		Action:     options.Action,
		Stylesheet: stylesheet,
		Tabs:       []pageTab{},
	}
	if cfg := options.Theme; cfg != nil {
		page.ThemeName = cfg.Theme
		page.ThemeVariant = cfg.Variant
		page.ThemeStyle = render.CSSVarsStyle(cfg)
	}

	for _, tab := range l.Tabs {
		pt := pageTab{
			ID:          tab.ID,
			Title:       tab.Title,
			Description: tab.Description,
			Notes:       tab.Notes,
			Active:      tab.ID == active,
			Fields:      []pageField{},
			Panels:      view.TabPanels(tab),
		}
		if pt.Panels == nil {
			pt.Panels = []render.Panel{}
		}
		for _, field := range l.FieldsFor(tab.ID) {
			pt.Fields = append(pt.Fields, buildField(field, view))
		}
		page.Tabs = append(page.Tabs, pt)
	}
	return page
}

func buildField(field layout.Field, view render.View) pageField {
	out := pageField{
		Key:         field.Key,
		Label:       field.Label,
		Help:        field.Help,
		Placeholder: field.Placeholder,
		Value:       view.Fields.Get(field.Key),
		Warnings:    []string{},
	}
	switch field.Key {
	case project.FieldTestName:
		out.Warnings = append(out.Warnings, advisoryFor(view).Messages()...)
	case project.FieldRawName:
		names := view.Names()
		out.Note = fmt.Sprintf("Package name: %s, repository name: %s", names.Package, names.Repo)
	}
	return out
}

// advisoryFor covers views composed without an advisory.
func advisoryFor(view render.View) naming.Advisory {
	if view.Advisory.Name == "" && view.Fields.TestName != "" {
		return naming.Advise(view.Fields.TestName)
	}
	return view.Advisory
}
