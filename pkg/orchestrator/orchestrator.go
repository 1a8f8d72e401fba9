package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-pystarter/pkg/layout"
	"github.com/goliatone/go-pystarter/pkg/naming"
	"github.com/goliatone/go-pystarter/pkg/project"
	"github.com/goliatone/go-pystarter/pkg/render"
	"github.com/goliatone/go-pystarter/pkg/renderers/plain"
	"github.com/goliatone/go-pystarter/pkg/renderers/vanilla"
	theme "github.com/goliatone/go-theme"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultRendererName = "vanilla"
	// DefaultCacheSize bounds the number of memoised snippet outputs.
	DefaultCacheSize = 256
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSnippets injects the snippet renderer.
func WithSnippets(snippets *render.SnippetRenderer) Option {
	return func(o *Orchestrator) {
		o.snippets = snippets
	}
}

// WithLayout replaces the embedded tab layout.
func WithLayout(l *layout.Layout) Option {
	return func(o *Orchestrator) {
		o.layout = l
	}
}

// WithThemeSelector configures how requests resolve theme manifests.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themes = selector
	}
}

// WithCacheSize sets how many snippet outputs are memoised. Zero or a
// negative size disables memoisation.
func WithCacheSize(size int) Option {
	return func(o *Orchestrator) {
		o.cacheSize = size
		o.cacheSizeSet = true
	}
}

// Orchestrator turns field values into a composed view and hands it to a
// presenter. It is safe for concurrent use once constructed.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	snippets        *render.SnippetRenderer
	layout          *layout.Layout
	themes          theme.ThemeSelector
	cacheSize       int
	cacheSizeSet    bool
	cache           *lru.Cache[project.Spec, render.Output]
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations: the
// embedded layout and snippets, the vanilla and plain renderers, and the
// pystarter theme.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render pass.
type Request struct {
	// Fields are the raw input values.
	Fields project.Fields

	// FillDefaults replaces empty fields with the layout defaults before
	// composing. Callers holding a partial Fields value set it.
	FillDefaults bool

	// Renderer names the presenter to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// Tab selects the active layout tab.
	Tab string

	// ThemeName and ThemeVariant pick a theme manifest. Empty values use the
	// selector defaults.
	ThemeName    string
	ThemeVariant string

	// Action is the form target for HTML presenters.
	Action string
}

// Layout returns the tab layout in use.
func (o *Orchestrator) Layout() *layout.Layout {
	return o.layout
}

// Defaults returns the field values a blank form starts from.
func (o *Orchestrator) Defaults() project.Fields {
	return o.layout.Defaults()
}

// Compose builds the view for fields. Values are used verbatim; callers that
// want example values for blanks merge Defaults first.
func (o *Orchestrator) Compose(ctx context.Context, fields project.Fields) (render.View, error) {
	if ctx == nil {
		return render.View{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return render.View{}, err
	}
	if err := o.initialiseErr; err != nil {
		return render.View{}, err
	}

	spec := project.New(fields)
	output, err := o.output(ctx, spec)
	if err != nil {
		return render.View{}, err
	}

	return render.View{
		Fields:   fields,
		Spec:     spec,
		Advisory: naming.Advise(fields.TestName),
		Output:   output,
		Snippets: o.snippets.Snippets(),
		Layout:   o.layout,
	}, nil
}

// Generate composes the view for req and renders it with the requested
// presenter and theme.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	fields := req.Fields
	if req.FillDefaults {
		fields = fields.Merge(o.Defaults())
	}

	view, err := o.Compose(ctx, fields)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	themeCfg, err := o.resolveTheme(req)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, view, render.RenderOptions{
		Tab:    req.Tab,
		Theme:  themeCfg,
		Action: req.Action,
	})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}

	return output, nil
}

// Renderer resolves a presenter by name, applying the default fallback.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	return o.rendererFor(name)
}

func (o *Orchestrator) output(ctx context.Context, spec project.Spec) (render.Output, error) {
	if o.cache != nil {
		if cached, ok := o.cache.Get(spec); ok {
			return cached, nil
		}
	}

	output, err := o.snippets.Render(ctx, spec)
	if err != nil {
		return render.Output{}, fmt.Errorf("orchestrator: render snippets: %w", err)
	}

	if o.cache != nil {
		o.cache.Add(spec, output)
	}
	return output, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if o.themes == nil {
		return nil, nil
	}
	selection, err := o.themes.Select(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return render.ResolveTheme(selection), nil
}

func (o *Orchestrator) applyDefaults() {
	if o.layout == nil {
		o.layout = layout.Default()
	}
	if o.snippets == nil {
		snippets, err := render.NewSnippetRenderer()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default snippets: %w", err)
			return
		}
		o.snippets = snippets
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
		o.registry.MustRegister(plain.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.themes == nil {
		selector, err := render.NewManifestSelector(render.DefaultThemeName, "", render.DefaultThemeManifest())
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default theme: %w", err)
			return
		}
		o.themes = selector
	}

	size := DefaultCacheSize
	if o.cacheSizeSet {
		size = o.cacheSize
	}
	if size > 0 {
		cache, err := lru.New[project.Spec, render.Output](size)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: snippet cache: %w", err)
			return
		}
		o.cache = cache
	}
}
