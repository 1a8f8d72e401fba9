package orchestrator_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pystarter/pkg/orchestrator"
	"github.com/goliatone/go-pystarter/pkg/project"
	"github.com/goliatone/go-pystarter/pkg/render"
)

func TestOrchestrator_ComposeDefaults(t *testing.T) {
	t.Parallel()

	orch := orchestrator.New()
	view, err := orch.Compose(context.Background(), orch.Defaults())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	if got := view.Names().Package; got != "example_package" {
		t.Fatalf("package name: want example_package, got %q", got)
	}
	if got := view.Names().Repo; got != "example-package" {
		t.Fatalf("repo name: want example-package, got %q", got)
	}
	if !view.Advisory.Clean() {
		t.Fatalf("expected clean advisory, got %+v", view.Advisory)
	}
	if !strings.Contains(view.Output.Manifest, `name = "example_package"`) {
		t.Fatalf("manifest missing package name:\n%s", view.Output.Manifest)
	}
	if view.Layout == nil || view.Layout.DefaultTab() != "intro" {
		t.Fatalf("expected embedded layout")
	}
	if len(view.Snippets) != len(render.DefaultSnippets()) {
		t.Fatalf("expected %d snippets, got %d", len(render.DefaultSnippets()), len(view.Snippets))
	}
}

func TestOrchestrator_ComposeKeepsExplicitValues(t *testing.T) {
	t.Parallel()

	orch := orchestrator.New()
	fields := project.Fields{RawName: "my cool-lib", TestName: "bad name", Description: ""}
	view, err := orch.Compose(context.Background(), fields)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	if diff := cmp.Diff(fields, view.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if got := view.Spec.PackageName; got != "my_cool_lib" {
		t.Fatalf("package name: want my_cool_lib, got %q", got)
	}
	if !strings.Contains(view.Output.Manifest, `description = ""`) {
		t.Fatalf("expected empty description kept:\n%s", view.Output.Manifest)
	}
	if diff := cmp.Diff([]string{"remove spaces"}, view.Advisory.Messages()); diff != "" {
		t.Fatalf("advisory mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_ComposeRejectsCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := orchestrator.New().Compose(ctx, project.DefaultFields())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestOrchestrator_GenerateDefaultRenderer(t *testing.T) {
	t.Parallel()

	out, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{
		Fields:       project.Fields{RawName: "demo"},
		FillDefaults: true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<!DOCTYPE html>") {
		t.Fatalf("expected html page, got:\n%s", html)
	}
	if !strings.Contains(html, `name="raw_name" value="demo"`) {
		t.Fatalf("expected submitted raw name in form")
	}
	if !strings.Contains(html, `name="author_name" value="Author Full Name"`) {
		t.Fatalf("expected blank author to fall back to default")
	}
	if !strings.Contains(html, `data-theme="pystarter"`) {
		t.Fatalf("expected default theme applied")
	}
}

func TestOrchestrator_GeneratePlain(t *testing.T) {
	t.Parallel()

	out, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{
		Fields:       project.Fields{RawName: "demo pkg"},
		FillDefaults: true,
		Renderer:     "plain",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "package name:    demo_pkg") {
		t.Fatalf("unexpected plain output:\n%s", out)
	}
}

func TestOrchestrator_GenerateUnknownRenderer(t *testing.T) {
	t.Parallel()

	_, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{Renderer: "pdf"})
	if !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestOrchestrator_PassesOptionsToRenderer(t *testing.T) {
	t.Parallel()

	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	selector, err := render.NewManifestSelector(render.DefaultThemeName, "", render.DefaultThemeManifest())
	if err != nil {
		t.Fatalf("selector: %v", err)
	}

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
		orchestrator.WithThemeSelector(selector),
	)

	_, err = orch.Generate(context.Background(), orchestrator.Request{
		Fields:       project.DefaultFields(),
		Tab:          "manifest",
		ThemeVariant: "dark",
		ThemeName:    render.DefaultThemeName,
		Action:       "/generate",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if renderer.options.Tab != "manifest" || renderer.options.Action != "/generate" {
		t.Fatalf("unexpected options: %+v", renderer.options)
	}
	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg.Theme != render.DefaultThemeName || cfg.Variant != "dark" {
		t.Fatalf("unexpected theme selection: %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.CSSVars["--background"] != "#0e1117" {
		t.Fatalf("variant tokens not merged, got %q", cfg.CSSVars["--background"])
	}
}

func TestOrchestrator_UnknownThemeErrors(t *testing.T) {
	t.Parallel()

	_, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{
		Fields:    project.DefaultFields(),
		ThemeName: "missing",
	})
	if !errors.Is(err, render.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
}

func TestOrchestrator_CustomThemeSelector(t *testing.T) {
	t.Parallel()

	selector := &stubSelector{manifest: &theme.Manifest{
		Name:   "brand",
		Tokens: map[string]string{"accent": "#123456"},
	}}
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
		orchestrator.WithThemeSelector(selector),
	)
	_, err := orch.Generate(context.Background(), orchestrator.Request{
		Fields:       project.DefaultFields(),
		ThemeName:    "brand",
		ThemeVariant: "contrast",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if diff := cmp.Diff([]string{"brand", "contrast"}, selector.asked); diff != "" {
		t.Fatalf("selector arguments mismatch (-want +got):\n%s", diff)
	}
	cfg := renderer.options.Theme
	if cfg == nil || cfg.Theme != "brand" || cfg.CSSVars["--accent"] != "#123456" {
		t.Fatalf("unexpected theme config: %+v", cfg)
	}
}

func TestOrchestrator_MemoisesSnippets(t *testing.T) {
	t.Parallel()

	counting := &countingTemplates{}
	snippets, err := render.NewSnippetRenderer(render.WithSnippetTemplateRenderer(counting))
	if err != nil {
		t.Fatalf("snippets: %v", err)
	}

	orch := orchestrator.New(orchestrator.WithSnippets(snippets))
	for i := 0; i < 3; i++ {
		if _, err := orch.Compose(context.Background(), project.DefaultFields()); err != nil {
			t.Fatalf("compose: %v", err)
		}
	}
	if want := len(render.DefaultSnippets()); counting.calls != want {
		t.Fatalf("expected %d template renders, got %d", want, counting.calls)
	}

	uncached := orchestrator.New(orchestrator.WithSnippets(snippets), orchestrator.WithCacheSize(0))
	counting.calls = 0
	for i := 0; i < 2; i++ {
		if _, err := uncached.Compose(context.Background(), project.DefaultFields()); err != nil {
			t.Fatalf("compose: %v", err)
		}
	}
	if want := 2 * len(render.DefaultSnippets()); counting.calls != want {
		t.Fatalf("expected %d template renders without cache, got %d", want, counting.calls)
	}
}

type captureRenderer struct {
	options render.RenderOptions
}

func (c *captureRenderer) Name() string        { return "capture" }
func (c *captureRenderer) ContentType() string { return "text/plain" }

func (c *captureRenderer) Render(_ context.Context, _ render.View, options render.RenderOptions) ([]byte, error) {
	c.options = options
	return []byte("ok"), nil
}

type stubSelector struct {
	manifest *theme.Manifest
	asked    []string
}

func (s *stubSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.asked = []string{name, variant}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: s.manifest}, nil
}

type countingTemplates struct {
	calls int
}

func (c *countingTemplates) RenderTemplate(name string, _ any, _ ...io.Writer) (string, error) {
	c.calls++
	return name, nil
}

func (c *countingTemplates) RenderString(source string, _ any, _ ...io.Writer) (string, error) {
	return source, nil
}
