// Package pystarter generates the boilerplate text for a new Python package:
// a folder layout diagram, the shell commands that create it, a
// pyproject.toml manifest and an mkdocs.yml. It only returns text; nothing is
// written to disk.
//
// Most callers need a single call:
//
//	out, err := pystarter.Render(ctx, project.Fields{RawName: "my project"})
//
// The orchestrator, renderers and HTTP server live under pkg/ for callers
// that want to swap any stage.
package pystarter

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-pystarter/pkg/naming"
	"github.com/goliatone/go-pystarter/pkg/orchestrator"
	"github.com/goliatone/go-pystarter/pkg/project"
	"github.com/goliatone/go-pystarter/pkg/render"
	"github.com/goliatone/go-pystarter/pkg/renderers/vanilla"
)

// Fields aliases project.Fields for callers that only import the root package.
type Fields = project.Fields

// Output aliases render.Output.
type Output = render.Output

// Normalize derives the package and repository names from a raw project name.
func Normalize(raw string) naming.Names {
	return naming.Normalize(raw)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Render fills empty fields with the example values and returns the four
// generated snippets.
func Render(ctx context.Context, fields Fields, options ...orchestrator.Option) (Output, error) {
	gen := orchestrator.New(options...)
	view, err := gen.Compose(ctx, fields.Merge(gen.Defaults()))
	if err != nil {
		return Output{}, err
	}
	return view.Output, nil
}

// GenerateHTML renders the full form page for fields with the vanilla
// renderer. tab selects the active tab; empty shows the first one.
func GenerateHTML(ctx context.Context, fields Fields, tab string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Fields:       fields,
		FillDefaults: true,
		Renderer:     "vanilla",
		Tab:          tab,
		Action:       "/",
	})
}

// EmbeddedTemplates exposes the built-in snippet templates so callers can
// copy or extend them.
func EmbeddedTemplates() fs.FS {
	return render.TemplatesFS()
}

// AssetsFS exposes the stylesheet served by the form page.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(pystarter.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
