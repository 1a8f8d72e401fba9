// Package plain renders a composed view as a plain text report for
// terminals and pipes.
package plain

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-pystarter/pkg/render"
)

// Renderer writes the derived names, any advisory warnings and every
// snippet under a heading.
type Renderer struct {
	kinds []string
}

var _ render.Renderer = (*Renderer)(nil)

// Option configures the plain renderer.
type Option func(*Renderer)

// WithSnippets limits the report to the given snippet kinds, in order.
func WithSnippets(kinds ...string) Option {
	return func(r *Renderer) {
		r.kinds = append([]string(nil), kinds...)
	}
}

// New constructs the plain renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "plain"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render ignores options.Theme. A non-empty options.Tab limits the report
// to that tab's snippets.
func (r *Renderer) Render(ctx context.Context, view render.View, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	names := view.Names()
	fmt.Fprintf(&b, "package name:    %s\n", names.Package)
	fmt.Fprintf(&b, "repository name: %s\n", names.Repo)
	for _, msg := range view.Advisory.Messages() {
		fmt.Fprintf(&b, "warning: test name %q: %s\n", view.Advisory.Name, msg)
	}

	for _, panel := range r.panels(view, options.Tab) {
		heading := panel.Title
		if panel.Filename != "" && panel.Filename != panel.Title {
			heading += " (" + panel.Filename + ")"
		}
		fmt.Fprintf(&b, "\n# %s\n\n", heading)
		b.WriteString(panel.Content)
		if !strings.HasSuffix(panel.Content, "\n") {
			b.WriteByte('\n')
		}
	}
	return []byte(b.String()), nil
}

func (r *Renderer) panels(view render.View, tabID string) []render.Panel {
	if tabID != "" && view.Layout != nil {
		if tab, ok := view.Layout.Tab(tabID); ok {
			return view.TabPanels(tab)
		}
	}
	return view.Output.Panels(view.Snippets, r.kinds...)
}
