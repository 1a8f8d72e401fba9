package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions carry per-request presentation choices that do not change
// the generated snippets.
type RenderOptions struct {
	// Tab selects the active layout tab. Unknown or empty values fall back to
	// the first tab.
	Tab string
	// Theme holds resolved theme tokens. Nil renders without theming.
	Theme *theme.RendererConfig
	// Action is the form submission target for HTML presenters.
	Action string
}
