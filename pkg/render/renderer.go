package render

import (
	"context"
)

// Renderer turns a composed View into a byte representation (HTML page,
// plain text report, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view View, options RenderOptions) ([]byte, error)
}
