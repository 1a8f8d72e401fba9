package template

import (
	"io"
)

// TemplateRenderer is the seam between renderers and the concrete template
// engine. Output is returned and, when writers are supplied, copied to each.
type TemplateRenderer interface {
	// RenderTemplate executes a template file by path. A missing extension
	// is filled in by the engine.
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	// RenderString parses and executes inline template source.
	RenderString(source string, data any, out ...io.Writer) (string, error)
}
