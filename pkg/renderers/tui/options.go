package tui

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits the collected project.Fields as JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits one "key: value" line per field.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures the prefixes printed in front of informational lines.
type Theme struct {
	InfoPrefix    string
	WarningPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithMaxRounds caps how many times the user may reject and re-enter the
// values. Zero keeps the default.
func WithMaxRounds(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxRounds = n
		}
	}
}
