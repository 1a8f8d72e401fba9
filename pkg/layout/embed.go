package layout

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed defaults/*.yaml
var embeddedLayouts embed.FS

// DefaultPath is the embedded layout loaded by Default.
const DefaultPath = "defaults/layout.yaml"

var (
	defaultOnce   sync.Once
	defaultLayout *Layout
)

// EmbeddedFS exposes the bundled layout documents.
func EmbeddedFS() fs.FS {
	return embeddedLayouts
}

// Default returns the embedded layout. The document ships with the binary so
// a parse failure is a programming error.
func Default() *Layout {
	defaultOnce.Do(func() {
		l, err := LoadFS(embeddedLayouts, DefaultPath)
		if err != nil {
			panic(err)
		}
		defaultLayout = l
	})
	return defaultLayout
}
