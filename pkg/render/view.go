package render

import (
	"github.com/goliatone/go-pystarter/pkg/layout"
	"github.com/goliatone/go-pystarter/pkg/naming"
	"github.com/goliatone/go-pystarter/pkg/project"
)

// View is everything a presenter needs for one render pass. It is rebuilt
// from the current field values on every interaction.
type View struct {
	Fields   project.Fields  `json:"fields"`
	Spec     project.Spec    `json:"spec"`
	Advisory naming.Advisory `json:"advisory"`
	Output   Output          `json:"output"`
	Snippets []Snippet       `json:"snippets"`
	Layout   *layout.Layout  `json:"-"`
}

// Names returns the derived package and repository names.
func (v View) Names() naming.Names {
	return v.Spec.Names()
}

// Panels lists every snippet with its text in display order.
func (v View) Panels() []Panel {
	return v.Output.Panels(v.Snippets)
}

// TabPanels lists the snippets shown on a layout tab.
func (v View) TabPanels(tab layout.Tab) []Panel {
	if len(tab.Snippets) == 0 {
		return nil
	}
	return v.Output.Panels(v.Snippets, tab.Snippets...)
}
