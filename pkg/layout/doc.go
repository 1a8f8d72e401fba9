// Package layout loads the description of the form page: the tabs, the
// labels, help text and example defaults of each input, and which snippets a
// tab displays. Layouts are YAML or JSON documents; a default layout is
// embedded. Help and description text may carry a small HTML subset, which is
// sanitised at load time so presenters can emit it unescaped.
package layout
