// Package template defines the engine-agnostic contract the snippet renderer
// and the HTML presenters use to execute templates.
package template
