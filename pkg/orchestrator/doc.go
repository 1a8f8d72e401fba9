// Package orchestrator wires the fields → names → spec → snippets → presenter
// pipeline behind a single entry point, with dependency injection friendly
// options for callers that want to swap any stage.
package orchestrator
