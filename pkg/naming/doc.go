// Package naming derives the canonical Python package name and the companion
// repository name from free-form user input.
//
// Normalisation only folds whitespace and hyphens into underscores. Letter
// case is left untouched even though the naming guidance asks for lowercase
// names; callers that want stricter names must fold case themselves.
package naming
