// Package project holds the transient description of the package being
// scaffolded. A Spec is rebuilt from the current field values on every
// interaction and is never persisted.
package project

import (
	"github.com/goliatone/go-pystarter/pkg/naming"
)

// Field keys shared by the form, the JSON API and the layout documents.
const (
	FieldTestName       = "test_name"
	FieldRawName        = "raw_name"
	FieldAuthorName     = "author_name"
	FieldAuthorEmail    = "author_email"
	FieldVersion        = "version"
	FieldDescription    = "description"
	FieldRequiresPython = "requires_python"
	FieldLicense        = "license"
)

// FieldKeys lists every input in display order.
func FieldKeys() []string {
	return []string{
		FieldTestName,
		FieldRawName,
		FieldAuthorName,
		FieldAuthorEmail,
		FieldVersion,
		FieldDescription,
		FieldRequiresPython,
		FieldLicense,
	}
}

// Fields are the raw form inputs as the user typed them.
type Fields struct {
	TestName       string `json:"test_name"`
	RawName        string `json:"raw_name"`
	AuthorName     string `json:"author_name"`
	AuthorEmail    string `json:"author_email"`
	Version        string `json:"version"`
	Description    string `json:"description"`
	RequiresPython string `json:"requires_python"`
	License        string `json:"license"`
}

// DefaultFields returns the example values the form starts with.
func DefaultFields() Fields {
	return Fields{
		TestName:       "example_package",
		RawName:        "example_package",
		AuthorName:     "Author Full Name",
		AuthorEmail:    "authors_email@goes_here.ie",
		Version:        "0.1.0",
		Description:    "A simple Python project",
		RequiresPython: ">=3.10",
		License:        "MIT License",
	}
}

// WithDefaults fills empty fields from DefaultFields.
func (f Fields) WithDefaults() Fields {
	return f.Merge(DefaultFields())
}

// Merge fills empty fields of f from fallback. Whitespace is a value and is
// kept.
func (f Fields) Merge(fallback Fields) Fields {
	out := f
	for _, key := range FieldKeys() {
		if out.Get(key) == "" {
			out.Set(key, fallback.Get(key))
		}
	}
	return out
}

// Get returns the value stored under key, or "" for unknown keys.
func (f Fields) Get(key string) string {
	switch key {
	case FieldTestName:
		return f.TestName
	case FieldRawName:
		return f.RawName
	case FieldAuthorName:
		return f.AuthorName
	case FieldAuthorEmail:
		return f.AuthorEmail
	case FieldVersion:
		return f.Version
	case FieldDescription:
		return f.Description
	case FieldRequiresPython:
		return f.RequiresPython
	case FieldLicense:
		return f.License
	}
	return ""
}

// Set stores value under key and reports whether the key is known.
func (f *Fields) Set(key, value string) bool {
	switch key {
	case FieldTestName:
		f.TestName = value
	case FieldRawName:
		f.RawName = value
	case FieldAuthorName:
		f.AuthorName = value
	case FieldAuthorEmail:
		f.AuthorEmail = value
	case FieldVersion:
		f.Version = value
	case FieldDescription:
		f.Description = value
	case FieldRequiresPython:
		f.RequiresPython = value
	case FieldLicense:
		f.License = value
	default:
		return false
	}
	return true
}

// Values flattens the fields into a key/value map.
func (f Fields) Values() map[string]string {
	out := make(map[string]string, len(FieldKeys()))
	for _, key := range FieldKeys() {
		out[key] = f.Get(key)
	}
	return out
}

// Spec is the value substituted into the snippet templates. It is comparable
// so it can key caches.
type Spec struct {
	RawName        string `json:"raw_name"`
	PackageName    string `json:"package_name"`
	RepoName       string `json:"repo_name"`
	AuthorName     string `json:"author_name"`
	AuthorEmail    string `json:"author_email"`
	Version        string `json:"version"`
	Description    string `json:"description"`
	RequiresPython string `json:"requires_python"`
	License        string `json:"license"`
}

// New derives a Spec from the raw fields. Free-form values are copied
// verbatim.
func New(fields Fields) Spec {
	names := naming.Normalize(fields.RawName)
	return Spec{
		RawName:        fields.RawName,
		PackageName:    names.Package,
		RepoName:       names.Repo,
		AuthorName:     fields.AuthorName,
		AuthorEmail:    fields.AuthorEmail,
		Version:        fields.Version,
		Description:    fields.Description,
		RequiresPython: fields.RequiresPython,
		License:        fields.License,
	}
}

// Values returns the spec keyed by its json names, the shape the snippet
// templates address.
func (s Spec) Values() map[string]any {
	return map[string]any{
		"raw_name":        s.RawName,
		"package_name":    s.PackageName,
		"repo_name":       s.RepoName,
		"author_name":     s.AuthorName,
		"author_email":    s.AuthorEmail,
		"version":         s.Version,
		"description":     s.Description,
		"requires_python": s.RequiresPython,
		"license":         s.License,
	}
}

// Names returns the derived package and repository names.
func (s Spec) Names() naming.Names {
	return naming.Names{Package: s.PackageName, Repo: s.RepoName}
}
