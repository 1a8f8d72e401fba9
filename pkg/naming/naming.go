package naming

import (
	"strings"
	"unicode"
)

// Names holds the two identifiers derived from a raw package name.
type Names struct {
	// Package is the underscore delimited import name.
	Package string `json:"package_name"`
	// Repo is Package with underscores swapped for hyphens.
	Repo string `json:"repo_name"`
}

// Normalize folds whitespace runs and hyphens into underscores and derives
// the hyphenated repository variant.
func Normalize(raw string) Names {
	pkg := PackageName(raw)
	return Names{
		Package: pkg,
		Repo:    RepoName(pkg),
	}
}

// PackageName returns the package half of Normalize. Each maximal run of
// whitespace collapses to one underscore; every hyphen becomes an underscore.
func PackageName(raw string) string {
	if raw == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(raw))
	inSpace := false
	for _, r := range raw {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('_')
				inSpace = true
			}
			continue
		}
		inSpace = false
		if r == '-' {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RepoName swaps underscores for hyphens.
func RepoName(packageName string) string {
	return strings.ReplaceAll(packageName, "_", "-")
}
