package naming

import (
	"strings"
	"unicode"
)

const (
	// MessageSpaces is reported when a name contains whitespace.
	MessageSpaces = "remove spaces"
	// MessageHyphens is reported when a name contains hyphens.
	MessageHyphens = "remove hyphens"
)

// Advisory flags characters that are not allowed in a package name. It is
// informational only and never prevents normalisation.
type Advisory struct {
	Name          string `json:"name"`
	HasWhitespace bool   `json:"has_whitespace"`
	HasHyphen     bool   `json:"has_hyphen"`
}

// Advise inspects name for raw whitespace and hyphen characters.
func Advise(name string) Advisory {
	return Advisory{
		Name:          name,
		HasWhitespace: strings.IndexFunc(name, unicode.IsSpace) >= 0,
		HasHyphen:     strings.Contains(name, "-"),
	}
}

// Clean reports whether no warning applies.
func (a Advisory) Clean() bool {
	return !a.HasWhitespace && !a.HasHyphen
}

// Messages lists the warnings in a stable order, whitespace first.
func (a Advisory) Messages() []string {
	var out []string
	if a.HasWhitespace {
		out = append(out, MessageSpaces)
	}
	if a.HasHyphen {
		out = append(out, MessageHyphens)
	}
	return out
}
