package naming_test

import (
	"strings"
	"testing"
	"unicode"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pystarter/pkg/naming"
)

func TestNormalize(t *testing.T) {
	cases := map[string]struct {
		raw  string
		want naming.Names
	}{
		"empty":            {raw: "", want: naming.Names{}},
		"space and hyphen": {raw: "my package-name", want: naming.Names{Package: "my_package_name", Repo: "my-package-name"}},
		"already fine":     {raw: "already_fine", want: naming.Names{Package: "already_fine", Repo: "already-fine"}},
		"whitespace run":   {raw: "a \t\n b", want: naming.Names{Package: "a_b", Repo: "a-b"}},
		"leading trailing": {raw: "  pkg  ", want: naming.Names{Package: "_pkg_", Repo: "-pkg-"}},
		"hyphen run":       {raw: "a--b", want: naming.Names{Package: "a__b", Repo: "a--b"}},
		"case preserved":   {raw: "My Package", want: naming.Names{Package: "My_Package", Repo: "My-Package"}},
		"unicode space":    {raw: "a\u00a0b", want: naming.Names{Package: "a_b", Repo: "a-b"}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := naming.Normalize(tc.raw)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("normalize mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalize_Invariants(t *testing.T) {
	inputs := []string{
		"",
		"-",
		" ",
		"example_package",
		"my package-name",
		"  lots   of\tspace - and-hyphens ",
		"Mixed-Case Name",
		"ünïcödé näme",
		"a_b-c d",
	}

	for _, raw := range inputs {
		names := naming.Normalize(raw)

		if strings.IndexFunc(names.Package, unicode.IsSpace) >= 0 {
			t.Fatalf("package name %q for %q contains whitespace", names.Package, raw)
		}
		if strings.Contains(names.Package, "-") {
			t.Fatalf("package name %q for %q contains a hyphen", names.Package, raw)
		}
		if got := strings.ReplaceAll(names.Package, "_", "-"); got != names.Repo {
			t.Fatalf("repo name mismatch for %q: want %q, got %q", raw, got, names.Repo)
		}
		if got := strings.ReplaceAll(names.Repo, "-", "_"); got != names.Package {
			t.Fatalf("round trip mismatch for %q: want %q, got %q", raw, names.Package, got)
		}
		if again := naming.Normalize(names.Package).Package; again != names.Package {
			t.Fatalf("normalize not idempotent for %q: %q then %q", raw, names.Package, again)
		}
	}
}

func TestAdvise(t *testing.T) {
	cases := map[string]struct {
		name string
		want []string
	}{
		"space":  {name: "has space", want: []string{naming.MessageSpaces}},
		"hyphen": {name: "has-hyphen", want: []string{naming.MessageHyphens}},
		"both":   {name: "has space-and-hyphen", want: []string{naming.MessageSpaces, naming.MessageHyphens}},
		"clean":  {name: "clean_name", want: nil},
		"empty":  {name: "", want: nil},
		"tab":    {name: "tab\tname", want: []string{naming.MessageSpaces}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			advisory := naming.Advise(tc.name)
			if diff := cmp.Diff(tc.want, advisory.Messages()); diff != "" {
				t.Fatalf("messages mismatch (-want +got):\n%s", diff)
			}
			if advisory.Clean() != (len(tc.want) == 0) {
				t.Fatalf("clean flag mismatch for %q", tc.name)
			}
		})
	}
}
