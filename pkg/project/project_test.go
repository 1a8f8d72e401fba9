package project_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pystarter/pkg/project"
)

func TestNew_DerivesNames(t *testing.T) {
	spec := project.New(project.Fields{
		RawName:     "my package-name",
		AuthorName:  "A B",
		AuthorEmail: "a@b.c",
		Version:     "1.2.3",
		Description: `has "quotes"`,
	})

	want := project.Spec{
		RawName:     "my package-name",
		PackageName: "my_package_name",
		RepoName:    "my-package-name",
		AuthorName:  "A B",
		AuthorEmail: "a@b.c",
		Version:     "1.2.3",
		Description: `has "quotes"`,
	}
	if diff := cmp.Diff(want, spec); diff != "" {
		t.Fatalf("spec mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_EmptyFields(t *testing.T) {
	if diff := cmp.Diff(project.Spec{}, project.New(project.Fields{})); diff != "" {
		t.Fatalf("expected zero spec (-want +got):\n%s", diff)
	}
}

func TestFields_WithDefaults(t *testing.T) {
	fields := project.Fields{RawName: "custom", Description: "   "}.WithDefaults()

	defaults := project.DefaultFields()
	if fields.RawName != "custom" {
		t.Fatalf("expected explicit value kept, got %q", fields.RawName)
	}
	if fields.Version != defaults.Version {
		t.Fatalf("expected empty version replaced with %q, got %q", defaults.Version, fields.Version)
	}
	if fields.Description != "   " {
		t.Fatalf("expected whitespace description kept, got %q", fields.Description)
	}
	if fields.AuthorEmail != defaults.AuthorEmail {
		t.Fatalf("expected default email, got %q", fields.AuthorEmail)
	}
}

func TestSpec_Values(t *testing.T) {
	spec := project.New(project.Fields{RawName: "a b", Version: "1", License: "MIT License"})

	want := map[string]any{
		"raw_name":        "a b",
		"package_name":    "a_b",
		"repo_name":       "a-b",
		"author_name":     "",
		"author_email":    "",
		"version":         "1",
		"description":     "",
		"requires_python": "",
		"license":         "MIT License",
	}
	if diff := cmp.Diff(want, spec.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestFields_GetSetRoundTrip(t *testing.T) {
	var fields project.Fields
	for _, key := range project.FieldKeys() {
		if !fields.Set(key, key+"-value") {
			t.Fatalf("key %q not accepted", key)
		}
	}
	for key, value := range fields.Values() {
		if value != key+"-value" {
			t.Fatalf("key %q: want %q, got %q", key, key+"-value", value)
		}
	}
	if fields.Set("unknown", "x") {
		t.Fatalf("unknown key accepted")
	}
	if got := fields.Get("unknown"); got != "" {
		t.Fatalf("unknown key returned %q", got)
	}
}
