package render_test

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-pystarter/pkg/render"
	"github.com/goliatone/go-pystarter/pkg/testsupport"
)

func TestSnippetRenderer_DefaultGoldens(t *testing.T) {
	renderer, err := render.NewSnippetRenderer()
	if err != nil {
		t.Fatalf("snippet renderer: %v", err)
	}

	out, err := renderer.Render(testsupport.Context(), testsupport.Spec())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, snippet := range render.DefaultSnippets() {
		snippet := snippet
		t.Run(snippet.Kind, func(t *testing.T) {
			got, ok := out.Get(snippet.Kind)
			if !ok {
				t.Fatalf("no output for %s", snippet.Kind)
			}

			goldenPath := filepath.Join("testdata", "default_"+snippet.Kind+".golden")
			if testsupport.WriteMaybeGolden(t, goldenPath, []byte(got)) {
				return
			}
			want := testsupport.MustReadGoldenString(t, goldenPath)
			if diff := testsupport.CompareGolden(want, got); diff != "" {
				t.Fatalf("golden mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
