package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pystarter/pkg/project"
	"github.com/goliatone/go-pystarter/pkg/render"
)

type stubDriver struct {
	inputs       []string
	confirm      []bool
	defaults     []string
	infoMessages []string
	inputPos     int
	confirmPos   int
	inputErr     error
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputErr != nil {
		return "", s.inputErr
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.defaults = append(s.defaults, cfg.Default)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func scriptedInputs() []string {
	return []string{
		"has-hyphen here",
		"my package",
		"Ada Lovelace",
		"ada@example.com",
		"1.0.0",
		"Engines",
		">=3.11",
		"Apache Software License",
	}
}

func TestRenderer_CollectsFieldsAsJSON(t *testing.T) {
	driver := &stubDriver{inputs: scriptedInputs(), confirm: []bool{true}}
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	view := render.View{Fields: project.DefaultFields()}
	payload, err := renderer.Render(context.Background(), view, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got project.Fields
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := project.Fields{
		TestName:       "has-hyphen here",
		RawName:        "my package",
		AuthorName:     "Ada Lovelace",
		AuthorEmail:    "ada@example.com",
		Version:        "1.0.0",
		Description:    "Engines",
		RequiresPython: ">=3.11",
		License:        "Apache Software License",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	defaults := project.DefaultFields()
	if driver.defaults[0] != defaults.TestName || driver.defaults[2] != defaults.AuthorName {
		t.Fatalf("prompts not seeded with view values: %v", driver.defaults)
	}

	joined := strings.Join(driver.infoMessages, "\n")
	for _, want := range []string{"! remove spaces", "! remove hyphens", "package name: my_package", "repository name: my-package"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("info messages missing %q:\n%s", want, joined)
		}
	}
}

func TestRenderer_ReenterSeedsPreviousAnswers(t *testing.T) {
	first := scriptedInputs()
	second := scriptedInputs()
	second[1] = "final_name"

	driver := &stubDriver{inputs: append(first, second...), confirm: []bool{false, true}}
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	fields, err := renderer.Collect(context.Background(), render.View{Fields: project.DefaultFields()})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if fields.RawName != "final_name" {
		t.Fatalf("expected second round value, got %q", fields.RawName)
	}
	if driver.defaults[len(first)+1] != "my package" {
		t.Fatalf("second round not seeded with first answers: %q", driver.defaults[len(first)+1])
	}
}

func TestRenderer_TooManyRounds(t *testing.T) {
	inputs := append(scriptedInputs(), scriptedInputs()...)
	driver := &stubDriver{inputs: inputs, confirm: []bool{false, false}}
	renderer, err := New(WithPromptDriver(driver), WithMaxRounds(2))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if _, err := renderer.Collect(context.Background(), render.View{}); !errors.Is(err, ErrTooManyRounds) {
		t.Fatalf("expected ErrTooManyRounds, got %v", err)
	}
}

func TestRenderer_AbortPropagates(t *testing.T) {
	driver := &stubDriver{inputErr: ErrAborted}
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if _, err := renderer.Render(context.Background(), render.View{}, render.RenderOptions{}); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRenderer_PrettyOutput(t *testing.T) {
	driver := &stubDriver{inputs: scriptedInputs(), confirm: []bool{true}}
	renderer, err := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if renderer.ContentType() != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type %s", renderer.ContentType())
	}

	payload, err := renderer.Render(context.Background(), render.View{}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(payload), "raw_name: my package\n") {
		t.Fatalf("unexpected pretty output:\n%s", payload)
	}
}

func TestStripTags(t *testing.T) {
	got := stripTags(`Matches the <a href="https://pypi.org/classifiers/">classifier list</a> &amp; more.`)
	if got != "Matches the classifier list & more." {
		t.Fatalf("unexpected stripped text %q", got)
	}
}
