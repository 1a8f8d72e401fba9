package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-pystarter/pkg/layout"
	"github.com/goliatone/go-pystarter/pkg/naming"
	"github.com/goliatone/go-pystarter/pkg/project"
	"github.com/goliatone/go-pystarter/pkg/render"
)

const defaultMaxRounds = 5

// Renderer implements render.Renderer for terminal sessions. Rendering
// prompts for every layout field, seeded with the view's current values, and
// serializes what the user entered.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	maxRounds    int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        Theme{InfoPrefix: "i", WarningPrefix: "!"},
		maxRounds:    defaultMaxRounds,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		driver, err := newSurveyDriver()
		if err != nil {
			return nil, err
		}
		r.driver = driver
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain; charset=utf-8"
	}
	return "application/json"
}

// Render runs the prompt flow and returns the collected fields.
func (r *Renderer) Render(ctx context.Context, view render.View, _ render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	fields, err := r.Collect(ctx, view)
	if err != nil {
		return nil, err
	}
	return r.encode(fields)
}

// Collect prompts for every field until the user accepts the values.
func (r *Renderer) Collect(ctx context.Context, view render.View) (project.Fields, error) {
	if r.driver == nil {
		return project.Fields{}, errors.New("tui: prompt driver is nil")
	}
	l := view.Layout
	if l == nil {
		l = layout.Default()
	}

	current := view.Fields
	for round := 0; round < r.maxRounds; round++ {
		collected, err := r.askAll(ctx, l, current)
		if err != nil {
			return project.Fields{}, err
		}
		if err := r.summarise(ctx, collected); err != nil {
			return project.Fields{}, err
		}

		ok, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: "Use these values?",
			Default: true,
		})
		if err != nil {
			return project.Fields{}, err
		}
		if ok {
			return collected, nil
		}
		current = collected
	}
	return project.Fields{}, ErrTooManyRounds
}

func (r *Renderer) askAll(ctx context.Context, l *layout.Layout, current project.Fields) (project.Fields, error) {
	out := current
	for _, tab := range l.Tabs {
		for _, field := range l.FieldsFor(tab.ID) {
			value, err := r.driver.Input(ctx, InputConfig{
				Message: field.Label + ":",
				Default: current.Get(field.Key),
				Help:    stripTags(field.Help),
			})
			if err != nil {
				return project.Fields{}, fmt.Errorf("tui: prompt %s: %w", field.Key, err)
			}
			out.Set(field.Key, value)

			if field.Key == project.FieldTestName {
				if err := r.warn(ctx, naming.Advise(value)); err != nil {
					return project.Fields{}, err
				}
			}
		}
	}
	return out, nil
}

func (r *Renderer) summarise(ctx context.Context, fields project.Fields) error {
	names := naming.Normalize(fields.RawName)
	lines := []string{
		fmt.Sprintf("%s package name: %s", r.theme.InfoPrefix, names.Package),
		fmt.Sprintf("%s repository name: %s", r.theme.InfoPrefix, names.Repo),
	}
	for _, line := range lines {
		if err := r.driver.Info(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) warn(ctx context.Context, advisory naming.Advisory) error {
	for _, msg := range advisory.Messages() {
		if err := r.driver.Info(ctx, fmt.Sprintf("%s %s", r.theme.WarningPrefix, msg)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) encode(fields project.Fields) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, key := range project.FieldKeys() {
			fmt.Fprintf(&b, "%s: %s\n", key, fields.Get(key))
		}
		return []byte(b.String()), nil
	default:
		payload, err := json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode fields: %w", err)
		}
		return payload, nil
	}
}

// stripTags drops markup from sanitised help text for terminal display.
func stripTags(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(bluemonday.StrictPolicy().Sanitize(s)))
}
