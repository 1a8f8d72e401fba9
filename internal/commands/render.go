package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pystarter/pkg/naming"
	"github.com/goliatone/go-pystarter/pkg/orchestrator"
	"github.com/goliatone/go-pystarter/pkg/project"
	"github.com/goliatone/go-pystarter/pkg/render"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatHTML = "html"
)

type renderJSON struct {
	Fields   project.Fields `json:"fields"`
	Names    naming.Names   `json:"names"`
	Warnings []string       `json:"warnings"`
	Snippets []render.Panel `json:"snippets"`
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		format string
		tab    string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the generated snippets for the given fields",
		Long: `Render substitutes the field flags into every snippet. Flags left out
fall back to the example values shown on the form; flags given as "" stay
empty.`,
		Example: `  pystarter render --raw-name "my project"
  pystarter render --raw-name data-tools --tab manifest
  pystarter render --format json --description ""`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}

			fields := fieldsFromFlags(cmd, orch.Defaults())
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			switch strings.ToLower(strings.TrimSpace(format)) {
			case formatText, "":
				output, err := orch.Generate(ctx, orchestrator.Request{
					Fields:   fields,
					Renderer: "plain",
					Tab:      tab,
				})
				if err != nil {
					return err
				}
				_, err = out.Write(output)
				return err
			case formatHTML:
				output, err := orch.Generate(ctx, orchestrator.Request{
					Fields:   fields,
					Renderer: "vanilla",
					Tab:      tab,
					Action:   "/",
				})
				if err != nil {
					return err
				}
				_, err = out.Write(output)
				return err
			case formatJSON:
				view, err := orch.Compose(ctx, fields)
				if err != nil {
					return err
				}
				panels := view.Panels()
				if tab != "" {
					if t, ok := view.Layout.Tab(tab); ok {
						panels = view.TabPanels(t)
					}
				}
				warnings := view.Advisory.Messages()
				if warnings == nil {
					warnings = []string{}
				}
				if panels == nil {
					panels = []render.Panel{}
				}
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(renderJSON{
					Fields:   view.Fields,
					Names:    view.Names(),
					Warnings: warnings,
					Snippets: panels,
				})
			default:
				return fmt.Errorf("unknown format %q (want text, json or html)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, json or html")
	cmd.Flags().StringVar(&tab, "tab", "", "Only print the snippets shown on this tab")
	addFieldFlags(cmd)
	return cmd
}

// addFieldFlags adds one string flag per project field, e.g. --raw-name.
// Defaults come from the layout in use, so the help does not print them.
func addFieldFlags(cmd *cobra.Command) {
	for _, key := range project.FieldKeys() {
		cmd.Flags().String(flagName(key), "", fmt.Sprintf("Value for %s; unset takes the layout default", key))
	}
}

// fieldsFromFlags overlays the field flags the user set onto base.
func fieldsFromFlags(cmd *cobra.Command, base project.Fields) project.Fields {
	fields := base
	for _, key := range project.FieldKeys() {
		flag := cmd.Flags().Lookup(flagName(key))
		if flag == nil || !flag.Changed {
			continue
		}
		fields.Set(key, flag.Value.String())
	}
	return fields
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}
