package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-pystarter/pkg/naming"
)

var warningPrefix = color.New(color.FgHiYellow).Sprint("⚠")

type normalizeJSON struct {
	Names    naming.Names `json:"names"`
	Warnings []string     `json:"warnings"`
}

func newNormalizeCmd(_ *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "normalize <name>",
		Short: "Print the package and repository names derived from a project name",
		Example: `  pystarter normalize "my project"
  pystarter normalize data-tools --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := args[0]
			names := naming.Normalize(raw)
			warnings := naming.Advise(raw).Messages()

			if asJSON {
				if warnings == nil {
					warnings = []string{}
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(normalizeJSON{Names: names, Warnings: warnings})
			}

			for _, msg := range warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %q: %s\n", warningPrefix, raw, msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "package name:    %s\n", names.Package)
			fmt.Fprintf(cmd.OutOrStdout(), "repository name: %s\n", names.Repo)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	return cmd
}
