package commands

import (
	"errors"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-pystarter/pkg/orchestrator"
	"github.com/goliatone/go-pystarter/pkg/renderers/tui"
)

func newPromptCmd(a *app) *cobra.Command {
	var maxRounds int

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Ask for each field interactively, then print the snippets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}

			options := []tui.Option{tui.WithMaxRounds(maxRounds)}
			if a.prompts != nil {
				options = append(options, tui.WithPromptDriver(a.prompts))
			}
			prompter, err := tui.New(options...)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			view, err := orch.Compose(ctx, orch.Defaults())
			if err != nil {
				return err
			}

			fields, err := prompter.Collect(ctx, view)
			if errors.Is(err, tui.ErrAborted) {
				log.Warn("prompt aborted, nothing rendered")
				return nil
			}
			if err != nil {
				return err
			}

			output, err := orch.Generate(ctx, orchestrator.Request{
				Fields:   fields,
				Renderer: "plain",
			})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(output)
			return err
		},
	}

	cmd.Flags().IntVar(&maxRounds, "max-rounds", 5, "Give up after this many rejected summaries")
	return cmd
}
