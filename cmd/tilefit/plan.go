package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1broseidon/tilefit/internal/arrange"
	"github.com/1broseidon/tilefit/internal/tui"
)

func newPlanCmd(a *app) *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute and print the arrangement without moving any window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			backend, err := a.openBackend()
			if err != nil {
				return err
			}

			plan, err := arrange.New(backend, cfg, a.logger).Plan(cmd.Context())
			if err != nil {
				return err
			}

			printPlan(a.stdout, plan)
			if preview {
				fmt.Fprintln(a.stdout)
				fmt.Fprintln(a.stdout, tui.Summarize(plan))
				fmt.Fprintln(a.stdout, strings.Join(tui.RenderPreview(plan, 48, 14), "\n"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", true, "draw a miniature of the grid")
	return cmd
}
