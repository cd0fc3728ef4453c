package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/1broseidon/tilefit/internal/arrange"
)

const version = "0.1.0"

func newRootCmd(a *app) *cobra.Command {
	var (
		runs   int
		dryRun bool
	)

	root := &cobra.Command{
		Use:   "tilefit",
		Short: "Arrange windows into a uniform grid that fills the screen",
		Long: `tilefit resizes a set of windows to one common size, chosen from their
combined aspect ratio so the grid fills as much of the primary display as
possible, and places them centred in row-major order.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.verbose {
				a.logger.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("runs") && runs < 1 {
				return &usageError{command: cmd.CommandPath(), err: fmt.Errorf("--runs must be >= 1, got %d", runs)}
			}
			return a.runArrange(cmd, runs, dryRun)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $TILEFIT_CONFIG or ~/.config/tilefit/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().IntVar(&runs, "runs", 0, "number of passes (default: config runs)")
	root.Flags().BoolVar(&dryRun, "dry-run", false, "compute and print the layout without moving windows")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{command: cmd.CommandPath(), err: err}
	})

	root.AddCommand(newPlanCmd(a))
	root.AddCommand(newWindowsCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newMCPCmd(a))

	wrapArgs(root)
	return root
}

// wrapArgs turns cobra's positional-argument errors into usage errors.
func wrapArgs(cmd *cobra.Command) {
	if validate := cmd.Args; validate != nil {
		cmd.Args = func(c *cobra.Command, args []string) error {
			if err := validate(c, args); err != nil {
				return &usageError{command: c.CommandPath(), err: err}
			}
			return nil
		}
	}
	for _, sub := range cmd.Commands() {
		wrapArgs(sub)
	}
}

func (a *app) runArrange(cmd *cobra.Command, runs int, dryRun bool) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if runs == 0 {
		runs = cfg.Runs
	}

	backend, err := a.openBackend()
	if err != nil {
		return err
	}
	arranger := arrange.New(backend, cfg, a.logger)
	ctx := cmd.Context()

	if dryRun {
		plan, err := arranger.Plan(ctx)
		if err != nil {
			return err
		}
		printPlan(a.stdout, plan)
		return nil
	}

	reports, err := arranger.RunN(ctx, runs)
	var failed []error
	for i, report := range reports {
		if runs > 1 {
			fmt.Fprintf(a.stdout, "pass %d/%d\n", i+1, runs)
		}
		printPlan(a.stdout, report.Plan)
		printReport(a.stdout, report)
		if perr := report.Err(); perr != nil {
			failed = append(failed, fmt.Errorf("pass %d: %w", i+1, perr))
		}
	}
	if err != nil {
		return err
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d passes had placement failures: %w", len(failed), runs, errors.Join(failed...))
	}
	return nil
}
