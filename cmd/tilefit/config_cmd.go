package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/1broseidon/tilefit/internal/config"
	"github.com/1broseidon/tilefit/internal/platform"
	"github.com/1broseidon/tilefit/internal/tui"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect, validate or create the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.resolveConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "print",
		Short: "Print the effective config as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			if a.cfgFile == "" {
				fmt.Fprintln(a.stdout, "# no config file; showing defaults")
			} else {
				fmt.Fprintf(a.stdout, "# %s\n", a.cfgFile)
			}
			_, err = a.stdout.Write(data)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check the config file for errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.loadConfig(); err != nil {
				return err
			}
			if a.cfgFile == "" {
				fmt.Fprintln(a.stdout, "OK (no config file, defaults are valid)")
				return nil
			}
			fmt.Fprintf(a.stdout, "OK %s\n", a.cfgFile)
			return nil
		},
	})

	cmd.AddCommand(newConfigInitCmd(a))
	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create or edit the config interactively",
		Long: `Pick the windows to tile from the ones currently open and set the grid
shape, reserved chrome, overlap and pass count. The change is shown as a
diff before it is saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.resolveConfigPath()
			if err != nil {
				return err
			}
			base, err := a.loadConfig()
			if err != nil {
				return err
			}

			var windows []platform.Window
			if backend, err := a.openBackend(); err != nil {
				a.logger.Warn("window list unavailable, titles must be edited by hand", "err", err)
			} else if windows, err = backend.Windows(); err != nil {
				a.logger.Warn("failed to enumerate windows", "err", err)
			}

			edited, err := tui.RunSetup(cmd.Context(), base, windows, a.stderr)
			if err != nil {
				return err
			}

			diff := tui.DiffConfigs(base, edited)
			_, statErr := os.Stat(path)
			exists := !errors.Is(statErr, os.ErrNotExist)
			if len(diff) == 0 && exists {
				fmt.Fprintln(a.stdout, "No changes.")
				return nil
			}
			if len(diff) > 0 {
				fmt.Fprintln(a.stdout, tui.RenderDiff(diff))
			}

			if !yes {
				ok, err := tui.Confirm(cmd.Context(), fmt.Sprintf("Save to %s?", path), a.stderr)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(a.stdout, "Not saved.")
					return nil
				}
			}

			if err := config.SaveToPath(edited, path); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Saved %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "save without asking")
	return cmd
}
