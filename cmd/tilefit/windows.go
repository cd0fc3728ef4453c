package main

import (
	"github.com/spf13/cobra"

	"github.com/1broseidon/tilefit/internal/catalog"
	"github.com/1broseidon/tilefit/internal/platform"
)

func newWindowsCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "windows",
		Short: "List the real windows the arranger can see",
		Long: `List real windows: visible top-level application windows with a title.
Without --all only the windows selected by the configured titles are shown,
in placement order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			backend, err := a.openBackend()
			if err != nil {
				return err
			}

			windows, err := backend.Windows()
			if err != nil {
				return err
			}

			records := catalog.Select(windows, cfg.Titles)
			slots := make(map[platform.WindowID]int, len(records))
			for i, rec := range records {
				slots[rec.ID] = i
			}

			if all {
				printWindows(a.stdout, windows, slots)
				return nil
			}

			byID := make(map[platform.WindowID]platform.Window, len(windows))
			for _, w := range windows {
				byID[w.ID] = w
			}
			selected := make([]platform.Window, 0, len(records))
			for _, rec := range records {
				selected = append(selected, byID[rec.ID])
			}
			printWindows(a.stdout, selected, slots)

			for _, title := range catalog.Missing(windows, cfg.Titles) {
				a.logger.Warn("title not found", "title", title)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "list every real window, not just the selected ones")
	return cmd
}
