package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"folio/browse/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [slug...]",
	Short: "Browse posts and pages in the terminal",
	Long: `browse opens an interactive view of the recent posts and the given
page slugs (the configured pages when none are given).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := newGateway()
		if err != nil {
			return err
		}

		slugs := args
		if len(slugs) == 0 {
			slugs = appConfig.Content.Pages
		}

		p := tea.NewProgram(tui.NewModel(gw, slugs), tea.WithContext(cmd.Context()))
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
