package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/wayper/internal/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List wallpaper assignments",
	Long:    `List the stored wallpaper of every connected display, ordered by display id.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd.Context())
		if err != nil {
			return err
		}

		assignments := s.state.All()
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.FormatAppHeader("WALLPAPERS", fmt.Sprintf("%d of %d display(s)", len(assignments), s.detector.Count())))
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.AssignmentTable(assignments, s.names()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
