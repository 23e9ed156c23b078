package cmd

import (
	"fmt"

	"github.com/derickschaefer/truewage/internal/render"
	"github.com/derickschaefer/truewage/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive true wage calculator",
	Long: `Open the interactive calculator in the terminal.

The configured default pay mode and role are selected on start. Values you
type are never overwritten by a role preset; Ctrl+R resets everything.
On exit the summary of the last calculation is printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		f, err := deps.NewForm()
		if err != nil {
			return err
		}

		b, err := tui.Run(f, deps.Formatter)
		if err != nil {
			return err
		}
		if b == nil || deps.Config.Quiet {
			return nil
		}
		s, err := render.Summary(b, deps.Formatter)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
