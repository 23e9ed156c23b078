package cmd

import (
	"github.com/derickschaefer/truewage/internal/form"
	"github.com/derickschaefer/truewage/internal/model"
	"github.com/derickschaefer/truewage/internal/render"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List role presets and the fields they fill",
	Long: `List the built-in role presets.

Selecting a role fills unpaid overtime, unpaid break minutes, prep minutes
and work strain. Fields you have typed or set by flag are never overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		w, closeFn, err := outputWriter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer closeFn()

		result := newResult(model.KindPresets, "presets", form.PresetRows())
		return render.Render(w, result, resolveFormat(deps.Config.Format), deps.Formatter)
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
