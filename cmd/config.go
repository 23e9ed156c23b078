package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/derickschaefer/truewage/internal/config"
	"github.com/derickschaefer/truewage/internal/model"
	"github.com/derickschaefer/truewage/internal/render"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage truewage configuration",
	Long:  `Read and write truewage configuration stored in truewage.json.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a template truewage.json in the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigFile
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (delete it first to re-initialise)", path)
		}
		if err := config.WriteFile(path, config.Template()); err != nil {
			return err
		}
		if !globalFlags.Quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", path)
			fmt.Fprintln(cmd.OutOrStdout(), "  Edit it to change the default format, locale, pay mode or role.")
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current resolved configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		cfg := deps.Config

		src := "(not found)"
		if cfg.ConfigPath != "" {
			src = cfg.ConfigPath
		}

		w, closeFn, err := outputWriter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer closeFn()

		rows := configRows(cfg, src)
		switch resolveFormat(cfg.Format) {
		case render.FormatJSON:
			type configOut struct {
				Format     string `json:"default_format"`
				Locale     string `json:"locale"`
				Mode       string `json:"mode"`
				Role       string `json:"role"`
				ConfigFile string `json:"config_file"`
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(configOut{
				Format:     cfg.Format,
				Locale:     cfg.Locale,
				Mode:       string(cfg.Mode),
				Role:       string(cfg.Role),
				ConfigFile: src,
			})
		case render.FormatText:
			printKVTable(w, rows)
			return nil
		default:
			return render.Render(w, newResult(model.KindTable, "config get", rows), resolveFormat(cfg.Format), deps.Formatter)
		}
	},
}

// configRows lists the resolved settings as key/value pairs.
func configRows(cfg *config.Config, src string) [][]string {
	return [][]string{
		{"default_format", cfg.Format},
		{"locale", cfg.Locale},
		{"mode", string(cfg.Mode)},
		{"role", string(cfg.Role)},
		{"config_file", src},
	}
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configGetCmd)
}
