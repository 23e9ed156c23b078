package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is the release string. Release builds overwrite it via:
//
//	go build -ldflags "-X github.com/derickschaefer/truewage/cmd.Version=v0.2.0"
var Version = "v0.1.0"

// BuildTime is optionally injected at build time alongside Version.
var BuildTime = ""

// versionInfo is the structured payload for --format json output.
type versionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	GOOS      string `json:"goos"`
	GOARCH    string `json:"goarch"`
	BuildTime string `json:"build_time,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the truewage version and build information",
	Long: `Print the truewage version string and build metadata.

Default output is plain text. Use --format json for structured output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := versionInfo{
			Version:   Version,
			GoVersion: runtime.Version(),
			GOOS:      runtime.GOOS,
			GOARCH:    runtime.GOARCH,
			BuildTime: BuildTime,
		}
		return writeVersion(cmd, info, globalFlags.Format)
	},
}

func writeVersion(cmd *cobra.Command, info versionInfo, format string) error {
	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	// Plain text, one value per line.
	fmt.Fprintf(out, "truewage %s\n", info.Version)
	fmt.Fprintf(out, "go       %s\n", info.GoVersion)
	fmt.Fprintf(out, "os       %s/%s\n", info.GOOS, info.GOARCH)
	if info.BuildTime != "" {
		fmt.Fprintf(out, "built    %s\n", info.BuildTime)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
