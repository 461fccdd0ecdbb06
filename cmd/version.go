package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bimmerbailey/squash/internal/output"
)

// Version information set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type versionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
	Go      string `json:"go" yaml:"go"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := versionInfo{Version: version, Commit: commit, Date: date, Go: runtime.Version()}

	format := output.ParseFormat(viper.GetString("format"))
	w := output.New(cmd.OutOrStdout(), format, output.ColorNever)
	switch format {
	case output.FormatJSON:
		return w.WriteJSON(info)
	case output.FormatYAML:
		return w.WriteYAML(info)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "squash %s (commit: %s, built: %s, %s)\n", info.Version, info.Commit, info.Date, info.Go)
	return nil
}
