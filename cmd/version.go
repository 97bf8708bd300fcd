package cmd

import (
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/uniguide/internal/features"
	"github.com/abhisek/uniguide/internal/mlmodel"
)

// version is set via -ldflags at build time.
var version = "(devel)"

type buildInfo struct {
	Version     string `json:"version"`
	GoVersion   string `json:"goVersion,omitempty"`
	Revision    string `json:"revision,omitempty"`
	ModelFormat string `json:"modelFormat,omitempty"`
	Features    string `json:"features"`
}

func currentBuild() buildInfo {
	b := buildInfo{
		Version:  version,
		Features: strings.Join(features.Names[:], ","),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		b.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 12 {
				b.Revision = s.Value[:12]
			}
		}
	}
	// The built-in artifact ships in the binary, so its format is part of
	// the build.
	b.ModelFormat = mlmodel.Describe(mlmodel.NewLoader("")).FormatVersion
	return b
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build, Go toolchain and built-in model versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		b := currentBuild()
		out := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(b)
		}

		fmt.Fprintf(out, "uniguide %s\n", b.Version)
		if b.Revision != "" {
			fmt.Fprintf(out, "  revision: %s\n", b.Revision)
		}
		if b.GoVersion != "" {
			fmt.Fprintf(out, "  go:       %s\n", b.GoVersion)
		}
		if b.ModelFormat != "" {
			fmt.Fprintf(out, "  model:    format %s\n", b.ModelFormat)
		}
		fmt.Fprintf(out, "  features: %s\n", b.Features)
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("json", false, "Print version details as JSON")
}
