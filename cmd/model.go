package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/uniguide/internal/mlmodel"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Inspect the risk model",
}

var modelInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the configured model and its label encoders",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		info := mlmodel.Describe(modelSource(cfg))

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}

		fmt.Fprintf(out, "Source:     %s\n", info.Source)
		fmt.Fprintf(out, "Available:  %v\n", info.Available)
		if info.Error != "" {
			fmt.Fprintf(out, "Error:      %s\n", info.Error)
		}
		if info.Name != "" {
			fmt.Fprintf(out, "Model:      %s\n", info.Name)
		}
		if info.FormatVersion != "" {
			fmt.Fprintf(out, "Format:     %s (%s, %d trees)\n", info.FormatVersion, info.Kind, info.Trees)
		}
		fmt.Fprintf(out, "Features:   %s\n", strings.Join(info.Features, ", "))
		if len(info.Classes) > 0 {
			fmt.Fprintf(out, "Labels:     %s\n", strings.Join(info.Classes, ", "))
		}
		if len(info.TrendClasses) > 0 {
			fmt.Fprintf(out, "Trends:     %s\n", strings.Join(info.TrendClasses, ", "))
		}
		if len(info.Metadata) > 0 {
			keys := make([]string, 0, len(info.Metadata))
			for k := range info.Metadata {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(out)
			for _, k := range keys {
				fmt.Fprintf(out, "%-18s  %v\n", k, info.Metadata[k])
			}
		}
		return nil
	},
}

func init() {
	modelInfoCmd.Flags().Bool("json", false, "Print as JSON")
	modelCmd.AddCommand(modelInfoCmd)
}
