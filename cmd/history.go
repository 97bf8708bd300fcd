package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/uniguide/internal/advisor"
	"github.com/abhisek/uniguide/internal/report"
	"github.com/abhisek/uniguide/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded assessments",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		tier, _ := cmd.Flags().GetString("tier")
		since, _ := cmd.Flags().GetDuration("since")

		s, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit, Tier: tier}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		events, err := s.EventRepo().List(context.Background(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No assessments found.")
			return nil
		}

		// Header.
		fmt.Fprintf(out, "%-36s  %-19s  %-6s  %-10s  %-5s  %-16s  %-12s  %s\n",
			"Request", "Timestamp", "Status", "Tier", "CGPA", "Trend", "Model", "Conf")
		fmt.Fprintln(out, strings.Repeat("─", 122))

		for _, e := range events {
			conf := "-"
			if e.MLStatus == "available" {
				conf = fmt.Sprintf("%.2f%%", e.MLConfidence)
			}
			fmt.Fprintf(out, "%-36s  %-19s  %-6d  %-10s  %-5.2f  %-16s  %-12s  %s\n",
				e.RequestID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Status,
				e.Tier,
				e.CGPA,
				e.Trend,
				e.MLLabel,
				conf,
			)
		}
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <request-id>",
	Short: "Show the full result of a recorded assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		s, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().Get(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Sequence:  %d\n", e.Sequence)
		fmt.Fprintf(out, "Latency:   %dms\n", e.LatencyMs)
		fmt.Fprintln(out)

		resp, err := advisor.DecodePayload(e)
		if err != nil {
			fmt.Fprintf(out, "Status:    %d\n", e.Status)
			fmt.Fprintf(out, "Tier:      %s\n", e.Tier)
			fmt.Fprintln(out, "(full result not captured)")
			return nil
		}
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		}
		return report.Render(out, resp, stylesFor(out))
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show assessment counts by risk tier",
	RunE: func(cmd *cobra.Command, args []string) error {
		since, _ := cmd.Flags().GetDuration("since")

		s, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		var opts store.QueryOpts
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		counts, err := s.EventRepo().TierCounts(context.Background(), opts)
		if err != nil {
			return fmt.Errorf("query tiers: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(counts) == 0 {
			fmt.Fprintln(out, "No assessments recorded yet.")
			return nil
		}

		total := 0
		for _, c := range counts {
			total += c.Count
		}

		fmt.Fprintln(out, "Assessments by Tier")
		fmt.Fprintln(out, strings.Repeat("─", 36))
		fmt.Fprintf(out, "%-16s  %8s  %8s\n", "Tier", "Count", "Share")
		fmt.Fprintln(out, strings.Repeat("─", 36))
		for _, c := range counts {
			fmt.Fprintf(out, "%-16s  %8d  %7.1f%%\n", c.Tier, c.Count, 100*float64(c.Count)/float64(total))
		}
		fmt.Fprintln(out, strings.Repeat("─", 36))
		fmt.Fprintf(out, "%-16s  %8d\n", "TOTAL", total)
		return nil
	},
}

var historyResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all recorded assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		out := cmd.OutOrStdout()

		if !yes {
			fmt.Fprint(out, "Delete all recorded assessments? [y/N] ")
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		s, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.EventRepo().Reset(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d assessment(s).\n", n)
		return nil
	},
}

func openHistory(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return openStore(cfg)
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "Maximum number of assessments to show")
	historyListCmd.Flags().String("tier", "", "Only show assessments with this final tier")
	historyListCmd.Flags().Duration("since", 0, "Only show assessments newer than this (e.g. 24h)")
	historyViewCmd.Flags().Bool("json", false, "Print the stored response as JSON")
	historyStatsCmd.Flags().Duration("since", 0, "Only count assessments newer than this")
	historyResetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyViewCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyResetCmd)
}
