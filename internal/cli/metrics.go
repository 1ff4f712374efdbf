package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/cyber-warrior/internal/observability"
)

var (
	metricsJSON  bool
	metricsSince string
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display play statistics",
	Long: `Display aggregated play statistics derived from the event log.

Metrics include sessions played, missions started, finished and abandoned,
tasks completed, XP and badges earned, and breathing exercises started.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if MetricsCalc == nil {
			return fmt.Errorf("metrics calculator not initialized (event log may be disabled)")
		}

		sinceTime, err := parseSinceDuration(metricsSince)
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}

		metrics, err := MetricsCalc.Calculate(sinceTime)
		if err != nil {
			return fmt.Errorf("calculating metrics: %w", err)
		}

		out := cmd.OutOrStdout()
		if metricsJSON {
			data, err := json.MarshalIndent(metrics, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting metrics as JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		printMetrics(out, metrics, sinceTime)
		return nil
	},
}

func printMetrics(w io.Writer, metrics *observability.Metrics, since time.Time) {
	fmt.Fprintf(w, "Metrics (since %s)\n\n", since.Format("2006-01-02"))
	fmt.Fprintf(w, "  %-24s %d\n", "Events recorded:", metrics.EventCount)
	fmt.Fprintf(w, "  %-24s %d\n", "Sessions:", metrics.Sessions)
	fmt.Fprintf(w, "  %-24s %d\n", "Missions started:", metrics.MissionsStarted)
	fmt.Fprintf(w, "  %-24s %d\n", "Missions finished:", metrics.MissionsFinished)
	fmt.Fprintf(w, "  %-24s %d\n", "Missions abandoned:", metrics.MissionsAbandoned)
	fmt.Fprintf(w, "  %-24s %d\n", "Tasks completed:", metrics.TasksCompleted)
	fmt.Fprintf(w, "  %-24s %d\n", "XP earned:", metrics.XPEarned)
	fmt.Fprintf(w, "  %-24s %d\n", "Breathing exercises:", metrics.HelperCycles)

	printCounts(w, "Finished by mission:", metrics.FinishedByMission)
	printCounts(w, "Badges earned:", metrics.BadgesEarned)

	if metrics.OldestEvent != nil {
		fmt.Fprintf(w, "\n  %-24s %s\n", "Oldest event:", metrics.OldestEvent.Format(time.RFC3339))
	}
	if metrics.NewestEvent != nil {
		fmt.Fprintf(w, "  %-24s %s\n", "Newest event:", metrics.NewestEvent.Format(time.RFC3339))
	}
}

func printCounts(w io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(w, "\n  %s\n", title)
	for _, k := range keys {
		fmt.Fprintf(w, "    %-20s %d\n", k+":", counts[k])
	}
}

// parseSinceDuration parses a human-friendly duration string like "7d", "30d",
// or "24h" and returns the corresponding time in the past.
func parseSinceDuration(s string) (time.Time, error) {
	now := time.Now().UTC()
	s = strings.TrimSpace(s)
	if s == "" {
		return now.AddDate(0, 0, -7), nil
	}

	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day duration %q", s)
		}
		return now.AddDate(0, 0, -days), nil
	}

	if strings.HasSuffix(s, "h") {
		hours, err := strconv.Atoi(strings.TrimSuffix(s, "h"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid hour duration %q", s)
		}
		return now.Add(-time.Duration(hours) * time.Hour), nil
	}

	return time.Time{}, fmt.Errorf("unsupported duration format %q (use e.g. 7d, 30d, 24h)", s)
}

func init() {
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "Output metrics as JSON")
	metricsCmd.Flags().StringVar(&metricsSince, "since", "7d", "Time window for metrics (e.g. 7d, 30d, 24h)")
	rootCmd.AddCommand(metricsCmd)
}
