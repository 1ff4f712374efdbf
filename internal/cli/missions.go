package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/cyber-warrior/internal/core"
	"github.com/valter-silva-au/cyber-warrior/internal/storage"
	"github.com/valter-silva-au/cyber-warrior/pkg/models"
)

var (
	missionsListJSON  bool
	missionsShowRaw   bool
	missionsInitForce bool
)

var missionsCmd = &cobra.Command{
	Use:   "missions",
	Short: "Browse and manage the mission catalog",
}

var missionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available missions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := catalogSession()
		if err != nil {
			return err
		}
		missions := session.Catalog().List()
		out := cmd.OutOrStdout()

		if missionsListJSON {
			data, err := json.MarshalIndent(missions, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting missions as JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if len(missions) == 0 {
			fmt.Fprintln(out, "No missions available.")
			return nil
		}
		fmt.Fprintf(out, "%-18s %-32s %-5s %-12s %-6s %s\n", "ID", "TITLE", "LEVEL", "DURATION", "TASKS", "XP")
		for _, m := range missions {
			fmt.Fprintf(out, "%-18s %-32s %-5d %-12s %-6s %d\n",
				m.ID, m.Title, m.Level, m.Duration,
				fmt.Sprintf("%d/%d", m.CompletionCriteria.RequiredTasks, len(m.Tasks)),
				m.Rewards.XP)
		}
		return nil
	},
}

var missionsShowCmd = &cobra.Command{
	Use:   "show <mission-id>",
	Short: "Show a mission's briefing, tasks and rewards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := catalogSession()
		if err != nil {
			return err
		}
		m, err := session.Catalog().Get(args[0])
		if err != nil {
			return err
		}

		md := missionMarkdown(m)
		if missionsShowRaw {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		return renderMarkdown(cmd.OutOrStdout(), md)
	},
}

var missionsValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a YAML mission catalog file",
	Long: `Validate a YAML mission catalog file without loading it.

Every mission must have an id, a title and at least one named task,
required_tasks must lie between 0 and the number of tasks, the XP reward
must not be negative and ids must be unique.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading catalog: %w", err)
		}
		missions, err := storage.ParseCatalog(data)
		if err != nil {
			return err
		}
		catalog, err := core.NewCatalog(missions)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d missions OK\n", args[0], catalog.Len())
		return nil
	},
}

var missionsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in missions to the catalog file",
	Long: `Write the built-in missions to the configured catalog file
(catalog.path) so they can be edited. An existing file is left alone
unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if CatalogStore == nil {
			return fmt.Errorf("catalog store not initialized")
		}
		if CatalogStore.Exists() && !missionsInitForce {
			return fmt.Errorf("catalog %s already exists (use --force to overwrite)", CatalogStore.Path())
		}
		missions := core.DefaultMissions()
		if err := CatalogStore.Save(missions); err != nil {
			return err
		}
		// The session already serves the built-in missions.
		CatalogErr = nil
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d missions to %s\n", len(missions), CatalogStore.Path())
		return nil
	},
}

// missionMarkdown renders a mission briefing as markdown.
func missionMarkdown(m models.Mission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", m.Title)
	fmt.Fprintf(&b, "*Level %d · %s · %d XP*\n\n", m.Level, m.Duration, m.Rewards.XP)
	if m.Description != "" {
		b.WriteString(m.Description + "\n\n")
	}
	if len(m.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: `%s`\n\n", strings.Join(m.Tags, "`, `"))
	}

	b.WriteString("## Tasks\n\n")
	for i, t := range m.Tasks {
		fmt.Fprintf(&b, "%d. **%s** (%s)", i+1, t.Name, t.Duration)
		if t.Description != "" {
			b.WriteString(": " + t.Description)
		}
		b.WriteString("\n")
		for _, r := range t.Resources {
			fmt.Fprintf(&b, "   - %s\n", r)
		}
	}

	fmt.Fprintf(&b, "\nComplete **%d** of %d tasks to finish.\n", m.CompletionCriteria.RequiredTasks, len(m.Tasks))
	if len(m.Rewards.Badges) > 0 {
		fmt.Fprintf(&b, "\nBadges: %s\n", strings.Join(m.Rewards.Badges, ", "))
	}
	return b.String()
}

func renderMarkdown(w io.Writer, md string) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("rendering mission: %w", err)
	}
	fmt.Fprint(w, out)
	return nil
}

func init() {
	missionsListCmd.Flags().BoolVar(&missionsListJSON, "json", false, "Output missions as JSON")
	missionsShowCmd.Flags().BoolVar(&missionsShowRaw, "raw", false, "Print the briefing as plain markdown")
	missionsInitCmd.Flags().BoolVar(&missionsInitForce, "force", false, "Overwrite an existing catalog file")

	missionsCmd.AddCommand(missionsListCmd)
	missionsCmd.AddCommand(missionsShowCmd)
	missionsCmd.AddCommand(missionsValidateCmd)
	missionsCmd.AddCommand(missionsInitCmd)
	rootCmd.AddCommand(missionsCmd)
}
