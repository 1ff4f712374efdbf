package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "cw",
	Short: "Cyber Warrior - gamified security training missions",
	Long: `Cyber Warrior (cw) is a terminal trainer built around missions: themed
learning units made of ordered tasks. Complete enough tasks to finish a
mission and collect its XP and badges. A helper bot guides a short
breathing exercise whenever you need a break.

Missions can be played interactively with "cw play" or driven by an
assistant through the MCP server ("cw mcp serve").`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cw %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
