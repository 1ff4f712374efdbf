package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	cwmcp "github.com/valter-silva-au/cyber-warrior/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the cw MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the cw MCP server on stdio",
	Long: `Start the cw MCP server on stdio transport.

The server exposes the mission trainer as MCP tools that AI assistants
can call: list_missions, get_mission, start_mission, select_task,
complete_task, finish_mission, get_runner, get_progress.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := catalogSession()
		if err != nil {
			return err
		}

		srv := cwmcp.NewServer(session, appVersion)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}

		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
