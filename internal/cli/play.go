package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/cyber-warrior/internal/storage"
	"github.com/valter-silva-au/cyber-warrior/internal/tui"
	"go.uber.org/zap"
)

var playNoWatch bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play missions in the interactive terminal UI",
	Long: `Open the interactive mission trainer.

The home view (1) shows your XP, badges and finished missions; the
missions view (2) lists the catalog and runs the mission you pick. Press
h to open the helper bot and b to start a breathing exercise.

When the catalog file exists it is watched for changes and reloaded
while you play (disable with --no-watch).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := catalogSession()
		if err != nil {
			return err
		}

		opts := []tui.Option{tui.WithHelperInterval(HelperInterval)}

		if !playNoWatch && CatalogStore != nil && CatalogStore.Exists() {
			watcher, err := storage.NewCatalogWatcher(CatalogStore)
			if err != nil {
				logger().Warn("catalog hot reload disabled", zap.Error(err))
			} else {
				defer watcher.Close()
				opts = append(opts, tui.WithCatalogUpdates(watcher.Updates(), watcher.Errors()))
			}
		}

		p := tea.NewProgram(tui.New(session, opts...), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running mission trainer: %w", err)
		}
		return nil
	},
}

func init() {
	playCmd.Flags().BoolVar(&playNoWatch, "no-watch", false, "Do not reload the catalog file when it changes")
	rootCmd.AddCommand(playCmd)
}
