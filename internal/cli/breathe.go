package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/cyber-warrior/internal/core"
	"github.com/valter-silva-au/cyber-warrior/pkg/models"
)

var (
	breatheCycles   int
	breatheInterval time.Duration
)

var breatheCmd = &cobra.Command{
	Use:   "breathe",
	Short: "Run the helper bot's breathing exercise in the terminal",
	Long: `Guide a box breathing exercise: breathe in, hold, breathe out, hold.
Each phase lasts helper.interval (4s by default). Interrupt with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if breatheCycles < 1 {
			return fmt.Errorf("--cycles must be at least 1, got %d", breatheCycles)
		}
		interval := breatheInterval
		if interval <= 0 {
			interval = HelperInterval
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if Session != nil {
			Session.RecordHelperCycle()
		}
		return runBreathing(ctx, cmd.OutOrStdout(), interval, breatheCycles)
	},
}

// runBreathing prints each phase change of cycles consecutive breathing
// cycles. It returns early, with the timer torn down, when ctx is done.
func runBreathing(ctx context.Context, w io.Writer, interval time.Duration, cycles int) error {
	done := make(chan struct{})
	changes := make(chan core.PhaseChange, models.BreathPhaseCount+1)

	timer := core.NewHelperTimer(interval, func(c core.PhaseChange) {
		select {
		case changes <- c:
		case <-done:
		}
	})
	defer func() {
		timer.Close()
		close(done)
	}()

	for i := 1; i <= cycles; i++ {
		if cycles > 1 {
			fmt.Fprintf(w, "Cycle %d/%d\n", i, cycles)
		}
		timer.Start()

	cycle:
		for {
			select {
			case <-ctx.Done():
				fmt.Fprintln(w, "Stopped.")
				return nil
			case c := <-changes:
				if !c.Active {
					break cycle
				}
				fmt.Fprintf(w, "  %-14s (%s)\n", c.Phase.Instruction(), interval)
			}
		}
	}
	fmt.Fprintln(w, "Well done.")
	return nil
}

func init() {
	breatheCmd.Flags().IntVar(&breatheCycles, "cycles", 1, "Number of breathing cycles")
	breatheCmd.Flags().DurationVar(&breatheInterval, "interval", 0, "Phase length (defaults to helper.interval)")
	rootCmd.AddCommand(breatheCmd)
}
