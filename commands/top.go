package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChaseCares/pill-doser/internal/presentation/display"
	"github.com/ChaseCares/pill-doser/internal/tracker"
)

var (
	topInterval time.Duration

	topCmd = &cobra.Command{
		Use:   "top",
		Short: "Live terminal view of the current projection",
		Long: `Continuously redraw the dosage statistics and deficit sparkline.
Redraws happen on a timer and immediately after the local data changes.`,
		RunE: runTop,
	}
)

func init() {
	topCmd.Flags().DurationVar(&topInterval, "interval", 30*time.Second,
		"Refresh interval")
	rootCmd.AddCommand(topCmd)
}

func runTop(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	tr, err := tracker.New(cfg)
	if err != nil {
		return err
	}
	defer tr.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	live := display.NewLive(os.Stdout, topInterval)
	return live.Run(ctx, tr.Report, tr.SnapshotPath())
}
