package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChaseCares/pill-doser/internal/tracker"
	"github.com/ChaseCares/pill-doser/internal/util"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the recorded dose timeline",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	tr, err := tracker.New(cfg)
	if err != nil {
		return err
	}
	defer tr.Close()

	events, err := tr.Events(context.Background())
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No doses recorded.")
		return nil
	}

	tp := util.GetTimeProvider()
	for _, e := range events {
		fmt.Printf("%s  %s\n", tp.Format(e.At, time.RFC3339), util.FormatAmount(e.Amount))
	}
	return nil
}
