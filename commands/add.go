package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChaseCares/pill-doser/internal/core/dose"
	"github.com/ChaseCares/pill-doser/internal/tracker"
	"github.com/ChaseCares/pill-doser/internal/util"
)

var (
	addAt     string
	addPreset bool

	addCmd = &cobra.Command{
		Use:   "add [amount]",
		Short: "Record a dose",
		Long: `Record a dosing event. The amount is a positive number of units; with
--preset the configured default amount is used instead.

Examples:
  pill-doser add 1
  pill-doser add 0.5 --at 2024-03-01T08:00:00Z
  pill-doser add --preset`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAdd,
	}
)

func init() {
	addCmd.Flags().StringVar(&addAt, "at", "",
		"Timestamp of the dose (RFC3339; defaults to now)")
	addCmd.Flags().BoolVar(&addPreset, "preset", false,
		"Use the configured default dose amount")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	var amount float64
	switch {
	case addPreset && len(args) == 0:
		amount = cfg.DefaultDose
	case len(args) == 1:
		amount, err = strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[0], err)
		}
	default:
		return fmt.Errorf("an amount argument or --preset is required")
	}

	at := time.Now()
	if addAt != "" {
		at, err = dose.ParseTimestamp(addAt)
		if err != nil {
			return fmt.Errorf("invalid --at timestamp %q: %w", addAt, err)
		}
	}

	tr, err := tracker.New(cfg)
	if err != nil {
		return err
	}
	defer tr.Close()

	if err := tr.Add(context.Background(), amount, at); err != nil {
		return err
	}

	fmt.Printf("Recorded %s at %s\n", util.FormatAmount(amount), at.UTC().Format(time.RFC3339))
	return nil
}
