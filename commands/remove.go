package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChaseCares/pill-doser/internal/tracker"
)

var (
	removeAt string

	removeCmd = &cobra.Command{
		Use:   "remove",
		Short: "Remove a recorded dose",
		Long: `Remove the dose recorded at an exact timestamp. When several entries
share the timestamp the most recently added one is removed.`,
		RunE: runRemove,
	}
)

func init() {
	removeCmd.Flags().StringVar(&removeAt, "at", "",
		"Timestamp of the dose to remove (exact match, as stored)")
	removeCmd.MarkFlagRequired("at")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	tr, err := tracker.New(cfg)
	if err != nil {
		return err
	}
	defer tr.Close()

	removed, err := tr.Remove(context.Background(), removeAt)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("no dose recorded at %s", removeAt)
	}

	fmt.Printf("Removed dose at %s\n", removeAt)
	return nil
}
