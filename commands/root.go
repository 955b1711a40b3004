package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChaseCares/pill-doser/internal/config"
	"github.com/ChaseCares/pill-doser/internal/presentation/formatter"
	"github.com/ChaseCares/pill-doser/internal/tracker"
	"github.com/ChaseCares/pill-doser/internal/util"
)

var (
	// Logging related
	debug bool

	// Paths
	configPath string
	dataDir    string

	// Output related
	outputFormat string
	timezone     string

	// Rate and store overrides
	pillsPerInterval float64
	hoursPerInterval float64
	sheetURL         string
	backProject      bool

	rootCmd = &cobra.Command{
		Use:   "pill-doser [flags]",
		Short: "Personal medication dosage tracker",
		Long: `pill-doser records discrete dosing events and projects a continuous
"need" curve from a configured dosing rate.

Running without a subcommand prints the current projection: how much is owed
now and when the next half and full unit come due.

Examples:
  pill-doser                                  # Current statistics and curve
  pill-doser --output summary                 # Human-readable readout
  pill-doser add 0.5                          # Record half a pill now
  pill-doser add --preset                     # Quick-add the configured amount
  pill-doser remove --at 2024-03-01T08:00:00Z # Remove a mistaken entry
  pill-doser list                             # Show the recorded timeline
  pill-doser serve                            # Expose the store over HTTP
  pill-doser top                              # Live terminal view`,
		RunE: runStatus,
	}
)

const (
	defaultLogFile    = "~/.pill-doser/logs/app.log"
	defaultDataDir    = "~/.pill-doser"
	defaultConfigFile = "~/.pill-doser/config.json"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigFile,
		"Config file path")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir,
		"Directory for the local database and snapshot")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Display timezone (e.g. UTC, Europe/London)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")

	rootCmd.PersistentFlags().Float64Var(&pillsPerInterval, "pills", 0,
		"Pills allowed per interval (overrides config)")
	rootCmd.PersistentFlags().Float64Var(&hoursPerInterval, "hours", 0,
		"Interval length in hours (overrides config)")
	rootCmd.PersistentFlags().StringVar(&sheetURL, "sheet-url", "",
		"Remote sheet endpoint URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&backProject, "back-project", false,
		"Anchor the ideal line before the first dose instead of at it")

	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv, summary)")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// setup initializes logging and the display timezone, then resolves the
// layered configuration with flag overrides on top.
func setup(cmd *cobra.Command) (*config.Config, error) {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	util.InitLogger(logLevel, logFile, debug)

	if err := util.InitializeTimeProvider(timezone); err != nil {
		return nil, err
	}

	cfg, err := config.Load(expandPath(configPath))
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("data-dir") || cfg.DataDir == "" {
		cfg.DataDir = expandPath(dataDir)
	} else {
		cfg.DataDir = expandPath(cfg.DataDir)
	}
	if cmd.Flags().Changed("pills") {
		cfg.PillsPerInterval = pillsPerInterval
	}
	if cmd.Flags().Changed("hours") {
		cfg.HoursPerInterval = hoursPerInterval
	}
	if cmd.Flags().Changed("sheet-url") {
		cfg.SheetURL = sheetURL
	}
	if cmd.Flags().Changed("back-project") {
		cfg.BackProject = backProject
	}
	if cmd.Flags().Changed("timezone") {
		cfg.Timezone = timezone
	} else if cfg.Timezone != "" && cfg.Timezone != timezone {
		if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	tr, err := tracker.New(cfg)
	if err != nil {
		return err
	}
	defer tr.Close()

	report, err := tr.Report(context.Background())
	if err != nil {
		return err
	}

	f, err := formatter.New(outputFormat, os.Stdout)
	if err != nil {
		return err
	}
	return f.Format(report)
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
