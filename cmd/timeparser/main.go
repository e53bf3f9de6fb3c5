// Command timeparser interprets German catalogue date expressions.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mbuechner/timeparser/internal/config"
	"github.com/mbuechner/timeparser/timeparser"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "timeparser",
	Short: "Interpret German date expressions from catalogue records",
	Long: `timeparser turns free-text date expressions such as "um 1920",
"2. Hälfte 19. Jh." or "15. März 1920" into a day range and a set of
era facets.

Each result is printed as

  <facet notations joined by "|"> <start day>|<end day>

where days count from 0001-01-01. Inputs that cannot be interpreted
give an empty line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger, err = cfg.Logging.NewLogger(verbose)
		if err != nil {
			return err
		}
		logger.Debug("Configuration loaded", zap.String("path", configPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "timeparser.yaml", "Configuration file")

	parseCmd.Flags().IntVarP(&workers, "workers", "j", 0, "Parallel workers (default from config)")
	parseCmd.Flags().BoolVar(&withInput, "with-input", false, "Prefix each result with its input and a tab")

	enrichCmd.Flags().StringVar(&dbPath, "db", "", "SQLite database (default from config)")

	rulesCmd.AddCommand(rulesCheckCmd)
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(enrichCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// newParser builds a Parser from the configured tables.
func newParser() (*timeparser.Parser, error) {
	p, err := timeparser.Load(cfg.Rules, cfg.Facets, cfg.StrictFacets,
		timeparser.WithLogger(logger),
		timeparser.WithWarningLimit(cfg.WarningLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to load tables: %w", err)
	}
	logger.Debug("Tables loaded",
		zap.Int("rules", len(p.Rules())),
		zap.Int("facets", len(p.Facets())))
	return p, nil
}
