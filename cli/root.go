// Package cli holds the agroadvisor command tree.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-agroadvisor/config"
	"go-agroadvisor/engine"
	"go-agroadvisor/marketdata"
)

// app carries the state shared by every subcommand once the root has run.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "agroadvisor",
		Short: "Crop recommendation and market trend service",
		Long: `agroadvisor recommends crops from growing conditions or a soil test and
charts simulated or real market price trends.

Run "agroadvisor serve" to start the HTTP API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger, err = config.NewLogger(cfg.Logging, a.verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(a),
		newRecommendCmd(a),
		newTrendsCmd(a),
	)
	return root
}

// engine builds the recommender from the configured tables.
func (a *app) engine() (*engine.Engine, error) {
	kb, err := engine.LoadKnowledgeBaseFile(a.cfg.Engine.KnowledgeBasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}
	locations, err := engine.LoadLocationTableFile(a.cfg.Engine.LocationsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load location table: %w", err)
	}
	a.logger.Debug("Knowledge tables loaded",
		zap.Int("crops", kb.Len()),
		zap.Int("regions", len(locations.Regions())))
	return engine.NewEngine(kb, locations, engine.WithMaxResults(a.cfg.Engine.MaxResults)), nil
}

// provider returns the market-data client, or nil when it is disabled.
func (a *app) provider() marketdata.Provider {
	m := a.cfg.MarketData
	if !m.Enabled {
		return nil
	}
	return marketdata.NewClient(m.BaseURL, m.APIKey, m.TimeoutDuration())
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
