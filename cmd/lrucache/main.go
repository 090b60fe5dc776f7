// Package main provides the lrucache command line tool
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"lrucache/internal/cache"
	"lrucache/internal/config"
)

// Build information set via ldflags
var version = "dev"

var (
	configPath string
	capacity   int
	policy     string
	logger     zerolog.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "lrucache",
	Short:         "Replay workloads against a fixed capacity cache",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if cmd.Flags().Changed("capacity") {
			cfg.Cache.Capacity = capacity
		}
		if cmd.Flags().Changed("policy") {
			cfg.Cache.Policy = policy
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		logger = zerolog.New(os.Stderr).Level(cfg.LogLevel()).With().Timestamp().Logger()
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lrucache %s\n", version)
	},
}

// newManager builds the cache described by cfg behind a locking manager
func newManager() (*cache.Manager[string, string], error) {
	p, err := cfg.EvictionPolicy()
	if err != nil {
		return nil, err
	}
	c, err := cache.New[string, string](p, cfg.Cache.Capacity)
	if err != nil {
		return nil, err
	}
	if c.Capacity() != cfg.Cache.Capacity {
		logger.Warn().
			Int("requested", cfg.Cache.Capacity).
			Int("capacity", c.Capacity()).
			Msg("capacity below 1, using default")
	}
	managerLogger := logger.With().
		Str("component", "cache-manager").
		Str("policy", string(p)).
		Logger()
	return cache.NewManager[string, string](c, &managerLogger), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yml", "path to the YAML configuration")
	rootCmd.PersistentFlags().IntVar(&capacity, "capacity", 0, "cache capacity, overrides the configuration")
	rootCmd.PersistentFlags().StringVar(&policy, "policy", "", "eviction policy (lru, fifo or lfu), overrides the configuration")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newBenchCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
