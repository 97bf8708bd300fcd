package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/uniguide/internal/config"
	"github.com/abhisek/uniguide/internal/mlmodel"
	"github.com/abhisek/uniguide/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "uniguide",
	Short:        "Academic risk advisor for university students",
	Long:         "UniGuide assesses a student's academic record with a rule engine and a learned model, and suggests what to do next.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides UNIGUIDE_DB env var)")
	rootCmd.PersistentFlags().String("model", "", "Path to a model artifact (overrides UNIGUIDE_MODEL env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(modelCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration: defaults, then --config file, then
// UNIGUIDE_* env vars, then flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("model"); p != "" {
		cfg.Model.Path = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		if _, err := config.ParseLevel(l); err != nil {
			return cfg, err
		}
		cfg.Log.Level = l
	}
	return cfg, nil
}

// newLogger writes diagnostics to stderr so stdout stays parseable.
func newLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	return cfg.Log.NewLogger(cmd.ErrOrStderr())
}

// resolveDBPath returns the database path using --db / config (highest
// priority), then UNIGUIDE_DB env var, then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// modelSource picks the remote service when a URL is configured and the
// artifact loader otherwise.
func modelSource(cfg config.Config) mlmodel.Source {
	if cfg.Model.URL != "" {
		// Load has already validated the scale.
		scale, _ := mlmodel.ParseConfidenceScale(cfg.Model.ConfidenceScale)
		return mlmodel.Static(mlmodel.NewRemoteClassifier(cfg.Model.URL, cfg.Model.Timeout,
			mlmodel.WithConfidenceScale(scale)))
	}
	return mlmodel.NewLoader(cfg.Model.Path)
}

