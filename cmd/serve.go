package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/uniguide/internal/advisor"
	"github.com/abhisek/uniguide/internal/metrics"
	"github.com/abhisek/uniguide/internal/mlmodel"
	"github.com/abhisek/uniguide/internal/server"
	"github.com/abhisek/uniguide/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assessment HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("listen"); addr != "" {
			cfg.Server.Listen = addr
		}
		logger := newLogger(cmd, cfg)

		m := metrics.New()
		src := modelSource(cfg)

		// Load eagerly so a broken artifact shows up at startup, not on
		// the first request. The server still runs without a model.
		if _, err := src.Load(); err != nil {
			logger.Warn("model unavailable, serving rule-based results only", "error", err)
		}

		opts := []advisor.Option{advisor.WithLogger(logger), advisor.WithObserver(m)}
		var events store.EventRepo
		if cfg.RecordEvents {
			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()
			events = s.EventRepo()
			opts = append(opts, advisor.WithRecorder(advisor.EventRecorder(events)))
		}

		srv := server.New(server.Deps{
			Advisor: advisor.New(mlmodel.NewAdapter(src, logger), opts...),
			Events:  events,
			Model:   src,
			Metrics: m,
			Logger:  logger,
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.ListenAndServe(ctx, cfg.Server.Listen,
			cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout)
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "Listen address (overrides UNIGUIDE_LISTEN env var)")
}
