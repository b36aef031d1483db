package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"vet-clinic-ops/internal/adapters/llm"
	"vet-clinic-ops/internal/config"
	"vet-clinic-ops/internal/domain/analysis"
	"vet-clinic-ops/internal/platform/logger"
	"vet-clinic-ops/internal/router"
	"vet-clinic-ops/internal/seed"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.Logging)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync(log) }()

			return serve(cmd.Context(), cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	data, err := loadSeed(cfg.Seed)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	analyzer, err := newAnalyzer(cfg.Analysis, log, reg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: cfg.Server.Addr(),
		Handler: router.NewRouter(router.Options{
			Logger:   log,
			Analyzer: analyzer,
			Seed:     data,
			Registry: reg,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func newLogger(cfg config.LoggingConfig) (logger.Logger, error) {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Level),
		Format: logger.ParseFormat(cfg.Format),
		App:    cfg.App,
	})
}

func loadSeed(cfg config.SeedConfig) (seed.Data, error) {
	now := time.Now()
	if cfg.Path == "" {
		return seed.Default(now)
	}
	return seed.LoadFile(cfg.Path, now)
}

// newAnalyzer arma el Analyzer con el provider configurado. reg puede ser nil.
func newAnalyzer(cfg config.AnalysisConfig, log logger.Logger, reg prometheus.Registerer) (*analysis.Analyzer, error) {
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	if provider != nil && !provider.Configured() {
		log.Warn("analysis api key missing, assessments will be simulated", map[string]any{"provider": provider.Name()})
	}

	var metrics *analysis.Metrics
	if reg != nil {
		if metrics, err = analysis.NewMetrics(reg); err != nil {
			return nil, err
		}
	}

	return analysis.NewAnalyzer(provider, analysis.Config{
		SummaryLanguage: cfg.SummaryLanguage,
		Logger:          log,
		Metrics:         metrics,
	}), nil
}
