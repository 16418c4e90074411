package main

import (
	"fmt"
	"os"

	"github.com/de-tools/survey-atlas/pkg/monitoring"
	"github.com/de-tools/survey-atlas/pkg/server"
	"github.com/de-tools/survey-atlas/pkg/services/calculator"
	"github.com/de-tools/survey-atlas/pkg/services/config"
	"github.com/de-tools/survey-atlas/pkg/services/presets"
	"github.com/de-tools/survey-atlas/pkg/services/stratification"
	"github.com/de-tools/survey-atlas/pkg/store/plan"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Survey Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML config file (settings can also come from SURVEY_* variables)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Pretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnvFile(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger(cfg.Log)
	ctx := logger.WithContext(cmd.Context())

	registry := presets.NewDefaultRegistry()
	if cfg.Presets.Path != "" {
		registry, err = presets.NewRegistryFromFile(cfg.Presets.Path)
		if err != nil {
			return fmt.Errorf("failed to load presets: %w", err)
		}
		zerolog.Ctx(ctx).Info().Msgf("Presets found at `%s` successfully loaded.", cfg.Presets.Path)
	}
	for _, p := range registry.List() {
		zerolog.Ctx(ctx).Info().Msgf("Preset: `%s`", p)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(reg)

	calc := calculator.NewService(metrics)
	plans := stratification.NewService(plan.NewStore(), calc, metrics)

	api := server.NewWebAPI(server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Calculator: calc,
			Plans:      plans,
			Presets:    registry,
			Metrics:    metrics,
			Gatherer:   reg,
			Logger:     logger,
		},
	})

	return api.Start()
}
