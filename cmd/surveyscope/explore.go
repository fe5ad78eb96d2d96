package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vanai-hackathon/surveyscope/internal/config"
	applog "github.com/vanai-hackathon/surveyscope/internal/log"
	"github.com/vanai-hackathon/surveyscope/internal/model"
	"github.com/vanai-hackathon/surveyscope/internal/pipeline"
	"github.com/vanai-hackathon/surveyscope/internal/report"
)

// runExploreCmd executes the explorer. Every problem is reported in the
// output and the command returns nil.
func runExploreCmd(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	cfg, err := buildConfig(cmd)
	if err != nil {
		fmt.Fprintf(out, "■ Configuration error: %v\n", err)
		return nil
	}

	logger := setupLogger(cmd, cfg)

	ctx, stop := signalContext(cmd)
	defer stop()

	explore(ctx, cfg, report.NewWriter(cfg.Format, out, getVersion()), logger)
	return nil
}

// explore checks that the data file exists, runs the analysis pipeline
// and writes whatever it produced.
func explore(ctx context.Context, cfg *config.Config, w report.Writer, logger *slog.Logger) {
	if _, err := os.Stat(cfg.DataFile); err != nil {
		logger.Debug("data file not available", "file", cfg.DataFile, "error", err)
		if err := safeWrite(func() (int, error) { return w.WriteMissing(cfg.DataFile) }); err != nil {
			logger.Error("failed to write report", "error", err)
		}
		return
	}

	rep := model.NewSurveyReport(cfg.DataFile)
	if err := pipeline.DefaultPipeline(cfg, logger).Execute(ctx, rep); err != nil {
		logger.Debug("analysis stopped early", "completed", rep.CompletedSteps, "error", err)
	}

	if err := safeWrite(func() (int, error) { return w.Write(rep) }); err != nil {
		logger.Error("failed to write report", "error", err)
	}
}

// safeWrite calls write and returns a panic inside the report writer as
// an error, so the explorer still exits cleanly.
func safeWrite(write func() (int, error)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("report writer panicked: %v", r)
		}
	}()
	_, err = write()
	return err
}

// buildConfig creates a Config from the configuration file and the
// command flags. Flags that were set explicitly win over the file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicit --config must exist; otherwise a missing file just
	// means defaults.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if flags.Changed("file") {
		if cfg.DataFile, err = flags.GetString("file"); err != nil {
			return nil, err
		}
	}

	if cfg.Format, err = flags.GetString("format"); err != nil {
		return nil, err
	}

	if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setupLogger creates the stderr logger. JSON reports get JSON logs.
func setupLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	if cfg.Format == config.FormatJSON {
		return applog.NewJSONLogger(cmd.ErrOrStderr(), cfg.Verbose)
	}
	return applog.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
}

// signalContext returns the command context cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
