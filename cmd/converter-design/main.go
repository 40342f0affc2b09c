package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/iwvelando/converter-design/internal/batch"
	"github.com/iwvelando/converter-design/internal/config"
	"github.com/iwvelando/converter-design/internal/resultlog"
	"github.com/iwvelando/converter-design/internal/server"
	"github.com/iwvelando/converter-design/internal/session"
	"github.com/iwvelando/converter-design/pkg/constants"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// CLI override takes precedence
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = constants.DefaultLogLevel
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = constants.DefaultLogFormat
	}

	var config zap.Config
	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Logs go to stderr unless a file is configured, so the menu and reports
	// on stdout stay readable.
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		config.OutputPaths = []string{loggingConfig.OutputFile}
		config.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return config.Build()
}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	resultsDir string
}

// environment is what every command needs after start-up.
type environment struct {
	conf   *config.Configuration
	logger *zap.Logger
	store  *resultlog.Store
}

// setup loads the configuration, builds the logger and the result store.
// The config file is only required when --config was given explicitly.
func setup(cmd *cobra.Command, opts *globalOptions) (*environment, error) {
	required := cmd.Flags().Changed("config")
	conf, err := config.LoadOrDefault(opts.configPath, required)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s (see %s): %w", opts.configPath, constants.ExampleConfigFile, err)
	}
	if opts.resultsDir != "" {
		conf.Output.ResultsDir = opts.resultsDir
	}

	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	warnings, err := conf.ValidateConfiguration()
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	store := resultlog.NewStore(afero.NewOsFs(), conf.Output.ResultsDir, logger)
	return &environment{conf: conf, logger: logger, store: store}, nil
}

func runMenu(cmd *cobra.Command, opts *globalOptions) error {
	env, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = env.logger.Sync()
	}()

	err = session.New(os.Stdin, os.Stdout, env.store, env.logger).Run()
	if errors.Is(err, session.ErrInputClosed) {
		env.logger.Debug("session ended on closed input",
			zap.String("op", "main"),
		)
		os.Exit(1)
	}
	return err
}

func menuCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive design menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd, opts)
		},
	}
}

func designCmd(opts *globalOptions) *cobra.Command {
	var (
		file   string
		format string
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "design",
		Short: "Design every converter listed in a YAML batch file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer func() {
				_ = env.logger.Sync()
			}()

			f, err := batch.LoadFile(file)
			if err != nil {
				return err
			}

			// CLI override takes precedence over config
			outputFormat := env.conf.Output.Format
			if format != "" {
				outputFormat = format
			}

			var saver batch.Saver
			if save {
				saver = env.store
			}
			summary, err := batch.Run(os.Stdout, f, batch.Options{Format: outputFormat, Save: save}, saver, env.logger)
			if err != nil {
				return err
			}
			if summary.Rejected > 0 {
				return fmt.Errorf("%d of %d designs rejected", summary.Rejected, len(f.Designs))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the YAML batch file")
	cmd.Flags().StringVar(&format, "format", "", "type of output override: pretty, csv")
	cmd.Flags().BoolVar(&save, "save", false, "append every accepted design to its result log")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func serveCmd(opts *globalOptions) *cobra.Command {
	var (
		address string
		save    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the design API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer func() {
				_ = env.logger.Sync()
			}()

			limit, err := server.UploadLimit(env.conf.Server)
			if err != nil {
				return fmt.Errorf("server.maxUploadSize: %w", err)
			}
			if address == "" {
				address = env.conf.Server.Address
			}

			var saver server.Saver
			if save {
				saver = env.store
			}

			srv := &http.Server{
				Addr:              address,
				Handler:           server.NewHandler(env.logger, limit, version, saver),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				env.logger.Info("design API listening",
					zap.String("op", "main"),
					zap.String("address", address),
					zap.Int64("max_upload_bytes", limit),
				)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			env.logger.Info("shutting down design API",
				zap.String("op", "main"),
			)
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "listen address override")
	cmd.Flags().BoolVar(&save, "save", false, "allow requests to append results with ?save=true")
	return cmd
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "converter-design",
		Short:         "Design DC-DC converter power stages",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.resultsDir, "results-dir", "", "directory for the per-topology result logs")

	rootCmd.AddCommand(menuCmd(opts))
	rootCmd.AddCommand(designCmd(opts))
	rootCmd.AddCommand(serveCmd(opts))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}
}
