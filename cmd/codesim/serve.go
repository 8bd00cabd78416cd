package main

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/config"
	"github.com/ludo-technologies/codesim/internal/server"
	"github.com/ludo-technologies/codesim/service"
)

// ServeCommand runs the HTTP API
type ServeCommand struct {
	configFile    string
	address       string
	threshold     float64
	maxInputBytes int64
	envFile       string
}

// NewServeCommand creates a new serve command
func NewServeCommand() *ServeCommand {
	return &ServeCommand{
		address:       domain.DefaultServerAddress,
		threshold:     domain.DefaultThreshold,
		maxInputBytes: domain.DefaultMaxInputBytes,
		envFile:       ".env",
	}
}

// CreateCobraCommand creates the cobra command for the HTTP server
func (s *ServeCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the comparison engine over HTTP",
		Long: `Start an HTTP server exposing the comparison engine.

Endpoints:
  GET  /healthz                 liveness probe
  GET  /api/v1/languages        supported languages
  POST /api/v1/compare          JSON body {code1, code2, language, threshold}
  POST /api/v1/compare/upload   multipart form: zip1/file1/code1 and zip2/file2/code2

Variables from a .env file are loaded before the configuration, so
CODESIM_* settings can live there.

Examples:
  codesim serve
  codesim serve --addr 127.0.0.1:9000 --threshold 0.7`,
		Args: cobra.NoArgs,
		RunE: s.runServe,
	}

	cmd.Flags().StringVarP(&s.configFile, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVar(&s.address, config.FlagAddress, s.address, "Listen address")
	cmd.Flags().Float64VarP(&s.threshold, config.FlagThreshold, "t", s.threshold, "Default clone threshold for requests without one")
	cmd.Flags().Int64Var(&s.maxInputBytes, config.FlagMaxInputBytes, s.maxInputBytes, "Maximum size of one input in bytes (0 disables the limit)")
	cmd.Flags().StringVar(&s.envFile, "env-file", s.envFile, "Environment file loaded at startup")

	return cmd
}

func (s *ServeCommand) runServe(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(s.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domain.NewConfigError("failed to load "+s.envFile, err)
	}

	cfg, err := loadCommandConfig(cmd, s.configFile, ".", config.Overrides{
		Address:       s.address,
		Threshold:     s.threshold,
		MaxInputBytes: s.maxInputBytes,
	})
	if err != nil {
		return err
	}

	components, err := newEngineComponents(cfg)
	if err != nil {
		return err
	}

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := server.New(
		service.NewCompareService(components.engine, components.reader, nil),
		components.reader,
		service.NewCompareOutputFormatter(false),
		components.registry,
		server.Options{
			Threshold:     cfg.Compare.Threshold,
			MaxInputBytes: cfg.Input.MaxInputBytes,
			MaxUploadMB:   cfg.Server.MaxUploadMB,
		},
	)

	slog.Info("starting server", "addr", cfg.Server.Address, "languages", len(components.registry.Languages()))
	cmd.PrintErrf("codesim listening on %s\n", cfg.Server.Address)
	return srv.Run(cmd.Context(), cfg.Server.Address)
}

// NewServeCmd creates and returns the serve cobra command
func NewServeCmd() *cobra.Command {
	return NewServeCommand().CreateCobraCommand()
}
