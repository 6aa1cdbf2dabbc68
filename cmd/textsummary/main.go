package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/localrivet/textsummary"
	"github.com/localrivet/textsummary/internal/config"
	"github.com/localrivet/textsummary/internal/errortypes"
	"github.com/localrivet/textsummary/internal/logger"
)

// options holds the command line flags.
type options struct {
	configPath string
	transport  string
	addr       string
	input      string
	method     string
	ratio      float64
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("textsummary", flag.ContinueOnError)
	opts := &options{}
	fs.StringVar(&opts.configPath, "config", config.DefaultConfigFilename, "path to the configuration file")
	fs.StringVar(&opts.transport, "transport", "", "transport to serve on (stdio or http), overrides the config file")
	fs.StringVar(&opts.addr, "addr", "", "HTTP listen address, overrides the config file")
	fs.StringVar(&opts.input, "input", "", "summarize this file ('-' for stdin), print the result and exit")
	fs.StringVar(&opts.method, "method", "", "summarization method for -input (extractive, abstractive or both)")
	fs.Float64Var(&opts.ratio, "ratio", 0, "compression ratio for -input, in (0, 1]")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func main() {
	appLogger := startupLogger(os.Stderr)

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg, err := config.LoadConfigWithPath(opts.configPath)
	if err != nil {
		logger.LogError(err)
		appLogger.Fatal("Failed to load configuration")
	}

	appLogger = config.NewLogger(cfg)
	logger.SetDefaultLogger(appLogger)
	slog.SetDefault(config.NewSlogLogger(cfg))

	if opts.input != "" {
		if err := runOnce(opts, cfg, os.Stdin, os.Stdout); err != nil {
			logger.LogError(err)
			os.Exit(1)
		}
		return
	}

	srvLogger := appLogger.WithContext("server")
	srv, err := textsummary.NewServer(textsummary.ServerOptions{
		Config:    cfg,
		Transport: opts.transport,
		HTTPAddr:  opts.addr,
		Logger:    slog.Default(),
	})
	if err != nil {
		logger.LogError(err)
		appLogger.Fatal("Failed to initialize server")
	}
	srvLogger.Info("Server initialized (transport %s)", cfg.Server.Transport)

	setupSignalHandler(srv, appLogger)

	srvLogger.Info("Starting server...")
	if err := srv.Start(); err != nil {
		logger.LogError(err)
		appLogger.Fatal("Server failed")
	}
	srvLogger.Info("Server stopped")
}

// runOnce summarizes a single document and writes the response as JSON.
func runOnce(opts *options, cfg *config.Config, stdin io.Reader, stdout io.Writer) error {
	text, err := readInput(opts.input, stdin)
	if err != nil {
		return err
	}

	service, err := textsummary.CreateComponents(cfg, slog.Default())
	if err != nil {
		return err
	}

	resp, err := service.Summarize(context.Background(), textsummary.SummarizeRequest{
		Text:             text,
		Method:           opts.method,
		CompressionRatio: opts.ratio,
	})

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(resp); encErr != nil {
		return errortypes.InternalError(encErr, "failed to write response")
	}
	return err
}

func readInput(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", errortypes.ValidationError(err, fmt.Sprintf("failed to read input %q", path))
	}
	return string(data), nil
}

// startupLogger loads the .env files (".env" when none are given) and then
// builds the startup logger, so LOG_LEVEL may come from either.
func startupLogger(out io.Writer, envFiles ...string) *logger.Logger {
	envErr := godotenv.Load(envFiles...)
	appLogger := setupLogging(out)

	// A missing .env file is fine
	if envErr != nil && !os.IsNotExist(envErr) {
		appLogger.Warn("Failed to load .env file: %v", envErr)
	}
	return appLogger
}

// setupLogging configures and returns the startup logger. LOG_LEVEL applies
// until the configuration is loaded.
func setupLogging(out io.Writer) *logger.Logger {
	cfg := logger.DefaultConfig()
	cfg.Output = out

	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		cfg.Level = logger.ParseLevel(levelStr)
	}

	appLogger := logger.New(cfg)
	logger.SetDefaultLogger(appLogger)

	return appLogger
}

// setupSignalHandler stops the server on SIGINT or SIGTERM.
func setupSignalHandler(srv *textsummary.Server, log *logger.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Received shutdown signal, terminating gracefully...")

		if err := srv.Stop(); err != nil {
			logger.LogError(errortypes.InternalError(err, "error stopping server during shutdown"))
			os.Exit(1)
		}

		log.Info("Shutdown complete")
		// stdio transport only returns when stdin closes
		os.Exit(0)
	}()
}
