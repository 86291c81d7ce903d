package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/coprofile/config"
	"github.com/fwojciec/coprofile/extract"
	"github.com/fwojciec/coprofile/fs"
	"github.com/fwojciec/coprofile/goquery"
	cphttp "github.com/fwojciec/coprofile/http"
	"github.com/fwojciec/coprofile/schema"
	"github.com/fwojciec/coprofile/scrape"
	cpslog "github.com/fwojciec/coprofile/slog"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("coprofile"),
		kong.Description("Scrape company profile pages into JSON and JSONL records"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run", uuid.NewString())

	settings, found, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if found {
		logger.Info("loaded settings", "path", cli.Config)
	} else {
		logger.Warn("settings file not found, using defaults", "path", cli.Config)
	}
	if cli.Concurrency > 0 {
		settings.Concurrency = cli.Concurrency
	}

	inputs, found, err := config.LoadInputs(cli.Input)
	if err != nil {
		return fmt.Errorf("load inputs: %w", err)
	}
	if !found {
		logger.Warn("input file does not exist", "path", cli.Input)
	}
	if len(inputs) == 0 {
		logger.Warn("no profiles to process", "path", cli.Input)
	}

	output := cli.Output
	if output == "" {
		output = filepath.Join(settings.OutputDir, DefaultOutputName)
	}

	deps := &Dependencies{
		Ctx:      ctx,
		Stdout:   stdout,
		Logger:   logger,
		Settings: settings,
		Writer:   fs.NewWriter(output),
	}

	fetcher := cpslog.NewLoggingFetcher(
		cphttp.NewFetcher(
			cphttp.WithTimeout(settings.Timeout()),
			cphttp.WithUserAgent(settings.UserAgent),
		),
		logger,
	)
	defer fetcher.Close()

	deps.Scraper = &scrape.Scraper{
		Client: &scrape.ProfileClient{
			BaseURL:     settings.BaseURL,
			Fetcher:     fetcher,
			Limiter:     scrape.NewRateLimiter(settings.RateLimitPerMinute),
			RetryDelays: scrape.BackoffDelays(settings.Backoff(), settings.MaxRetries),
			Log: func(format string, args ...any) {
				logger.Warn(fmt.Sprintf(format, args...))
			},
		},
		Extractor:   cpslog.NewLoggingExtractor(extract.NewExtractor(goquery.NewParser()), logger),
		Concurrency: settings.Concurrency,
	}

	cmd := &ScrapeCmd{Inputs: inputs, Validate: schema.ValidateProfiles}
	return cmd.Run(deps)
}
