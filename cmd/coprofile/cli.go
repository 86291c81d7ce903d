package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/coprofile"
	"github.com/fwojciec/coprofile/config"
	"github.com/fwojciec/coprofile/fs"
	"github.com/fwojciec/coprofile/schema"
	"github.com/fwojciec/coprofile/scrape"
)

// DefaultOutputName is the JSON output file created in the settings'
// output_dir when --output is not given.
const DefaultOutputName = "sample_output.json"

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Input       string `short:"i" default:"data/inputs.sample.txt" help:"File with profile URLs or identifiers, one per line"`
	Output      string `short:"o" help:"Output JSON path; the JSONL file is written next to it (default: <output_dir>/sample_output.json)"`
	Config      string `short:"c" default:"config/settings.yaml" help:"Settings file (YAML or JSON)"`
	Concurrency int    `help:"Concurrent profile fetches (overrides settings)"`
	Verbose     bool   `short:"v" help:"Enable debug logging"`
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Logger   *slog.Logger
	Settings config.Settings
	Scraper  *scrape.Scraper
	Writer   *fs.Writer
}

// ScrapeCmd fetches every input, validates the records and writes them.
type ScrapeCmd struct {
	Inputs   []string
	Validate func([]*coprofile.CompanyProfile) []schema.Violation
}

// Run executes the scrape. Inputs that fail are logged and skipped; the
// outputs are written even when no record was produced. If the run is
// interrupted, the records finished so far are still written before the
// error is returned.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	logger := deps.Logger

	res, runErr := deps.Scraper.Run(deps.Ctx, c.Inputs, func(e scrape.ProgressEvent) {
		switch e.Type {
		case scrape.ProgressStarted:
			logger.Info("processing profiles", "total", e.Total, "concurrency", deps.Settings.Concurrency)
		case scrape.ProgressFailed:
			logger.Error("failed to process profile",
				"input", e.Input,
				"progress", fmt.Sprintf("%d/%d", e.Completed, e.Total),
				"err", e.Error,
			)
		case scrape.ProgressCompleted:
			logger.Debug("processed profile",
				"input", e.Input,
				"progress", fmt.Sprintf("%d/%d", e.Completed, e.Total),
			)
		}
	})
	if res == nil {
		return fmt.Errorf("scrape: %w", runErr)
	}
	if runErr != nil {
		logger.Warn("scrape interrupted, writing completed records",
			"records", len(res.Profiles),
			"err", runErr,
		)
	}

	if violations := c.Validate(res.Profiles); len(violations) > 0 {
		logger.Warn("schema validation completed with errors", "count", len(violations))
		for _, v := range violations {
			logger.Warn("validation error", "err", v.Error())
		}
	} else {
		logger.Info("all records validated successfully", "count", len(res.Profiles))
	}

	if err := deps.Writer.WriteAll(res.Profiles); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	jsonPath, jsonlPath := deps.Writer.Paths()
	logger.Info("finished",
		"records", len(res.Profiles),
		"failed", len(res.Failures),
		"json", jsonPath,
		"jsonl", jsonlPath,
	)
	fmt.Fprintf(deps.Stdout, "Wrote %d records to %s and %s\n", len(res.Profiles), jsonPath, jsonlPath)
	if runErr != nil {
		return fmt.Errorf("scrape: %w", runErr)
	}
	return nil
}
