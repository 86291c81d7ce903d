// Package config loads run settings and the input list.
package config

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/coprofile"
	"gopkg.in/yaml.v3"
)

// Settings controls fetching and output for a run. Durations are given in
// seconds in the settings file.
type Settings struct {
	BaseURL            string  `yaml:"base_url" json:"base_url"`
	UserAgent          string  `yaml:"user_agent" json:"user_agent"`
	RequestTimeout     float64 `yaml:"request_timeout" json:"request_timeout"`
	RateLimitPerMinute int     `yaml:"rate_limit_per_minute" json:"rate_limit_per_minute"`
	OutputDir          string  `yaml:"output_dir" json:"output_dir"`
	MaxRetries         int     `yaml:"max_retries" json:"max_retries"`
	BackoffFactor      float64 `yaml:"backoff_factor" json:"backoff_factor"`
	Concurrency        int     `yaml:"concurrency" json:"concurrency"`
}

// Defaults returns the settings used for any key the settings file omits.
func Defaults() Settings {
	return Settings{
		BaseURL:            "https://pitchbook.com",
		UserAgent:          "PitchbookCompanyProfileScraper/1.0 (+https://bitbash.dev)",
		RequestTimeout:     15,
		RateLimitPerMinute: 30,
		OutputDir:          "data",
		MaxRetries:         3,
		BackoffFactor:      0.5,
		Concurrency:        1,
	}
}

// Timeout returns the per-request timeout.
func (s Settings) Timeout() time.Duration {
	return seconds(s.RequestTimeout)
}

// Backoff returns the delay before the first retry. Later retries double it.
func (s Settings) Backoff() time.Duration {
	return seconds(s.BackoffFactor)
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

// Validate reports the first setting that cannot be used. A rate limit of
// zero or less is valid and disables limiting.
func (s Settings) Validate() error {
	u, err := url.Parse(s.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return coprofile.Errorf(coprofile.EINVALID, "base_url must be an absolute URL, got %q", s.BaseURL)
	}
	if s.RequestTimeout <= 0 {
		return coprofile.Errorf(coprofile.EINVALID, "request_timeout must be positive")
	}
	if s.MaxRetries < 1 {
		return coprofile.Errorf(coprofile.EINVALID, "max_retries must be at least 1")
	}
	if s.BackoffFactor < 0 {
		return coprofile.Errorf(coprofile.EINVALID, "backoff_factor must not be negative")
	}
	if s.Concurrency < 1 {
		return coprofile.Errorf(coprofile.EINVALID, "concurrency must be at least 1")
	}
	return nil
}

// Load reads settings from path over Defaults. Files ending in .json are
// decoded as JSON; anything else as YAML. A missing file is not an error:
// the defaults are returned with found set to false.
func Load(path string) (s Settings, found bool, err error) {
	s = Defaults()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, false, nil
	}
	if err != nil {
		return s, false, fmt.Errorf("failed to read settings file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &s)
	} else if len(bytes.TrimSpace(data)) > 0 {
		err = yaml.Unmarshal(data, &s)
	}
	if err != nil {
		return s, true, coprofile.Errorf(coprofile.EINVALID, "failed to parse settings file %s: %v", path, err)
	}

	if err := s.Validate(); err != nil {
		return s, true, err
	}
	return s, true, nil
}

// LoadInputs reads profile URLs or identifiers, one per line. Lines are
// trimmed; blank lines and lines starting with # are skipped. A missing
// file yields an empty list with found set to false.
func LoadInputs(path string) (inputs []string, found bool, err error) {
	inputs = []string{}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return inputs, false, nil
	}
	if err != nil {
		return inputs, false, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return inputs, true, fmt.Errorf("failed to read input file: %w", err)
	}
	return inputs, true, nil
}
