// Package scrape drives the retrieval of company profile pages: it resolves
// profile identifiers to URLs, paces and retries fetches, and runs a batch of
// inputs through extraction.
package scrape

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/coprofile"
)

// DefaultBaseURL is the site profile identifiers are resolved against.
const DefaultBaseURL = "https://pitchbook.com"

// profilePath is the path prefix of a company profile page.
const profilePath = "/profiles/company/"

// ProfileClient fetches company profile pages by URL or identifier.
type ProfileClient struct {
	BaseURL     string
	Fetcher     coprofile.Fetcher
	Limiter     coprofile.RateLimiter
	RetryDelays []time.Duration
	Log         LogFunc
}

// NormalizeURL returns the profile URL for idOrURL. Absolute http and https
// URLs are returned unchanged; anything else is treated as a profile
// identifier and resolved to {BaseURL}/profiles/company/{id}.
func (c *ProfileClient) NormalizeURL(idOrURL string) (string, error) {
	idOrURL = strings.TrimSpace(idOrURL)
	if strings.HasPrefix(idOrURL, "http://") || strings.HasPrefix(idOrURL, "https://") {
		return idOrURL, nil
	}
	if idOrURL == "" {
		return "", coprofile.Errorf(coprofile.EINVALID, "empty profile identifier")
	}

	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", coprofile.Errorf(coprofile.EINVALID, "invalid base url %q", baseURL)
	}

	ref := &url.URL{Path: profilePath + strings.TrimPrefix(idOrURL, "/")}
	return base.ResolveReference(ref).String(), nil
}

// FetchProfile retrieves the profile page for idOrURL. The limiter is
// acquired before every attempt, so retries are paced like first requests.
func (c *ProfileClient) FetchProfile(ctx context.Context, idOrURL string) (coprofile.Markup, error) {
	u, err := c.NormalizeURL(idOrURL)
	if err != nil {
		return coprofile.Markup{}, err
	}

	fetch := func(ctx context.Context, url string) (string, error) {
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return "", err
			}
		}
		return c.Fetcher.Fetch(ctx, url)
	}

	html, err := FetchWithRetryDelays(ctx, u, fetch, c.Log, c.RetryDelays)
	if err != nil {
		return coprofile.Markup{}, err
	}
	return coprofile.Markup{URL: u, HTML: html}, nil
}
