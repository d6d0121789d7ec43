package catalog

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// maxRequestsPerSecond throttles catalog downloads when several documents
// are fetched from the same origin at once.
const maxRequestsPerSecond = 5

// httpLoader implements Loader for catalog documents served over HTTP.
type httpLoader struct {
	client *resty.Client
	rl     ratelimit.Limiter
	logger zerolog.Logger
}

// NewHTTPLoader creates a catalog loader that fetches documents by URL.
func NewHTTPLoader(timeout time.Duration, logger zerolog.Logger) Loader {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	return &httpLoader{
		client: client,
		rl:     ratelimit.New(maxRequestsPerSecond),
		logger: logger.With().Str("component", "http-catalog-loader").Logger(),
	}
}

// Load fetches the document at url.
func (l *httpLoader) Load(ctx context.Context, url string) ([]model.Product, error) {
	l.rl.Take()

	l.logger.Info().Str("url", url).Msg("fetching catalog")

	resp, err := l.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("catalog request cancelled: %w", ctx.Err())
		}
		l.logger.Error().Err(err).Str("url", url).Msg("failed to fetch catalog")
		return nil, fmt.Errorf("failed to fetch catalog %s: %w", url, err)
	}

	if resp.IsError() {
		l.logger.Error().
			Str("url", url).
			Int("status", resp.StatusCode()).
			Msg("catalog request failed")
		return nil, fmt.Errorf("failed to fetch catalog %s: HTTP %d", url, resp.StatusCode())
	}

	products, err := Decode(url, []byte(resp.String()))
	if err != nil {
		return nil, err
	}

	l.logger.Info().
		Str("url", url).
		Int("products_loaded", len(products)).
		Msg("catalog fetched successfully")

	return products, nil
}

// Close releases the client's idle connections.
func (l *httpLoader) Close() error {
	if err := l.client.Close(); err != nil {
		return fmt.Errorf("failed to close catalog client: %w", err)
	}
	return nil
}
