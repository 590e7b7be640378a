// Package youtube wraps the YouTube Data API v3 calls used by search,
// trends and comment collection.
package youtube

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"thirdcoast.systems/trendscout/internal/metrics"
)

const providerName = "youtube"

// Options configures a Client.
type Options struct {
	APIKey            string
	RegionCode        string
	RelevanceLanguage string
	// RequestsPerSecond throttles outgoing calls; zero disables the throttle.
	RequestsPerSecond float64
	Timeout           time.Duration
	// Endpoint overrides the API base URL (tests).
	Endpoint string
	// HTTPClient supplies the base round tripper. The API key is layered on top.
	HTTPClient *http.Client
}

// Client issues YouTube Data API requests.
type Client struct {
	svc     *yt.Service
	limiter *rate.Limiter
	opts    Options
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("youtube api key is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}

	var base http.RoundTripper = http.DefaultTransport
	if opts.HTTPClient != nil && opts.HTTPClient.Transport != nil {
		base = opts.HTTPClient.Transport
	}
	httpClient := &http.Client{
		Transport: &transport.APIKey{Key: opts.APIKey, Transport: base},
		Timeout:   opts.Timeout,
	}

	clientOpts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	svc, err := yt.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("youtube.NewService: %w", err)
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &Client{svc: svc, limiter: limiter, opts: opts}, nil
}

// call throttles, runs fn and records the outcome.
func (c *Client) call(ctx context.Context, operation string, fn func() error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	start := time.Now()
	err := fn()
	metrics.ObserveUpstream(providerName, operation, start, err)
	return err
}
