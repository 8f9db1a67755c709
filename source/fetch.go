package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	// DefaultMaxRetries is the number of retries after the first attempt.
	DefaultMaxRetries = 3

	// DefaultBaseDelay is the first backoff interval; it doubles per retry.
	DefaultBaseDelay = 100 * time.Millisecond
)

// Fetcher reads payloads from HTTP(S) URLs, file:// URLs or local paths.
// HTTP requests are retried with exponential backoff on network errors,
// 429 and 5xx responses.
type Fetcher struct {
	Client     *http.Client
	MaxRetries int
	BaseDelay  time.Duration
	Logger     *slog.Logger
}

// NewFetcher creates a Fetcher with default retry settings.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client:     http.DefaultClient,
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
	}
}

// Fetch returns the payload stored at location. Every failure wraps
// ErrNoData.
func (f *Fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	data, err := f.fetch(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}
	f.logger().Info("fetched payload", "location", location, "bytes", len(data))
	return data, nil
}

func (f *Fetcher) fetch(ctx context.Context, location string) ([]byte, error) {
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// bare or Windows drive path
		return os.ReadFile(location)
	}
	switch strings.ToLower(u.Scheme) {
	case "file":
		return os.ReadFile(u.Path)
	case "http", "https":
		return f.fetchHTTP(ctx, location)
	default:
		return nil, fmt.Errorf("source: unsupported scheme %q", u.Scheme)
	}
}

func (f *Fetcher) fetchHTTP(ctx context.Context, location string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	var lastErr error
	for attempt := 0; attempt <= f.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := f.BaseDelay << (attempt - 1)
			f.logger().Warn("retrying fetch", "location", location, "attempt", attempt, "wait", wait, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}
		data, retry, err := f.get(ctx, client, location)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !retry {
			break
		}
	}
	return nil, lastErr
}

// get performs one request and reports whether a failure is worth retrying.
func (f *Fetcher) get(ctx context.Context, client *http.Client, location string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, false, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retry, &StatusError{URL: location, StatusCode: resp.StatusCode}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}
	return data, false, nil
}

func (f *Fetcher) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.Default()
	}
	return f.Logger
}
