// Package fetch downloads the dataset exports over HTTP into the local data
// directory.
package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// httpError marks a response worth retrying.
type httpError struct {
	status int
	url    string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("fetching %s: HTTP %d", e.url, e.status)
}

// Client downloads dataset files from a base URL, at most one request per
// second, retrying server-side failures.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
}

func New(baseURL string) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(2 * time.Minute)

	return &Client{
		http:    client,
		limiter: rate.NewLimiter(rate.Every(1*time.Second), 1),
	}
}

// Download fetches one named file into destDir, replacing any existing copy.
// The write goes through a temp file so a failed download never truncates a
// previously good one.
func (c *Client) Download(ctx context.Context, name, destDir string) error {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	dest := filepath.Join(destDir, name)
	tmp := dest + ".tmp"

	err := retry.Do(
		func() error {
			resp, err := c.http.R().
				SetContext(ctx).
				SetOutput(tmp).
				Get(name)
			if err != nil {
				return fmt.Errorf("fetching %s: %w", name, err)
			}
			if resp.IsError() {
				return &httpError{status: resp.StatusCode(), url: resp.Request.URL}
			}
			return nil
		},
		retry.Attempts(4),
		retry.RetryIf(func(err error) bool {
			if herr, ok := err.(*httpError); ok {
				if herr.status/100 == 5 {
					fmt.Printf("Server errored (%v), retrying...\n", herr)
					return true
				}
				return false
			}
			return false
		}),
	)
	if err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, dest); err != nil {
		return fmt.Errorf("moving %s into place: %w", name, err)
	}
	return nil
}

// DownloadAll fetches every named file, respecting the rate limit between
// requests, and prints a progress line per file.
func (c *Client) DownloadAll(ctx context.Context, names []string, destDir string) error {
	for i, name := range names {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for rate limiter: %w", err)
		}
		if err := c.Download(ctx, name, destDir); err != nil {
			return err
		}
		fmt.Printf("Downloaded %s (%d of %d)\n", name, i+1, len(names))
	}
	return nil
}
