package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// UserAgent is sent with every request for the employee document.
const UserAgent = "iris-directory/1.0"

var ErrUnexpectedStatus = errors.New("unexpected response status")

// CreateHTTPClient initializes an HTTP client that logs redirects.
func CreateHTTPClient(log *slog.Logger, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, _ []*http.Request) error {
			log.Debug("Redirected to URL", "URL", req.URL)

			return nil
		},
	}
}

// FetchDocument performs a GET request to destURL and returns the response body.
// The caller must close the body.
func FetchDocument(ctx context.Context, client *http.Client, destURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, destURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new request %s: %w", destURL, err)
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s: %w", destURL, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		resp.Body.Close()
		return nil, fmt.Errorf("%w, status code: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return resp.Body, nil
}
