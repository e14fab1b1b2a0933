package jsonl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Stdin is the location that reads games from standard input
const Stdin = "-"

var httpClient = &http.Client{
	Timeout: 60 * time.Second,
}

const userAgent = "season-stats/1.0"

// Open returns a reader for location: "-" for stdin, an http(s) URL, or a
// file path. The caller must Close the reader.
func Open(ctx context.Context, location string) (*Reader, error) {
	switch {
	case location == Stdin:
		return newNamedReader("stdin", os.Stdin, nil), nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return fetch(ctx, location)
	default:
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		return newNamedReader(location, f, f), nil
	}
}

// fetch makes an HTTP GET request and streams the response body
func fetch(ctx context.Context, url string) (*Reader, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetching %s: status=%d, body=%s", url, resp.StatusCode, string(body))
	}

	return newNamedReader(url, resp.Body, resp.Body), nil
}
