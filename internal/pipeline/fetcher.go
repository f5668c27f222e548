package pipeline

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pvolkov/koiscope/internal/model"
)

// Retry settings for transient HTTP failures. The catalog is a static blob on
// archive infrastructure, so a couple of retries cover the realistic failures.
const (
	fetchMaxAttempts = 3
	fetchBaseBackoff = 500 * time.Millisecond
)

// fetchSleepFunc is swapped out in tests to avoid real backoff waits
var fetchSleepFunc = time.Sleep

// Fetcher obtains raw catalog text from a local path or a single-blob HTTP
// source. Remote fetches honor a timeout, a byte limit, and a redirect cap.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
}

// NewFetcher creates a new Fetcher with the given HTTP configuration
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64, insecureTLS bool) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
	}
}

// FetchResult contains the raw catalog text and source metadata
type FetchResult struct {
	Text    string
	Meta    *model.FetchMeta // nil for local files
	Source  string           // The path or URL actually read
	Subject string           // Human-readable catalog name derived from the source
}

// IsRemote reports whether the source is an HTTP(S) URL rather than a path
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Fetch reads the catalog from a local path or remote URL. Remote sources go
// through FetchRemote with retries; local paths are read directly.
func (f *Fetcher) Fetch(ctx context.Context, source string) (*FetchResult, error) {
	if IsRemote(source) {
		return f.FetchRemote(ctx, source)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	return &FetchResult{
		Text:    string(data),
		Source:  source,
		Subject: subjectFromSource(source),
	}, nil
}

// FetchRemote downloads the catalog blob, retrying transient failures
// (network errors, 5xx, 429) with exponential backoff. Client errors other
// than 429 fail immediately.
func (f *Fetcher) FetchRemote(ctx context.Context, rawURL string) (*FetchResult, error) {
	var lastErr error
	for attempt := 0; attempt < fetchMaxAttempts; attempt++ {
		if attempt > 0 {
			fetchSleepFunc(fetchBaseBackoff << (attempt - 1))
		}

		result, retryable, err := f.fetchOnce(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("fetch failed after %d attempts: %w", fetchMaxAttempts, lastErr)
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (*FetchResult, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/csv,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return nil, retryable, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	// Read one byte past the limit so an oversized catalog fails loudly
	// instead of parsing as a silently truncated dataset.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, true, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, false, fmt.Errorf("response exceeds byte limit (%d bytes)", f.maxBytes)
	}

	finalURL := resp.Request.URL.String()
	return &FetchResult{
		Text:   string(body),
		Source: finalURL,
		Meta: &model.FetchMeta{
			StatusCode:   resp.StatusCode,
			ContentType:  resp.Header.Get("Content-Type"),
			LastModified: resp.Header.Get("Last-Modified"),
			ETag:         resp.Header.Get("ETag"),
		},
		Subject: subjectFromSource(finalURL),
	}, false, nil
}

// subjectFromSource derives a human-readable catalog name from the last
// segment of the path or URL
func subjectFromSource(source string) string {
	base := filepath.Base(source)
	if IsRemote(source) {
		if parsed, err := url.Parse(source); err == nil {
			trimmed := strings.Trim(parsed.Path, "/")
			if trimmed == "" {
				return parsed.Host
			}
			segments := strings.Split(trimmed, "/")
			base = segments[len(segments)-1]
		}
	}

	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	base = strings.ReplaceAll(base, "_", " ")
	return base
}
