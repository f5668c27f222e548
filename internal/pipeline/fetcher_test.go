package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

const fetchFixture = "kepid,kepoi_name\n10797460,K00752.01\n"

func TestFetchRemote_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Last-Modified", "Sat, 04 Oct 2025 06:46:42 GMT")
		_, _ = fmt.Fprint(w, fetchFixture)
	}))
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, "test-agent", 1<<20, false)
	result, err := fetcher.FetchRemote(context.Background(), server.URL+"/koi/cumulative.csv")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Text != fetchFixture {
		t.Errorf("Unexpected body: %q", result.Text)
	}
	if result.Meta == nil || result.Meta.StatusCode != 200 {
		t.Errorf("Expected 200 metadata, got %+v", result.Meta)
	}
	if result.Meta.LastModified != "Sat, 04 Oct 2025 06:46:42 GMT" {
		t.Errorf("Expected Last-Modified captured, got %q", result.Meta.LastModified)
	}
	if result.Subject != "cumulative" {
		t.Errorf("Expected subject 'cumulative', got %q", result.Subject)
	}
}

func TestFetchRemote_TransientThenSuccess(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = fmt.Fprint(w, fetchFixture)
	}))
	defer server.Close()

	// Override sleep for fast tests
	origSleep := fetchSleepFunc
	fetchSleepFunc = func(d time.Duration) {}
	defer func() { fetchSleepFunc = origSleep }()

	fetcher := NewFetcher(5*time.Second, "test-agent", 1<<20, false)
	result, err := fetcher.FetchRemote(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if result.Text != fetchFixture {
		t.Errorf("Unexpected body: %q", result.Text)
	}
	if attempts.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts.Load())
	}
}

func TestFetchRemote_BodyOverLimitFails(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		_, _ = fmt.Fprint(w, fetchFixture)
	}))
	defer server.Close()

	origSleep := fetchSleepFunc
	fetchSleepFunc = func(d time.Duration) {}
	defer func() { fetchSleepFunc = origSleep }()

	// Limit below the fixture size: the fetch must fail rather than hand a
	// truncated catalog to the parser.
	fetcher := NewFetcher(5*time.Second, "test-agent", int64(len(fetchFixture)-1), false)
	if _, err := fetcher.FetchRemote(context.Background(), server.URL); err == nil {
		t.Fatal("Expected error for body over the byte limit")
	}
	if attempts.Load() != 1 {
		t.Errorf("Expected no retries for an oversized body, got %d attempts", attempts.Load())
	}

	// At the exact limit the fetch succeeds whole
	fetcher = NewFetcher(5*time.Second, "test-agent", int64(len(fetchFixture)), false)
	result, err := fetcher.FetchRemote(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected success at the exact limit, got %v", err)
	}
	if result.Text != fetchFixture {
		t.Errorf("Unexpected body: %q", result.Text)
	}
}

func TestFetchRemote_ClientErrorFailsImmediately(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	origSleep := fetchSleepFunc
	fetchSleepFunc = func(d time.Duration) {}
	defer func() { fetchSleepFunc = origSleep }()

	fetcher := NewFetcher(5*time.Second, "test-agent", 1<<20, false)
	if _, err := fetcher.FetchRemote(context.Background(), server.URL); err == nil {
		t.Fatal("Expected error for 404")
	}
	if attempts.Load() != 1 {
		t.Errorf("Expected no retries for 404, got %d attempts", attempts.Load())
	}
}

func TestFetch_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cumulative_koi.csv")
	if err := os.WriteFile(path, []byte(fetchFixture), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fetcher := NewFetcher(5*time.Second, "test-agent", 1<<20, false)
	result, err := fetcher.Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Text != fetchFixture {
		t.Errorf("Unexpected text: %q", result.Text)
	}
	if result.Meta != nil {
		t.Error("Expected nil fetch metadata for local files")
	}
	if result.Subject != "cumulative koi" {
		t.Errorf("Expected de-slugged subject, got %q", result.Subject)
	}
}

func TestFetch_LocalFileMissing(t *testing.T) {
	fetcher := NewFetcher(5*time.Second, "test-agent", 1<<20, false)
	if _, err := fetcher.Fetch(context.Background(), "/nonexistent/catalog.csv"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestIsRemote(t *testing.T) {
	if !IsRemote("https://archive.example.org/koi.csv") || !IsRemote("http://x/y.csv") {
		t.Error("Expected URL sources to be remote")
	}
	if IsRemote("./koi.csv") || IsRemote("/data/koi.csv") || IsRemote("koi.csv") {
		t.Error("Expected path sources to be local")
	}
}
