package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/temporal_trends.csv" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("Year,Energy\n1950,0.3\n"))
	}))
	defer server.Close()

	dir := t.TempDir()
	client := New(server.URL)
	if err := client.Download(context.Background(), "temporal_trends.csv", dir); err != nil {
		t.Fatalf("Download: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "temporal_trends.csv"))
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(content) != "Year,Energy\n1950,0.3\n" {
		t.Errorf("content = %q", content)
	}
}

func TestDownloadRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "try later", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := New(server.URL)
	if err := client.Download(context.Background(), "data.csv", t.TempDir()); err != nil {
		t.Fatalf("Download should have succeeded after retries: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server called %d times, want 3", got)
	}
}

func TestDownloadDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := New(server.URL)
	err := client.Download(context.Background(), "missing.csv", t.TempDir())
	if err == nil {
		t.Fatal("Download of a missing file should error")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1 (no retries on 404)", got)
	}
}

func TestDownloadAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data for " + r.URL.Path))
	}))
	defer server.Close()

	dir := t.TempDir()
	client := New(server.URL)
	names := []string{"a.csv", "b.csv"}
	if err := client.DownloadAll(context.Background(), names, dir); err != nil {
		t.Fatalf("DownloadAll: %v", err)
	}

	for _, name := range names {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}
