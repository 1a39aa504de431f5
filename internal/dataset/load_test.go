package dataset

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	if err := os.WriteFile(path, []byte("id_insiden,provinsi\nA,Bali\n"), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	res, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Rows) != 1 || res.Rows[0].Province != "Bali" {
		t.Fatalf("unexpected rows: %+v", res.Rows)
	}
	if res.Source != path || res.LoadedAt.IsZero() {
		t.Fatalf("unexpected result metadata: %+v", res)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	var loadErr *DatasetLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected DatasetLoadError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
}

func TestLoadHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Load(context.Background(), srv.URL+"/dataset.csv")
	var loadErr *DatasetLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected DatasetLoadError, got %v", err)
	}
	if loadErr.Status != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", loadErr.Status)
	}
	if err.Error() != "Gagal memuat dataset (404)" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestLoadHTTPEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("   \n"))
	}))
	defer srv.Close()

	res, err := Load(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Rows == nil || len(res.Rows) != 0 {
		t.Fatalf("expected empty rows, got %v", res.Rows)
	}
}

func TestLoaderAcceptsLatestOnly(t *testing.T) {
	var l Loader
	first := l.Begin()
	second := l.Begin()
	if l.Accept(first) {
		t.Fatalf("stale generation must be rejected")
	}
	if !l.Accept(second) {
		t.Fatalf("latest generation must be accepted")
	}
	if l.Accept(0) {
		t.Fatalf("zero generation must be rejected")
	}
}
