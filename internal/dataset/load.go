package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/verte-zerg/insidash/internal/model"
)

const maxDatasetBytes = 64 << 20

// Result is a completed dataset load.
type Result struct {
	Source   string
	Rows     []model.Incident
	Warnings []string
	LoadedAt time.Time
}

// Load reads the dataset from a file path or an http(s) URL.
func Load(ctx context.Context, source string) (Result, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return Result{}, &DatasetLoadError{Err: errors.New("dataset source is empty")}
	}
	var (
		data []byte
		err  error
	)
	if IsURL(source) {
		data, err = fetch(ctx, source)
	} else {
		data, err = os.ReadFile(source)
		if err != nil {
			err = &DatasetLoadError{Source: source, Err: err}
		}
	}
	if err != nil {
		return Result{}, err
	}
	rows, warnings, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Result{}, &DatasetLoadError{Source: source, Err: err}
	}
	return Result{
		Source:   source,
		Rows:     rows,
		Warnings: warnings,
		LoadedAt: time.Now(),
	}, nil
}

// IsURL reports whether source should be fetched over HTTP.
func IsURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, &DatasetLoadError{Source: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &DatasetLoadError{Source: url, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &DatasetLoadError{Source: url, Status: resp.StatusCode}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDatasetBytes))
	if err != nil {
		return nil, &DatasetLoadError{Source: url, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	return data, nil
}

// Loader hands out load generations. Only the most recently started load is
// accepted, so a slow earlier load never overwrites a newer one.
type Loader struct {
	mu  sync.Mutex
	gen uint64
}

// Begin starts a new load and returns its generation.
func (l *Loader) Begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	return l.gen
}

// Accept reports whether a result for gen is still current.
func (l *Loader) Accept(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return gen != 0 && gen == l.gen
}
