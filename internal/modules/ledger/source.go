// Package ledger fetches the precomputed ledger document, keeps the current
// copy in memory and stores snapshots of it.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/aristath/taxboard/internal/domain"
)

// Source yields a decoded ledger. Fetch performs a single read with no retry.
type Source interface {
	Fetch(ctx context.Context) (*domain.Ledger, error)
	Name() string
}

// Decode reads a ledger JSON document.
func Decode(r io.Reader) (*domain.Ledger, error) {
	var l domain.Ledger
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("failed to decode ledger: %w", err)
	}
	if l.Years == nil {
		l.Years = map[string]domain.YearData{}
	}
	return &l, nil
}

// Options configures NewSource.
type Options struct {
	HTTPClient *http.Client
	S3         S3Options
}

// NewSource picks a source from a location: s3://bucket/key, http(s):// URL,
// anything else is a file path.
func NewSource(ctx context.Context, location string, opts Options) (Source, error) {
	switch {
	case strings.HasPrefix(location, "s3://"):
		u, err := url.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("invalid s3 location %q: %w", location, err)
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return nil, fmt.Errorf("s3 location %q needs a bucket and a key", location)
		}
		return NewS3Source(ctx, u.Host, key, opts.S3)
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location, opts.HTTPClient), nil
	default:
		return NewFileSource(location), nil
	}
}

// FileSource reads the ledger from a local file.
type FileSource struct {
	path string
}

// NewFileSource creates a file source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string { return "file:" + s.path }

func (s *FileSource) Fetch(ctx context.Context) (*domain.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// HTTPSource GETs the ledger from an endpoint serving the JSON document.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates an HTTP source. A nil client gets a 30s timeout.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPSource{url: url, client: client}
}

func (s *HTTPSource) Name() string { return s.url }

func (s *HTTPSource) Fetch(ctx context.Context) (*domain.Ledger, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build ledger request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ledger request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ledger endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return Decode(resp.Body)
}
