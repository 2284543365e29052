package iana

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Source enumerates media type names ("section/subtype").
type Source interface {
	MediaTypes(ctx context.Context) ([]string, error)
}

// StatusError reports a non-2xx response from the registry server.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %s", e.URL, e.Status)
}

// defaultTimeout bounds a fetch when no client is supplied.
const defaultTimeout = 60 * time.Second

// HTTPSource fetches the registry with a single GET. There is no retry.
type HTTPSource struct {
	// URL of the document; empty means DefaultURL.
	URL string

	// Client performs the request; nil uses a client with a fixed timeout.
	Client *http.Client

	Logger zerolog.Logger
}

// MediaTypes implements Source.
func (s *HTTPSource) MediaTypes(ctx context.Context) ([]string, error) {
	url := s.URL
	if url == "" {
		url = DefaultURL
	}
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	s.Logger.Debug().Str("url", url).Msg("fetching media types registry")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml, text/xml")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	s.Logger.Debug().Str("status", resp.Status).Msg("received registry response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	names, err := ParseRegistry(resp.Body)
	if err != nil {
		return nil, err
	}
	s.Logger.Debug().Int("media_types", len(names)).Msg("parsed media types registry")
	return names, nil
}

// FileSource reads a saved copy of the registry from disk.
type FileSource struct {
	Path string
}

// MediaTypes implements Source.
func (s *FileSource) MediaTypes(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open media types registry: %w", err)
	}
	defer f.Close()
	return ParseRegistry(f)
}

// StaticSource returns a fixed list of names.
type StaticSource []string

// MediaTypes implements Source.
func (s StaticSource) MediaTypes(ctx context.Context) ([]string, error) {
	return append([]string(nil), s...), ctx.Err()
}

// FromLocation picks an HTTPSource for http(s) URLs and a FileSource for
// anything else. An empty location means DefaultURL.
func FromLocation(loc string, logger zerolog.Logger) Source {
	if loc == "" || strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		return &HTTPSource{URL: loc, Logger: logger}
	}
	return &FileSource{Path: loc}
}
