package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/osse101/SpaceCases_Go/internal/domain"
)

// Feed is the raw content of one catalog refresh
type Feed struct {
	Items      []domain.CatalogEntry
	Containers []domain.Container
}

// Source fetches the latest feed from wherever the metadata service publishes it
type Source interface {
	Fetch(ctx context.Context) (*Feed, error)
}

type itemsFile struct {
	Version string                `json:"version"`
	Schema  string                `json:"schema"`
	Items   []domain.CatalogEntry `json:"items"`
}

type containersFile struct {
	Version    string             `json:"version"`
	Schema     string             `json:"schema"`
	Containers []domain.Container `json:"containers"`
}

func checkHeader(name, version, schema, want string) error {
	if version == "" {
		return fmt.Errorf("%s missing version field", name)
	}
	if schema != want {
		return fmt.Errorf("invalid schema in %s: expected '%s', got '%s'", name, want, schema)
	}
	return nil
}

func readFile(r io.Reader, name, schema string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := validateFeed(data, schema); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return data, nil
}

func decodeFeed(items, containers io.Reader) (*Feed, error) {
	raw, err := readFile(items, ItemsFileName, SchemaItems)
	if err != nil {
		return nil, err
	}
	var itf itemsFile
	if err := json.Unmarshal(raw, &itf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ItemsFileName, err)
	}
	if err := checkHeader(ItemsFileName, itf.Version, itf.Schema, SchemaItems); err != nil {
		return nil, err
	}

	raw, err = readFile(containers, ContainersFileName, SchemaContainers)
	if err != nil {
		return nil, err
	}
	var cf containersFile
	if err := json.Unmarshal(raw, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ContainersFileName, err)
	}
	if err := checkHeader(ContainersFileName, cf.Version, cf.Schema, SchemaContainers); err != nil {
		return nil, err
	}

	return &Feed{Items: itf.Items, Containers: cf.Containers}, nil
}

// FileSource reads the feed from a local directory
type FileSource struct {
	Dir string
}

// Fetch implements Source
func (s FileSource) Fetch(ctx context.Context) (*Feed, error) {
	items, err := os.Open(filepath.Join(s.Dir, ItemsFileName))
	if err != nil {
		return nil, err
	}
	defer items.Close()

	containers, err := os.Open(filepath.Join(s.Dir, ContainersFileName))
	if err != nil {
		return nil, err
	}
	defer containers.Close()

	return decodeFeed(items, containers)
}

// HTTPSource fetches the feed files from a base URL
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource creates an HTTP source with a bounded client timeout
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: DefaultHTTPTimeout},
	}
}

// Fetch implements Source
func (s *HTTPSource) Fetch(ctx context.Context) (*Feed, error) {
	items, err := s.get(ctx, ItemsFileName)
	if err != nil {
		return nil, err
	}
	defer items.Close()

	containers, err := s.get(ctx, ContainersFileName)
	if err != nil {
		return nil, err
	}
	defer containers.Close()

	return decodeFeed(items, containers)
}

func (s *HTTPSource) get(ctx context.Context, name string) (io.ReadCloser, error) {
	u, err := url.JoinPath(s.BaseURL, name)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", name, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch %s: status %d", name, resp.StatusCode)
	}
	return resp.Body, nil
}

// NewSource picks a source from a location string: http(s) URLs are
// fetched remotely, anything else is treated as a directory.
func NewSource(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location)
	}
	return FileSource{Dir: location}
}

