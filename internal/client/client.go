package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"

	"check-elasticsearch-snapshots/pkg/check/aggregates"
)

// QueryError is any failure to obtain a decoded document from the cluster:
// transport failure, non-200 status, or an undecodable body. It names the
// URL so the top-level handler can report which resource failed.
type QueryError struct {
	URL string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query on %s failed: %s", e.URL, e.Err.Error())
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Client performs read-only queries against the cluster snapshot API.
type Client struct {
	logger  *slog.Logger
	baseURL string
	http    *http.Client
}

func New(logger *slog.Logger, baseURL string) *Client {
	return &Client{
		logger:  logger,
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// get executes one GET and decodes the JSON body into result. There is no
// retry: the first failure aborts the whole run.
func (c *Client) get(ctx context.Context, path string, result any) error {
	url := c.baseURL + path
	c.logger.Debug(fmt.Sprintf("querying %s", url))
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &QueryError{URL: url, Err: err}
	}
	response, err := c.http.Do(request)
	if err != nil {
		return &QueryError{URL: url, Err: err}
	}
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return &QueryError{URL: url, Err: err}
	}
	if response.StatusCode != http.StatusOK {
		return &QueryError{
			URL: url,
			Err: fmt.Errorf("unexpected status %d: %s", response.StatusCode, string(body)),
		}
	}
	if err := json.Unmarshal(body, result); err != nil {
		return &QueryError{URL: url, Err: fmt.Errorf("invalid JSON body: %w", err)}
	}
	return nil
}

// ListRepositories returns the names of every snapshot repository known to
// the cluster. Only the key set of the response is used; names are sorted
// so evaluation order is deterministic.
func (c *Client) ListRepositories(ctx context.Context) ([]string, error) {
	repositories := map[string]json.RawMessage{}
	if err := c.get(ctx, "/_snapshot/_all", &repositories); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(repositories))
	for name := range repositories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ListSnapshots returns every snapshot of the given repository.
func (c *Client) ListSnapshots(ctx context.Context, repository string) ([]aggregates.Snapshot, error) {
	var list aggregates.SnapshotList
	if err := c.get(ctx, fmt.Sprintf("/_snapshot/%s/_all", repository), &list); err != nil {
		return nil, err
	}
	return list.Snapshots, nil
}
