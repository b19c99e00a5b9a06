package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fetches current-track metadata from the radio API. A missing or
// failing metadata endpoint is a normal condition, not an error to surface:
// many streams carry only embedded tags.
type Client struct {
	httpClient *http.Client
	baseURL    string
	verbose    bool
	logFunc    func(format string, args ...interface{})
}

// NewClient creates a metadata client for the given API base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// SetVerbose enables verbose logging.
func (c *Client) SetVerbose(verbose bool, logFunc func(format string, args ...interface{})) {
	c.verbose = verbose
	c.logFunc = logFunc
}

func (c *Client) log(format string, args ...interface{}) {
	if c.verbose && c.logFunc != nil {
		c.logFunc(format, args...)
	}
}

// envelope is the wire shape of the metadata endpoint.
type envelope struct {
	Data *PollData `json:"data"`
}

// Fetch polls the metadata endpoint and returns the normalized fragment.
// ok is false when the service has nothing to report; only genuine
// transport-level failures return an error.
func (c *Client) Fetch(ctx context.Context) (Fragment, bool, error) {
	url := c.baseURL + "/api/metadata"
	c.log("[metadata] GET %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Fragment{}, false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Fragment{}, false, fmt.Errorf("metadata request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log("[metadata] response: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))

	// No metadata API available - this is expected.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Fragment{}, false, nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return Fragment{}, false, fmt.Errorf("failed to parse metadata response: %w", err)
	}

	if env.Data == nil {
		return Fragment{}, false, nil
	}

	frag := FromPoll(*env.Data)
	if frag.Empty() {
		return Fragment{}, false, nil
	}

	return frag, true, nil
}
