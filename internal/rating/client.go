// Package rating keeps the thumbs-up/down display in sync with the remote
// rating service for whatever track is currently playing.
package rating

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/playground-x/neoradio/internal/core"
)

// Client talks to the remote rating service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	verbose    bool
	logFunc    func(format string, args ...interface{})
}

// NewClient creates a rating client for the given API base URL.
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

// ratingResponse is the wire shape shared by the load and submit endpoints.
type ratingResponse struct {
	ThumbsUp   int  `json:"thumbs_up"`
	ThumbsDown int  `json:"thumbs_down"`
	UserRating *int `json:"user_rating"`
}

func (r ratingResponse) toState() core.RatingState {
	state := core.RatingState{
		ThumbsUp:   r.ThumbsUp,
		ThumbsDown: r.ThumbsDown,
	}
	if r.UserRating != nil {
		state.UserRating = core.Rating(*r.UserRating)
	}
	return state
}

// Get fetches the rating state for a track identified by title and artist.
func (c *Client) Get(ctx context.Context, title, artist string) (core.RatingState, error) {
	endpoint := fmt.Sprintf("%s/api/songs/rating/%s/%s",
		c.baseURL, url.PathEscape(title), url.PathEscape(artist))
	c.log("[rating] GET %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return core.RatingState{}, fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req)
}

// submitBody is the JSON body of a rating submission.
type submitBody struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	Year   string `json:"year"`
	Rating int    `json:"rating"`
}

// Submit posts a thumbs-up/down vote for a track and returns the updated
// rating state.
func (c *Client) Submit(ctx context.Context, track core.TrackIdentity, rating core.Rating) (core.RatingState, error) {
	body, err := json.Marshal(submitBody{
		Title:  track.Title,
		Artist: track.Artist,
		Album:  track.Album,
		Year:   track.Year,
		Rating: int(rating),
	})
	if err != nil {
		return core.RatingState{}, fmt.Errorf("failed to marshal rating: %w", err)
	}

	endpoint := c.baseURL + "/api/songs/rating"
	c.log("[rating] POST %s\n  body: %s", endpoint, string(body))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return core.RatingState{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) (core.RatingState, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return core.RatingState{}, fmt.Errorf("rating request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.RatingState{}, fmt.Errorf("failed to read response: %w", err)
	}

	c.log("[rating] response: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return core.RatingState{}, fmt.Errorf("rating service error: status %d", resp.StatusCode)
	}

	var parsed ratingResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return core.RatingState{}, fmt.Errorf("failed to parse rating response: %w", err)
	}

	return parsed.toState(), nil
}
