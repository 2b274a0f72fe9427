package sleeper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public Sleeper API root.
const DefaultBaseURL = "https://api.sleeper.app/v1"

// DefaultTimeout is the per-request timeout when none is configured.
const DefaultTimeout = 10 * time.Second

const maxResponseBodySize = 4 << 20 // 4MB; matchup lists for big leagues are chunky

// connection pooling limits; all calls target a single host
const (
	defaultMaxIdleConns        = 10
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 60 * time.Second
)

// NotFoundError reports that an identifier does not exist upstream.
//
// Sleeper signals a missing resource either with a 404 or with a 200
// response whose body is the JSON literal null.
type NotFoundError struct {
	// Resource is the request path that produced the miss.
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("sleeper: resource not found: %s", e.Resource)
}

// IsNotFound reports whether err wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ConnectionError reports a transient transport failure: network errors,
// timeouts, unexpected status codes, or malformed bodies.
type ConnectionError struct {
	Path string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("sleeper: request to %s failed: %v", e.Path, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Client is a stateless HTTP client for the Sleeper API.
//
// A Client is safe for concurrent use. Timeouts are applied per request via
// context so concurrent calls never share a deadline.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a Client. An empty baseURL selects the public API;
// a non-positive timeout selects the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		httpClient: &http.Client{
			// no global timeout; per-request timeouts via context
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
	}
}

// NFLState returns the current season clock.
func (c *Client) NFLState(ctx context.Context) (NFLState, error) {
	var wire nflStateWire
	if err := c.get(ctx, "/state/nfl", &wire); err != nil {
		return NFLState{}, err
	}
	return wire.toState(), nil
}

// League returns the metadata for one league.
func (c *Client) League(ctx context.Context, leagueID string) (League, error) {
	var wire leagueWire
	if err := c.get(ctx, "/league/"+url.PathEscape(leagueID), &wire); err != nil {
		return League{}, err
	}
	return wire.toLeague(), nil
}

// Rosters returns all rosters in a league.
func (c *Client) Rosters(ctx context.Context, leagueID string) ([]Roster, error) {
	var wires []rosterWire
	if err := c.get(ctx, "/league/"+url.PathEscape(leagueID)+"/rosters", &wires); err != nil {
		return nil, err
	}
	rosters := make([]Roster, len(wires))
	for i, w := range wires {
		rosters[i] = w.toRoster()
	}
	return rosters, nil
}

// Members returns all users in a league.
func (c *Client) Members(ctx context.Context, leagueID string) ([]Member, error) {
	var wires []memberWire
	if err := c.get(ctx, "/league/"+url.PathEscape(leagueID)+"/users", &wires); err != nil {
		return nil, err
	}
	members := make([]Member, len(wires))
	for i, w := range wires {
		members[i] = w.toMember()
	}
	return members, nil
}

// Matchups returns the matchup entries for one week of a league.
func (c *Client) Matchups(ctx context.Context, leagueID string, week int) ([]Matchup, error) {
	path := fmt.Sprintf("/league/%s/matchups/%d", url.PathEscape(leagueID), week)
	var wires []matchupWire
	if err := c.get(ctx, path, &wires); err != nil {
		return nil, err
	}
	matchups := make([]Matchup, len(wires))
	for i, w := range wires {
		matchups[i] = w.toMatchup()
	}
	return matchups, nil
}

// User resolves a username to an account, used to verify that a configured
// username exists before a league is watched.
func (c *Client) User(ctx context.Context, username string) (Member, error) {
	var wire memberWire
	if err := c.get(ctx, "/user/"+url.PathEscape(username), &wire); err != nil {
		return Member{}, err
	}
	return wire.toMember(), nil
}

// get performs a GET request and decodes the JSON body into v.
func (c *Client) get(ctx context.Context, path string, v any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &ConnectionError{Path: path, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ConnectionError{Path: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return &NotFoundError{Resource: path}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ConnectionError{Path: path, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return &ConnectionError{Path: path, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	// a 200 with a null body means the identifier does not exist
	if isJSONNull(body) {
		return &NotFoundError{Resource: path}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &ConnectionError{Path: path, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func isJSONNull(body []byte) bool {
	return bytes.Equal(bytes.TrimSpace(body), []byte("null"))
}

// Close releases idle connections in the client's pool.
// Safe to call multiple times; the client remains usable afterwards.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
