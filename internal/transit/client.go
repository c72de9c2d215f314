// Package transit proxies the Västtrafik Planera Resa API for the
// departure board.
package transit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/patrickmn/go-cache"

	"github.com/cesargomez89/mekkompis/internal/constants"
	"github.com/cesargomez89/mekkompis/internal/httpclient"
	"github.com/cesargomez89/mekkompis/internal/logger"
)

// UpstreamError is a non-2xx answer from the transit API.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream status %d", e.StatusCode)
}

type Client struct {
	apiBase string
	tokens  *TokenSource
	http    *httpclient.Client
	search  *cache.Cache
	logger  *logger.Logger
}

func NewClient(apiBase string, tokens *TokenSource, client *httpclient.Client, log *logger.Logger) *Client {
	return &Client{
		apiBase: strings.TrimRight(apiBase, "/"),
		tokens:  tokens,
		http:    client,
		search:  cache.New(constants.TransitSearchCacheTTL, 2*constants.TransitSearchCacheTTL),
		logger:  log.WithComponent("transit"),
	}
}

// SearchStops looks up stop areas by name. Results are cached per query.
func (c *Client) SearchStops(ctx context.Context, query string) (json.RawMessage, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	if cached, ok := c.search.Get(key); ok {
		return cached.(json.RawMessage), nil
	}

	params := url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(constants.TransitSearchLimit)},
	}
	body, err := c.get(ctx, "/locations/by-text", params)
	if err != nil {
		return nil, err
	}
	c.search.SetDefault(key, body)
	return body, nil
}

// Departures returns upcoming departures from a stop area.
func (c *Client) Departures(ctx context.Context, gid string, limit, timeSpan int) (json.RawMessage, error) {
	params := url.Values{
		"limit":    {strconv.Itoa(limit)},
		"timeSpan": {strconv.Itoa(timeSpan)},
	}
	return c.get(ctx, "/stop-areas/"+url.PathEscape(gid)+"/departures", params)
}

// get performs an authorized GET. A 401 means the cached token went stale
// upstream, so it is dropped and the call retried once.
func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	body, err := c.getOnce(ctx, path, params)
	var upstream *UpstreamError
	if errors.As(err, &upstream) && upstream.StatusCode == http.StatusUnauthorized {
		c.logger.Warn("Access token rejected, refreshing", "path", path)
		c.tokens.Invalidate()
		body, err = c.getOnce(ctx, path, params)
	}
	return body, err
}

func (c *Client) getOnce(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("invalid JSON from %s", path)
	}
	return json.RawMessage(body), nil
}
