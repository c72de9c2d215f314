package transit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/cesargomez89/mekkompis/internal/constants"
	"github.com/cesargomez89/mekkompis/internal/httpclient"
	"github.com/cesargomez89/mekkompis/internal/logger"
)

var ErrNoCredentials = errors.New("transit client credentials are not set")

// TokenSource fetches client-credentials tokens and caches them until
// shortly before they expire. Concurrent callers that find the cache empty
// share a single in-flight fetch.
type TokenSource struct {
	authURL      string
	clientID     string
	clientSecret string
	client       *httpclient.Client
	clock        clockwork.Clock
	margin       time.Duration
	logger       *logger.Logger

	mu     sync.Mutex
	token  string
	expiry time.Time
	group  singleflight.Group
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func NewTokenSource(authURL, clientID, clientSecret string, client *httpclient.Client, clock clockwork.Clock, log *logger.Logger) *TokenSource {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TokenSource{
		authURL:      authURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       client,
		clock:        clock,
		margin:       constants.TransitTokenMargin,
		logger:       log.WithComponent("transit_token"),
	}
}

func (s *TokenSource) cached() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" && s.clock.Now().Before(s.expiry) {
		return s.token, true
	}
	return "", false
}

// Token returns a valid access token, fetching a new one when needed.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	if token, ok := s.cached(); ok {
		return token, nil
	}

	ch := s.group.DoChan("token", func() (any, error) {
		if token, ok := s.cached(); ok {
			return token, nil
		}
		// The fetch is shared, so one caller going away must not cancel it.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.DefaultHTTPTimeout)
		defer cancel()
		return s.fetch(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Invalidate drops the cached token, e.g. after the API rejected it.
func (s *TokenSource) Invalidate() {
	s.mu.Lock()
	s.token = ""
	s.expiry = time.Time{}
	s.mu.Unlock()
}

func (s *TokenSource) fetch(ctx context.Context) (string, error) {
	if s.clientID == "" || s.clientSecret == "" {
		return "", ErrNoCredentials
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(s.clientID, s.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request: %w", &UpstreamError{StatusCode: resp.StatusCode})
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", errors.New("token response without access_token")
	}

	ttl := time.Duration(tr.ExpiresIn)*time.Second - s.margin
	if ttl < 0 {
		ttl = 0
	}

	s.mu.Lock()
	s.token = tr.AccessToken
	s.expiry = s.clock.Now().Add(ttl)
	s.mu.Unlock()

	s.logger.Info("Fetched new access token", "expires_in", tr.ExpiresIn)
	return tr.AccessToken, nil
}
