package openverse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Kvng-HackSOC/mediadev/internal/logger"
	"github.com/Kvng-HackSOC/mediadev/internal/models"
)

const (
	// DefaultBaseURL is the production Openverse API host.
	DefaultBaseURL = "https://api.openverse.org"

	tokenPath = "/v1/auth_tokens/token/"

	// tokenSafetyMargin is subtracted from the reported token TTL so a
	// cached token is never served while it could expire mid-flight.
	tokenSafetyMargin = 5 * time.Minute

	// defaultRequestInterval caps outbound calls at one per second.
	defaultRequestInterval = time.Second
)

// Error variables
var (
	// ErrAuthentication is returned when the token endpoint is
	// unreachable or rejects the client credentials.
	ErrAuthentication = errors.New("upstream authentication failed")

	// ErrUnsupportedMediaType is returned for media types the upstream
	// has no endpoint for.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)

// UpstreamError carries a non-2xx status returned by the upstream API.
type UpstreamError struct {
	StatusCode int    // HTTP status reported upstream, 502 for transport failures
	Detail     string // Error detail from the upstream body, if any
}

func (e *UpstreamError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("upstream request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream request failed with status %d: %s", e.StatusCode, e.Detail)
}

// Client calls the Openverse API with a cached client-credentials token
// and a rate gate. Token cache and gate are the only process-wide
// mutable state and are safe for concurrent use.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	gate         *gate
	now          func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// Opt configures a Client.
type Opt func(*Client)

// WithBaseURL overrides the upstream host.
func WithBaseURL(baseURL string) Opt {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Opt {
	return func(c *Client) { c.httpClient = hc }
}

// WithRequestInterval overrides the minimum interval between outbound
// calls.
func WithRequestInterval(interval time.Duration) Opt {
	return func(c *Client) { c.gate = newGate(interval, c.now) }
}

// WithClock overrides the clock used for token expiry and the rate
// gate.
func WithClock(now func() time.Time) Opt {
	return func(c *Client) {
		c.now = now
		c.gate = newGate(c.gate.interval, now)
	}
}

// New creates a Client for the given OAuth client credentials.
func New(clientID, clientSecret string, opts ...Opt) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		baseURL:      DefaultBaseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		now:          time.Now,
	}
	c.gate = newGate(defaultRequestInterval, c.now)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getAccessToken returns the cached token while it is valid, otherwise
// performs a client-credentials exchange. The exchange runs under the
// client mutex, so concurrent first-fetches block and then observe the
// freshly cached token instead of issuing their own exchange.
func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Log.Errorw("token endpoint unreachable", "error", err)
		return "", fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	if resp.StatusCode != http.StatusOK {
		logger.Log.Errorw("token endpoint rejected credentials", "status", resp.StatusCode)
		return "", fmt.Errorf("%w: token endpoint returned %d", ErrAuthentication, resp.StatusCode)
	}

	var tr struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tr); err != nil || tr.AccessToken == "" {
		return "", fmt.Errorf("%w: malformed token response", ErrAuthentication)
	}

	c.token = tr.AccessToken
	c.expiresAt = c.now().Add(time.Duration(tr.ExpiresIn)*time.Second - tokenSafetyMargin)

	logger.Log.Infow("obtained upstream access token", "expires_at", c.expiresAt)
	return c.token, nil
}

// invalidateToken drops the cached token so the next call fetches a
// fresh one.
func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// do waits on the rate gate, then issues the request with a bearer
// token. A 401/403 invalidates the cached token and retries exactly
// once; the retry reuses the rate slot the original call acquired.
func (c *Client) do(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	if err := c.gate.Wait(ctx); err != nil {
		return nil, err
	}

	body, status, err := c.doOnce(ctx, method, path, query)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		logger.Log.Warnw("upstream rejected token, retrying with a fresh one", "status", status, "path", path)
		c.invalidateToken()
		body, status, err = c.doOnce(ctx, method, path, query)
		if err != nil {
			return nil, err
		}
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		uerr := &UpstreamError{StatusCode: status, Detail: errorDetail(body)}
		logger.Log.Errorw("upstream request failed", "path", path, "status", status, "detail", uerr.Detail)
		return nil, uerr
	}
	return body, nil
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values) ([]byte, int, error) {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, 0, err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &UpstreamError{StatusCode: http.StatusBadGateway, Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &UpstreamError{StatusCode: http.StatusBadGateway, Detail: err.Error()}
	}
	return body, resp.StatusCode, nil
}

// errorDetail extracts the "detail" field from an upstream error body,
// falling back to the raw body.
func errorDetail(body []byte) string {
	var e struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Detail != "" {
		return e.Detail
	}
	const max = 256
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		s = s[:max]
	}
	return s
}

// mediaPath maps a media type to its upstream path segment.
func mediaPath(mediaType string) (string, error) {
	switch mediaType {
	case models.MediaTypeImage:
		return "images", nil
	case models.MediaTypeAudio:
		return "audio", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mediaType)
}

// SearchImages runs an image search with the given upstream parameters.
func (c *Client) SearchImages(ctx context.Context, params url.Values) (*models.SearchResult, error) {
	return c.search(ctx, "/v1/images/", params)
}

// SearchAudio runs an audio search with the given upstream parameters.
func (c *Client) SearchAudio(ctx context.Context, params url.Values) (*models.SearchResult, error) {
	return c.search(ctx, "/v1/audio/", params)
}

func (c *Client) search(ctx context.Context, path string, params url.Values) (*models.SearchResult, error) {
	body, err := c.do(ctx, http.MethodGet, path, params)
	if err != nil {
		return nil, err
	}
	var res models.SearchResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, &UpstreamError{StatusCode: http.StatusBadGateway, Detail: "malformed search response"}
	}
	return &res, nil
}

// GetMediaDetail fetches a single media item by type and id.
func (c *Client) GetMediaDetail(ctx context.Context, mediaType, id string) (json.RawMessage, error) {
	seg, err := mediaPath(mediaType)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/%s/%s/", seg, url.PathEscape(id)), nil)
}

// GetRelatedMedia fetches items related to a media item.
func (c *Client) GetRelatedMedia(ctx context.Context, mediaType, id string) (json.RawMessage, error) {
	seg, err := mediaPath(mediaType)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/%s/%s/related/", seg, url.PathEscape(id)), nil)
}

// GetStats fetches aggregate source statistics for a media type.
func (c *Client) GetStats(ctx context.Context, mediaType string) (json.RawMessage, error) {
	seg, err := mediaPath(mediaType)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/%s/stats/", seg), nil)
}
