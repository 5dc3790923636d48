// Package igdb is a client for the IGDB game-metadata API. It owns
// the OAuth2 app token lifecycle, normalizes the upstream response
// shapes into stable GameRecords, and caches results in memory.
package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/d4lvl13n/Finalboss-FE-sub000/cache"
)

const (
	// DefaultAPIURL is the upstream metadata query endpoint base.
	DefaultAPIURL = "https://api.igdb.com/v4"

	// DefaultMaxSearchLimit caps the per-search result count to bound
	// upstream cost.
	DefaultMaxSearchLimit = 50

	// DefaultCacheTTL suits slowly-changing catalog data.
	DefaultCacheTTL = time.Hour

	defaultTimeout = 10 * time.Second
)

// Observer receives client events for metrics. Implementations must
// be safe for concurrent use.
type Observer interface {
	UpstreamRequest(endpoint, outcome string, d time.Duration)
	CacheHit(op string)
	CacheMiss(op string)
}

// Client is the server-side IGDB client. Construct one at startup and
// share it; it owns its token and result cache state.
type Client struct {
	http     *http.Client
	apiURL   string
	clientID string
	tokens   *tokenManager
	cache    cache.Cache
	ttl      time.Duration
	maxLimit int
	log      zerolog.Logger
	obs      Observer

	// flight shares one upstream call among concurrent identical
	// requests so a cold cache does not fan out.
	flight singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, including its
// timeout.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithAPIURL overrides the metadata endpoint base URL.
func WithAPIURL(raw string) Option {
	return func(c *Client) {
		if raw != "" {
			c.apiURL = strings.TrimRight(raw, "/")
		}
	}
}

// WithTokenURL overrides the OAuth token endpoint.
func WithTokenURL(raw string) Option {
	return func(c *Client) {
		if raw != "" {
			c.tokens.tokenURL = raw
		}
	}
}

// WithCache attaches a result cache with the given TTL.
func WithCache(cc cache.Cache, ttl time.Duration) Option {
	return func(c *Client) { c.cache, c.ttl = cc, ttl }
}

// WithMaxSearchLimit changes the search limit ceiling.
func WithMaxSearchLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxLimit = n
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithObserver attaches a metrics observer.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.obs = o }
}

// New creates a Client. Missing credentials are not an error here;
// they surface as AuthConfigError on the first authenticated call.
func New(clientID, clientSecret string, opts ...Option) *Client {
	hc := &http.Client{Timeout: defaultTimeout}
	c := &Client{
		http:     hc,
		apiURL:   DefaultAPIURL,
		clientID: clientID,
		tokens:   newTokenManager(clientID, clientSecret, DefaultTokenURL, hc),
		maxLimit: DefaultMaxSearchLimit,
		log:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	// token requests ride on the same HTTP client
	c.tokens.http = c.http
	return c
}

// SearchByText returns up to limit normalized records matching the
// free-text query, in upstream order.
func (c *Client) SearchByText(ctx context.Context, query string, limit int) ([]GameRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if limit > c.maxLimit {
		limit = c.maxLimit
	}

	key := cache.Key("search", map[string]string{"q": query, "limit": strconv.Itoa(limit)})
	if v, ok := c.cacheRead("search", key); ok {
		if recs, ok := v.([]GameRecord); ok {
			return recs, nil
		}
	}

	v, err, _ := c.flight.Do(key, func() (any, error) {
		raws, err := c.query(ctx, searchQuery(query, limit))
		if err != nil {
			return nil, err
		}
		recs := NormalizeAll(raws)
		c.cacheWrite(key, recs)
		return recs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]GameRecord), nil
}

// GetByID returns the normalized record for one game. A zero-record
// upstream response is a NotFoundError, not an UpstreamError.
func (c *Client) GetByID(ctx context.Context, id int64) (*GameRecord, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	key := cache.Key("game", map[string]string{"id": strconv.FormatInt(id, 10)})
	if v, ok := c.cacheRead("game", key); ok {
		if rec, ok := v.(GameRecord); ok {
			return &rec, nil
		}
	}

	v, err, _ := c.flight.Do(key, func() (any, error) {
		raws, err := c.query(ctx, idQuery(id))
		if err != nil {
			return nil, err
		}
		if len(raws) == 0 {
			return nil, &NotFoundError{ID: id}
		}
		rec := Normalize(raws[0])
		c.cacheWrite(key, rec)
		return rec, nil
	})
	if err != nil {
		return nil, err
	}
	rec := v.(GameRecord)
	return &rec, nil
}

// query posts one Apicalypse body to the /games endpoint. A single
// attempt is made; callers decide whether a failure is worth retrying.
func (c *Client) query(ctx context.Context, body string) ([]RawGame, error) {
	const endpoint = "/games"

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+endpoint, strings.NewReader(body))
	if err != nil {
		return nil, &UpstreamError{Operation: endpoint, Err: err}
	}
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(endpoint, "transport_error", time.Since(start))
		return nil, &UpstreamError{Operation: endpoint, Err: err}
	}
	defer resp.Body.Close()
	c.observe(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn().Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("upstream query failed")
		return nil, &UpstreamError{
			Operation: endpoint,
			Status:    resp.StatusCode,
			Err:       fmt.Errorf("%s", strings.TrimSpace(string(snippet))),
		}
	}

	var raws []RawGame
	if err := json.NewDecoder(resp.Body).Decode(&raws); err != nil {
		return nil, &UpstreamError{Operation: endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}
	return raws, nil
}

func (c *Client) cacheRead(op, key string) (any, bool) {
	if c.cache == nil {
		return nil, false
	}
	v, ok := c.cache.Read(key, c.ttl)
	if ok {
		if c.obs != nil {
			c.obs.CacheHit(op)
		}
		return v, true
	}
	if c.obs != nil {
		c.obs.CacheMiss(op)
	}
	return nil, false
}

func (c *Client) cacheWrite(key string, value any) {
	if c.cache != nil {
		c.cache.Write(key, value)
	}
}

func (c *Client) observe(endpoint, outcome string, d time.Duration) {
	if c.obs != nil {
		c.obs.UpstreamRequest(endpoint, outcome, d)
	}
}
