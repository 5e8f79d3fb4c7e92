package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/laraui-labs/laraui/internal/branding"
	"github.com/laraui-labs/laraui/internal/manifest"
)

const (
	// ManifestFile is the manifest location relative to the registry base URL.
	ManifestFile = "registry.json"

	// DefaultTimeout bounds every registry request.
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize caps the bytes read from any single response.
	MaxResponseSize = 10 << 20

	defaultRetryWait = 500 * time.Millisecond
)

// Client fetches the registry manifest and component source files. The
// manifest is cached in memory for CacheTTL and optionally on disk; file
// contents are never cached. A Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	now        func() time.Time
	log        zerolog.Logger
	memory     *MemoryCache
	disk       *DiskCache
	retries    uint
	retryWait  time.Duration

	group singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. WithTimeout has no effect
// on a client supplied this way.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithClock replaces time.Now for cache expiry decisions.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithLogger sets the logger used for cache and request diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithMemoryCache shares a memory cache between clients.
func WithMemoryCache(mc *MemoryCache) Option {
	return func(c *Client) { c.memory = mc }
}

// WithDiskCache persists fetched manifests across processes.
func WithDiskCache(dc *DiskCache) Option {
	return func(c *Client) { c.disk = dc }
}

// WithRetries retries failed requests up to n more times with exponential
// backoff. Client errors (4xx other than 429) are never retried.
func WithRetries(n uint) Option {
	return func(c *Client) { c.retries = n }
}

// WithRetryWait sets the initial backoff interval between retries.
func WithRetryWait(d time.Duration) Option {
	return func(c *Client) { c.retryWait = d }
}

// New creates a Client for the registry rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		timeout:   DefaultTimeout,
		now:       time.Now,
		log:       zerolog.Nop(),
		retryWait: defaultRetryWait,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	if c.memory == nil {
		c.memory = NewMemoryCache()
	}
	return c
}

// BaseURL returns the registry base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchManifest returns the registry manifest, serving it from cache unless
// the cached copy is missing, expired, or forceRefresh is set. A manifest
// that fails to download, parse, or validate is reported as
// ErrRegistryUnavailable and leaves any previously cached entry in place.
func (c *Client) FetchManifest(ctx context.Context, forceRefresh bool) (*manifest.Manifest, error) {
	key := CacheKey(c.baseURL)

	if !forceRefresh {
		if entry := c.cached(key); entry != nil {
			return entry.Manifest, nil
		}
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		return c.refresh(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	return v.(*manifest.Manifest), nil
}

func (c *Client) cached(key string) *cacheEntry {
	now := c.now()
	if entry := c.memory.get(key, now); entry != nil {
		c.log.Debug().Str("registry", c.baseURL).Time("expires", entry.ExpiresAt).Msg("using cached manifest")
		return entry
	}
	if c.disk == nil {
		return nil
	}

	entry, err := c.disk.load(key)
	if err != nil {
		c.log.Warn().Err(err).Msg("ignoring unreadable manifest cache")
		return nil
	}
	if !entry.valid(now) || entry.URL != c.baseURL {
		return nil
	}
	c.log.Debug().Str("registry", c.baseURL).Str("dir", c.disk.Dir()).Msg("using manifest from disk cache")
	c.memory.put(entry)
	return entry
}

func (c *Client) refresh(ctx context.Context, key string) (*manifest.Manifest, error) {
	u := c.url(ManifestFile)
	c.log.Debug().Str("url", u).Msg("fetching registry manifest")

	data, err := c.get(ctx, u)
	if err != nil {
		return nil, unavailable(err)
	}
	m, err := manifest.Parse(data)
	if err != nil {
		return nil, unavailable(err)
	}

	entry := &cacheEntry{
		Key:       key,
		URL:       c.baseURL,
		Manifest:  m,
		ExpiresAt: c.now().Add(CacheTTL),
	}
	c.memory.put(entry)
	if c.disk != nil {
		if err := c.disk.store(entry); err != nil {
			c.log.Warn().Err(err).Msg("could not persist manifest cache")
		}
	}
	return m, nil
}

// FetchFile returns the text of a component source file addressed relative
// to the registry base URL. Failures are returned as *FileFetchError.
func (c *Client) FetchFile(ctx context.Context, relPath string) (string, error) {
	u := c.url(relPath)
	c.log.Debug().Str("url", u).Msg("fetching component file")

	data, err := c.get(ctx, u)
	if err != nil {
		return "", &FileFetchError{Path: relPath, Cause: err}
	}
	return string(data), nil
}

func (c *Client) url(relPath string) string {
	return c.baseURL + "/" + strings.TrimLeft(relPath, "/")
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	if c.retries == 0 {
		return c.getOnce(ctx, u)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryWait
	op := func() ([]byte, error) {
		data, err := c.getOnce(ctx, u)
		if err != nil && !retryable(err) {
			return nil, backoff.Permanent(err)
		}
		return data, err
	}
	notify := func(err error, wait time.Duration) {
		c.log.Debug().Err(err).Dur("wait", wait).Msg("retrying registry request")
	}
	return backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.retries+1),
		backoff.WithNotify(notify),
	)
}

func (c *Client) getOnce(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", branding.CLIName()+"-cli")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: u}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", u, err)
	}
	if len(data) > MaxResponseSize {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", u, MaxResponseSize)
	}
	return data, nil
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500 || httpErr.StatusCode == http.StatusTooManyRequests
	}
	return true
}
