package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/time/rate"

	"github.com/guttosm/insynpulse/config"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "insynpulse/1.0"
)

// Client talks to the registry search client over HTTP.
//
// Requests are throttled with a token bucket, ask for gzip and follow
// redirects. Export bodies are UTF-16LE and are decoded before being returned.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLimiter replaces the request limiter.
func WithLimiter(l *rate.Limiter) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.limiter = l
		}
	}
}

// NewClient builds a Client from the registry configuration.
func NewClient(cfg config.RegistryConfig, opts ...ClientOption) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	c := &Client{
		baseURL:   strings.TrimRight(base, "/"),
		userAgent: ua,
		http:      &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(limit, burst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Transactions fetches the export for q. The caller must close the returned
// reader, which yields UTF-8 text.
func (c *Client) Transactions(ctx context.Context, q TransactionQuery) (io.ReadCloser, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}
	body, err := c.get(ctx, q.URL(c.baseURL))
	if err != nil {
		return nil, err
	}
	return DecodeUTF16LE(body), nil
}

func (c *Client) get(ctx context.Context, u string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	// Setting Accept-Encoding ourselves disables transparent decompression.
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request registry: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("registry responded with status %d", resp.StatusCode)
	}

	if !strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		return resp.Body, nil
	}
	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("open gzip body: %w", err)
	}
	return &readCloser{Reader: zr, closers: []io.Closer{zr, resp.Body}}, nil
}

// DecodeUTF16LE wraps an export body. Input without a byte order mark is read
// as UTF-16LE; a BOM selects UTF-8 or UTF-16 of either endianness instead.
func DecodeUTF16LE(rc io.ReadCloser) io.ReadCloser {
	dec := unicode.BOMOverride(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder())
	return &readCloser{Reader: transform.NewReader(rc, dec), closers: []io.Closer{rc}}
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
