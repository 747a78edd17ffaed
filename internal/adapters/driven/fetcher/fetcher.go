// Package fetcher implements driven.URLFetcher over net/http.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/ports/driven"
)

// Ensure Fetcher implements the interface.
var _ driven.URLFetcher = (*Fetcher)(nil)

// maxRedirects caps the redirect chain of a single fetch.
const maxRedirects = 5

// Config configures the fetcher.
type Config struct {
	// Timeout bounds the whole request. Default: 30s.
	Timeout time.Duration

	// MaxBytes caps the body size; longer bodies are rejected. Default: 10MB.
	MaxBytes int64

	// UserAgent is sent with every request.
	UserAgent string

	// RatePerSecond throttles requests. Zero disables throttling.
	RatePerSecond float64
}

func (c *Config) defaults() {
	if c.Timeout <= 0 {
		c.Timeout = time.Duration(domain.DefaultFetchTimeoutSeconds) * time.Second
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = domain.DefaultFetchMaxBytes
	}
	if c.UserAgent == "" {
		c.UserAgent = domain.DefaultUserAgent
	}
}

// Fetcher performs single GET requests.
type Fetcher struct {
	client  *http.Client
	config  Config
	limiter *rate.Limiter
}

// New creates a Fetcher.
func New(cfg Config) *Fetcher {
	cfg.defaults()

	f := &Fetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects (%d)", len(via))
				}
				return nil
			},
		},
		config: cfg,
	}
	if cfg.RatePerSecond > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1)
	}
	return f
}

// FromSettings builds a fetcher config from application settings.
func FromSettings(s domain.FetchSettings) Config {
	return Config{
		Timeout:       s.Timeout(),
		MaxBytes:      int64(s.MaxBytes),
		UserAgent:     s.UserAgent,
		RatePerSecond: float64(s.RatePerSecond),
	}
}

// Fetch retrieves rawURL. Any HTTP status is returned as a result; only
// transport failures and bodies over MaxBytes are errors.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*driven.FetchResult, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limit: %v", domain.ErrFetchFailed, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: new request: %v", domain.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: http get: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrFetchFailed, err)
	}
	if int64(len(data)) > f.config.MaxBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", domain.ErrFetchFailed, f.config.MaxBytes)
	}

	data, err = decodeBody(data, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", domain.ErrFetchFailed, err)
	}

	return &driven.FetchResult{
		Body:        string(data),
		ContentType: contentType,
		StatusCode:  resp.StatusCode,
	}, nil
}

// decodeBody converts data to UTF-8. A declared non-UTF-8 charset is
// honoured; otherwise valid UTF-8 and JSON bodies pass through unchanged and
// only invalid UTF-8 is sniffed.
func decodeBody(data []byte, contentType string) ([]byte, error) {
	mediaType, params, _ := mime.ParseMediaType(contentType)

	if label := params["charset"]; label != "" {
		enc, name := charset.Lookup(label)
		if enc == nil || name == "utf-8" {
			return data, nil
		}
		return enc.NewDecoder().Bytes(data)
	}

	if strings.Contains(mediaType, "json") || utf8.Valid(data) {
		return data, nil
	}

	enc, name, _ := charset.DetermineEncoding(data, contentType)
	if name == "utf-8" {
		return data, nil
	}
	return enc.NewDecoder().Bytes(data)
}
