package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/OFFIS-RIT/nodelink/internal/util"
	"github.com/OFFIS-RIT/nodelink/pkg/loader"
	"github.com/OFFIS-RIT/nodelink/pkg/logger"

	"codeberg.org/readeck/go-readability/v2"
	"golang.org/x/sync/singleflight"
)

const (
	defaultMaxBytes = 5 << 20
	defaultRetries  = 3
	defaultBackoff  = 250 * time.Millisecond
	defaultTimeout  = 20 * time.Second
)

// ErrUnsupportedURL is returned for sources that are not http(s) URLs.
var ErrUnsupportedURL = errors.New("only http and https URLs are supported")

// StatusError reports a non-success HTTP status.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
}

// Loader fetches web pages and extracts their readable text. HTML pages are
// reduced to their main article with readability; other text bodies are
// returned as is. Results are cached per URL and concurrent fetches of the
// same URL share one request.
type Loader struct {
	client   *http.Client
	maxBytes int64
	retries  int
	backoff  time.Duration

	cache   map[string]string
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewLoaderParams configures a Loader. Zero values pick defaults: the
// default HTTP client with a 20s timeout, a 5 MiB body limit and three
// attempts starting at a 250ms backoff.
type NewLoaderParams struct {
	Client   *http.Client
	MaxBytes int64
	Retries  int
	Backoff  time.Duration
}

// NewLoader creates a web loader.
func NewLoader(params NewLoaderParams) *Loader {
	client := params.Client
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	maxBytes := params.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	retries := params.Retries
	if retries <= 0 {
		retries = defaultRetries
	}
	backoff := params.Backoff
	if backoff < 0 {
		backoff = 0
	} else if backoff == 0 {
		backoff = defaultBackoff
	}

	return &Loader{
		client:   client,
		maxBytes: maxBytes,
		retries:  retries,
		backoff:  backoff,
		cache:    make(map[string]string),
	}
}

// FetchText returns the readable text of the page at rawURL.
func (l *Loader) FetchText(ctx context.Context, rawURL string) (string, error) {
	if !loader.IsURL(rawURL) {
		return "", ErrUnsupportedURL
	}
	key := strings.TrimSpace(rawURL)

	l.cacheMu.RLock()
	if cached, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, shared := l.group.Do(key, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[key]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		text, err := util.RetryWithBackoff(ctx, l.retries, l.backoff, func(ctx context.Context) (string, error) {
			return l.fetch(ctx, key)
		})
		if err != nil {
			return "", err
		}

		l.cacheMu.Lock()
		l.cache[key] = text
		l.cacheMu.Unlock()
		return text, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		logger.Debug("Shared in-flight page fetch", "url", key)
	}
	return result.(string), nil
}

func (l *Loader) fetch(ctx context.Context, rawURL string) (string, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/html,text/plain;q=0.9,*/*;q=0.5")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", &StatusError{URL: rawURL, Status: resp.StatusCode}
	}

	body := io.LimitReader(resp.Body, l.maxBytes)
	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "text/html") || strings.Contains(contentType, "application/xhtml") {
		article, err := readability.FromReader(body, pageURL)
		if err != nil {
			return "", fmt.Errorf("failed to parse html: %w", err)
		}
		var builder strings.Builder
		if err := article.RenderText(&builder); err != nil {
			return "", fmt.Errorf("failed to render article text: %w", err)
		}
		return strings.TrimSpace(builder.String()), nil
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Forget drops a cached page.
func (l *Loader) Forget(rawURL string) {
	l.cacheMu.Lock()
	delete(l.cache, strings.TrimSpace(rawURL))
	l.cacheMu.Unlock()
}
