package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const articleHTML = `<!DOCTYPE html>
<html><head><title>Apollo 11</title></head>
<body>
<nav><a href="/">Home</a> <a href="/about">About</a></nav>
<article>
<h1>Apollo 11</h1>
<p>Apollo 11 was the American spaceflight that first landed humans on the Moon. Commander Neil Armstrong and lunar module pilot Buzz Aldrin landed the Apollo Lunar Module Eagle on July 20, 1969.</p>
<p>Armstrong became the first person to step onto the Moon's surface six hours and thirty-nine minutes later. Aldrin joined him nineteen minutes after that, and they spent about two and a quarter hours together exploring the site.</p>
<p>Michael Collins flew the Command Module Columbia alone in lunar orbit while they were on the Moon's surface. The mission fulfilled a national goal proposed in 1961 by President John F. Kennedy.</p>
</article>
<footer>Copyright</footer>
</body></html>`

func newTestServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/article", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articleHTML))
	})
	mux.HandleFunc("/plain", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		time.Sleep(20 * time.Millisecond)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("  plain body text \n"))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchTextHTML(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	l := NewLoader(NewLoaderParams{Client: srv.Client(), Backoff: -1})

	text, err := l.FetchText(context.Background(), srv.URL+"/article")
	if err != nil {
		t.Fatalf("FetchText() error = %v", err)
	}
	if !strings.Contains(text, "Neil Armstrong") {
		t.Fatalf("article text missing content: %q", text)
	}
	if strings.Contains(text, "<p>") {
		t.Fatalf("article text still contains markup: %q", text)
	}

	if _, err := l.FetchText(context.Background(), srv.URL+"/article"); err != nil {
		t.Fatalf("second FetchText() error = %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected a cached second fetch, server saw %d requests", got)
	}
}

func TestFetchTextSharesInFlightRequests(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	l := NewLoader(NewLoaderParams{Client: srv.Client(), Backoff: -1})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			text, err := l.FetchText(context.Background(), srv.URL+"/plain")
			if err != nil || text != "plain body text" {
				t.Errorf("FetchText() = %q, %v", text, err)
			}
		}()
	}
	wg.Wait()

	if got := hits.Load(); got != 1 {
		t.Fatalf("expected one request, server saw %d", got)
	}

	l.Forget(srv.URL + "/plain")
	if _, err := l.FetchText(context.Background(), srv.URL+"/plain"); err != nil {
		t.Fatalf("FetchText() after Forget error = %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected a refetch after Forget, server saw %d", got)
	}
}

func TestFetchTextErrors(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	l := NewLoader(NewLoaderParams{Client: srv.Client(), Retries: 2, Backoff: -1})

	_, err := l.FetchText(context.Background(), srv.URL+"/missing")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 StatusError, got %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, server saw %d", got)
	}

	if _, err := l.FetchText(context.Background(), "file:///etc/passwd"); !errors.Is(err, ErrUnsupportedURL) {
		t.Fatalf("expected ErrUnsupportedURL, got %v", err)
	}
}
