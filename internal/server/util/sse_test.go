package util

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestWriteEvent(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	StartEventStream(c.Response())
	if err := WriteEvent(c.Response(), "tick", map[string]int{"tick": 3}); err != nil {
		t.Fatalf("WriteEvent() error = %v", err)
	}
	if err := WriteEvent(c.Response(), "", []string{"a"}); err != nil {
		t.Fatalf("WriteEvent() error = %v", err)
	}

	if got := rec.Header().Get(echo.HeaderContentType); got != "text/event-stream" {
		t.Fatalf("content type = %q", got)
	}
	want := "event: tick\ndata: {\"tick\":3}\n\ndata: [\"a\"]\n\n"
	if rec.Body.String() != want {
		t.Fatalf("body = %q, want %q", rec.Body.String(), want)
	}
	if !rec.Flushed {
		t.Fatalf("response was not flushed")
	}
}

func TestWriteEventRejectsUnencodable(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if err := WriteEvent(c.Response(), "x", func() {}); err == nil {
		t.Fatalf("expected an encoding error")
	}
}
