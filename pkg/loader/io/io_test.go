package io

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileLoaderReadsAndCaches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "story.txt")
	if err := os.WriteFile(path, []byte("Apollo 11 landed."), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	l := NewFileLoader(strings.NewReader(""))
	got, err := l.FetchText(context.Background(), path)
	if err != nil || got != "Apollo 11 landed." {
		t.Fatalf("FetchText() = %q, %v", got, err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if again, err := l.FetchText(context.Background(), path); err != nil || again != got {
		t.Fatalf("cached FetchText() = %q, %v", again, err)
	}
}

func TestFileLoaderStdin(t *testing.T) {
	l := NewFileLoader(strings.NewReader("from stdin"))
	for range 2 {
		got, err := l.FetchText(context.Background(), Stdin)
		if err != nil || got != "from stdin" {
			t.Fatalf("FetchText(-) = %q, %v", got, err)
		}
	}
}

func TestFileLoaderMissingFile(t *testing.T) {
	l := NewFileLoader(nil)
	if _, err := l.FetchText(context.Background(), filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
	if _, err := l.FetchText(context.Background(), ""); err == nil {
		t.Fatalf("expected error for an empty source")
	}
}
