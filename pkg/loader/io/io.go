package io

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/OFFIS-RIT/nodelink/pkg/loader"

	"golang.org/x/sync/singleflight"
)

// Stdin is the source name that reads standard input.
const Stdin = "-"

// FileLoader reads text from the local filesystem with caching. The source
// "-" reads the configured stdin reader once.
type FileLoader struct {
	stdin io.Reader

	cache   map[string]string
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewFileLoader creates a filesystem loader that reads "-" from stdin.
func NewFileLoader(stdin io.Reader) *FileLoader {
	if stdin == nil {
		stdin = os.Stdin
	}
	return &FileLoader{
		stdin: stdin,
		cache: make(map[string]string),
	}
}

// FetchText reads the file at source. Results are cached per path.
func (l *FileLoader) FetchText(ctx context.Context, source string) (string, error) {
	if source == "" {
		return "", loader.ErrEmptySource
	}

	l.cacheMu.RLock()
	if cached, ok := l.cache[source]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(source, func() (any, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		var data []byte
		var err error
		if source == Stdin {
			data, err = io.ReadAll(l.stdin)
		} else {
			data, err = os.ReadFile(source)
		}
		if err != nil {
			return "", fmt.Errorf("read %s: %w", source, err)
		}

		text := string(data)
		l.cacheMu.Lock()
		l.cache[source] = text
		l.cacheMu.Unlock()
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}
