package loader

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// ErrEmptySource is returned when a loader is asked for an empty location.
var ErrEmptySource = errors.New("empty source")

// TextLoader fetches the plain text behind a location such as a file path
// or a URL.
type TextLoader interface {
	FetchText(ctx context.Context, source string) (string, error)
}

// IsURL reports whether source is an absolute http or https URL.
func IsURL(source string) bool {
	u, err := url.Parse(strings.TrimSpace(source))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Router picks the web loader for URLs and the file loader for everything
// else.
type Router struct {
	Web  TextLoader
	File TextLoader
}

// FetchText implements TextLoader.
func (r Router) FetchText(ctx context.Context, source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", ErrEmptySource
	}
	if IsURL(source) {
		if r.Web == nil {
			return "", errors.New("no web loader configured")
		}
		return r.Web.FetchText(ctx, source)
	}
	if r.File == nil {
		return "", errors.New("no file loader configured")
	}
	return r.File.FetchText(ctx, source)
}
