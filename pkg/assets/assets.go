// Package assets loads the shared default icon files and decodes icons
// uploaded as data URIs.
package assets

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrAssetUnavailable reports that an asset could not be read. It is never
// fatal; callers substitute a placeholder.
var ErrAssetUnavailable = errors.New("asset unavailable")

// transparentPixelBase64 is a 1x1 transparent PNG
const transparentPixelBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

// TransparentPixel returns the bytes of a 1x1 transparent PNG
func TransparentPixel() []byte {
	data, _ := base64.StdEncoding.DecodeString(transparentPixelBase64)
	return data
}

// maxAssetSize bounds a single icon read
const maxAssetSize = 4 << 20

// Loader returns the bytes of a named asset or ErrAssetUnavailable
type Loader interface {
	Load(ctx context.Context, name string) ([]byte, error)
}

// NewLoader picks a loader for source: an http(s) base URL, a directory, or
// nothing when source is empty
func NewLoader(source string) Loader {
	switch {
	case source == "":
		return NoLoader{}
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return &HTTPLoader{BaseURL: source}
	default:
		return DirLoader{Dir: source}
	}
}

// NoLoader has no assets
type NoLoader struct{}

func (NoLoader) Load(_ context.Context, name string) ([]byte, error) {
	return nil, fmt.Errorf("%w: %s: no icon source configured", ErrAssetUnavailable, name)
}

// DirLoader reads assets from a local directory
type DirLoader struct {
	Dir string
}

func (l DirLoader) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(l.Dir, filepath.Base(name))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetUnavailable, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxAssetSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrAssetUnavailable, path, err)
	}
	return data, nil
}

// HTTPLoader fetches assets relative to a base URL
type HTTPLoader struct {
	BaseURL string
	Client  *http.Client
}

func (l *HTTPLoader) Load(ctx context.Context, name string) ([]byte, error) {
	target, err := url.JoinPath(l.BaseURL, name)
	if err != nil {
		return nil, fmt.Errorf("%w: bad icon url %q: %v", ErrAssetUnavailable, l.BaseURL, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetUnavailable, err)
	}

	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrAssetUnavailable, target, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrAssetUnavailable, target, err)
	}
	return data, nil
}
