// Package loader provides ready-made screen loader tables: one fetching
// screen bundles over HTTPS, one serving views that are already in memory.
package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	_ "github.com/BrandonKowalski/certifiable" // CA roots for devices without a system trust store

	"github.com/BrandonKowalski/navshell/pkg/navshell/preload"
	"github.com/BrandonKowalski/navshell/pkg/navshell/screens"
)

// maxBundleSize caps a single bundle download.
const maxBundleSize = 16 << 20

// Bundle is the raw code and assets of one screen.
type Bundle struct {
	Screen screens.ID
	URL    string
	ETag   string
	Data   []byte
}

// HTTP fetches screen bundles from <base>/<screen-name>.bundle.
type HTTP struct {
	base   *url.URL
	client *http.Client
}

// NewHTTP creates a bundle loader rooted at baseURL. A nil client uses a
// client with a 30 second timeout.
func NewHTTP(baseURL string, client *http.Client) (*HTTP, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("loader: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("loader: unsupported scheme %q", u.Scheme)
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTP{base: u, client: client}, nil
}

// URLFor returns the bundle URL of a screen.
func (l *HTTP) URLFor(id screens.ID) string {
	u := *l.base
	u.Path = path.Join("/", u.Path, id.String()+".bundle")
	return u.String()
}

// Load downloads the bundle of one screen.
func (l *HTTP) Load(ctx context.Context, id screens.ID) (Bundle, error) {
	target := l.URLFor(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Bundle{}, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return Bundle{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Bundle{}, fmt.Errorf("GET %s: %s", target, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBundleSize+1))
	if err != nil {
		return Bundle{}, fmt.Errorf("read %s: %w", target, err)
	}
	if len(data) > maxBundleSize {
		return Bundle{}, fmt.Errorf("GET %s: bundle exceeds %d bytes", target, maxBundleSize)
	}

	return Bundle{
		Screen: id,
		URL:    target,
		ETag:   resp.Header.Get("ETag"),
		Data:   data,
	}, nil
}

// Table returns a loader table that downloads every screen's bundle.
func (l *HTTP) Table() preload.Loaders {
	return preload.LoaderFor(func(id screens.ID) preload.LoadFunc {
		return func(ctx context.Context) (any, error) {
			return l.Load(ctx, id)
		}
	})
}

// Static returns a loader table serving the given views. Screens without a
// view get a loader that fails with preload.ErrNoLoader, so the table is
// still complete.
func Static(views map[screens.ID]any) preload.Loaders {
	return preload.LoaderFor(func(id screens.ID) preload.LoadFunc {
		view, ok := views[id]
		return func(context.Context) (any, error) {
			if !ok {
				return nil, preload.ErrNoLoader
			}
			return view, nil
		}
	})
}

// Placeholder returns a loader table whose views are the screen names.
// It is useful for simulations and tests.
func Placeholder() preload.Loaders {
	return preload.LoaderFor(func(id screens.ID) preload.LoadFunc {
		return func(context.Context) (any, error) {
			return id.String(), nil
		}
	})
}
