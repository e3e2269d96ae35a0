// Package httpfetch fetches boot assets over HTTP, resolving resource
// names relative to a base URL the way a page-relative fetch does.
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"tractor.dev/zealboot/boot"
)

type Fetcher struct {
	base   *url.URL
	client *http.Client
	log    *slog.Logger
}

type Option func(*Fetcher)

func WithClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) { f.log = l }
}

// New creates a fetcher for baseURL. A base without a trailing slash is
// treated as a directory.
func New(baseURL string, opts ...Option) (*Fetcher, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("httpfetch: base url: %w", err)
	}
	f := &Fetcher{
		base:   base,
		client: http.DefaultClient,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *Fetcher) Resolve(name string) (string, error) {
	ref, err := url.Parse(name)
	if err != nil {
		return "", err
	}
	return f.base.ResolveReference(ref).String(), nil
}

func (f *Fetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	u, err := f.Resolve(name)
	if err != nil {
		return nil, &boot.FetchError{Resource: name, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &boot.FetchError{Resource: name, Err: err}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &boot.FetchError{Resource: name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &boot.FetchError{
			Resource:   name,
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
		}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &boot.FetchError{Resource: name, Err: err}
	}
	f.log.Debug("fetched", "url", u, "size", len(data))
	return data, nil
}
