//go:build js && wasm

package jsutil

import (
	"context"
	"errors"
	"fmt"
	"syscall/js"
)

// StatusError is a fetch that completed with a non-ok status.
type StatusError struct {
	URL        string
	Status     int
	StatusText string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.Status, e.StatusText, e.URL)
}

func (e *StatusError) StatusCode() int { return e.Status }

// FetchBytes fetches url relative to the page and returns the response
// body. Cancelling ctx aborts the request.
func FetchBytes(ctx context.Context, url string) ([]byte, error) {
	fetch := js.Global().Get("fetch")
	if fetch.IsUndefined() {
		return nil, errors.New("fetch is not available")
	}

	controller := js.Global().Get("AbortController").New()
	stop := context.AfterFunc(ctx, func() {
		controller.Call("abort")
	})
	defer stop()

	resp, err := AwaitContext(ctx, fetch.Invoke(url, map[string]any{
		"signal": controller.Get("signal"),
	}))
	if err != nil {
		return nil, err
	}
	if !resp.Get("ok").Bool() {
		return nil, &StatusError{
			URL:        url,
			Status:     resp.Get("status").Int(),
			StatusText: resp.Get("statusText").String(),
		}
	}
	buf, err := AwaitContext(ctx, resp.Call("arrayBuffer"))
	if err != nil {
		return nil, err
	}
	return BytesFromJS(buf), nil
}

// Fetcher fetches boot assets with the page's fetch.
type Fetcher struct{}

func (Fetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	return FetchBytes(ctx, name)
}
