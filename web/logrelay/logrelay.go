//go:build js && wasm

// Package logrelay tees page diagnostics to the dev server over a
// WebSocket.
package logrelay

import (
	"sync"
	"syscall/js"
)

const (
	wsConnecting = 0
	wsOpen       = 1
)

// Writer sends each Write as one text message. Writes made before the
// socket opens are queued; writes after it closes are dropped.
type Writer struct {
	ws     js.Value
	mu     sync.Mutex
	queued []string
}

func Dial(url string) *Writer {
	w := &Writer{ws: js.Global().Get("WebSocket").New(url)}
	var onopen js.Func
	onopen = js.FuncOf(func(this js.Value, args []js.Value) any {
		onopen.Release()
		w.mu.Lock()
		defer w.mu.Unlock()
		for _, msg := range w.queued {
			w.ws.Call("send", msg)
		}
		w.queued = nil
		return nil
	})
	w.ws.Set("onopen", onopen)
	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.ws.Get("readyState").Int() {
	case wsOpen:
		w.ws.Call("send", string(p))
	case wsConnecting:
		w.queued = append(w.queued, string(p))
	}
	return len(p), nil
}

func (w *Writer) Close() error {
	w.ws.Call("close")
	return nil
}
