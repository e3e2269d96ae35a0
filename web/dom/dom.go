//go:build js && wasm

// Package dom binds the page the loader runs in.
package dom

import (
	"net/url"
	"strings"
	"syscall/js"
)

// OnLoad calls fn once the window load event fires, or right away on a
// new goroutine if the document has already finished loading.
func OnLoad(fn func()) {
	if js.Global().Get("document").Get("readyState").String() == "complete" {
		go fn()
		return
	}
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		cb.Release()
		go fn()
		return nil
	})
	js.Global().Get("window").Call("addEventListener", "load", cb, map[string]any{"once": true})
}

// Query returns the parsed query string of the page URL.
func Query() url.Values {
	search := js.Global().Get("location").Get("search").String()
	q, err := url.ParseQuery(strings.TrimPrefix(search, "?"))
	if err != nil {
		return url.Values{}
	}
	return q
}
