//go:build js && wasm

package emscripten

import (
	"context"
	"syscall/js"

	"tractor.dev/zealboot/web/jsutil"
)

// AudioContext wraps a Web Audio AudioContext.
type AudioContext struct {
	js.Value
}

func (a *AudioContext) State() string {
	return a.Get("state").String()
}

func (a *AudioContext) Resume(ctx context.Context) error {
	_, err := jsutil.AwaitContext(ctx, a.Call("resume"))
	return err
}
