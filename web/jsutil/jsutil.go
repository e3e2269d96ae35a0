//go:build js && wasm

package jsutil

import (
	"syscall/js"
)

func Log(args ...any) {
	js.Global().Get("console").Call("log", args...)
}

// BytesToJS copies b into a new Uint8Array.
func BytesToJS(b []byte) js.Value {
	buf := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(buf, b)
	return buf
}

// BytesFromJS copies a Uint8Array or ArrayBuffer into a Go slice.
func BytesFromJS(v js.Value) []byte {
	if v.InstanceOf(js.Global().Get("ArrayBuffer")) {
		v = js.Global().Get("Uint8Array").New(v)
	}
	b := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(b, v)
	return b
}
