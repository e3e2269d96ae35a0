//go:build js && wasm

package jsutil

import (
	"syscall/js"
)

// LoadScript appends a script tag for url and returns a promise that
// settles when it has loaded.
func LoadScript(url string, module bool) js.Value {
	var executor js.Func
	executor = js.FuncOf(func(this js.Value, args []js.Value) any {
		defer executor.Release()
		resolve := args[0]
		reject := args[1]

		doc := js.Global().Get("document")
		script := doc.Call("createElement", "script")
		script.Set("src", url)
		if module {
			script.Set("type", "module")
		}
		script.Set("onload", resolve)
		script.Set("onerror", js.FuncOf(func(this js.Value, args []js.Value) any {
			err := js.Global().Get("Error").New("Failed to load script: " + url)
			reject.Invoke(err)
			return nil
		}))
		doc.Get("head").Call("appendChild", script)
		return nil
	})
	return js.Global().Get("Promise").New(executor)
}
