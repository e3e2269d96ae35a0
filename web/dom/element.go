//go:build js && wasm

package dom

import (
	"fmt"
	"syscall/js"
)

// Element is a DOM element the runtime renders into.
type Element struct {
	id    string
	value js.Value
}

// ElementByID looks up an element in the current document.
func ElementByID(id string) (*Element, error) {
	el := js.Global().Get("document").Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return nil, fmt.Errorf("dom: no element with id %q", id)
	}
	return &Element{id: id, value: el}, nil
}

func (e *Element) ID() string {
	return e.id
}

func (e *Element) Value() js.Value {
	return e.value
}

func (e *Element) SetAttribute(name, value string) {
	e.value.Call("setAttribute", name, value)
}

func (e *Element) Focus() {
	e.value.Call("focus")
}

// OnClick calls fn on every click of the element.
func (e *Element) OnClick(fn func()) {
	e.value.Call("addEventListener", "click", js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	}))
}
