//go:build js && wasm

package jsutil

import (
	"context"
	"syscall/js"
)

func Await(promise js.Value) js.Value {
	v, _ := AwaitErr(promise)
	return v
}

func AwaitErr(promise js.Value) (js.Value, error) {
	return AwaitContext(context.Background(), promise)
}

// AwaitContext blocks until promise settles or ctx is done. A rejection is
// returned as a js.Error. It must not be called from a js.Func callback
// running on the event loop.
func AwaitContext(ctx context.Context, promise js.Value) (js.Value, error) {
	resolved := make(chan js.Value, 1)
	rejected := make(chan js.Value, 1)
	onResolve := js.FuncOf(func(this js.Value, args []js.Value) any {
		resolved <- arg0(args)
		return nil
	})
	onReject := js.FuncOf(func(this js.Value, args []js.Value) any {
		rejected <- arg0(args)
		return nil
	})
	promise.Call("then", onResolve, onReject)

	select {
	case v := <-resolved:
		onResolve.Release()
		onReject.Release()
		return v, nil
	case v := <-rejected:
		onResolve.Release()
		onReject.Release()
		return js.Undefined(), js.Error{Value: v}
	case <-ctx.Done():
		// the callbacks stay registered on the promise; leak them rather
		// than have a late settlement call a released func
		return js.Undefined(), ctx.Err()
	}
}

func arg0(args []js.Value) js.Value {
	if len(args) == 0 {
		return js.Undefined()
	}
	return args[0]
}
