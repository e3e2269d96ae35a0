//go:build js && wasm

// Package emscripten starts a MODULARIZE'd Emscripten build through its
// global module factory.
package emscripten

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"syscall/js"

	"tractor.dev/zealboot/boot"
	"tractor.dev/zealboot/web/jsutil"
)

const DefaultFactory = "NativeModule"

type Factory struct {
	// Name is the global factory function. Defaults to DefaultFactory.
	Name string
	// Script is loaded first if the factory global is not defined yet.
	Script string
	Log    *slog.Logger
}

func (f *Factory) name() string {
	if f.Name == "" {
		return DefaultFactory
	}
	return f.Name
}

func (f *Factory) log() *slog.Logger {
	if f.Log == nil {
		return slog.Default()
	}
	return f.Log
}

func (f *Factory) lookup(ctx context.Context) (js.Value, error) {
	fn := js.Global().Get(f.name())
	if fn.Type() != js.TypeFunction && f.Script != "" {
		if _, err := jsutil.AwaitContext(ctx, jsutil.LoadScript(f.Script, false)); err != nil {
			return js.Undefined(), fmt.Errorf("load %s: %w", f.Script, err)
		}
		fn = js.Global().Get(f.name())
	}
	if fn.Type() != js.TypeFunction {
		return js.Undefined(), fmt.Errorf("%s is not a module factory", f.name())
	}
	return fn, nil
}

// Start invokes the factory with a module object built from cfg. The
// runtime's onRuntimeInitialized hook hands a *boot.Init to Ready and
// holds the runtime there until Done is called, so files staged in
// between are in place before main runs.
//
// The factory must initialize asynchronously, which Emscripten does when
// it compiles wasm. A build that runs onRuntimeInitialized synchronously
// inside the factory call deadlocks: the hook then blocks on Init.Wait
// on the goroutine that would have to call Done.
func (f *Factory) Start(ctx context.Context, cfg boot.ModuleConfig) (boot.Pending, error) {
	fn, err := f.lookup(ctx)
	if err != nil {
		return nil, err
	}

	p := &pending{
		factory:  fn,
		ready:    make(chan *boot.Init, 1),
		resolved: make(chan js.Value, 1),
		rejected: make(chan js.Value, 1),
	}

	args := make([]any, len(cfg.Arguments))
	for i, a := range cfg.Arguments {
		args[i] = a
	}
	var module js.Value
	opts := map[string]any{
		"arguments": args,
		"print":     printFunc(cfg.Print),
		"printErr":  printFunc(cfg.PrintErr),
		"onRuntimeInitialized": js.FuncOf(func(this js.Value, _ []js.Value) any {
			// this is the runtime's Module, which need not be the object
			// passed to the factory
			m := this
			if m.Type() != js.TypeObject || !m.Get("FS").Truthy() {
				m = module
			}
			in := boot.NewInit(&FS{Value: m.Get("FS")})
			p.ready <- in
			if err := in.Wait(); err != nil {
				f.log().Error("runtime released after failed staging", "err", err)
			}
			return nil
		}),
	}
	if el, ok := cfg.Surface.(interface{ Value() js.Value }); ok {
		opts["canvas"] = el.Value()
	}
	module = js.ValueOf(opts)

	fn.Invoke(module).Call("then",
		js.FuncOf(func(this js.Value, args []js.Value) any {
			p.resolved <- args[0]
			return nil
		}),
		js.FuncOf(func(this js.Value, args []js.Value) any {
			p.rejected <- args[0]
			return nil
		}),
	)
	return p, nil
}

func printFunc(fn func(string)) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		if fn == nil {
			return nil
		}
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		fn(strings.Join(parts, " "))
		return nil
	})
}

type pending struct {
	factory  js.Value
	ready    chan *boot.Init
	resolved chan js.Value
	rejected chan js.Value
}

func (p *pending) Ready(ctx context.Context) (*boot.Init, error) {
	select {
	case in := <-p.ready:
		return in, nil
	case v := <-p.rejected:
		p.rejected <- v
		return nil, js.Error{Value: v}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *pending) Instance(ctx context.Context) (boot.Runtime, error) {
	select {
	case v := <-p.resolved:
		return &Runtime{module: v, factory: p.factory}, nil
	case v := <-p.rejected:
		return nil, js.Error{Value: v}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Runtime is a started Emscripten module.
type Runtime struct {
	module  js.Value
	factory js.Value
}

func (r *Runtime) Value() js.Value {
	return r.module
}

func (r *Runtime) FS() boot.FS {
	return &FS{Value: r.module.Get("FS")}
}

// Audio returns the audio context the build publishes on its factory,
// or on the module itself.
func (r *Runtime) Audio() boot.AudioContext {
	for _, v := range []js.Value{r.factory, r.module} {
		if ac := v.Get("audioContext"); ac.Truthy() {
			return &AudioContext{Value: ac}
		}
	}
	return nil
}
