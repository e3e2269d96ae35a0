//go:build js && wasm

// Package web wires the boot sequence to the browser page.
package web

import (
	"context"
	"log/slog"
	"syscall/js"

	"tractor.dev/zealboot/boot"
	"tractor.dev/zealboot/web/dom"
	"tractor.dev/zealboot/web/emscripten"
	"tractor.dev/zealboot/web/jsutil"
)

type Options struct {
	Config boot.Config
	// Factory is the global Emscripten module factory name.
	Factory string
	// Script is the factory's glue script, loaded if the page has not.
	Script string
	Log    *slog.Logger
}

// NewLoader builds a loader that fetches with the page's fetch and starts
// the Emscripten module against the configured surface element.
func NewLoader(opts Options, inst *boot.Instance) (*boot.Loader, error) {
	surface, err := dom.ElementByID(opts.Config.SurfaceID)
	if err != nil {
		return nil, err
	}
	return &boot.Loader{
		Config:  opts.Config,
		Fetcher: jsutil.Fetcher{},
		Factory: &emscripten.Factory{
			Name:   opts.Factory,
			Script: opts.Script,
			Log:    opts.Log,
		},
		Surface:  surface,
		Instance: inst,
		Log:      opts.Log,
	}, nil
}

// ExposeResumeAudio defines a global function that resumes the runtime's
// audio context. Pages call it from a user gesture handler.
func ExposeResumeAudio(name string, inst *boot.Instance, log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	js.Global().Set(name, js.FuncOf(func(this js.Value, args []js.Value) any {
		go func() {
			if err := boot.ResumeAudio(context.Background(), inst, log); err != nil {
				log.Error("resume audio", "err", err)
			}
		}()
		return nil
	}))
}
