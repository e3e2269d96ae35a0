// Package boot fetches the emulator's disk image and user program, stages
// them into a hosted runtime's filesystem and starts the runtime.
package boot

import (
	"context"
	"errors"
	"log/slog"
)

// Loader runs the boot sequence once. Fetcher and Factory are required.
// Surface may be nil when there is nothing to focus.
type Loader struct {
	Config   Config
	Fetcher  Fetcher
	Factory  Factory
	Surface  Surface
	Instance *Instance
	Log      *slog.Logger
}

func (l *Loader) log() *slog.Logger {
	if l.Log == nil {
		return slog.Default()
	}
	return l.Log
}

// Boot fetches both assets, starts the runtime, stages the assets once
// the runtime is initialized, focuses the surface and records the live
// runtime in l.Instance. Any failure is logged and returned; nothing is
// retried and the runtime is never started after a failed fetch.
func (l *Loader) Boot(ctx context.Context) error {
	if l.Instance == nil {
		l.Instance = &Instance{}
	}
	if l.Instance.Started() {
		return ErrAlreadyStarted
	}
	if l.Factory == nil {
		return ErrNoFactory
	}

	assets, err := FetchAssets(ctx, l.Fetcher, l.Config)
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			l.log().Error(err.Error(), "resource", fe.Resource, "status", fe.Status)
		} else {
			l.log().Error(err.Error())
		}
		return err
	}
	l.log().Debug("assets fetched",
		"disk_image", len(assets.DiskImage),
		"user_program", len(assets.UserProgram))

	pending, err := l.Factory.Start(ctx, l.moduleConfig())
	if err != nil {
		return l.startFailed(err)
	}

	ready, err := pending.Ready(ctx)
	if err != nil {
		return l.startFailed(err)
	}
	err = Stage(ready.FS, l.Config, assets)
	if err == nil && l.Surface != nil {
		l.Surface.SetAttribute("tabindex", "0")
		l.Surface.Focus()
	}
	ready.Done(err)
	if err != nil {
		l.log().Error(err.Error())
		return err
	}

	rt, err := pending.Instance(ctx)
	if err != nil {
		return l.startFailed(err)
	}
	if err := l.Instance.set(rt); err != nil {
		return err
	}
	l.log().Debug("runtime started")
	return nil
}

func (l *Loader) startFailed(err error) error {
	se := &StartError{Err: err}
	l.log().Error(se.Error())
	return se
}

func (l *Loader) moduleConfig() ModuleConfig {
	log := l.log()
	return ModuleConfig{
		Arguments: append([]string(nil), l.Config.Arguments...),
		Print: func(text string) {
			log.Info("Log: " + text)
		},
		PrintErr: func(text string) {
			log.Error("Error: " + text)
		},
		Surface: l.Surface,
	}
}
