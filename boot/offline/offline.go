// Package offline is a runtime factory with no program behind it. It
// initializes immediately over a given filesystem, which lets the boot
// sequence run natively to stage assets for inspection.
package offline

import (
	"context"
	"strings"

	"tractor.dev/zealboot/boot"
)

type Factory struct {
	FS boot.FS
}

func New(fsys boot.FS) *Factory {
	return &Factory{FS: fsys}
}

func (f *Factory) Start(ctx context.Context, cfg boot.ModuleConfig) (boot.Pending, error) {
	if cfg.Print != nil {
		cfg.Print("offline runtime: " + strings.Join(cfg.Arguments, " "))
	}
	p := &pending{
		init: boot.NewInit(f.FS),
		rt:   &Runtime{fs: f.FS},
	}
	return p, nil
}

type pending struct {
	init *boot.Init
	rt   *Runtime
}

func (p *pending) Ready(ctx context.Context) (*boot.Init, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.init, nil
}

// Instance waits for staging to finish, as a real runtime would before
// entering its program.
func (p *pending) Instance(ctx context.Context) (boot.Runtime, error) {
	done := make(chan error, 1)
	go func() { done <- p.init.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			return nil, err
		}
		return p.rt, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type Runtime struct {
	fs boot.FS
}

func (r *Runtime) FS() boot.FS { return r.fs }

func (r *Runtime) Audio() boot.AudioContext { return nil }
