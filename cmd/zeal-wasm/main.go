//go:build js && wasm

package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"tractor.dev/zealboot/boot"
	"tractor.dev/zealboot/internal/slogger"
	"tractor.dev/zealboot/web"
	"tractor.dev/zealboot/web/dom"
	"tractor.dev/zealboot/web/logrelay"
)

func main() {
	q := dom.Query()

	var out io.Writer = os.Stdout
	if url := q.Get("logrelay"); url != "" {
		out = io.MultiWriter(os.Stdout, logrelay.Dial(url))
	}
	level := slog.LevelInfo
	if q.Has("debug") {
		level = slog.LevelDebug
	}
	slogger.UseWithOptions(slogger.HandlerOptions{
		Level:  level,
		Output: out,
	})
	log := slog.Default()

	log.Info("Zeal Native Minimal Loading...")

	inst := &boot.Instance{}
	opts := web.Options{
		Config:  boot.DefaultConfig().WithOverrides(q),
		Factory: q.Get("factory"),
		Script:  q.Get("script"),
		Log:     log,
	}
	web.ExposeResumeAudio("resumeAudioIfNeeded", inst, log)

	dom.OnLoad(func() {
		loader, err := web.NewLoader(opts, inst)
		if err != nil {
			log.Error(err.Error())
			return
		}
		// errors are logged by the loader; a reload is the only recovery
		loader.Boot(context.Background())
	})

	log.Info("Zeal Native Minimal Loaded!")
	select {}
}
