package main

import (
	"log/slog"
	"net/http"
	"os"

	"tractor.dev/toolkit-go/engine/cli"
	"tractor.dev/zealboot/devserver"
	"tractor.dev/zealboot/site"
)

func serveCmd() *cli.Command {
	var (
		addr string
		dir  string
		logs logFlags
	)
	cmd := &cli.Command{
		Usage: "serve",
		Short: "serve the emulator page and assets for development",
		Args:  cli.MaxArgs(0),
		Run: func(ctx *cli.Context, args []string) {
			logs.use()
			handler := devserver.New(devserver.Options{
				Root:   devserver.Overlay{os.DirFS(dir), site.Dir},
				Logger: slog.Default(),
			})
			slog.Info("serving", "url", "http://localhost"+addr, "dir", dir, "relay", devserver.RelayPath)
			fatal(http.ListenAndServe(addr, handler))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":7777", "Address to listen on")
	cmd.Flags().StringVar(&dir, "dir", ".", "Build directory with the loader wasm, native module and boot assets")
	logs.register(cmd)
	return cmd
}
