package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"tractor.dev/toolkit-go/engine/cli"
	"tractor.dev/zealboot/boot"
	"tractor.dev/zealboot/boot/httpfetch"
	"tractor.dev/zealboot/boot/offline"
	"tractor.dev/zealboot/vfs/dirvfs"
)

type stageOptions struct {
	base    string
	rom     string
	program string
	out     string
}

func stageCmd() *cli.Command {
	var (
		opts stageOptions
		logs logFlags
	)
	cmd := &cli.Command{
		Usage: "stage",
		Short: "fetch the boot assets and stage them the way the page does",
		Args:  cli.MaxArgs(0),
		Run: func(ctx *cli.Context, args []string) {
			logs.use()
			sigctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			if err := runStage(sigctx, opts, slog.Default()); err != nil {
				// already logged by the loader
				os.Exit(1)
			}
		},
	}
	cmd.Flags().StringVar(&opts.base, "base", "http://localhost:7777/", "Base URL the asset names resolve against")
	cmd.Flags().StringVar(&opts.rom, "rom", boot.DefaultDiskImage, "Disk image resource name")
	cmd.Flags().StringVar(&opts.program, "program", boot.DefaultUserProgram, "User program resource name")
	cmd.Flags().StringVar(&opts.out, "out", "staged", "Directory standing in for the runtime filesystem root")
	logs.register(cmd)
	return cmd
}

func runStage(ctx context.Context, opts stageOptions, log *slog.Logger) error {
	fetcher, err := httpfetch.New(opts.base, httpfetch.WithLogger(log))
	if err != nil {
		log.Error(err.Error())
		return err
	}
	out, err := dirvfs.New(opts.out)
	if err != nil {
		log.Error(err.Error())
		return err
	}
	defer out.Close()

	cfg := boot.DefaultConfig()
	cfg.DiskImage = opts.rom
	cfg.UserProgram = opts.program

	loader := &boot.Loader{
		Config:  cfg,
		Fetcher: fetcher,
		Factory: offline.New(out),
		Log:     log,
	}
	if err := loader.Boot(ctx); err != nil {
		return err
	}
	log.Info("staged", "dir", opts.out, "disk_image", cfg.DiskImagePath, "user_program", cfg.UserProgramPath)
	return nil
}
