package boot

import (
	"net/url"
	"path"
)

const (
	DefaultDiskImage   = "default.img"
	DefaultUserProgram = "microbe.bin"
	DefaultMountDir    = "/roms"
	DefaultSurfaceID   = "canvas"
)

// Config names the assets to fetch and where the runtime expects them.
type Config struct {
	// DiskImage and UserProgram are resource names, resolved relative
	// to the page origin by the Fetcher.
	DiskImage   string
	UserProgram string

	// MountDir is created in the runtime filesystem if absent. The two
	// staged paths must live directly under it.
	MountDir        string
	DiskImagePath   string
	UserProgramPath string

	// Arguments are the startup tokens handed to the runtime.
	Arguments []string

	// SurfaceID is the DOM id of the rendering surface.
	SurfaceID string
}

func DefaultConfig() Config {
	return Config{
		DiskImage:       DefaultDiskImage,
		UserProgram:     DefaultUserProgram,
		MountDir:        DefaultMountDir,
		DiskImagePath:   path.Join(DefaultMountDir, "default.img"),
		UserProgramPath: path.Join(DefaultMountDir, "user.bin"),
		Arguments:       []string{"-u", "roms/user.bin"},
		SurfaceID:       DefaultSurfaceID,
	}
}

// WithOverrides returns a copy of c with values taken from a page query
// string. Recognized keys are rom, program, canvas and arg (repeatable,
// replaces the argument list).
func (c Config) WithOverrides(q url.Values) Config {
	if v := q.Get("rom"); v != "" {
		c.DiskImage = v
	}
	if v := q.Get("program"); v != "" {
		c.UserProgram = v
	}
	if v := q.Get("canvas"); v != "" {
		c.SurfaceID = v
	}
	if args, ok := q["arg"]; ok {
		c.Arguments = append([]string(nil), args...)
	} else {
		c.Arguments = append([]string(nil), c.Arguments...)
	}
	return c
}
