package boot

import "fmt"

// Stage writes the assets into fsys at the configured paths, creating
// the mount directory first if it does not exist. Calling it again with
// the directory present leaves the directory's other contents alone.
func Stage(fsys FS, cfg Config, a Assets) error {
	ok, err := fsys.Exists(cfg.MountDir)
	if err != nil {
		return fmt.Errorf("stage %s: %w", cfg.MountDir, err)
	}
	if !ok {
		if err := fsys.Mkdir(cfg.MountDir); err != nil {
			return fmt.Errorf("stage %s: %w", cfg.MountDir, err)
		}
	}
	for _, f := range []struct {
		path string
		data []byte
	}{
		{cfg.DiskImagePath, a.DiskImage},
		{cfg.UserProgramPath, a.UserProgram},
	} {
		if err := fsys.WriteFile(f.path, f.data); err != nil {
			return fmt.Errorf("stage %s: %w", f.path, err)
		}
	}
	return nil
}
