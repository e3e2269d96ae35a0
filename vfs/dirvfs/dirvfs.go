// Package dirvfs exposes a host directory as a runtime filesystem. Paths
// are resolved inside the directory and cannot escape it.
package dirvfs

import (
	"os"
	"path"
	"strings"

	"tractor.dev/toolkit-go/engine/fs/fsutil"
)

// FS writes through an os.Root. toolkit-go has no host-directory
// MutableFS, so only the reads go through fsutil.
type FS struct {
	root *os.Root
}

// New opens dir, creating it if needed.
func New(dir string) (*FS, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, err
	}
	return &FS{root: root}, nil
}

func (fsys *FS) Close() error {
	return fsys.root.Close()
}

func rel(name string) string {
	p := strings.TrimPrefix(path.Clean("/"+name), "/")
	if p == "" {
		return "."
	}
	return p
}

func (fsys *FS) Exists(name string) (bool, error) {
	return fsutil.Exists(fsys.root.FS(), rel(name))
}

func (fsys *FS) Mkdir(name string) error {
	return fsys.root.Mkdir(rel(name), 0755)
}

func (fsys *FS) WriteFile(name string, data []byte) error {
	return fsys.root.WriteFile(rel(name), data, 0644)
}
