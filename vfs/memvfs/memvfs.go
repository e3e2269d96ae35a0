// Package memvfs adapts a toolkit filesystem to the runtime filesystem
// used for staging. New backs it with memfs for dry runs and tests.
package memvfs

import (
	"log/slog"
	"path"
	"slices"
	"strings"
	"sync"

	"tractor.dev/toolkit-go/engine/fs"
	"tractor.dev/toolkit-go/engine/fs/fsutil"
	"tractor.dev/toolkit-go/engine/fs/memfs"
)

type FS struct {
	fsys fs.MutableFS
	mu   sync.Mutex
	log  *slog.Logger
}

func New() *FS {
	return Wrap(memfs.New())
}

// Wrap stages into fsys. Paths are rooted at fsys's top directory.
func Wrap(fsys fs.MutableFS) *FS {
	return &FS{
		fsys: fsys,
		log:  slog.New(slog.DiscardHandler),
	}
}

func (m *FS) SetLogger(logger *slog.Logger) {
	m.log = logger
}

// rel maps a runtime path like /roms/user.bin to roms/user.bin.
func rel(name string) string {
	p := strings.TrimPrefix(path.Clean("/"+name), "/")
	if p == "" {
		return "."
	}
	return p
}

// Open makes the staged tree readable as an fs.FS.
func (m *FS) Open(name string) (fs.File, error) {
	return m.fsys.Open(name)
}

func (m *FS) Exists(name string) (bool, error) {
	return fsutil.Exists(m.fsys, rel(name))
}

func (m *FS) Mkdir(name string) error {
	p := rel(name)
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok, err := fsutil.Exists(m.fsys, p); err != nil {
		return err
	} else if ok {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
	}
	if err := m.parentDir("mkdir", name, p); err != nil {
		return err
	}
	if err := m.fsys.Mkdir(p, 0755); err != nil {
		return err
	}
	m.log.Debug("mkdir", "path", name)
	return nil
}

func (m *FS) WriteFile(name string, data []byte) error {
	p := rel(name)
	m.mu.Lock()
	defer m.mu.Unlock()
	if isdir, err := fsutil.DirExists(m.fsys, p); err != nil {
		return err
	} else if isdir {
		return &fs.PathError{Op: "write", Path: name, Err: fs.ErrInvalid}
	}
	if err := m.parentDir("write", name, p); err != nil {
		return err
	}
	if err := fsutil.WriteFile(m.fsys, p, data, 0644); err != nil {
		return err
	}
	m.log.Debug("write", "path", name, "size", len(data))
	return nil
}

// parentDir fails unless the parent of p is an existing directory. memfs
// would create missing parents, which a runtime filesystem does not.
func (m *FS) parentDir(op, name, p string) error {
	dir := path.Dir(p)
	isdir, err := fsutil.DirExists(m.fsys, dir)
	if err != nil {
		return err
	}
	if isdir {
		return nil
	}
	if ok, _ := fsutil.Exists(m.fsys, dir); ok {
		return &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}
	return &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
}

func (m *FS) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(m.fsys, rel(name))
}

// ReadDir returns the sorted names of the direct children of dir.
func (m *FS) ReadDir(dir string) ([]string, error) {
	entries, err := fs.ReadDir(m.fsys, rel(dir))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names, nil
}
