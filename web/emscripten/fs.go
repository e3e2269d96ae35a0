//go:build js && wasm

package emscripten

import (
	"io/fs"
	"syscall/js"

	"tractor.dev/zealboot/web/jsutil"
)

// errno values of Emscripten's wasi-style FS.ErrnoError
const (
	errnoEXIST = 20
	errnoNOENT = 44
)

// FS is the part of an Emscripten module's FS object used for staging.
type FS struct {
	js.Value
}

func (fsys *FS) Exists(path string) (bool, error) {
	res, err := fsys.call("analyzePath", path)
	if err != nil {
		return false, err
	}
	return res.Get("exists").Bool(), nil
}

func (fsys *FS) Mkdir(path string) error {
	_, err := fsys.call("mkdir", path)
	return err
}

func (fsys *FS) WriteFile(path string, data []byte) error {
	_, err := fsys.call("writeFile", path, jsutil.BytesToJS(data))
	return err
}

// call converts a thrown FS.ErrnoError into a *fs.PathError.
func (fsys *FS) call(method, path string, args ...any) (res js.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			jsErr, ok := r.(js.Error)
			if !ok {
				panic(r)
			}
			err = &fs.PathError{Op: method, Path: path, Err: errnoError(jsErr)}
		}
	}()
	return fsys.Call(method, append([]any{path}, args...)...), nil
}

func errnoError(e js.Error) error {
	errno := e.Get("errno")
	if errno.Type() != js.TypeNumber {
		return e
	}
	switch errno.Int() {
	case errnoEXIST:
		return fs.ErrExist
	case errnoNOENT:
		return fs.ErrNotExist
	}
	return e
}
