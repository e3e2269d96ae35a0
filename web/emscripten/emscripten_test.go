//go:build js && wasm

package emscripten

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"syscall/js"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tractor.dev/zealboot/boot"
	"tractor.dev/zealboot/web/jsutil"
)

// an FS object that throws errno errors the way Emscripten's does
const fakeFSSource = `
const dirs = new Set(["/"]);
const files = new Map();
const fail = (msg, errno) => { const e = new Error(msg); e.errno = errno; throw e; };
return {
  dirs, files,
  analyzePath(p) { return { exists: dirs.has(p) || files.has(p) }; },
  mkdir(p) {
    if (dirs.has(p) || files.has(p)) fail("EEXIST", 20);
    dirs.add(p);
  },
  writeFile(p, data) {
    const parent = p.substring(0, p.lastIndexOf("/")) || "/";
    if (!dirs.has(parent)) fail("ENOENT", 44);
    files.set(p, Uint8Array.from(data));
  },
};
`

// a MODULARIZE style factory that initializes on a later tick
const fakeFactorySource = `
return function(mod) {
  return new Promise((resolve) => {
    setTimeout(() => {
      mod.FS = fsys;
      mod.print("args", mod.arguments.join(" "));
      mod.onRuntimeInitialized();
      mod.entered = Array.from(fsys.files.keys()).sort().join(",");
      resolve(mod);
    }, 0);
  });
};
`

// a factory whose runtime Module is a copy of the argument, with FS only
// on the copy
const copyingFactorySource = `
return function(arg) {
  return new Promise((resolve) => {
    setTimeout(() => {
      const mod = Object.assign({}, arg);
      mod.FS = fsys;
      mod.onRuntimeInitialized.call(mod);
      resolve(mod);
    }, 0);
  });
};
`

func newFakeFS() js.Value {
	return js.Global().Get("Function").New(fakeFSSource).Invoke()
}

func TestFS(t *testing.T) {
	fsys := &FS{Value: newFakeFS()}

	ok, err := fsys.Exists("/roms")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, fsys.Mkdir("/roms"))
	assert.True(t, errors.Is(fsys.Mkdir("/roms"), fs.ErrExist))
	assert.True(t, errors.Is(fsys.WriteFile("/missing/user.bin", nil), fs.ErrNotExist))

	require.NoError(t, fsys.WriteFile("/roms/user.bin", []byte{0xc3, 0x00}))
	got := jsutil.BytesFromJS(fsys.Get("files").Call("get", "/roms/user.bin"))
	assert.Equal(t, []byte{0xc3, 0x00}, got)
}

func TestFactoryBoot(t *testing.T) {
	fsys := newFakeFS()
	js.Global().Set("TestNativeModule", js.Global().Get("Function").New("fsys", fakeFactorySource).Invoke(fsys))
	defer js.Global().Delete("TestNativeModule")

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	l := &boot.Loader{
		Config: boot.DefaultConfig(),
		Fetcher: boot.FetcherFunc(func(ctx context.Context, name string) ([]byte, error) {
			return []byte(name), nil
		}),
		Factory: &Factory{Name: "TestNativeModule", Log: log},
		Log:     log,
	}
	require.NoError(t, l.Boot(context.Background()))

	files := fsys.Get("files")
	assert.Equal(t, "default.img", string(jsutil.BytesFromJS(files.Call("get", "/roms/default.img"))))
	assert.Equal(t, "microbe.bin", string(jsutil.BytesFromJS(files.Call("get", "/roms/user.bin"))))

	rt, ok := l.Instance.Runtime()
	require.True(t, ok)
	assert.Equal(t, "/roms/default.img,/roms/user.bin", rt.(*Runtime).Value().Get("entered").String())
	assert.Contains(t, buf.String(), `msg="Log: args -u roms/user.bin"`)
	assert.Nil(t, rt.Audio())
}

func TestFactoryModuleCopy(t *testing.T) {
	fsys := newFakeFS()
	js.Global().Set("TestCopyingModule", js.Global().Get("Function").New("fsys", copyingFactorySource).Invoke(fsys))
	defer js.Global().Delete("TestCopyingModule")

	l := &boot.Loader{
		Config: boot.DefaultConfig(),
		Fetcher: boot.FetcherFunc(func(ctx context.Context, name string) ([]byte, error) {
			return []byte(name), nil
		}),
		Factory: &Factory{Name: "TestCopyingModule"},
		Log:     slog.New(slog.DiscardHandler),
	}
	require.NoError(t, l.Boot(context.Background()))

	files := fsys.Get("files")
	assert.Equal(t, "default.img", string(jsutil.BytesFromJS(files.Call("get", "/roms/default.img"))))
	assert.Equal(t, "microbe.bin", string(jsutil.BytesFromJS(files.Call("get", "/roms/user.bin"))))
}

func TestFactoryMissing(t *testing.T) {
	_, err := (&Factory{Name: "NoSuchModule"}).Start(context.Background(), boot.ModuleConfig{})
	assert.EqualError(t, err, "NoSuchModule is not a module factory")
}

func TestAudioContext(t *testing.T) {
	ctxObj := js.Global().Get("Function").New(`
return {
  state: "suspended",
  resume() { this.state = "running"; return Promise.resolve(); },
};
`).Invoke()
	factory := js.Global().Get("Object").New()
	factory.Set("audioContext", ctxObj)
	rt := &Runtime{module: js.Global().Get("Object").New(), factory: factory}

	ac := rt.Audio()
	require.NotNil(t, ac)
	assert.Equal(t, boot.AudioSuspended, ac.State())
	require.NoError(t, ac.Resume(context.Background()))
	assert.Equal(t, "running", ac.State())
}
