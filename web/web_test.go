//go:build js && wasm

package web

import (
	"context"
	"log/slog"
	"syscall/js"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tractor.dev/zealboot/boot"
	"tractor.dev/zealboot/vfs/memvfs"
	"tractor.dev/zealboot/web/emscripten"
)

// an AudioContext that counts resume calls
const fakeAudioSource = `
return {
  state: "suspended",
  calls: 0,
  resume() { this.calls++; this.state = "running"; return Promise.resolve(); },
};
`

// fakeRuntime starts immediately with a given audio context.
type fakeRuntime struct {
	fs    *memvfs.FS
	audio boot.AudioContext
}

func (r *fakeRuntime) Start(ctx context.Context, cfg boot.ModuleConfig) (boot.Pending, error) {
	return r, nil
}

func (r *fakeRuntime) Ready(ctx context.Context) (*boot.Init, error) {
	return boot.NewInit(r.fs), nil
}

func (r *fakeRuntime) Instance(ctx context.Context) (boot.Runtime, error) {
	return r, nil
}

func (r *fakeRuntime) FS() boot.FS { return r.fs }

func (r *fakeRuntime) Audio() boot.AudioContext { return r.audio }

func startedInstance(t *testing.T, audio boot.AudioContext) *boot.Instance {
	inst := &boot.Instance{}
	l := &boot.Loader{
		Config: boot.DefaultConfig(),
		Fetcher: boot.FetcherFunc(func(ctx context.Context, name string) ([]byte, error) {
			return []byte(name), nil
		}),
		Factory:  &fakeRuntime{fs: memvfs.New(), audio: audio},
		Instance: inst,
		Log:      slog.New(slog.DiscardHandler),
	}
	require.NoError(t, l.Boot(context.Background()))
	return inst
}

func TestExposeResumeAudio(t *testing.T) {
	ac := js.Global().Get("Function").New(fakeAudioSource).Invoke()
	inst := startedInstance(t, &emscripten.AudioContext{Value: ac})

	ExposeResumeAudio("testResumeAudio", inst, nil)
	defer js.Global().Delete("testResumeAudio")

	js.Global().Call("testResumeAudio")
	require.Eventually(t, func() bool {
		return ac.Get("state").String() == "running"
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, ac.Get("calls").Int())

	// already running, so no second resume
	js.Global().Call("testResumeAudio")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, ac.Get("calls").Int())
}

func TestExposeResumeAudioNotStarted(t *testing.T) {
	ExposeResumeAudio("testResumeAudio", &boot.Instance{}, slog.New(slog.DiscardHandler))
	defer js.Global().Delete("testResumeAudio")

	assert.NotPanics(t, func() {
		js.Global().Call("testResumeAudio")
		time.Sleep(20 * time.Millisecond)
	})
}
