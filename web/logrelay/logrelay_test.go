//go:build js && wasm

package logrelay

import (
	"syscall/js"
	"testing"

	"github.com/stretchr/testify/assert"
)

// a WebSocket that stays connecting until open() is called
const fakeSocketSource = `
return class {
  constructor(url) { this.url = url; this.readyState = 0; this.sent = []; }
  send(msg) {
    if (this.readyState !== 1) throw new Error("InvalidStateError");
    this.sent.push(msg);
  }
  close() { this.readyState = 3; }
  open() { this.readyState = 1; if (this.onopen) this.onopen(); }
};
`

func sent(w *Writer) []string {
	v := w.ws.Get("sent")
	out := make([]string, v.Length())
	for i := range out {
		out[i] = v.Index(i).String()
	}
	return out
}

func TestWriterQueuesUntilOpen(t *testing.T) {
	old := js.Global().Get("WebSocket")
	js.Global().Set("WebSocket", js.Global().Get("Function").New(fakeSocketSource).Invoke())
	defer js.Global().Set("WebSocket", old)

	w := Dial("ws://localhost:7777/.log")
	assert.Equal(t, "ws://localhost:7777/.log", w.ws.Get("url").String())

	w.Write([]byte("12:00:00.000 INFO  main: Zeal Native Minimal Loading...\n"))
	w.Write([]byte("12:00:00.001 INFO  main: Zeal Native Minimal Loaded!\n"))
	assert.Empty(t, sent(w))

	w.ws.Call("open")
	assert.Equal(t, []string{
		"12:00:00.000 INFO  main: Zeal Native Minimal Loading...\n",
		"12:00:00.001 INFO  main: Zeal Native Minimal Loaded!\n",
	}, sent(w))

	n, err := w.Write([]byte("Error: bad opcode\n"))
	assert.NoError(t, err)
	assert.Equal(t, len("Error: bad opcode\n"), n)
	assert.Len(t, sent(w), 3)

	assert.NoError(t, w.Close())
	n, err = w.Write([]byte("dropped\n"))
	assert.NoError(t, err)
	assert.Equal(t, len("dropped\n"), n)
	assert.Len(t, sent(w), 3)
}
