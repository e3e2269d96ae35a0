package boot

import (
	"context"
	"sync"
)

// FS is the part of the hosted runtime's virtual filesystem the loader
// stages into. Paths are absolute, slash separated.
type FS interface {
	Exists(path string) (bool, error)
	Mkdir(path string) error
	WriteFile(path string, data []byte) error
}

// Surface is the element the runtime renders to.
type Surface interface {
	SetAttribute(name, value string)
	Focus()
}

// ModuleConfig is what a Factory receives to construct a runtime.
type ModuleConfig struct {
	Arguments []string
	Print     func(text string)
	PrintErr  func(text string)
	Surface   Surface
}

// Factory constructs a hosted runtime.
type Factory interface {
	Start(ctx context.Context, cfg ModuleConfig) (Pending, error)
}

// Pending is a runtime under construction.
type Pending interface {
	// Ready blocks until the runtime environment is initialized. The
	// runtime does not enter its program until Done is called on the
	// returned Init.
	Ready(ctx context.Context) (*Init, error)

	// Instance blocks until the factory resolves the live runtime.
	Instance(ctx context.Context) (Runtime, error)
}

// Runtime is a live hosted runtime.
type Runtime interface {
	FS() FS
	// Audio returns nil when the runtime has no audio context.
	Audio() AudioContext
}

// Init is the handoff between a runtime that finished initializing and
// the loader staging files into it.
type Init struct {
	FS FS

	once sync.Once
	done chan error
}

func NewInit(fsys FS) *Init {
	return &Init{FS: fsys, done: make(chan error, 1)}
}

// Done releases the runtime. Only the first call has effect.
func (i *Init) Done(err error) {
	i.once.Do(func() {
		i.done <- err
		close(i.done)
	})
}

// Wait blocks the runtime side until Done is called and returns the
// error passed to it.
func (i *Init) Wait() error {
	return <-i.done
}

// Instance holds the runtime started by a Loader. It is written once and
// lives until the process (page) goes away.
type Instance struct {
	mu sync.Mutex
	rt Runtime
}

func (i *Instance) set(rt Runtime) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.rt != nil {
		return ErrAlreadyStarted
	}
	i.rt = rt
	return nil
}

// Runtime returns the live runtime, if started.
func (i *Instance) Runtime() (Runtime, bool) {
	if i == nil {
		return nil, false
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.rt, i.rt != nil
}

func (i *Instance) Started() bool {
	_, ok := i.Runtime()
	return ok
}
