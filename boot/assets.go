package boot

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Fetcher retrieves a named resource as bytes. Implementations must
// return promptly once ctx is done: FetchAssets reports a failure only
// after the sibling fetch has returned.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

type FetcherFunc func(ctx context.Context, name string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, name string) ([]byte, error) {
	return f(ctx, name)
}

// Assets are the two buffers handed to the runtime filesystem.
type Assets struct {
	DiskImage   []byte
	UserProgram []byte
}

// FetchAssets fetches the disk image and user program concurrently and
// waits for both. The first failure is returned as a *FetchError naming
// its resource; the other fetch sees a cancelled context but is not
// otherwise stopped.
func FetchAssets(ctx context.Context, f Fetcher, cfg Config) (Assets, error) {
	var a Assets
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		a.DiskImage, err = fetchAsset(ctx, f, cfg.DiskImage)
		return
	})
	g.Go(func() (err error) {
		a.UserProgram, err = fetchAsset(ctx, f, cfg.UserProgram)
		return
	})
	if err := g.Wait(); err != nil {
		return Assets{}, err
	}
	return a, nil
}

func fetchAsset(ctx context.Context, f Fetcher, name string) ([]byte, error) {
	b, err := f.Fetch(ctx, name)
	if err != nil {
		return nil, asFetchError(name, err)
	}
	if b == nil {
		b = []byte{}
	}
	return b, nil
}
