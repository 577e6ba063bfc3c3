package preload

import (
	"context"
	"sync"
	"time"

	"github.com/BrandonKowalski/navshell/pkg/navshell/internal"
	"github.com/BrandonKowalski/navshell/pkg/navshell/screens"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// Module is a loaded screen unit.
type Module struct {
	Screen   screens.ID
	View     any // renderable default view, never inspected by navshell
	LoadedAt time.Time
}

// Handle is the shared, pending-or-resolved load of one screen. Every
// caller asking for the same screen gets the same Handle.
type Handle struct {
	screen screens.ID
	done   chan struct{}
	module Module
	err    error
}

func newHandle(screen screens.ID) *Handle {
	return &Handle{screen: screen, done: make(chan struct{})}
}

func (h *Handle) resolve(m Module, err error) {
	h.module = m
	h.err = err
	close(h.done)
}

// Screen returns the screen this handle loads.
func (h *Handle) Screen() screens.ID {
	return h.screen
}

// Done is closed once the load has finished, successfully or not.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Ready reports whether the load has finished.
func (h *Handle) Ready() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Err returns the load failure, or nil while pending or after success.
func (h *Handle) Err() error {
	if !h.Ready() {
		return nil
	}
	return h.err
}

// Wait blocks until the load finishes or ctx is done. Cancelling ctx only
// stops the wait; the load itself keeps running.
func (h *Handle) Wait(ctx context.Context) (Module, error) {
	select {
	case <-h.done:
		return h.module, h.err
	case <-ctx.Done():
		return Module{}, ctx.Err()
	}
}

// CacheStats is a point-in-time view of cache activity.
type CacheStats struct {
	Entries int
	Loads   int64
	Failed  int64
}

// Cache holds one load handle per screen for the lifetime of the session.
// Entries are never evicted: the screen set is small and closed.
type Cache struct {
	mu      sync.Mutex
	loaders Loaders
	entries map[screens.ID]*Handle

	// loads are detached from callers; nothing cancels a started load.
	baseCtx context.Context

	loads  atomic.Int64
	failed atomic.Int64
}

// NewCache creates a cache backed by the given loader table.
func NewCache(loaders Loaders) *Cache {
	return &Cache{
		loaders: loaders,
		entries: make(map[screens.ID]*Handle),
		baseCtx: context.Background(),
	}
}

// EnsureLoaded returns the handle for id, starting the load if this is the
// first request. The handle is stored before the loader runs, so concurrent
// callers never trigger a second load.
func (c *Cache) EnsureLoaded(id screens.ID) *Handle {
	c.mu.Lock()
	if h, ok := c.entries[id]; ok {
		c.mu.Unlock()
		return h
	}

	h := newHandle(id)
	c.entries[id] = h
	load := c.loaders[id]
	c.mu.Unlock()

	c.loads.Inc()
	go c.run(h, load)
	return h
}

// EnsureLoadedAll starts loads for every id. Completion order is unspecified.
func (c *Cache) EnsureLoadedAll(ids []screens.ID) []*Handle {
	handles := make([]*Handle, 0, len(ids))
	for _, id := range ids {
		handles = append(handles, c.EnsureLoaded(id))
	}
	return handles
}

// WaitAll ensures every id is loading and waits for all of them. It returns
// the first load failure, or ctx's error if ctx ends first.
func (c *Cache) WaitAll(ctx context.Context, ids []screens.ID) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, h := range c.EnsureLoadedAll(ids) {
		h := h
		g.Go(func() error {
			_, err := h.Wait(gctx)
			return err
		})
	}
	return g.Wait()
}

// Lookup returns the existing handle for id without starting a load.
func (c *Cache) Lookup(id screens.ID) (*Handle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.entries[id]
	return h, ok
}

// Forget drops the entry for id so the next EnsureLoaded starts a fresh
// load. Holders of the old handle keep seeing its result.
func (c *Cache) Forget(id screens.ID) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
}

// Stats reports entry and load counts.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	n := len(c.entries)
	c.mu.Unlock()
	return CacheStats{
		Entries: n,
		Loads:   c.loads.Load(),
		Failed:  c.failed.Load(),
	}
}

func (c *Cache) run(h *Handle, load LoadFunc) {
	if load == nil {
		c.fail(h, ErrNoLoader)
		return
	}

	start := time.Now()
	view, err := load(c.baseCtx)
	if err != nil {
		c.fail(h, err)
		return
	}

	internal.GetInternalLogger().Debug("Screen loaded", "screen", h.screen.String(), "elapsed", time.Since(start))
	h.resolve(Module{Screen: h.screen, View: view, LoadedAt: time.Now()}, nil)
}

func (c *Cache) fail(h *Handle, err error) {
	c.failed.Inc()
	loadErr := &LoadError{Screen: h.screen, Err: err}
	internal.GetInternalLogger().Error("Screen load failed", "screen", h.screen.String(), "error", err)
	h.resolve(Module{}, loadErr)
}
