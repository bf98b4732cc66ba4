// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect

import (
	"sync"
	"sync/atomic"
)

// FiberContext is the state a running fiber carries alongside the node it
// is currently reducing: its identity, active Context, and interruption
// signal.
type FiberContext struct {
	id          FiberID
	ctx         Context
	interrupted atomic.Bool
	interruptCh chan struct{}
	closeOnce   sync.Once

	finalizersMu sync.Mutex
	finalizers   []func()
}

func newFiberContext(ctx Context) *FiberContext {
	return &FiberContext{id: NewFiberID(), ctx: ctx, interruptCh: make(chan struct{})}
}

// ID returns the fiber's identity.
func (fc *FiberContext) ID() FiberID { return fc.id }

// Interrupt signals the fiber to stop at its next suspension point. Safe
// to call more than once and from any goroutine.
func (fc *FiberContext) Interrupt() {
	fc.interrupted.Store(true)
	fc.closeOnce.Do(func() { close(fc.interruptCh) })
}

func (fc *FiberContext) isInterrupted() bool { return fc.interrupted.Load() }

// OnExit registers cleanup to run exactly once when the fiber reaches a
// terminal Exit, in LIFO order, with any panic recovered and swallowed —
// the literal "finalizer list (LIFO)" for host resources opened outside
// the effect system (a Sync thunk's file descriptor, say). Effect-level
// cleanup that must observe the Cause belongs in Ensuring/Bracket instead;
// this is a lower-level, non-Effect escape hatch.
func (fc *FiberContext) OnExit(cleanup func()) {
	fc.finalizersMu.Lock()
	defer fc.finalizersMu.Unlock()
	fc.finalizers = append(fc.finalizers, cleanup)
}

func (fc *FiberContext) runFinalizers(log *fiberLogger) {
	fc.finalizersMu.Lock()
	fs := fc.finalizers
	fc.finalizers = nil
	fc.finalizersMu.Unlock()

	for i := len(fs) - 1; i >= 0; i-- {
		runFinalizerSafely(fs[i], log)
	}
}

func runFinalizerSafely(cleanup func(), log *fiberLogger) {
	defer func() {
		if r := recover(); r != nil {
			log.Warnw("keffect: finalizer panicked, recovered", "panic", r)
		}
	}()
	cleanup()
}

// Deferred is a single-assignment, awaitable cell holding the eventual
// Exit of a forked fiber. Callbacks registered before completion fire in
// registration order when the fiber completes; callbacks registered after
// completion fire immediately.
type Deferred[E, A any] struct {
	mu        sync.Mutex
	done      bool
	exit      Exit[E, A]
	callbacks []func(Exit[E, A])
}

// NewDeferred returns an empty, unresolved Deferred.
func NewDeferred[E, A any]() *Deferred[E, A] {
	return &Deferred[E, A]{}
}

// OnComplete registers f to run with the eventual Exit.
func (d *Deferred[E, A]) OnComplete(f func(Exit[E, A])) {
	d.mu.Lock()
	if d.done {
		exit := d.exit
		d.mu.Unlock()
		f(exit)
		return
	}
	d.callbacks = append(d.callbacks, f)
	d.mu.Unlock()
}

// Await blocks the calling goroutine until the Deferred resolves.
func (d *Deferred[E, A]) Await() Exit[E, A] {
	result := make(chan Exit[E, A], 1)
	d.OnComplete(func(e Exit[E, A]) { result <- e })
	return <-result
}

func (d *Deferred[E, A]) complete(exit Exit[E, A]) {
	d.mu.Lock()
	if d.done {
		d.mu.Unlock()
		return
	}
	d.done = true
	d.exit = exit
	callbacks := d.callbacks
	d.callbacks = nil
	d.mu.Unlock()

	for _, cb := range callbacks {
		cb(exit)
	}
}

// Fiber is a handle onto a running or completed fiber, forked from
// RunCallback/RunDeferred.
type Fiber[E, A any] struct {
	ctx      *FiberContext
	deferred *Deferred[E, A]
}

// ID returns the fiber's identity.
func (f *Fiber[E, A]) ID() FiberID { return f.ctx.ID() }

// Interrupt signals the fiber to stop cooperatively.
func (f *Fiber[E, A]) Interrupt() { f.ctx.Interrupt() }

// Await blocks until the fiber completes and returns its Exit.
func (f *Fiber[E, A]) Await() Exit[E, A] { return f.deferred.Await() }

// OnComplete registers a callback with the fiber's eventual Exit. A
// callback registered after the fiber has already completed fires
// immediately with the resolved Exit, see Deferred.OnComplete.
func (f *Fiber[E, A]) OnComplete(cb func(Exit[E, A])) { f.deferred.OnComplete(cb) }

// OnExit registers a host-resource cleanup on the fiber, see
// FiberContext.OnExit.
func (f *Fiber[E, A]) OnExit(cleanup func()) { f.ctx.OnExit(cleanup) }
