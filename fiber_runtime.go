// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect

import "sync/atomic"

// Runtime is a reusable fiber-interpreter entry point pinned to a base
// Context and logger. Go forbids type parameters on methods, so the
// fiber runtime entry points below are free functions taking a *Runtime
// as their first argument rather than methods on Runtime, the same way
// RunSync/RunSyncExit for the synchronous interpreter are free functions
// over an explicit Context.
type Runtime struct {
	baseCtx Context
	log     *fiberLogger
}

// WithContext returns a Runtime whose fiber-level entry points run
// against ctx, logging through the package default logger.
func WithContext(ctx Context) *Runtime {
	return &Runtime{baseCtx: ctx, log: defaultFiberLogger()}
}

// WithLogger returns a copy of r logging through log instead of the
// package default.
func (r *Runtime) WithLogger(log *fiberLogger) *Runtime {
	return &Runtime{baseCtx: r.baseCtx, log: log}
}

var defaultRuntime = &Runtime{log: defaultFiberLogger()}

// atomicOnceFlag guards Async's resolve callback so only the first
// invocation takes effect, per the node's at-most-once invariant.
type atomicOnceFlag struct{ done atomic.Bool }

func (f *atomicOnceFlag) trySet() bool { return f.done.CompareAndSwap(false, true) }

// forkFiber starts node running on its own goroutine against a fresh
// FiberContext derived from rt, and returns that FiberContext alongside a
// Deferred that resolves with its Exit.
func forkFiber[E, A any](rt *Runtime, e Effect[E, A]) (*FiberContext, *Deferred[E, A]) {
	if rt == nil {
		rt = defaultRuntime
	}
	fc := newFiberContext(rt.baseCtx)
	deferred := NewDeferred[E, A]()
	go func() {
		erased := runFiberErased(fc, e.node, fc.ctx)
		fc.runFinalizers(rt.log)
		deferred.complete(Exit[E, A]{erased: erased})
	}()
	return fc, deferred
}

// RunFiberSync runs e on its own fiber against rt and blocks until it
// completes, panicking with the squashed Cause on failure.
func RunFiberSync[E, A any](rt *Runtime, e Effect[E, A]) A {
	return GetOrThrow(RunFiberSyncExit(rt, e))
}

// RunFiberSyncExit runs e on its own fiber against rt, blocks until it
// completes, and is total: it never panics for a user-visible failure.
func RunFiberSyncExit[E, A any](rt *Runtime, e Effect[E, A]) Exit[E, A] {
	_, deferred := forkFiber(rt, e)
	return deferred.Await()
}

// RunCallback forks e on its own fiber against rt, returning immediately
// with a Fiber handle; onExit, if non-nil, runs with the eventual Exit.
func RunCallback[E, A any](rt *Runtime, e Effect[E, A], onExit func(Exit[E, A])) *Fiber[E, A] {
	fc, deferred := forkFiber(rt, e)
	if onExit != nil {
		deferred.OnComplete(onExit)
	}
	return &Fiber[E, A]{ctx: fc, deferred: deferred}
}

// RunDeferred forks e on its own fiber against rt, returning immediately
// with a Fiber handle whose Await blocks for the eventual Exit.
func RunDeferred[E, A any](rt *Runtime, e Effect[E, A]) *Fiber[E, A] {
	return RunCallback(rt, e, nil)
}

// runFiberErased drives node to completion on the calling goroutine, the
// same iterative trampoline shape as runSyncErased, except Async suspends
// on a channel select instead of failing, Never blocks until interrupted,
// and every step checks the fiber's interruption flag first.
func runFiberErased(fc *FiberContext, node effectNode, ctx Context) exitErased {
	framesPtr := acquireFrameStack()
	defer releaseFrameStack(framesPtr)
	frames := *framesPtr
	defer func() { *framesPtr = frames }()
	current := node
	curCtx := ctx
	iterations := 0

	succeed := func(v any) (effectNode, Context, *exitErased) {
		r := popSuccess(v, &frames)
		if !r.hasNext {
			return nil, Context{}, &exitErased{ok: true, value: r.value}
		}
		return r.node, r.ctx, nil
	}
	fail := func(c *causeNode) (effectNode, Context, *exitErased) {
		r := popFailure(c, &frames)
		if !r.hasNext {
			return nil, Context{}, &exitErased{ok: false, cause: r.cause}
		}
		return r.node, r.ctx, nil
	}
	interrupted := func() exitErased {
		return exitErased{ok: false, cause: &causeNode{tag: causeInterrupt}}
	}

	for {
		iterations++
		if iterations > MaxIterations {
			return exitErased{ok: false, cause: &causeNode{tag: causeDefect, defect: errMaxIterations}}
		}
		if fc.isInterrupted() {
			return interrupted()
		}

		switch n := current.(type) {
		case succeedNode:
			next, nextCtx, done := succeed(n.value)
			if done != nil {
				return *done
			}
			current, curCtx = next, nextCtx

		case failNode:
			next, nextCtx, done := fail(&causeNode{tag: causeFail, err: n.err})
			if done != nil {
				return *done
			}
			current, curCtx = next, nextCtx

		case defectNode:
			next, nextCtx, done := fail(&causeNode{tag: causeDefect, defect: n.defect})
			if done != nil {
				return *done
			}
			current, curCtx = next, nextCtx

		case interruptNode:
			next, nextCtx, done := fail(&causeNode{tag: causeInterrupt})
			if done != nil {
				return *done
			}
			current, curCtx = next, nextCtx

		case causeLeafNode:
			next, nextCtx, done := fail(n.cause)
			if done != nil {
				return *done
			}
			current, curCtx = next, nextCtx

		case neverNode:
			<-fc.interruptCh
			return interrupted()

		case asyncNode:
			resultCh := make(chan exitErased, 1)
			var once atomicOnceFlag
			n.register(func(ex exitErased) {
				if once.trySet() {
					resultCh <- ex
				}
			})
			select {
			case ex := <-resultCh:
				if ex.ok {
					next, nextCtx, done := succeed(ex.value)
					if done != nil {
						return *done
					}
					current, curCtx = next, nextCtx
				} else {
					next, nextCtx, done := fail(ex.cause)
					if done != nil {
						return *done
					}
					current, curCtx = next, nextCtx
				}
			case <-fc.interruptCh:
				return interrupted()
			}

		case syncNode:
			v, c := invokeSyncThunk(n.thunk)
			if c != nil {
				next, nextCtx, done := fail(c)
				if done != nil {
					return *done
				}
				current, curCtx = next, nextCtx
				continue
			}
			next, nextCtx, done := succeed(v)
			if done != nil {
				return *done
			}
			current, curCtx = next, nextCtx

		case trySyncNode:
			v, c := invokeTrySyncThunk(n.thunk, n.catch)
			if c != nil {
				next, nextCtx, done := fail(c)
				if done != nil {
					return *done
				}
				current, curCtx = next, nextCtx
				continue
			}
			next, nextCtx, done := succeed(v)
			if done != nil {
				return *done
			}
			current, curCtx = next, nextCtx

		case suspendNode:
			current = n.thunk()

		case mapNode:
			frames = append(frames, stepFrame{kind: frameMap, mapFn: n.f, ctx: curCtx})
			current = n.child

		case flatMapNode:
			frames = append(frames, stepFrame{kind: frameFlatMap, flatMapFn: n.k, ctx: curCtx})
			current = n.child

		case foldNode:
			frames = append(frames, stepFrame{kind: frameFold, onSuccess: n.onSuccess, onFailure: n.onFailure, ctx: curCtx})
			current = n.child

		case accessNode:
			v, ok := curCtx.get(n.tagKey)
			if !ok {
				next, nextCtx, done := fail(&causeNode{tag: causeDefect, defect: errUnresolvedService})
				if done != nil {
					return *done
				}
				current, curCtx = next, nextCtx
				continue
			}
			next, nextCtx, done := succeed(n.f(v))
			if done != nil {
				return *done
			}
			current, curCtx = next, nextCtx

		case provideNode:
			curCtx = n.transform(curCtx)
			current = n.child

		default:
			return exitErased{ok: false, cause: &causeNode{tag: causeDefect, defect: errUnknownNode}}
		}
	}
}
