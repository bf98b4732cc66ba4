// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect

// MaxIterations bounds a single RunSync/RunSyncExit trampoline: exceeding
// it fails with a Defect rather than growing the host stack or spinning
// forever on a runaway Suspend/FlatMap cycle. It is a package-level var,
// not a hidden constant, so callers can raise or lower the defence for a
// particular workload.
var MaxIterations = 100_000

// frameKind discriminates the three trampoline frame shapes spec.md §4.2
// names: map, flatMap, and fold.
type frameKind int

const (
	frameMap frameKind = iota
	frameFlatMap
	frameFold
)

// stepFrame is one entry of the explicit continuation stack. ctx is the
// Context snapshot active when the frame was pushed, so a Provide inside
// a continuation never leaks past a frame captured before it ran.
type stepFrame struct {
	kind      frameKind
	mapFn     func(any) any
	flatMapFn func(any) effectNode
	onSuccess func(any) effectNode
	onFailure func(*causeNode) effectNode
	ctx       Context
}

// popOutcome is what popping the frame stack against a value or a Cause
// yields: either a new node/Context to keep reducing, or a terminal
// result (hasNext == false).
type popOutcome struct {
	hasNext bool
	node    effectNode
	ctx     Context
	value   any
	cause   *causeNode
}

// popSuccess pops frames against a successful value, applying any Map
// frames in place and stopping at the first FlatMap/Fold(onSuccess).
func popSuccess(value any, frames *[]stepFrame) popOutcome {
	for len(*frames) > 0 {
		n := len(*frames) - 1
		f := (*frames)[n]
		*frames = (*frames)[:n]
		switch f.kind {
		case frameMap:
			value = f.mapFn(value)
		case frameFlatMap:
			return popOutcome{hasNext: true, node: f.flatMapFn(value), ctx: f.ctx}
		case frameFold:
			return popOutcome{hasNext: true, node: f.onSuccess(value), ctx: f.ctx}
		}
	}
	return popOutcome{hasNext: false, value: value}
}

// popFailure pops frames against a Cause. Map and FlatMap frames only
// apply on success, so they are discarded unexamined; only a Fold frame's
// onFailure observes the Cause.
func popFailure(cause *causeNode, frames *[]stepFrame) popOutcome {
	for len(*frames) > 0 {
		n := len(*frames) - 1
		f := (*frames)[n]
		*frames = (*frames)[:n]
		if f.kind == frameFold {
			return popOutcome{hasNext: true, node: f.onFailure(cause), ctx: f.ctx}
		}
	}
	return popOutcome{hasNext: false, cause: cause}
}

func invokeSyncThunk(thunk func() any) (value any, cause *causeNode) {
	defer func() {
		if r := recover(); r != nil {
			cause = &causeNode{tag: causeDefect, defect: r}
		}
	}()
	return thunk(), nil
}

func invokeTrySyncThunk(thunk func() any, catch func(any) (any, bool)) (value any, cause *causeNode) {
	defer func() {
		if r := recover(); r != nil {
			errVal, isFail := catch(r)
			if isFail {
				cause = &causeNode{tag: causeFail, err: errVal}
			} else {
				cause = &causeNode{tag: causeDefect, defect: errVal}
			}
		}
	}()
	return thunk(), nil
}

// runSyncErased is the trampoline shared by RunSync and RunSyncExit:
// current node, current Context, and a slice-backed LIFO frame stack,
// walked iteratively so deeply nested FlatMap chains never grow the host
// stack.
func runSyncErased(node effectNode, ctx Context) exitErased {
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

	for {
		iterations++
		if iterations > MaxIterations {
			return exitErased{ok: false, cause: &causeNode{tag: causeDefect, defect: errMaxIterations}}
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
			return exitErased{ok: false, cause: &causeNode{tag: causeDefect, defect: errNeverUnderSync}}

		case asyncNode:
			return exitErased{ok: false, cause: &causeNode{tag: causeDefect, defect: errAsyncUnderSync}}

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

// RunSync runs e to completion against ctx, panicking with the squashed
// Cause on failure.
func RunSync[E, A any](e Effect[E, A], ctx Context) A {
	return GetOrThrow(RunSyncExit(e, ctx))
}

// RunSyncExit runs e to completion against ctx and is total: it never
// panics for a user-visible failure, returning it as a failed Exit
// instead.
func RunSyncExit[E, A any](e Effect[E, A], ctx Context) Exit[E, A] {
	return Exit[E, A]{erased: runSyncErased(e.node, ctx)}
}
