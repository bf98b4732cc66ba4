// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect

// Effect is an immutable description of a computation that may read a
// Context, suspend, and either succeed with an A or fail with a Cause[E].
// Building an Effect never runs anything; RunSync, RunSyncExit, and the
// fiber runtime entry points do.
type Effect[E, A any] struct {
	node effectNode
}

// Succeed builds an effect that completes immediately with value.
func Succeed[E, A any](value A) Effect[E, A] {
	return Effect[E, A]{node: succeedNode{value: value}}
}

// Unit is Succeed of the empty struct, the idiomatic "no useful value."
func Unit[E any]() Effect[E, struct{}] {
	return Succeed[E, struct{}](struct{}{})
}

// Fail builds an effect that fails immediately with a typed error.
func Fail[E, A any](err E) Effect[E, A] {
	return Effect[E, A]{node: failNode{err: err}}
}

// FailCause builds an effect that fails with a pre-built Cause. An empty
// cause becomes a defect ("empty cause"); a cause containing a defect
// fails with that defect; a cause containing a failure fails with that
// failure; otherwise (interruption-only) it fails with a defect wrapping
// cause.Squash().
func FailCause[E, A any](cause Cause[E]) Effect[E, A] {
	return Effect[E, A]{node: deriveFailCauseNode(cause)}
}

func deriveFailCauseNode[E any](cause Cause[E]) effectNode {
	if cause.IsEmpty() {
		return defectNode{defect: errEmptyCause}
	}
	if defects := cause.Defects(); len(defects) > 0 {
		return defectNode{defect: defects[0]}
	}
	if fails := cause.Failures(); len(fails) > 0 {
		return failNode{err: fails[0]}
	}
	return defectNode{defect: cause.Squash()}
}

// Defect builds an effect that fails unrecoverably with an arbitrary
// value — a host exception or a programmer error, not a typed failure.
func Defect[E, A any](defect any) Effect[E, A] {
	return Effect[E, A]{node: defectNode{defect: defect}}
}

// Sync wraps a thunk that may panic. A panic becomes a Defect; Go has no
// exceptions, so panic/recover is the idiomatic analogue of "raised
// exception."
func Sync[E, A any](thunk func() A) Effect[E, A] {
	return Effect[E, A]{node: syncNode{thunk: func() any { return thunk() }}}
}

// TrySync wraps a thunk that may panic, recovering the panic as a typed
// Fail via catch. If catch is nil, the interpreter attempts to use the
// recovered value directly as E via a type assertion, falling back to
// Defect when the assertion does not hold — the closest Go rendering of
// "the raised value becomes the Fail payload" that cannot itself panic.
func TrySync[E, A any](thunk func() A, catch func(recovered any) E) Effect[E, A] {
	var erasedCatch func(any) (any, bool)
	if catch != nil {
		erasedCatch = func(r any) (any, bool) { return catch(r), true }
	} else {
		erasedCatch = func(r any) (any, bool) {
			if e, ok := r.(E); ok {
				return e, true
			}
			return r, false
		}
	}
	return Effect[E, A]{node: trySyncNode{
		thunk: func() any { return thunk() },
		catch: erasedCatch,
	}}
}

// Async builds a suspendable leaf. register is invoked once by the
// interpreter with a resolve callback; only the first call to resolve
// takes effect, matching the at-most-once invariant on the node.
func Async[E, A any](register func(resolve func(Exit[E, A]))) Effect[E, A] {
	return Effect[E, A]{node: asyncNode{
		register: func(resolve func(exitErased)) {
			register(func(exit Exit[E, A]) { resolve(exit.erased) })
		},
	}}
}

// Suspend defers building the effect tree until evaluation time.
func Suspend[E, A any](thunk func() Effect[E, A]) Effect[E, A] {
	return Effect[E, A]{node: suspendNode{thunk: func() effectNode { return thunk().node }}}
}

// Never builds an effect that never completes under the synchronous
// interpreter (a fatal Defect) and blocks until interrupted under the
// fiber interpreter.
func Never[E, A any]() Effect[E, A] {
	return Effect[E, A]{node: neverNode{}}
}

// Interrupt builds an effect that fails with an interruption Cause.
func Interrupt[E, A any]() Effect[E, A] {
	return Effect[E, A]{node: interruptNode{}}
}

// GetService builds an effect that reads the service bound under tag from
// the ambient Context, failing with a Defect if none is bound.
func GetService[E any, T any](tag Tag[T]) Effect[E, T] {
	return Effect[E, T]{node: accessNode{
		tagKey: tag.key,
		f:      func(v any) any { return v },
	}}
}

// Service is GetService keyed by T's reflected type rather than an
// explicit tag.
func Service[E, T any]() Effect[E, T] {
	return GetService[E, T](TypeTag[T]())
}
