// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect

// exitErased is the erased internal representation shared by both
// interpreters and the Exit[E, A] typed wrapper.
type exitErased struct {
	ok    bool
	value any
	cause *causeNode
}

// Exit is the terminal result of running an Effect: either a success
// value or a failure Cause.
type Exit[E, A any] struct {
	erased exitErased
}

// Success builds a successful Exit.
func Success[E, A any](value A) Exit[E, A] {
	return Exit[E, A]{erased: exitErased{ok: true, value: value}}
}

// Failure builds a failed Exit from a Cause.
func Failure[E, A any](cause Cause[E]) Exit[E, A] {
	return Exit[E, A]{erased: exitErased{ok: false, cause: cause.node}}
}

// IsSuccess reports whether e completed successfully.
func (e Exit[E, A]) IsSuccess() bool { return e.erased.ok }

// Value returns the success value. Only meaningful when IsSuccess is true.
func (e Exit[E, A]) Value() A {
	if e.erased.value == nil {
		var zero A
		return zero
	}
	return e.erased.value.(A)
}

// Cause returns the failure Cause. Only meaningful when IsSuccess is false.
func (e Exit[E, A]) Cause() Cause[E] { return Cause[E]{node: e.erased.cause} }

// Match dispatches to onSuccess or onFailure and returns its result.
func Match[E, A, B any](e Exit[E, A], onSuccess func(A) B, onFailure func(Cause[E]) B) B {
	if e.erased.ok {
		return onSuccess(e.Value())
	}
	return onFailure(e.Cause())
}

// MapExit transforms a successful Exit's value, leaving a failure as is.
func MapExit[E, A, B any](e Exit[E, A], f func(A) B) Exit[E, B] {
	if e.erased.ok {
		return Success[E, B](f(e.Value()))
	}
	return Exit[E, B]{erased: exitErased{ok: false, cause: e.erased.cause}}
}

// FlatMapExit sequences a successful Exit into another Exit, leaving a
// failure as is.
func FlatMapExit[E, A, B any](e Exit[E, A], f func(A) Exit[E, B]) Exit[E, B] {
	if e.erased.ok {
		return f(e.Value())
	}
	return Exit[E, B]{erased: exitErased{ok: false, cause: e.erased.cause}}
}

// MapErrorExit rewrites every Fail leaf of a failed Exit's Cause.
func MapErrorExit[E, E2, A any](e Exit[E, A], f func(E) E2) Exit[E2, A] {
	if e.erased.ok {
		return Exit[E2, A]{erased: exitErased{ok: true, value: e.erased.value}}
	}
	return Exit[E2, A]{erased: exitErased{ok: false, cause: MapCause(e.Cause(), f).node}}
}

// GetOrThrow returns the success value, or panics with the squashed Cause
// turned into an error. This is the "throws" rendering from the external
// interface; RunSyncExit/RunSync's Exit-returning counterparts are total.
func GetOrThrow[E, A any](e Exit[E, A]) A {
	if e.erased.ok {
		return e.Value()
	}
	panic(e.Cause().Squash())
}
