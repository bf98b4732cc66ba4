// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect

import "time"

// TimeoutError is a ready-made timeout payload carrying the deadline in
// milliseconds. Timeout fails with whatever its onTimeout returns; a
// caller whose E is TimeoutError can pass
// func(ms int64) TimeoutError { return TimeoutError{Millis: ms} }.
type TimeoutError struct {
	Millis int64
}

func (e TimeoutError) Error() string {
	return "keffect: timed out after configured deadline"
}

// Delay builds an effect that succeeds with value after a real-time
// delay.
func Delay[E, A any](d time.Duration, value A) Effect[E, A] {
	return Async[E, A](func(resolve func(Exit[E, A])) {
		time.AfterFunc(d, func() { resolve(Success[E, A](value)) })
	})
}

// Sleep is Delay specialised to no useful return value.
func Sleep[E any](d time.Duration) Effect[E, struct{}] {
	return Delay[E, struct{}](d, struct{}{})
}

// TimedResult pairs an effect's success value with its measured wall-clock
// duration.
type TimedResult[A any] struct {
	Value    A
	Duration time.Duration
}

// Timed measures how long e takes to complete, keeping its original
// Cause on failure.
func Timed[E, A any](e Effect[E, A]) Effect[E, TimedResult[A]] {
	return Suspend(func() Effect[E, TimedResult[A]] {
		start := time.Now()
		return Fold(e,
			func(a A) Effect[E, TimedResult[A]] {
				return Succeed[E, TimedResult[A]](TimedResult[A]{Value: a, Duration: time.Since(start)})
			},
			func(c Cause[E]) Effect[E, TimedResult[A]] {
				return Effect[E, TimedResult[A]]{node: causeLeafNode{cause: c.node}}
			},
		)
	})
}

// Timeout runs e on a forked fiber of rt and races it against a timer of
// duration d. If e completes first, its own Exit (success or failure) is
// the result; if the timer fires first, Timeout fails with
// onTimeout(d.Milliseconds()) and interrupts the child fiber. onTimeout
// converts the deadline into E explicitly — E is caller-chosen and not
// necessarily TimeoutError itself, so this avoids an unsafe runtime type
// assertion from TimeoutError to E. The child observes that interruption
// only at its next reduction step or suspension point: a blocking Sync
// thunk inside e runs to its end even though Timeout has already failed.
func Timeout[E, A any](rt *Runtime, e Effect[E, A], d time.Duration, onTimeout func(millis int64) E) Effect[E, A] {
	return Async[E, A](func(resolve func(Exit[E, A])) {
		var once atomicOnceFlag
		fiber := RunCallback(rt, e, func(exit Exit[E, A]) {
			if once.trySet() {
				resolve(exit)
			}
		})
		time.AfterFunc(d, func() {
			if once.trySet() {
				fiber.Interrupt()
				resolve(Failure[E, A](FailCauseOf(onTimeout(d.Milliseconds()))))
			}
		})
	})
}

// RepeatN runs e n times in sequence (once when n <= 1), keeping only the
// final success value; the first failure short-circuits the remaining runs.
func RepeatN[E, A any](e Effect[E, A], n int) Effect[E, A] {
	if n <= 1 {
		return e
	}
	return FlatMap(e, func(A) Effect[E, A] { return RepeatN(e, n-1) })
}

// Forever repeats e until it fails; a successful run is immediately
// followed by another attempt.
func Forever[E, A any](e Effect[E, A]) Effect[E, A] {
	return FlatMap(e, func(A) Effect[E, A] { return Suspend(func() Effect[E, A] { return Forever(e) }) })
}
