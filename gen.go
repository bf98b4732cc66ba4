// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect

// Yield is the handle a Gen body uses to sequence effects. Go has no
// native two-way generator/coroutine primitive, so Do hands the child
// effect across an unbuffered channel pair to the driving interpreter,
// which runs it as an ordinary FlatMap continuation and sends the result
// back — the goroutine-plus-channel-pair rendering of "yield an effect,
// receive its success value back into the function."
type Yield[E any] struct {
	effects chan<- any // sends Effect[E, any] (erased) to the driver
	results <-chan genResult
}

type genResult struct {
	value any
}

// Do runs e as the next step of the sequence, returning its success
// value. If e fails, the driver's FlatMap never sends a result, so Do
// blocks forever on y.results: the body goroutine is abandoned, never
// resumed, matching the "sequential, short-circuits on first failure"
// contract — the failure itself propagates as the overall Gen effect's
// Cause without the body ever observing it.
func (y Yield[E]) Do(e Effect[E, any]) any {
	y.effects <- e.node
	r := <-y.results
	return r.value
}

// YieldDo is a free-function helper recovering static typing for Do's
// result, since Go methods cannot introduce their own type parameters.
func YieldDo[E, B any](y Yield[E], e Effect[E, B]) B {
	erased := Effect[E, any]{node: mapNode{
		child: e.node,
		f:     func(v any) any { return v },
	}}
	return y.Do(erased).(B)
}

// Gen runs body on its own goroutine, threading each effect it yields
// through the driving FlatMap chain below. The body's return value
// becomes the overall success value; the first failing yielded effect
// aborts the body and becomes the overall failure.
func Gen[E, A any](body func(y Yield[E]) A) Effect[E, A] {
	effectsCh := make(chan any)
	resultsCh := make(chan genResult)
	doneCh := make(chan genOutcome, 1)

	start := func() Effect[E, A] {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					doneCh <- genOutcome{cause: &causeNode{tag: causeDefect, defect: r}, aborted: true}
				}
			}()
			y := Yield[E]{effects: effectsCh, results: resultsCh}
			value := body(y)
			doneCh <- genOutcome{value: value}
		}()
		return driveGen[E, A](effectsCh, resultsCh, doneCh)
	}
	return Suspend(start)
}

type genOutcome struct {
	value   any
	cause   *causeNode
	aborted bool
}

// driveGen builds the Effect that alternates between waiting for the
// body's next yielded child effect and waiting for the body to finish.
func driveGen[E, A any](effectsCh chan any, resultsCh chan genResult, doneCh chan genOutcome) Effect[E, A] {
	return Suspend(func() Effect[E, A] {
		select {
		case outcome := <-doneCh:
			if outcome.aborted {
				return FailCause[E, A](Cause[E]{node: outcome.cause})
			}
			return Succeed[E, A](outcome.value.(A))
		case childNode := <-effectsCh:
			// On failure FlatMap never calls this continuation, so the
			// body goroutine stays parked on <-y.results; it is abandoned,
			// never resumed, exactly as the sequential/short-circuit
			// contract requires.
			child := Effect[E, any]{node: childNode.(effectNode)}
			return FlatMap(child, func(v any) Effect[E, A] {
				resultsCh <- genResult{value: v}
				return driveGen[E, A](effectsCh, resultsCh, doneCh)
			})
		}
	})
}
