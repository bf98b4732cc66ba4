// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect

// Bracket acquires a resource, runs use with it, and always runs release
// afterward — on success, failure, or interruption — built from Ensuring,
// which is itself built from Fold, so no special-cased runtime support is
// needed for interruption safety.
func Bracket[E, R, A any](acquire Effect[E, R], use func(R) Effect[E, A], release func(R) Effect[E, struct{}]) Effect[E, A] {
	return FlatMap(acquire, func(r R) Effect[E, A] {
		return Ensuring(use(r), release(r))
	})
}

// Bracket2 acquires two resources in order and releases them in LIFO
// order (second acquired, first released) regardless of how use
// terminates.
func Bracket2[E, R1, R2, A any](
	acquire1 Effect[E, R1],
	acquire2 func(R1) Effect[E, R2],
	use func(R1, R2) Effect[E, A],
	release1 func(R1) Effect[E, struct{}],
	release2 func(R1, R2) Effect[E, struct{}],
) Effect[E, A] {
	return Bracket(acquire1, func(r1 R1) Effect[E, A] {
		return Bracket(acquire2(r1),
			func(r2 R2) Effect[E, A] { return use(r1, r2) },
			func(r2 R2) Effect[E, struct{}] { return release2(r1, r2) },
		)
	}, release1)
}
