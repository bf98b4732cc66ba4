// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect

// Pipe1 applies a single transformation, useful for threading an Effect
// through a chain of combinators built elsewhere without nesting calls.
func Pipe1[A, B any](a A, f func(A) B) B {
	return f(a)
}

// Pipe2 threads a through f1 then f2.
func Pipe2[A, B, C any](a A, f1 func(A) B, f2 func(B) C) C {
	return f2(f1(a))
}

// Pipe3 threads a through f1, f2, then f3.
func Pipe3[A, B, C, D any](a A, f1 func(A) B, f2 func(B) C, f3 func(C) D) D {
	return f3(f2(f1(a)))
}

// Pipe4 threads a through f1, f2, f3, then f4.
func Pipe4[A, B, C, D, F any](a A, f1 func(A) B, f2 func(B) C, f3 func(C) D, f4 func(D) F) F {
	return f4(f3(f2(f1(a))))
}
