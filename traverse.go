// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect

// All sequences a slice of effects into an effect of a slice, fail-fast
// and sequential: the first failing element short-circuits the rest.
func All[E, A any](effects []Effect[E, A]) Effect[E, []A] {
	return Traverse(effects, func(e Effect[E, A]) Effect[E, A] { return e })
}

// Seq is All under another name, matching the common "run these in
// sequence" call-site phrasing.
func Seq[E, A any](effects []Effect[E, A]) Effect[E, []A] {
	return All(effects)
}

// Traverse maps f over items and sequences the results, fail-fast.
func Traverse[E, T, A any](items []T, f func(T) Effect[E, A]) Effect[E, []A] {
	acc := Succeed[E, []A](make([]A, 0, len(items)))
	for _, item := range items {
		it := item
		acc = FlatMap(acc, func(results []A) Effect[E, []A] {
			return Map(f(it), func(a A) []A { return append(results, a) })
		})
	}
	return acc
}

// FirstSuccess runs effects in order, returning the first success; if
// every effect fails, the final effect's failure propagates. Calling it
// with an empty slice is a programmer error and fails with a Defect.
func FirstSuccess[E, A any](effects []Effect[E, A]) Effect[E, A] {
	if len(effects) == 0 {
		return Effect[E, A]{node: defectNode{defect: errEmptyFirstSuccess}}
	}
	result := effects[0]
	for _, e := range effects[1:] {
		next := e
		result = OrElse(result, next)
	}
	return result
}

// Tuple2 runs two effects in sequence and pairs their results.
func Tuple2[E, A, B any](a Effect[E, A], b Effect[E, B]) Effect[E, Pair[A, B]] {
	return Zip(a, b)
}

// Triple holds the result of Tuple3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Tuple3 runs three effects in sequence and groups their results.
func Tuple3[E, A, B, C any](a Effect[E, A], b Effect[E, B], c Effect[E, C]) Effect[E, Triple[A, B, C]] {
	return FlatMap(a, func(av A) Effect[E, Triple[A, B, C]] {
		return FlatMap(b, func(bv B) Effect[E, Triple[A, B, C]] {
			return Map(c, func(cv C) Triple[A, B, C] { return Triple[A, B, C]{First: av, Second: bv, Third: cv} })
		})
	})
}
