// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect

// Map transforms a successful value, leaving failure untouched.
func Map[E, A, B any](e Effect[E, A], f func(A) B) Effect[E, B] {
	return Effect[E, B]{node: mapNode{
		child: e.node,
		f:     func(v any) any { return f(v.(A)) },
	}}
}

// As replaces a successful value with a constant.
func As[E, A, B any](e Effect[E, A], value B) Effect[E, B] {
	return Map(e, func(A) B { return value })
}

// AsUnit discards a successful value.
func AsUnit[E, A any](e Effect[E, A]) Effect[E, struct{}] {
	return As[E, A, struct{}](e, struct{}{})
}

// FlatMap sequences e into a continuation producing the next effect.
func FlatMap[E, A, B any](e Effect[E, A], k func(A) Effect[E, B]) Effect[E, B] {
	return Effect[E, B]{node: flatMapNode{
		child: e.node,
		k:     func(v any) effectNode { return k(v.(A)).node },
	}}
}

// AndThen is an alias for FlatMap matching the common do-notation name.
func AndThen[E, A, B any](e Effect[E, A], k func(A) Effect[E, B]) Effect[E, B] {
	return FlatMap(e, k)
}

// Tap runs f for its side effect on success, passing the original value
// through unchanged.
func Tap[E, A any](e Effect[E, A], f func(A)) Effect[E, A] {
	return FlatMap(e, func(a A) Effect[E, A] {
		f(a)
		return Succeed[E, A](a)
	})
}

// TapEffect runs an effectful side computation on success, discarding its
// result and passing the original value through.
func TapEffect[E, A, B any](e Effect[E, A], k func(A) Effect[E, B]) Effect[E, A] {
	return FlatMap(e, func(a A) Effect[E, A] {
		return Map(k(a), func(B) A { return a })
	})
}

// Pair holds the result of Zip.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip runs e then other in sequence, pairing their results.
func Zip[E, A, B any](e Effect[E, A], other Effect[E, B]) Effect[E, Pair[A, B]] {
	return FlatMap(e, func(a A) Effect[E, Pair[A, B]] {
		return Map(other, func(b B) Pair[A, B] { return Pair[A, B]{First: a, Second: b} })
	})
}

// ZipWith runs e then other in sequence, combining their results with f.
func ZipWith[E, A, B, C any](e Effect[E, A], other Effect[E, B], f func(A, B) C) Effect[E, C] {
	return Map(Zip(e, other), func(p Pair[A, B]) C { return f(p.First, p.Second) })
}

// ZipLeft runs e then other in sequence, keeping e's result.
func ZipLeft[E, A, B any](e Effect[E, A], other Effect[E, B]) Effect[E, A] {
	return Map(Zip(e, other), func(p Pair[A, B]) A { return p.First })
}

// ZipRight runs e then other in sequence, keeping other's result.
func ZipRight[E, A, B any](e Effect[E, A], other Effect[E, B]) Effect[E, B] {
	return Map(Zip(e, other), func(p Pair[A, B]) B { return p.Second })
}

// Fold observes both outcomes of e: onSuccess runs on a successful value,
// onFailure on the full Cause (Fail, Defect, or Interrupt alike). Fold is
// the sole consumer of a Cause in the algebra; every other combinator that
// inspects failure is built from it.
func Fold[E, A, B any](e Effect[E, A], onSuccess func(A) Effect[E, B], onFailure func(Cause[E]) Effect[E, B]) Effect[E, B] {
	return Effect[E, B]{node: foldNode{
		child:     e.node,
		onSuccess: func(v any) effectNode { return onSuccess(v.(A)).node },
		onFailure: func(c *causeNode) effectNode { return onFailure(Cause[E]{node: c}).node },
	}}
}

// CatchAllCause recovers from any Cause.
func CatchAllCause[E, A any](e Effect[E, A], h func(Cause[E]) Effect[E, A]) Effect[E, A] {
	return Fold(e, Succeed[E, A], h)
}

// CatchAll recovers from the first Fail leaf of the Cause, if any;
// defects and interruptions propagate unchanged.
func CatchAll[E, A any](e Effect[E, A], h func(E) Effect[E, A]) Effect[E, A] {
	return CatchAllCause(e, func(c Cause[E]) Effect[E, A] {
		if fails := c.Failures(); len(fails) > 0 {
			return h(fails[0])
		}
		return Effect[E, A]{node: causeLeafNode{cause: c.node}}
	})
}

// CatchTag recovers only when the first Fail leaf's dynamic type matches
// T; everything else propagates unchanged.
func CatchTag[E, A, T any](e Effect[E, A], h func(T) Effect[E, A]) Effect[E, A] {
	return CatchAll(e, func(err E) Effect[E, A] {
		if v, ok := any(err).(T); ok {
			return h(v)
		}
		return Fail[E, A](err)
	})
}

// MapError rewrites every Fail leaf of e's Cause with f.
func MapError[E, E2, A any](e Effect[E, A], f func(E) E2) Effect[E2, A] {
	return Effect[E2, A]{node: foldNode{
		child:     e.node,
		onSuccess: func(v any) effectNode { return succeedNode{value: v} },
		onFailure: func(c *causeNode) effectNode {
			return causeLeafNode{cause: MapCause(Cause[E]{node: c}, f).node}
		},
	}}
}

// OrElse runs that when e fails for any reason.
func OrElse[E, A any](e Effect[E, A], that Effect[E, A]) Effect[E, A] {
	return CatchAllCause(e, func(Cause[E]) Effect[E, A] { return that })
}

// OrElseSucceed recovers from any failure with a constant value.
func OrElseSucceed[E, A any](e Effect[E, A], value A) Effect[E, A] {
	return OrElse(e, Succeed[E, A](value))
}

// OrDie promotes a typed Fail to a Defect — "this should never happen, and
// if it does it's a bug." A Defect or Interrupt already present in e's
// Cause passes through untouched; only the Fail leaf is observed.
func OrDie[E, A any](e Effect[E, A]) Effect[E, A] {
	return CatchAll(e, func(err E) Effect[E, A] {
		return Effect[E, A]{node: defectNode{defect: err}}
	})
}

// RefineOrDie keeps failures matching p as typed Fails and demotes every
// other failure to a Defect.
func RefineOrDie[E, A any](e Effect[E, A], p func(E) bool) Effect[E, A] {
	return CatchAll(e, func(err E) Effect[E, A] {
		if p(err) {
			return Fail[E, A](err)
		}
		return Effect[E, A]{node: defectNode{defect: err}}
	})
}

// Ensuring runs finalizer after e completes, on both success and failure,
// and preserves e's original Exit. Because Ensuring is built purely from
// Fold and FlatMap, it runs correctly under interruption with no special
// runtime support: a Fold frame observes the Interrupt cause like any
// other.
func Ensuring[E, A any](e Effect[E, A], finalizer Effect[E, struct{}]) Effect[E, A] {
	return Fold(e,
		func(a A) Effect[E, A] { return ZipLeft(Succeed[E, A](a), finalizer) },
		func(c Cause[E]) Effect[E, A] {
			return FlatMap(finalizer, func(struct{}) Effect[E, A] { return Effect[E, A]{node: causeLeafNode{cause: c.node}} })
		},
	)
}

// Provide runs e with ctx as the ambient Context, replacing whatever
// Context was active.
func Provide[E, A any](e Effect[E, A], ctx Context) Effect[E, A] {
	return Effect[E, A]{node: provideNode{
		child:     e.node,
		transform: func(Context) Context { return ctx },
	}}
}

// ProvideService runs e with svc additionally bound under tag, merged
// into whatever Context was active.
func ProvideService[E, A, T any](e Effect[E, A], tag Tag[T], svc T) Effect[E, A] {
	return Effect[E, A]{node: provideNode{
		child:     e.node,
		transform: func(c Context) Context { return WithService(c, tag, svc) },
	}}
}
