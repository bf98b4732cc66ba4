// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package keffect provides an algebraic effects runtime: Effect[E, A] values
// describe computations that may read a Context, suspend, and either succeed
// with an A or fail with a Cause[E], without running anything until they are
// interpreted.
//
// # Design Philosophy
//
// keffect provides:
//   - A closed effect-node algebra: every Effect is one of a fixed set of
//     node kinds (succeed, fail, defect, sync, async, map, flatMap, fold,
//     access, provide, ...), type-erased internally and recovered via type
//     assertion only at the typed wrapper's own constructors.
//   - Two interpreters over the same node algebra: a synchronous trampoline
//     ([RunSync], [RunSyncExit]) for effects with no suspension points, and a
//     cooperative fiber interpreter ([RunFiberSync], [RunFiberSyncExit],
//     [RunCallback], [RunDeferred]) that runs each Effect on its own
//     goroutine and supports [Async], [Never], and interruption.
//   - A Cause semiring distinguishing typed failures, defects (host
//     exceptions / programmer errors), and interruptions, composable in
//     sequence ([Cause.Then]) or in parallel ([Cause.Both]).
//
// # Core Algebra
//
//   - [Succeed], [Fail], [FailCause], [Defect]: leaf constructors
//   - [Sync], [TrySync]: wrap a possibly-panicking thunk
//   - [Async]: a suspendable leaf resolved exactly once by a register callback
//   - [Suspend]: defer building the effect tree until evaluation time
//   - [Never], [Interrupt]: the two never-succeeds leaves
//   - [Map], [FlatMap], [Fold]: the functor/monad/catamorphism trio
//
// # Cause and Exit
//
// [Cause] is an immutable semiring tree of Fail/Defect/Interrupt leaves,
// composed with [Cause.Then] (sequential) and [Cause.Both] (parallel).
// [Exit] is the typed result of running an Effect to completion: either a
// success value or a Cause.
//
//   - [Cause.Failures], [Cause.Defects], [Cause.IsInterrupted]: flatten a
//     Cause into its leaves
//   - [Cause.Squash]: collapse to a single error, preferring defects over
//     failures over bare interruptions
//   - [Exit.Match], [MapExit], [FlatMapExit], [MapErrorExit], [GetOrThrow]
//
// # Dependency Injection
//
// [Context] is an immutable, copy-on-write environment keyed by [Tag]
// values. [GetService] and [Service] read from it as an Effect; [Provide]
// and [ProvideService] install values for the duration of a sub-effect.
//
// # Fibers
//
// A [Fiber] is a logical thread of execution: one goroutine per fiber,
// identified by a monotonic [FiberID]. [RunCallback] and [RunDeferred] fork
// a fiber and return a handle; [Fiber.Interrupt] requests cooperative
// cancellation, observed at the next reduction step and at [Async]/[Never]
// suspension points. [Fiber.OnExit] registers LIFO finalizers run once the
// fiber's Effect reaches an Exit.
//
// # Combinators
//
// Retry and repetition:
//
//   - [Retry], [RetryN]: retry a failing Effect with a [RetryPolicy]'s delay
//     schedule
//   - [RetryUntil]: re-run a successful Effect until a predicate accepts
//     its value
//   - [RepeatN], [Forever]: repeat a successful Effect
//
// Timing:
//
//   - [Delay], [Sleep]: suspend for a duration
//   - [Timed]: measure an Effect's wall-clock duration
//   - [Timeout]: race an Effect against a deadline
//
// Resource safety:
//
//   - [Bracket], [Bracket2]: acquire/use/release with guaranteed release
//   - [Ensuring]: run a finalizer regardless of how an Effect completes
//
// Traversal:
//
//   - [All], [Seq], [Traverse]: sequential, fail-fast traversal
//   - [FirstSuccess]: try a slice of Effects in order until one succeeds
//   - [ParAll], [ParTraverse]: concurrent traversal producing a Parallel
//     Cause from every failure instead of failing fast
//
// Generators:
//
//   - [Gen], [Yield]: write an Effect body as ordinary sequential Go code
//     that yields child Effects one at a time
//
// # Example
//
//	type NotFound struct{ ID string }
//
//	lookup := keffect.FlatMap(
//		keffect.Service[NotFound, *Store](),
//		func(s *Store) keffect.Effect[NotFound, string] {
//			return keffect.Sync[NotFound](func() string { return s.Get("k") })
//		},
//	)
//	value := keffect.RunSync(keffect.Provide(lookup, ctx), keffect.EmptyContext())
package keffect
