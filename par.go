// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// ParAll runs every effect concurrently, each on its own fiber, and
// succeeds with every result in input order. Unlike All/Seq, a failing
// child does not short-circuit the others: every child runs to
// completion and every failure is composed into a single Parallel Cause
// — this is the supplemental extension that actually produces the
// semiring's Parallel constructor, which the rest of the runtime only
// ever constructs by explicit user request.
func ParAll[E, A any](rt *Runtime, effects []Effect[E, A]) Effect[E, []A] {
	return ParTraverse(rt, effects, func(e Effect[E, A]) Effect[E, A] { return e })
}

// ParTraverse maps f over items and runs every resulting effect
// concurrently, each on its own forked fiber via golang.org/x/sync/errgroup,
// and composes a Parallel Cause from every failure rather than failing
// fast. Built with Suspend rather than Sync so the composed Cause is the
// effect's own failure instead of an opaque Defect.
func ParTraverse[E, T, A any](rt *Runtime, items []T, f func(T) Effect[E, A]) Effect[E, []A] {
	return Suspend(func() Effect[E, []A] {
		results := make([]A, len(items))
		causes := make([]Cause[E], len(items))

		var g errgroup.Group
		var mu sync.Mutex
		for i, item := range items {
			i, item := i, item
			g.Go(func() error {
				exit := RunFiberSyncExit(rt, f(item))
				mu.Lock()
				defer mu.Unlock()
				if exit.IsSuccess() {
					results[i] = exit.Value()
				} else {
					causes[i] = exit.Cause()
				}
				return nil
			})
		}
		_ = g.Wait()

		combined := EmptyCause[E]()
		anyFailed := false
		for _, c := range causes {
			if c.IsEmpty() {
				continue
			}
			anyFailed = true
			combined = combined.Both(c)
		}
		if anyFailed {
			return Effect[E, []A]{node: causeLeafNode{cause: combined.node}}
		}
		return Succeed[E, []A](results)
	})
}
