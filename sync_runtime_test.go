// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect_test

import (
	"testing"

	"code.hybscloud.com/keffect"
)

// TestDeepFlatMapChainDoesNotOverflow exercises the explicit frame-stack
// trampoline against a FlatMap chain deep enough to blow a naive recursive
// evaluator's host stack.
func TestDeepFlatMapChainDoesNotOverflow(t *testing.T) {
	const depth = 50_000
	e := keffect.Succeed[string, int](0)
	for i := 0; i < depth; i++ {
		e = keffect.FlatMap(e, func(a int) keffect.Effect[string, int] {
			return keffect.Succeed[string, int](a + 1)
		})
	}
	got := keffect.RunSync(e, keffect.EmptyContext())
	if got != depth {
		t.Fatalf("got %d, want %d", got, depth)
	}
}

func TestMaxIterationsBoundsRunawaySuspend(t *testing.T) {
	prev := keffect.MaxIterations
	keffect.MaxIterations = 10
	defer func() { keffect.MaxIterations = prev }()

	var loop func() keffect.Effect[string, int]
	loop = func() keffect.Effect[string, int] {
		return keffect.Suspend(loop)
	}
	exit := keffect.RunSyncExit(loop(), keffect.EmptyContext())
	if exit.IsSuccess() {
		t.Fatalf("an infinite Suspend chain must not succeed")
	}
	if len(exit.Cause().Defects()) != 1 {
		t.Fatalf("expected a Defect once MaxIterations was exceeded")
	}
}

func TestAsyncFailsFatallyUnderSyncInterpreter(t *testing.T) {
	e := keffect.Async[string, int](func(resolve func(keffect.Exit[string, int])) {
		resolve(keffect.Success[string, int](1))
	})
	exit := keffect.RunSyncExit(e, keffect.EmptyContext())
	if exit.IsSuccess() {
		t.Fatalf("Async must be fatal under the synchronous interpreter")
	}
	if len(exit.Cause().Defects()) != 1 {
		t.Fatalf("expected a Defect, got %v", exit.Cause())
	}
}

func TestProvideSnapshotsContextPerFrame(t *testing.T) {
	tag := keffect.NewTag[int]("v")
	base := keffect.WithService(keffect.EmptyContext(), tag, 1)

	inner := keffect.GetService[string](tag)
	provided := keffect.Provide(inner, keffect.WithService(keffect.EmptyContext(), tag, 2))
	chained := keffect.FlatMap(provided, func(a int) keffect.Effect[string, int] {
		return keffect.GetService[string](tag)
	})

	got := keffect.RunSync(chained, base)
	if got != 1 {
		t.Fatalf("got %d, want 1 (continuation must see the Context active when it was pushed, not the inner Provide's)", got)
	}
}
