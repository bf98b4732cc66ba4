// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect_test

import (
	"testing"

	"code.hybscloud.com/keffect"
)

func TestParAllSucceedsWithResultsInInputOrder(t *testing.T) {
	rt := keffect.WithContext(keffect.EmptyContext())
	effects := []keffect.Effect[string, int]{
		keffect.Succeed[string, int](1),
		keffect.Succeed[string, int](2),
		keffect.Succeed[string, int](3),
	}
	got := keffect.RunSync(keffect.ParAll(rt, effects), keffect.EmptyContext())
	want := []int{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestParTraverseRunsEveryItemEvenAfterAFailure(t *testing.T) {
	rt := keffect.WithContext(keffect.EmptyContext())
	ran := make([]bool, 5)
	effects := make([]int, 5)
	for i := range effects {
		effects[i] = i
	}
	e := keffect.ParTraverse(rt, effects, func(i int) keffect.Effect[string, int] {
		return keffect.Sync[string](func() int {
			ran[i] = true
			if i == 2 {
				panic("child failed")
			}
			return i
		})
	})
	keffect.RunSyncExit(e, keffect.EmptyContext())
	for i, r := range ran {
		if !r {
			t.Fatalf("item %d never ran; ParTraverse must not fail fast", i)
		}
	}
}

func TestParTraverseComposesParallelCauseFromEveryFailure(t *testing.T) {
	rt := keffect.WithContext(keffect.EmptyContext())
	e := keffect.ParTraverse(rt, []int{1, 2}, func(i int) keffect.Effect[string, int] {
		return keffect.Fail[string, int]("boom")
	})
	exit := keffect.RunSyncExit(e, keffect.EmptyContext())
	if exit.IsSuccess() {
		t.Fatalf("expected ParTraverse to fail when every child fails")
	}
	if fails := exit.Cause().Failures(); len(fails) != 2 {
		t.Fatalf("expected both failures composed into one Cause, got %v", fails)
	}
}
