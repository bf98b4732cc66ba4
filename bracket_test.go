// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect_test

import (
	"testing"

	"code.hybscloud.com/keffect"
)

func TestBracketReleasesOnSuccess(t *testing.T) {
	released := false
	e := keffect.Bracket[string](
		keffect.Succeed[string, string]("resource"),
		func(r string) keffect.Effect[string, int] { return keffect.Succeed[string, int](len(r)) },
		func(r string) keffect.Effect[string, struct{}] {
			released = true
			return keffect.Unit[string]()
		},
	)
	got := keffect.RunSync(e, keffect.EmptyContext())
	if got != 8 || !released {
		t.Fatalf("got (%d, %v), want (8, true)", got, released)
	}
}

func TestBracketReleasesOnFailure(t *testing.T) {
	released := false
	e := keffect.Bracket[string](
		keffect.Succeed[string, string]("resource"),
		func(r string) keffect.Effect[string, int] { return keffect.Fail[string, int]("use failed") },
		func(r string) keffect.Effect[string, struct{}] {
			released = true
			return keffect.Unit[string]()
		},
	)
	exit := keffect.RunSyncExit(e, keffect.EmptyContext())
	if exit.IsSuccess() || !released {
		t.Fatalf("release must run even when use fails, released=%v", released)
	}
}

func TestBracket2ReleasesInLIFOOrder(t *testing.T) {
	var order []string
	e := keffect.Bracket2[string, string, string, int](
		keffect.Succeed[string, string]("first"),
		func(r1 string) keffect.Effect[string, string] { return keffect.Succeed[string, string]("second") },
		func(r1, r2 string) keffect.Effect[string, int] { return keffect.Succeed[string, int](len(r1) + len(r2)) },
		func(r1 string) keffect.Effect[string, struct{}] {
			order = append(order, "release "+r1)
			return keffect.Unit[string]()
		},
		func(r1, r2 string) keffect.Effect[string, struct{}] {
			order = append(order, "release "+r2)
			return keffect.Unit[string]()
		},
	)
	keffect.RunSync(e, keffect.EmptyContext())
	if len(order) != 2 || order[0] != "release second" || order[1] != "release first" {
		t.Fatalf("expected LIFO release order, got %v", order)
	}
}
