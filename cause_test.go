// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/keffect"
)

func TestEmptyCauseIsEmpty(t *testing.T) {
	c := keffect.EmptyCause[string]()
	if !c.IsEmpty() {
		t.Fatalf("EmptyCause should be empty")
	}
	if c.IsInterrupted() {
		t.Fatalf("EmptyCause should not be interrupted")
	}
}

func TestCauseThenIdentity(t *testing.T) {
	c := keffect.FailCauseOf("boom")
	if got := keffect.EmptyCause[string]().Then(c); got.Failures()[0] != "boom" {
		t.Fatalf("empty.Then(c) should equal c, got %v", got.Failures())
	}
	if got := c.Then(keffect.EmptyCause[string]()); got.Failures()[0] != "boom" {
		t.Fatalf("c.Then(empty) should equal c, got %v", got.Failures())
	}
}

func TestCauseBothFlattensParallel(t *testing.T) {
	left := keffect.FailCauseOf("a")
	right := keffect.FailCauseOf("b")
	both := left.Both(right)
	fails := both.Failures()
	if len(fails) != 2 || fails[0] != "a" || fails[1] != "b" {
		t.Fatalf("Both should flatten to [a b], got %v", fails)
	}
}

func TestCauseDefectsAndFailuresSeparate(t *testing.T) {
	c := keffect.FailCauseOf("typed").Then(keffect.DefectCauseOf(errors.New("boom")))
	if len(c.Failures()) != 1 || c.Failures()[0] != "typed" {
		t.Fatalf("expected one typed failure, got %v", c.Failures())
	}
	if len(c.Defects()) != 1 {
		t.Fatalf("expected one defect, got %v", c.Defects())
	}
}

func TestCauseIsInterrupted(t *testing.T) {
	c := keffect.FailCauseOf("x").Then(keffect.InterruptedCause[string]())
	if !c.IsInterrupted() {
		t.Fatalf("expected interruption leaf to be found")
	}
}

func TestCauseSquashPrefersDefectOverFailure(t *testing.T) {
	c := keffect.FailCauseOf("typed").Both(keffect.DefectCauseOf(errors.New("host exception")))
	err := c.Squash()
	if err == nil || err.Error() != "host exception" {
		t.Fatalf("Squash should prefer the defect, got %v", err)
	}
}

func TestCauseSquashFailureWhenNoDefect(t *testing.T) {
	c := keffect.FailCauseOf("typed only")
	err := c.Squash()
	if err == nil {
		t.Fatalf("Squash of a Fail-only cause should not be nil")
	}
}

func TestCauseSquashEmpty(t *testing.T) {
	err := keffect.EmptyCause[string]().Squash()
	if err == nil {
		t.Fatalf("Squash of an empty cause should still produce an error")
	}
}

func TestMapCauseRewritesOnlyFails(t *testing.T) {
	c := keffect.FailCauseOf(404).Then(keffect.DefectCauseOf("panic"))
	mapped := keffect.MapCause(c, func(code int) string {
		return "error " + string(rune('0'+code%10))
	})
	if len(mapped.Failures()) != 1 {
		t.Fatalf("expected exactly one mapped failure")
	}
	if len(mapped.Defects()) != 1 {
		t.Fatalf("defect leaf should survive MapCause untouched")
	}
}
