// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect_test

import (
	"testing"
	"time"

	"code.hybscloud.com/keffect"
)

func TestDelaySucceedsAfterDuration(t *testing.T) {
	rt := keffect.WithContext(keffect.EmptyContext())
	got := keffect.RunFiberSync(rt, keffect.Delay[string](5*time.Millisecond, "done"))
	if got != "done" {
		t.Fatalf("got %q, want done", got)
	}
}

func TestTimedMeasuresElapsedDuration(t *testing.T) {
	rt := keffect.WithContext(keffect.EmptyContext())
	result := keffect.RunFiberSync(rt, keffect.Timed[string](keffect.Delay[string](10*time.Millisecond, 1)))
	if result.Value != 1 {
		t.Fatalf("got %d, want 1", result.Value)
	}
	if result.Duration < 10*time.Millisecond {
		t.Fatalf("measured duration %v should be at least the delay", result.Duration)
	}
}

func TestTimedSamplesStartAtRunTimeNotBuildTime(t *testing.T) {
	rt := keffect.WithContext(keffect.EmptyContext())
	timed := keffect.Timed[string](keffect.Succeed[string, int](1))
	time.Sleep(20 * time.Millisecond)
	result := keffect.RunFiberSync(rt, timed)
	if result.Duration >= 20*time.Millisecond {
		t.Fatalf("Timed's start should be sampled when it runs, not when it was built; got %v", result.Duration)
	}
}

type slowTimeout struct{ Millis int64 }

func (e slowTimeout) Error() string { return "timed out" }

func TestTimeoutFailsWhenChildIsTooSlow(t *testing.T) {
	rt := keffect.WithContext(keffect.EmptyContext())
	slow := keffect.Delay[slowTimeout](50*time.Millisecond, 1)
	e := keffect.Timeout(rt, slow, 5*time.Millisecond, func(ms int64) slowTimeout { return slowTimeout{Millis: ms} })
	exit := keffect.RunFiberSyncExit(rt, e)
	if exit.IsSuccess() {
		t.Fatalf("expected a timeout failure")
	}
	if fails := exit.Cause().Failures(); len(fails) != 1 {
		t.Fatalf("got %v", fails)
	}
}

func TestTimeoutSucceedsWhenChildIsFastEnough(t *testing.T) {
	rt := keffect.WithContext(keffect.EmptyContext())
	fast := keffect.Delay[slowTimeout](1*time.Millisecond, 42)
	e := keffect.Timeout(rt, fast, 50*time.Millisecond, func(ms int64) slowTimeout { return slowTimeout{Millis: ms} })
	got := keffect.RunFiberSync(rt, e)
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestRepeatNKeepsFinalValue(t *testing.T) {
	count := 0
	e := keffect.Sync[string](func() int { count++; return count })
	got := keffect.RunSync(keffect.RepeatN(e, 4), keffect.EmptyContext())
	if got != 4 || count != 4 {
		t.Fatalf("got value %d after %d runs, want 4/4", got, count)
	}
}

func TestForeverStopsOnFirstFailure(t *testing.T) {
	count := 0
	e := keffect.TrySync[string](func() int {
		count++
		if count >= 3 {
			panic("stop")
		}
		return count
	}, func(r any) string { return "stop" })
	exit := keffect.RunSyncExit(keffect.Forever(e), keffect.EmptyContext())
	if exit.IsSuccess() {
		t.Fatalf("Forever should stop once the underlying effect fails")
	}
	if count != 3 {
		t.Fatalf("got %d runs, want 3", count)
	}
}
