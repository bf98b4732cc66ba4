// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect_test

import (
	"math/rand/v2"
	"testing"

	"code.hybscloud.com/keffect"
)

const propertyN = 500

func randInt(rng *rand.Rand) int {
	return rng.IntN(2001) - 1000
}

// --- Group 1: Effect monad laws ---

// TestPropertyEffectLeftIdentity: FlatMap(Succeed(a), f) ≡ f(a)
func TestPropertyEffectLeftIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 0))
	for range propertyN {
		a := randInt(rng)
		f := func(x int) keffect.Effect[string, int] { return keffect.Succeed[string, int](x * 3) }
		left := keffect.RunSync(keffect.FlatMap(keffect.Succeed[string, int](a), f), keffect.EmptyContext())
		right := keffect.RunSync(f(a), keffect.EmptyContext())
		if left != right {
			t.Fatalf("left identity: %d != %d (a=%d)", left, right, a)
		}
	}
}

// TestPropertyEffectRightIdentity: FlatMap(m, Succeed) ≡ m
func TestPropertyEffectRightIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 0))
	for range propertyN {
		a := randInt(rng)
		m := keffect.Succeed[string, int](a)
		left := keffect.RunSync(keffect.FlatMap(m, keffect.Succeed[string, int]), keffect.EmptyContext())
		right := keffect.RunSync(m, keffect.EmptyContext())
		if left != right {
			t.Fatalf("right identity: %d != %d (a=%d)", left, right, a)
		}
	}
}

// TestPropertyEffectAssociativity: FlatMap(FlatMap(m, f), g) ≡ FlatMap(m, x => FlatMap(f(x), g))
func TestPropertyEffectAssociativity(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 0))
	f := func(x int) keffect.Effect[string, int] { return keffect.Succeed[string, int](x + 1) }
	g := func(x int) keffect.Effect[string, int] { return keffect.Succeed[string, int](x * 2) }
	for range propertyN {
		a := randInt(rng)
		m := keffect.Succeed[string, int](a)
		left := keffect.RunSync(keffect.FlatMap(keffect.FlatMap(m, f), g), keffect.EmptyContext())
		right := keffect.RunSync(keffect.FlatMap(m, func(x int) keffect.Effect[string, int] {
			return keffect.FlatMap(f(x), g)
		}), keffect.EmptyContext())
		if left != right {
			t.Fatalf("associativity: %d != %d (a=%d)", left, right, a)
		}
	}
}

// --- Group 2: Cause semiring laws ---

// TestPropertyCauseThenRightIdentity: c.Then(Empty) ≡ c
func TestPropertyCauseThenRightIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 0))
	for range propertyN {
		a := randInt(rng)
		c := keffect.FailCauseOf(a)
		got := c.Then(keffect.EmptyCause[int]())
		if got.Failures()[0] != a {
			t.Fatalf("Then(Empty) should be identity, got %v want %d", got.Failures(), a)
		}
	}
}

// TestPropertyCauseBothCommutesFlattenedSet: the flattened failure set of
// a.Both(b) equals b.Both(a)'s, ignoring order (the tree shape differs but
// Failures/Defects flattening is order-sensitive left-to-right, so only the
// multiset is checked here).
func TestPropertyCauseBothCommutesAsMultiset(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 0))
	for range propertyN {
		a, b := randInt(rng), randInt(rng)
		ab := keffect.FailCauseOf(a).Both(keffect.FailCauseOf(b)).Failures()
		ba := keffect.FailCauseOf(b).Both(keffect.FailCauseOf(a)).Failures()
		if len(ab) != 2 || len(ba) != 2 {
			t.Fatalf("expected both compositions to flatten to two leaves")
		}
		if !(ab[0] == ba[1] && ab[1] == ba[0]) {
			t.Fatalf("Both should be commutative as a multiset: %v vs %v", ab, ba)
		}
	}
}

// --- Group 3: Exit roundtrip ---

// TestPropertyExitMapExitComposesWithMatch: MapExit(e,f) matched by identity
// equals f applied to e's Match.
func TestPropertyExitMapExitComposesWithMatch(t *testing.T) {
	rng := rand.New(rand.NewPCG(6, 0))
	f := func(x int) int { return x*2 + 1 }
	for range propertyN {
		a := randInt(rng)
		e := keffect.Success[string, int](a)
		left := keffect.MapExit(e, f).Value()
		right := f(keffect.Match(e, func(v int) int { return v }, func(keffect.Cause[string]) int { return 0 }))
		if left != right {
			t.Fatalf("got %d, want %d (a=%d)", left, right, a)
		}
	}
}
