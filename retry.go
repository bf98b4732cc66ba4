// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy configures Retry's delay schedule and attempt cap. ShouldRetry
// is optional: when set, it is consulted with the typed failure and the
// attempt number before each retry and can veto it early.
type RetryPolicy struct {
	MaxAttempts       int
	BaseDelayMs       int64
	BackoffMultiplier float64
	MaxDelayMs        int64
	ShouldRetry       func(err any, attempt int) bool
}

// policyBackOff adapts a RetryPolicy to github.com/cenkalti/backoff/v4's
// BackOff interface, computing exactly the spec's deterministic formula
// (min(baseDelayMs × backoffMultiplier^k, maxDelayMs)) rather than the
// library's own jittered exponential schedule — the library contributes
// pluggability and independent testability against its own contract, not
// its concrete randomization.
type policyBackOff struct {
	policy  RetryPolicy
	attempt int
}

var _ backoff.BackOff = (*policyBackOff)(nil)

func newPolicyBackOff(policy RetryPolicy) *policyBackOff {
	return &policyBackOff{policy: policy}
}

// NextBackOff returns the delay before the next attempt, or
// backoff.Stop once the policy's attempt cap is reached.
func (p *policyBackOff) NextBackOff() time.Duration {
	if p.policy.MaxAttempts > 0 && p.attempt >= p.policy.MaxAttempts-1 {
		return backoff.Stop
	}
	k := p.attempt
	p.attempt++
	delay := float64(p.policy.BaseDelayMs)
	for i := 0; i < k; i++ {
		delay *= p.policy.BackoffMultiplier
	}
	if p.policy.MaxDelayMs > 0 && delay > float64(p.policy.MaxDelayMs) {
		delay = float64(p.policy.MaxDelayMs)
	}
	return time.Duration(delay) * time.Millisecond
}

// Reset restarts the attempt counter.
func (p *policyBackOff) Reset() { p.attempt = 0 }

// Retry runs e, retrying on failure per policy. Each run of the returned
// effect starts a fresh attempt count. The delay between attempts is a
// Sleep, which is an Async effect: it needs the fiber interpreter, where
// the sleep is interruptible. rt is not consulted.
func Retry[E, A any](rt *Runtime, e Effect[E, A], policy RetryPolicy) Effect[E, A] {
	return Suspend(func() Effect[E, A] {
		return retryAttempt(rt, e, newPolicyBackOff(policy), 0)
	})
}

func retryAttempt[E, A any](rt *Runtime, e Effect[E, A], bo *policyBackOff, attempt int) Effect[E, A] {
	return CatchAllCause(e, func(c Cause[E]) Effect[E, A] {
		if shouldRetry := bo.policy.ShouldRetry; shouldRetry != nil {
			if fails := c.Failures(); len(fails) > 0 && !shouldRetry(fails[0], attempt) {
				return FailCause[E, A](c)
			}
		}
		delay := bo.NextBackOff()
		if delay == backoff.Stop {
			return FailCause[E, A](c)
		}
		return FlatMap(Sleep[E](delay), func(struct{}) Effect[E, A] {
			return retryAttempt(rt, e, bo, attempt+1)
		})
	})
}

// RetryN retries e up to n times total (the first attempt plus n-1
// retries), using policy's delay schedule but overriding its attempt cap.
func RetryN[E, A any](rt *Runtime, e Effect[E, A], policy RetryPolicy, n int) Effect[E, A] {
	capped := policy
	capped.MaxAttempts = n
	return Retry(rt, e, capped)
}

// RetryUntil re-runs e on success while p rejects the value, up to max
// extra attempts. Unlike Retry, it never fails on exhaustion — it simply
// returns the last value obtained, whether or not p ever accepted it.
func RetryUntil[E, A any](e Effect[E, A], p func(A) bool, max int) Effect[E, A] {
	return retryUntilAttempt(e, p, max, 0)
}

func retryUntilAttempt[E, A any](e Effect[E, A], p func(A) bool, max, attempt int) Effect[E, A] {
	return FlatMap(e, func(value A) Effect[E, A] {
		if p(value) || attempt >= max {
			return Succeed[E, A](value)
		}
		return retryUntilAttempt(e, p, max, attempt+1)
	})
}
