// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect

import "github.com/pkg/errors"

// causeTag discriminates the semiring's node kinds.
type causeTag int

const (
	causeEmpty causeTag = iota
	causeFail
	causeDefect
	causeInterrupt
	causeSequential
	causeParallel
)

// causeNode is the erased internal representation of the Cause semiring.
// Cause[E] is the typed wrapper; Fail payloads are recovered by type
// assertion at Failures.
type causeNode struct {
	tag          causeTag
	err          any
	defect       any
	left, right  *causeNode
}

// Cause is an immutable tree describing why an effect failed: a sequence
// or parallel composition of failures (typed errors), defects (host
// exceptions / programmer errors), and interruptions.
type Cause[E any] struct {
	node *causeNode
}

// EmptyCause is the identity element for both Then and Both.
func EmptyCause[E any]() Cause[E] {
	return Cause[E]{node: &causeNode{tag: causeEmpty}}
}

// FailCauseOf lifts a typed error into a single-leaf Cause.
func FailCauseOf[E any](err E) Cause[E] {
	return Cause[E]{node: &causeNode{tag: causeFail, err: err}}
}

// DefectCauseOf lifts an arbitrary recovered value (or host error) into a
// single-leaf defect Cause.
func DefectCauseOf[E any](defect any) Cause[E] {
	return Cause[E]{node: &causeNode{tag: causeDefect, defect: defect}}
}

// InterruptedCause is the single-leaf interruption Cause.
func InterruptedCause[E any]() Cause[E] {
	return Cause[E]{node: &causeNode{tag: causeInterrupt}}
}

// IsEmpty reports whether c carries no failures, defects, or interruptions.
func (c Cause[E]) IsEmpty() bool {
	return c.node == nil || c.node.tag == causeEmpty
}

// Then composes c before other in sequence. Empty is the identity.
func (c Cause[E]) Then(other Cause[E]) Cause[E] {
	if c.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return c
	}
	return Cause[E]{node: &causeNode{tag: causeSequential, left: c.node, right: other.node}}
}

// Both composes c and other as concurrent, unordered failures. Empty is
// the identity.
func (c Cause[E]) Both(other Cause[E]) Cause[E] {
	if c.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return c
	}
	return Cause[E]{node: &causeNode{tag: causeParallel, left: c.node, right: other.node}}
}

// Failures returns every Fail payload in c, in left-to-right tree order.
func (c Cause[E]) Failures() []E {
	var out []E
	var walk func(n *causeNode)
	walk = func(n *causeNode) {
		if n == nil {
			return
		}
		switch n.tag {
		case causeFail:
			out = append(out, n.err.(E))
		case causeSequential, causeParallel:
			walk(n.left)
			walk(n.right)
		}
	}
	walk(c.node)
	return out
}

// Defects returns every Defect payload in c, in left-to-right tree order.
func (c Cause[E]) Defects() []any {
	var out []any
	var walk func(n *causeNode)
	walk = func(n *causeNode) {
		if n == nil {
			return
		}
		switch n.tag {
		case causeDefect:
			out = append(out, n.defect)
		case causeSequential, causeParallel:
			walk(n.left)
			walk(n.right)
		}
	}
	walk(c.node)
	return out
}

// IsInterrupted reports whether c contains at least one interruption leaf.
func (c Cause[E]) IsInterrupted() bool {
	var found bool
	var walk func(n *causeNode)
	walk = func(n *causeNode) {
		if n == nil || found {
			return
		}
		switch n.tag {
		case causeInterrupt:
			found = true
		case causeSequential, causeParallel:
			walk(n.left)
			walk(n.right)
		}
	}
	walk(c.node)
	return found
}

// Squash collapses c to a single error, preferring a defect over a
// failure over a bare interruption — the same "give me the exception"
// coercion corso's pkg/fault draws at its RunSyncExit-equivalent boundary.
func (c Cause[E]) Squash() error {
	if defects := c.Defects(); len(defects) > 0 {
		if err, ok := defects[0].(error); ok {
			return errors.WithStack(err)
		}
		return errors.Errorf("keffect: defect: %v", defects[0])
	}
	if fails := c.Failures(); len(fails) > 0 {
		if err, ok := any(fails[0]).(error); ok {
			return errors.WithStack(err)
		}
		return errors.Errorf("keffect: %v", fails[0])
	}
	if c.IsInterrupted() {
		return errors.New("keffect: interrupted")
	}
	return errors.New("keffect: empty cause")
}

// MapCause rewrites every Fail leaf of c with f, leaving Defect and
// Interrupt leaves untouched.
func MapCause[E, E2 any](c Cause[E], f func(E) E2) Cause[E2] {
	if c.node == nil {
		return Cause[E2]{}
	}
	var walk func(n *causeNode) *causeNode
	walk = func(n *causeNode) *causeNode {
		switch n.tag {
		case causeFail:
			return &causeNode{tag: causeFail, err: f(n.err.(E))}
		case causeSequential:
			return &causeNode{tag: causeSequential, left: walk(n.left), right: walk(n.right)}
		case causeParallel:
			return &causeNode{tag: causeParallel, left: walk(n.left), right: walk(n.right)}
		default:
			return n
		}
	}
	return Cause[E2]{node: walk(c.node)}
}
