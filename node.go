// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect

// effectNode is the closed algebra of effect IR nodes. All concrete node
// types are unexported; Effect[E, A] is the only public handle onto a tree
// of them. Values are erased to any at this layer and recovered by type
// assertion in the typed constructors and combinators that build and
// consume them — the same discipline the interpreters' stepFrame stack
// uses for its continuation closures.
type effectNode interface {
	node() // unexported marker method closes the node set to this package
}

// succeedNode is a pure success leaf.
type succeedNode struct{ value any }

func (succeedNode) node() {}

// failNode carries a typed (but erased) Fail payload.
type failNode struct{ err any }

func (failNode) node() {}

// defectNode carries an unrecoverable host exception or programmer error.
type defectNode struct{ defect any }

func (defectNode) node() {}

// interruptNode is the IR node for cooperative interruption, distinct from
// a fiber's runtime interrupt signal.
type interruptNode struct{}

func (interruptNode) node() {}

// neverNode never completes; fatal under the synchronous interpreter.
type neverNode struct{}

func (neverNode) node() {}

// syncNode wraps a possibly-panicking thunk. A panic becomes a Defect.
type syncNode struct{ thunk func() any }

func (syncNode) node() {}

// trySyncNode wraps a possibly-panicking thunk whose panic value is
// recoverable as a typed Fail via catch. catch is never nil by the time a
// trySyncNode is constructed — TrySync supplies a type-assertion fallback
// when the caller passes a nil catch, reported via the second return value.
type trySyncNode struct {
	thunk func() any
	catch func(recovered any) (err any, isFail bool)
}

func (trySyncNode) node() {}

// asyncNode suspends until register invokes resolve, which the interpreter
// guards so only the first call takes effect.
type asyncNode struct {
	register func(resolve func(exitErased))
}

func (asyncNode) node() {}

// suspendNode defers tree construction until evaluation time.
type suspendNode struct{ thunk func() effectNode }

func (suspendNode) node() {}

// causeLeafNode re-injects an already-built Cause as a leaf, used by
// MapError and by the combinators that re-raise an observed Cause
// unchanged (CatchAll, Ensuring, Timed, ParTraverse).
type causeLeafNode struct{ cause *causeNode }

func (causeLeafNode) node() {}

// mapNode transforms a child's success value.
type mapNode struct {
	child effectNode
	f     func(any) any
}

func (mapNode) node() {}

// flatMapNode sequences a child into a continuation producing the next
// node to reduce.
type flatMapNode struct {
	child effectNode
	k     func(any) effectNode
}

func (flatMapNode) node() {}

// foldNode is the sole consumer of a Cause: onFailure observes Fail,
// Defect, and Interrupt uniformly.
type foldNode struct {
	child     effectNode
	onSuccess func(any) effectNode
	onFailure func(*causeNode) effectNode
}

func (foldNode) node() {}

// accessNode reads a service out of the ambient Context by tag key.
type accessNode struct {
	tagKey string
	f      func(any) any
}

func (accessNode) node() {}

// provideNode rewrites the ambient Context for its child. transform is
// applied to whatever Context is active when the node is reduced, which is
// how both Provide (replace) and ProvideService (merge one entry) are
// expressed with a single node type.
type provideNode struct {
	child     effectNode
	transform func(Context) Context
}

func (provideNode) node() {}
