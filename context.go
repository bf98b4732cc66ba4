// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect

import (
	"reflect"

	"github.com/google/uuid"
)

// Context is an immutable environment threaded through effect evaluation.
// WithService and Merge return new values; the zero Context is empty and
// ready to use.
type Context struct {
	values map[string]any
}

// EmptyContext is the zero-value Context, provided for readability at call
// sites that build one up from scratch.
func EmptyContext() Context { return Context{} }

func (c Context) get(key string) (any, bool) {
	if c.values == nil {
		return nil, false
	}
	v, ok := c.values[key]
	return v, ok
}

func (c Context) with(key string, value any) Context {
	next := make(map[string]any, len(c.values)+1)
	for k, v := range c.values {
		next[k] = v
	}
	next[key] = value
	return Context{values: next}
}

// Merge returns a new Context containing every entry of c overlaid with
// every entry of other; other's entries win on key collision.
func (c Context) Merge(other Context) Context {
	next := make(map[string]any, len(c.values)+len(other.values))
	for k, v := range c.values {
		next[k] = v
	}
	for k, v := range other.values {
		next[k] = v
	}
	return Context{values: next}
}

// Tag is a typed key into a Context. Two Tag[T] values with the same key
// resolve the same service; NewTag mints a fresh, never-colliding key.
type Tag[T any] struct {
	key string
}

// NewTag mints an ad hoc tag carrying label plus a freshly generated
// unique suffix, so two tags built from the same label never collide.
func NewTag[T any](label string) Tag[T] {
	return Tag[T]{key: label + "#" + uuid.NewString()}
}

// TypeTag returns the tag canonically identifying T, keyed by its
// reflected type name. Two calls to TypeTag[T] for the same T always
// resolve the same service.
func TypeTag[T any]() Tag[T] {
	return Tag[T]{key: reflect.TypeOf((*T)(nil)).Elem().String()}
}

// WithService returns a new Context with svc bound under tag.
func WithService[T any](ctx Context, tag Tag[T], svc T) Context {
	return ctx.with(tag.key, svc)
}

// LookupService looks up the service bound under tag, if any. GetService
// (effect.go) is the Effect-valued counterpart built on top of this.
func LookupService[T any](ctx Context, tag Tag[T]) (T, bool) {
	v, ok := ctx.get(tag.key)
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}
