// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// fiberIDSource guards the monotonic entropy source shared by every
// NewFiberID call; ulid.Monotonic is not safe for concurrent use on its
// own.
var (
	fiberIDMu     sync.Mutex
	fiberIDSource = ulid.Monotonic(rand.Reader, 0)
)

// FiberID identifies a fiber: a 48-bit millisecond timestamp plus a
// monotonically increasing random component within the same millisecond —
// the literal Go rendering of "a monotonic integer with a start-time
// annotation."
type FiberID struct {
	id ulid.ULID
}

// NewFiberID mints a fresh, never-reused FiberID stamped with the current
// time.
func NewFiberID() FiberID {
	fiberIDMu.Lock()
	defer fiberIDMu.Unlock()
	return FiberID{id: ulid.MustNew(ulid.Timestamp(time.Now()), fiberIDSource)}
}

// Time recovers the start-time annotation.
func (f FiberID) Time() time.Time {
	return ulid.Time(f.id.Time())
}

// String returns the canonical ULID string form.
func (f FiberID) String() string {
	return f.id.String()
}

// Equal reports whether f and other identify the same fiber.
func (f FiberID) Equal(other FiberID) bool {
	return f.id == other.id
}
