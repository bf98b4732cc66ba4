// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect

import "sync"

// stepFrameStackPool recycles the backing slice of a trampoline's
// continuation stack across RunSync/RunSyncExit and fiber-step calls,
// the same sync.Pool discipline the teacher uses for its frame types —
// adapted here to a slice rather than individual frame pointers, since
// this trampoline represents its stack as one contiguous LIFO slice
// instead of a defunctionalized chain of heap nodes.
var stepFrameStackPool = sync.Pool{
	New: func() any {
		s := make([]stepFrame, 0, 8)
		return &s
	},
}

// acquireFrameStack returns an empty, pooled []stepFrame ready for reuse.
func acquireFrameStack() *[]stepFrame {
	s := stepFrameStackPool.Get().(*[]stepFrame)
	*s = (*s)[:0]
	return s
}

// releaseFrameStack clears references held by s and returns it to the
// pool. Must not be called while any popped frame's closures are still in
// use by the caller.
func releaseFrameStack(s *[]stepFrame) {
	for i := range *s {
		(*s)[i] = stepFrame{}
	}
	*s = (*s)[:0]
	stepFrameStackPool.Put(s)
}
