// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect

import "errors"

// Sentinel defects raised by the package itself. These carry no dynamic
// context, so plain stdlib errors suffice; github.com/pkg/errors is
// reserved for the Cause.Squash() coercion boundary where a stack trace is
// actually useful.
var (
	errEmptyCause        = errors.New("keffect: FailCause given an empty cause")
	errUnresolvedService = errors.New("keffect: no service bound for requested tag")
	errMaxIterations     = errors.New("keffect: maximum iterations exceeded — possible infinite loop")
	errNeverUnderSync    = errors.New("keffect: Never is fatal under the synchronous interpreter")
	errAsyncUnderSync    = errors.New("keffect: Async is fatal under the synchronous interpreter")
	errUnknownNode       = errors.New("keffect: unknown effect node")
	errEmptyFirstSuccess = errors.New("keffect: FirstSuccess called with no effects")
)
