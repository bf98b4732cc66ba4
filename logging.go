// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keffect

import "code.hybscloud.com/keffect/internal/obslog"

// fiberLogger is the runtime's structured-logging handle, only ever
// touched off the success path.
type fiberLogger = obslog.Logger

func defaultFiberLogger() *fiberLogger { return obslog.Default() }
