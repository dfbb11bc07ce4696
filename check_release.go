// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !handoffdebug

package handoff

// DebugChecks is false unless built with -tags handoffdebug.
const DebugChecks = false

const debugChecks = DebugChecks
