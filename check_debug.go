// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build handoffdebug

package handoff

// DebugChecks is true when built with -tags handoffdebug.
// Misuse (overlapping Ring producers or consumers, Resize while in use,
// pushing None, consuming outside the latest peek) then panics instead of
// silently corrupting state.
const DebugChecks = true

const debugChecks = DebugChecks
