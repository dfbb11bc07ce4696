// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package handoff

// RaceEnabled is true when the race detector is active.
// Tests use it to skip concurrent hand-off tests: the detector cannot see
// the ordering atomix provides between a published index or cursor and the
// plain slot memory it guards.
const RaceEnabled = true
