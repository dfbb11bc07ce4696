// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handoff

import "code.hybscloud.com/atomix"

// assert panics with msg when debug checks are compiled in and ok is false.
// Without the handoffdebug tag it compiles to nothing.
func assert(ok bool, msg string) {
	if debugChecks && !ok {
		panic("handoff: " + msg)
	}
}

// owner detects overlapping calls on a side that admits one goroutine.
type owner struct {
	busy atomix.Uint64
}

func (o *owner) enter(side string) {
	if debugChecks && !o.busy.CompareAndSwapAcqRel(0, 1) {
		panic("handoff: concurrent " + side + " access")
	}
}

func (o *owner) leave() {
	if debugChecks {
		o.busy.StoreRelease(0)
	}
}
