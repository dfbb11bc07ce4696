// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handoff

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock reports that a hand-off cannot happen right now.
//
//   - Push side (Enqueue, EnqueueBatch, Pool.Alloc): no free slot
//   - Pop side (TryPop, Dequeue, DequeueBatch): nothing to take
//
// It is a control flow signal, not a failure: the structure is unchanged and
// the caller decides whether to retry, drop, or wait on a higher-level
// signal. It aliases [iox.ErrWouldBlock] so callers can share one backoff
// loop across the hybscloud packages.
//
//	backoff := iox.Backoff{}
//	err := r.EnqueueBatch(frames)
//	for handoff.IsWouldBlock(err) {
//	    backoff.Wait()
//	    err = r.EnqueueBatch(frames)
//	}
//	if err != nil {
//	    return err // ErrTooLarge
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// ErrTooLarge reports a batch that exceeds the ring capacity and therefore
// can never succeed. Retrying it is a bug; the ring is left unchanged.
var ErrTooLarge = errors.New("handoff: batch exceeds ring capacity")

// IsWouldBlock reports whether err is (or wraps) ErrWouldBlock.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal rather than a
// failure. Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err is nil or a control flow signal.
// ErrTooLarge is a failure.
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
