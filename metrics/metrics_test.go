// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"testing"

	"code.hybscloud.com/handoff"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg, "edits")
	require.NoError(t, err)
	require.NotNil(t, m)

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestNewRejectsEmptyName(t *testing.T) {
	_, err := New(prometheus.NewRegistry(), "")
	require.Error(t, err)
}

func TestNewDuplicateNameFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg, "edits")
	require.NoError(t, err)

	_, err = New(reg, "edits")
	require.Error(t, err)

	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)

	// The failed attempt must not leave partial registrations behind.
	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestNewNilRegistry(t *testing.T) {
	m, err := New(nil, "edits")
	require.NoError(t, err)

	m.ObserveEnqueue(2, nil)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.enqueued))
}

func TestWrapRecordsOutcomes(t *testing.T) {
	m, err := New(prometheus.NewRegistry(), "ring")
	require.NoError(t, err)

	q := Wrap[int](handoff.NewRing[int](2), m)
	assert.Equal(t, 2, q.Cap())

	for i := range 3 {
		v := i
		err := q.Enqueue(&v)
		if i < 2 {
			require.NoError(t, err)
		} else {
			require.ErrorIs(t, err, handoff.ErrWouldBlock)
		}
	}

	for i := range 3 {
		v, err := q.Dequeue()
		if i < 2 {
			require.NoError(t, err)
			assert.Equal(t, i, v)
		} else {
			require.ErrorIs(t, err, handoff.ErrWouldBlock)
		}
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.enqueued))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.full))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.dequeued))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.empty))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.failed))
}

func TestObserveBatch(t *testing.T) {
	m, err := New(prometheus.NewRegistry(), "frames")
	require.NoError(t, err)

	r := handoff.NewRing[float32](4)

	err = r.EnqueueBatch([]float32{1, 2, 3})
	m.ObserveEnqueue(3, err)
	require.NoError(t, err)

	err = r.EnqueueBatch([]float32{4, 5})
	m.ObserveEnqueue(2, err)
	require.ErrorIs(t, err, handoff.ErrWouldBlock)

	err = r.EnqueueBatch(make([]float32, 5))
	m.ObserveEnqueue(5, err)
	require.ErrorIs(t, err, handoff.ErrTooLarge)

	dst := make([]float32, 3)
	err = r.DequeueBatch(dst)
	m.ObserveDequeue(len(dst), err)
	require.NoError(t, err)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.enqueued))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.full))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failed))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.dequeued))
}
