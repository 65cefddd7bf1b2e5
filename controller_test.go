package lineart

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// smallSquareBuffer returns a small, quick-to-close test buffer so
// Controller tests can wait on real Get() calls without a slow pipeline.
func smallSquareBuffer() *testBuffer {
	return newTestBuffer(8, 8, newPlane(8, 8, 255, 0, rectOutline(1, 1, 6, 6)))
}

type controllerCounters struct {
	starts, ends int32
}

func wireCounters(c *Controller) *controllerCounters {
	counters := &controllerCounters{}
	c.OnComputingStart(func() { atomic.AddInt32(&counters.starts, 1) })
	c.OnComputingEnd(func() { atomic.AddInt32(&counters.ends, 1) })
	return counters
}

func TestController_SettingSameParamTriggersNoRecompute(t *testing.T) {
	assert := assert.New(t)

	ctrl := NewController(DefaultParams())
	defer ctrl.Shutdown()
	counters := wireCounters(ctrl)

	ctrl.SetInput(smallSquareBuffer())
	_, _, err := ctrl.Get()
	assert.NoError(err)
	assert.EqualValues(1, atomic.LoadInt32(&counters.starts))

	assert.NoError(ctrl.SetStrokeThreshold(DefaultParams().StrokeThreshold))
	assert.EqualValues(1, atomic.LoadInt32(&counters.starts), "setting a parameter to its current value must not recompute")
}

func TestController_FreezeThawCoalescesIntoOneRecompute(t *testing.T) {
	assert := assert.New(t)

	ctrl := NewController(DefaultParams())
	defer ctrl.Shutdown()
	counters := wireCounters(ctrl)

	ctrl.SetInput(smallSquareBuffer())
	_, _, err := ctrl.Get()
	assert.NoError(err)
	baseline := atomic.LoadInt32(&counters.starts)

	ctrl.Freeze()
	assert.True(ctrl.IsFrozen())
	assert.NoError(ctrl.SetStrokeThreshold(0.3))
	assert.NoError(ctrl.SetStrokeThreshold(0.7))
	assert.Equal(baseline, atomic.LoadInt32(&counters.starts), "no recompute may fire while frozen")

	ctrl.Thaw()
	_, _, err = ctrl.Get()
	assert.NoError(err)
	assert.Equal(baseline+1, atomic.LoadInt32(&counters.starts), "thaw must fire exactly one coalesced recompute")
}

func TestController_SetInputTwiceTriggersTwoRecomputesOnlySecondPublished(t *testing.T) {
	assert := assert.New(t)

	ctrl := NewController(DefaultParams())
	defer ctrl.Shutdown()
	counters := wireCounters(ctrl)

	bufA := newTestBuffer(8, 8, newPlane(8, 8, 255, 0, rectOutline(1, 1, 6, 6)))
	bufB := newTestBuffer(8, 8, newPlane(8, 8, 255, 0, rectOutline(2, 2, 5, 5)))

	ctrl.SetInput(bufA)
	ctrl.SetInput(bufB)

	mask, _, err := ctrl.Get()
	assert.NoError(err)
	assert.EqualValues(2, atomic.LoadInt32(&counters.starts), "two SetInput calls must trigger two recomputes")
	assert.Equal(atomic.LoadInt32(&counters.starts), atomic.LoadInt32(&counters.ends), "every start must be matched by an end")

	assert.True(mask.Stroke(2, 2), "the published result must be derived from the second input")
	assert.False(mask.Stroke(1, 1), "the first input's geometry must not leak into the published result")
}

func TestController_GetWithoutInputBlocksUntilSetInput(t *testing.T) {
	assert := assert.New(t)

	ctrl := NewController(DefaultParams())
	defer ctrl.Shutdown()

	done := make(chan struct{})
	go func() {
		defer close(done)
		mask, dist, err := ctrl.Get()
		assert.NoError(err)
		assert.NotNil(mask)
		assert.NotNil(dist)
	}()

	ctrl.SetInput(smallSquareBuffer())
	<-done
}

func TestController_BindGapLengthMirrorsWrites(t *testing.T) {
	assert := assert.New(t)

	ctrl := NewController(DefaultParams())
	defer ctrl.Shutdown()
	ctrl.BindGapLength(true)

	assert.NoError(ctrl.SetSplineMaxLength(42))
	assert.NoError(ctrl.SetSegmentMaxLength(17))

	// Both setters mirror under binding; the last writer wins on both knobs.
	ctrl.SetInput(smallSquareBuffer())
	_, _, err := ctrl.Get()
	assert.NoError(err)
}

// TestController_ShutdownReleasesPendingWaiters simulates a Get caller
// parked on an in-flight computation (by setting the internal state
// directly rather than racing a real worker) and asserts Shutdown wakes it
// rather than leaving it blocked forever once run() has exited.
func TestController_ShutdownReleasesPendingWaiters(t *testing.T) {
	assert := assert.New(t)

	ctrl := NewController(DefaultParams())
	reply := make(chan getOutcome, 1)
	ctrl.do(func() {
		ctrl.computing = true
		ctrl.cancel = NewCancelToken()
		ctrl.waiters = append(ctrl.waiters, reply)
	})

	ctrl.Shutdown()

	select {
	case <-reply:
	case <-time.After(time.Second):
		t.Fatal("Shutdown must release any Get caller waiting on an in-flight computation")
	}
}

// TestController_WorkerSendAfterShutdownDoesNotBlock exercises the same
// select-on-doneCh pattern compute()'s worker goroutine uses to publish its
// result: once Shutdown has closed doneCh, a result send arriving after the
// fact (the owning loop has already exited) must be released rather than
// block forever on the unbuffered resultCh with nobody left to receive it.
func TestController_WorkerSendAfterShutdownDoesNotBlock(t *testing.T) {
	ctrl := NewController(DefaultParams())
	ctrl.Shutdown()

	sent := make(chan struct{})
	go func() {
		select {
		case ctrl.resultCh <- computeResult{ok: true}:
		case <-ctrl.doneCh:
		}
		close(sent)
	}()

	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatal("a worker's result send occurring after Shutdown must be released via doneCh, not block forever")
	}
}
