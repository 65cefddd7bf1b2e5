package lineart

import (
	"fmt"
	"time"
)

const debounceDelay = 50 * time.Millisecond

type computeResult struct {
	mask   *Mask
	dist   *DistanceMap
	cancel *CancelToken
	ok     bool
}

// Controller is the C4 async wrapper around Close: it owns at most one
// in-flight computation per line-art object, debounces repeated input
// invalidations through a timer-backed idle slot, and serves Get callers
// who block until a result is published. All mutable state is confined to
// a single internal loop goroutine (the "owning goroutine" of §4.4/§5);
// every exported method is a thin request sent over cmdCh and is safe to
// call from any goroutine.
type Controller struct {
	cmdCh    chan func()
	resultCh chan computeResult
	doneCh   chan struct{}

	input            Buffer
	unsubscribeInput func()
	params           Params

	frozen           bool
	pendingRecompute bool

	computing bool
	cancel    *CancelToken
	debounce  *time.Timer

	haveResult bool
	mask       *Mask
	dist       *DistanceMap

	waiters []chan getOutcome

	onStart []func()
	onEnd   []func()
}

type getOutcome struct {
	mask *Mask
	dist *DistanceMap
}

// NewController creates a Controller with no input and the given
// parameters, and starts its owning loop goroutine.
func NewController(params Params) *Controller {
	c := &Controller{
		cmdCh:    make(chan func()),
		resultCh: make(chan computeResult),
		doneCh:   make(chan struct{}),
		params:   params,
	}
	go c.run()
	return c
}

func (c *Controller) run() {
	for {
		select {
		case f := <-c.cmdCh:
			f()
		case res := <-c.resultCh:
			c.handleResult(res)
		case <-c.doneCh:
			return
		}
	}
}

// Shutdown stops the owning loop goroutine and cancels any in-flight
// computation. The controller must not be used afterward.
//
// Any worker spawned by compute() selects on doneCh when publishing its
// result (see compute), so closing doneCh here always unblocks it instead
// of leaving it parked forever on an unbuffered send to resultCh with
// nobody left in run() to receive it. Any Get callers already parked in
// waiters are released with a zero result rather than left hanging.
func (c *Controller) Shutdown() {
	c.do(func() {
		if c.computing {
			c.cancel.Cancel()
		}
		if c.debounce != nil {
			c.debounce.Stop()
		}
		if c.unsubscribeInput != nil {
			c.unsubscribeInput()
		}
		waiters := c.waiters
		c.waiters = nil
		for _, w := range waiters {
			w <- getOutcome{}
		}
	})
	close(c.doneCh)
}

// do sends f to the owning loop and waits until it has run, giving the
// caller a synchronous view of state changes.
func (c *Controller) do(f func()) {
	done := make(chan struct{})
	c.cmdCh <- func() {
		f()
		close(done)
	}
	<-done
}

// SetInput associates a new input buffer and triggers a recompute (§4.4).
func (c *Controller) SetInput(buf Buffer) {
	c.do(func() {
		if c.unsubscribeInput != nil {
			c.unsubscribeInput()
			c.unsubscribeInput = nil
		}
		c.input = buf
		if buf != nil {
			c.unsubscribeInput = buf.OnChanged(func() {
				c.cmdCh <- func() { c.scheduleDebounce() }
			})
		}
		c.compute()
	})
}

// Freeze suspends recomputes; a pending recompute is remembered and fired
// on Thaw.
func (c *Controller) Freeze() {
	c.do(func() { c.frozen = true })
}

// Thaw resumes recomputes, immediately firing one if any would-have-
// recomputed event happened while frozen.
func (c *Controller) Thaw() {
	c.do(func() {
		c.frozen = false
		if c.pendingRecompute {
			c.pendingRecompute = false
			c.compute()
		}
	})
}

// IsFrozen reports whether the controller is currently frozen.
func (c *Controller) IsFrozen() bool {
	reply := make(chan bool, 1)
	c.cmdCh <- func() { reply <- c.frozen }
	return <-reply
}

// BindGapLength sets whether writes to spline-max-length or
// segment-max-length mirror to the other (§4.4).
func (c *Controller) BindGapLength(bind bool) {
	c.do(func() { c.params.BindGapLength = bind })
}

func (c *Controller) SetSelectTransparent(v bool) {
	c.do(func() {
		if c.params.SelectTransparent == v {
			return
		}
		c.params.SelectTransparent = v
		c.compute()
	})
}

func (c *Controller) SetStrokeThreshold(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%w: stroke threshold must be in [0,1]", ErrParamRange)
	}
	c.do(func() {
		if c.params.StrokeThreshold == v {
			return
		}
		c.params.StrokeThreshold = v
		c.compute()
	})
	return nil
}

func (c *Controller) SetMaxGrow(v int) error {
	if v < 1 || v > 100 {
		return fmt.Errorf("%w: max-grow must be in [1,100]", ErrParamRange)
	}
	c.do(func() {
		if c.params.MaxGrow == v {
			return
		}
		c.params.MaxGrow = v
		c.compute()
	})
	return nil
}

func (c *Controller) SetSplineMaxLength(v int) error {
	if v < 0 || v > 1000 {
		return fmt.Errorf("%w: spline-max-length must be in [0,1000]", ErrParamRange)
	}
	c.do(func() {
		changed := c.params.SplineMaxLength != v
		c.params.SplineMaxLength = v
		if c.params.BindGapLength && c.params.SegmentMaxLength != v {
			c.params.SegmentMaxLength = v
			changed = true
		}
		if changed {
			c.compute()
		}
	})
	return nil
}

func (c *Controller) SetSegmentMaxLength(v int) error {
	if v < 0 || v > 1000 {
		return fmt.Errorf("%w: segment-max-length must be in [0,1000]", ErrParamRange)
	}
	c.do(func() {
		changed := c.params.SegmentMaxLength != v
		c.params.SegmentMaxLength = v
		if c.params.BindGapLength && c.params.SplineMaxLength != v {
			c.params.SplineMaxLength = v
			changed = true
		}
		if changed {
			c.compute()
		}
	})
	return nil
}

// OnComputingStart registers a listener invoked on the owning loop every
// time a computation begins.
func (c *Controller) OnComputingStart(fn func()) {
	c.do(func() { c.onStart = append(c.onStart, fn) })
}

// OnComputingEnd registers a listener invoked on the owning loop every
// time a computation finishes or is cancelled.
func (c *Controller) OnComputingEnd(fn func()) {
	c.do(func() { c.onEnd = append(c.onEnd, fn) })
}

// Get blocks until a closed mask and distance map are available, starting
// a computation first if none is running or cached.
func (c *Controller) Get() (*Mask, *DistanceMap, error) {
	reply := make(chan getOutcome, 1)
	c.cmdCh <- func() { c.handleGet(reply) }
	out := <-reply
	return out.mask, out.dist, nil
}

func (c *Controller) handleGet(reply chan getOutcome) {
	if c.haveResult && !c.computing {
		reply <- getOutcome{c.mask, c.dist}
		return
	}
	c.waiters = append(c.waiters, reply)
	if !c.computing {
		c.compute()
	}
}

// scheduleDebounce coalesces repeated input-invalidation notices behind a
// single timer, standing in for the GUI idle-callback slot the reference
// design uses (§4.4, §9).
func (c *Controller) scheduleDebounce() {
	if c.debounce != nil {
		c.debounce.Stop()
	}
	c.debounce = time.AfterFunc(debounceDelay, func() {
		c.cmdCh <- func() {
			c.debounce = nil
			c.compute()
		}
	})
}

// compute implements the §4.4 recompute algorithm.
func (c *Controller) compute() {
	if c.frozen {
		c.pendingRecompute = true
		return
	}
	if c.computing {
		c.notify(c.onEnd)
		c.cancel.Cancel()
		c.computing = false
	}
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
	c.mask = nil
	c.dist = nil
	c.haveResult = false

	if c.input == nil {
		return
	}

	snapshot := c.input.Copy()
	params := c.params
	cancel := NewCancelToken()
	c.cancel = cancel
	c.computing = true
	c.notify(c.onStart)

	go func() {
		mask, dist, ok := Close(snapshot, params, cancel)
		select {
		case c.resultCh <- computeResult{mask: mask, dist: dist, cancel: cancel, ok: ok}:
		case <-c.doneCh:
		}
	}()
}

func (c *Controller) handleResult(res computeResult) {
	if res.cancel != c.cancel {
		return
	}
	c.computing = false
	if !res.ok {
		return
	}
	c.mask = res.mask
	c.dist = res.dist
	c.haveResult = true
	c.notify(c.onEnd)

	waiters := c.waiters
	c.waiters = nil
	for _, w := range waiters {
		w <- getOutcome{c.mask, c.dist}
	}
}

func (c *Controller) notify(listeners []func()) {
	for _, fn := range listeners {
		fn()
	}
}
