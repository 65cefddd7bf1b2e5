package lineart

import "sync/atomic"

// CancelToken is a cooperative, non-blocking cancellation flag shared
// between a controlling goroutine and a pipeline worker. The canceller
// sets the flag and returns immediately; the worker polls it at each
// designated suspension point (§4.1, §5) and tears itself down without
// publishing a result.
type CancelToken struct {
	flag int32
}

// NewCancelToken returns a token in the non-cancelled state.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel requests cancellation. Safe to call from any goroutine, any
// number of times.
func (c *CancelToken) Cancel() {
	atomic.StoreInt32(&c.flag, 1)
}

// Cancelled reports whether Cancel has been called. Workers call this at
// every suspension point named in §5.
func (c *CancelToken) Cancelled() bool {
	return atomic.LoadInt32(&c.flag) != 0
}
