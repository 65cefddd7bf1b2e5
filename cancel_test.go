package lineart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCancelToken_StartsNotCancelled(t *testing.T) {
	assert := assert.New(t)
	assert.False(NewCancelToken().Cancelled())
}

func TestCancelToken_CancelIsIdempotent(t *testing.T) {
	assert := assert.New(t)

	c := NewCancelToken()
	c.Cancel()
	c.Cancel()
	assert.True(c.Cancelled())
}

func TestCancelToken_ConcurrentCancelIsSafe(t *testing.T) {
	assert := assert.New(t)

	c := NewCancelToken()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Cancel()
		}()
	}
	wg.Wait()
	assert.True(c.Cancelled())
}
