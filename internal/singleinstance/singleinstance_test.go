package singleinstance_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/opencode-ai/desktop/internal/singleinstance"
)

func TestGroup(t *testing.T) {
	var c atomic.Int64
	var aborts atomic.Int64
	g := singleinstance.NewGroup()
	f := func() {
		_, _, aborted := g.Do("alpha", func() (any, error) {
			c.Add(1)
			time.Sleep(100 * time.Millisecond)
			return true, nil
		})
		if aborted {
			aborts.Add(1)
		}
	}
	wg := sync.WaitGroup{}
	wg.Go(f)
	wg.Go(f)
	wg.Wait()
	assert.EqualValues(t, 1, c.Load())
	assert.EqualValues(t, 1, aborts.Load())
}

func TestLock(t *testing.T) {
	name := fmt.Sprintf("opencode-test-%d", time.Now().UnixNano()%1_000_000)
	t.Run("second lock fails while first is held", func(t *testing.T) {
		release, err := singleinstance.Lock(name)
		if !assert.NoError(t, err) {
			return
		}
		_, err = singleinstance.Lock(name)
		assert.ErrorIs(t, err, singleinstance.ErrAlreadyRunning)
		release()
	})
	t.Run("lock can be acquired again after release", func(t *testing.T) {
		release, err := singleinstance.Lock(name)
		if assert.NoError(t, err) {
			release()
		}
	})
}
