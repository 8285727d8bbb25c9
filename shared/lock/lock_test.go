package lock_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentwheels/shared/lock"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	mutex := lock.NewKeyedMutex()

	var (
		inside  int32
		maxSeen int32
		wg      sync.WaitGroup
	)

	for range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			unlock := mutex.Lock("car-1")
			defer unlock()

			current := atomic.AddInt32(&inside, 1)
			if current > atomic.LoadInt32(&maxSeen) {
				atomic.StoreInt32(&maxSeen, current)
			}

			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), maxSeen)
	assert.Equal(t, 0, mutex.Len())
}

func TestKeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	mutex := lock.NewKeyedMutex()

	unlockA := mutex.Lock("car-a")
	defer unlockA()

	done := make(chan struct{})

	go func() {
		unlockB := mutex.Lock("car-b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}
}

func TestKeyedMutex_UnlockIsIdempotent(t *testing.T) {
	mutex := lock.NewKeyedMutex()

	unlock := mutex.Lock("car-1")
	assert.Equal(t, 1, mutex.Len())

	unlock()
	unlock()

	assert.Equal(t, 0, mutex.Len())

	relock := mutex.Lock("car-1")
	relock()
}
