// Package lock provides in-process mutual exclusion keyed by string.
package lock

import (
	"sync"
	"sync/atomic"

	"github.com/moby/locker"
	"github.com/rs/zerolog/log"
)

// KeyedMutex serializes work per key while letting different keys proceed in
// parallel. Idle keys are released by the underlying locker.
type KeyedMutex struct {
	locker  *locker.Locker
	pending atomic.Int64
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locker: locker.New()}
}

// Lock blocks until key is free and returns the matching unlock func.
// Calling unlock more than once has no effect.
func (k *KeyedMutex) Lock(key string) (unlock func()) {
	k.pending.Add(1)
	k.locker.Lock(key)

	var once sync.Once

	return func() {
		once.Do(func() {
			if err := k.locker.Unlock(key); err != nil {
				log.Error().Err(err).Str("key", key).Msg("failed to release lock")
			}

			k.pending.Add(-1)
		})
	}
}

// Len reports how many Lock calls are holding or waiting on a key.
func (k *KeyedMutex) Len() int {
	return int(k.pending.Load())
}
