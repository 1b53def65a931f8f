package lock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockSerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("car-1")
			counter++
			km.Unlock("car-1")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestDistinctKeysDoNotContend(t *testing.T) {
	km := NewKeyedMutex()

	km.Lock("car-1")
	defer km.Unlock("car-1")

	assert.True(t, km.TryLock("car-2"), "a lock on one car must not block another")
	km.Unlock("car-2")
}

func TestTryLockFailsWhileHeld(t *testing.T) {
	km := NewKeyedMutex()

	km.Lock("car-1")
	assert.False(t, km.TryLock("car-1"))

	km.Unlock("car-1")
	assert.True(t, km.TryLock("car-1"))
	km.Unlock("car-1")
}

func TestEntriesAreReclaimed(t *testing.T) {
	km := NewKeyedMutex()

	for i := 0; i < 10; i++ {
		km.Lock("car-1")
		km.Unlock("car-1")
	}

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.entries, "released keys must not accumulate")
}

func TestUnlockWithoutLockPanics(t *testing.T) {
	km := NewKeyedMutex()
	assert.Panics(t, func() { km.Unlock("never-locked") })
}
