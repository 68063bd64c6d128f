//go:build unit

package keymutex_test

import (
	"sync"
	"testing"

	"slotbook/internal/pkg/keymutex"

	"github.com/stretchr/testify/assert"
)

func TestKeyMutex_MutualExclusion(t *testing.T) {
	km := keymutex.New()

	const workers = 64
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("A-01")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestKeyMutex_IndependentKeys(t *testing.T) {
	km := keymutex.New()

	unlockA := km.Lock("A-01")
	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("B-01")
		unlockB()
		close(done)
	}()

	// B-01 must not be blocked by A-01.
	<-done
	unlockA()
}

func TestKeyMutex_UnlockIsIdempotent(t *testing.T) {
	km := keymutex.New()

	unlock := km.Lock("A-01")
	unlock()
	assert.NotPanics(t, func() { unlock() })

	// Key must be lockable again afterwards.
	unlock2 := km.Lock("A-01")
	unlock2()
}
