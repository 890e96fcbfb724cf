package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	s := New(true)

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Set("k", 42)
	v, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestDisabledStoreIsNoOp(t *testing.T) {
	s := New(false)
	s.Set("k", 42)
	_, ok := s.Get("k")
	assert.False(t, ok)

	stats := s.Stats()
	assert.Equal(t, false, stats["enabled"])
	assert.Equal(t, 0, stats["total_keys"])
}

func TestStats(t *testing.T) {
	s := New(true)
	s.Set("a", 1)
	s.Set("b", 2)
	s.Set("a", 3)

	stats := s.Stats()
	assert.Equal(t, true, stats["enabled"])
	assert.Equal(t, 2, stats["total_keys"])
}

func TestConcurrentAccess(t *testing.T) {
	s := New(true)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", n%10)
			s.Set(key, n)
			s.Get(key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, s.Stats()["total_keys"])
}
