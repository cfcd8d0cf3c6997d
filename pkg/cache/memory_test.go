package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewMemoryCache[string, int](WithMemoryMaxSize(2))
	c.Set("a", 1)
	c.Set("b", 2)

	_, ok := c.Get("a")
	assert.True(t, ok)

	c.Set("c", 3)

	_, ok = c.Get("b")
	assert.False(t, ok, "b was least recently used")
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, uint64(1), c.Stats().Evictions)
}

func TestMemoryCacheOverwriteDoesNotEvict(t *testing.T) {
	c := NewMemoryCache[string, int](WithMemoryMaxSize(2))
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10)

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 10, v)
	_, ok = c.Get("b")
	assert.True(t, ok)
}

func TestMemoryCachePurge(t *testing.T) {
	c := NewMemoryCache[string, []string]()
	c.Set("k", []string{"x"})
	c.Purge()

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	s := c.Stats()
	assert.Equal(t, uint64(1), s.Misses)
}

func TestMemoryCacheTTL(t *testing.T) {
	c := NewMemoryCache[string, int](WithMemoryTTL(time.Millisecond))
	c.Set("k", 1)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	c := NewMemoryCache[int, int](WithMemoryMaxSize(50))
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				c.Set(g*1000+i, i)
				c.Get(g*1000 + i/2)
			}
		}(g)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 50)
}

func TestGenerateKeyWithParams(t *testing.T) {
	assert.Equal(t, "aspects:3:acme:2025-03-10", GenerateKeyWithParams("aspects", 3, "acme", "2025-03-10"))
}
