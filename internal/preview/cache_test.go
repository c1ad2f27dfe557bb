package preview

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFS controls modification times seen by the cache
type fakeFS struct {
	mtimes map[string]time.Time
}

func newFakeFS() *fakeFS {
	return &fakeFS{mtimes: make(map[string]time.Time)}
}

func (f *fakeFS) stat(path string) (time.Time, int64, error) {
	mod, ok := f.mtimes[path]
	if !ok {
		return time.Time{}, 0, fmt.Errorf("stat %s: no such file", path)
	}
	return mod, 0, nil
}

func (f *fakeFS) touch(path string, mod time.Time) {
	f.mtimes[path] = mod
}

func entryAt(mod time.Time, lines ...string) *Entry {
	return &Entry{
		Lines:     lines,
		Kind:      KindText,
		CreatedAt: time.Now(),
		ModTime:   mod,
	}
}

func TestCacheGetMiss(t *testing.T) {
	fs := newFakeFS()
	c := NewCache(4, fs.stat)

	_, ok := c.Get("missing")
	assert.False(t, ok)
}

func TestCachePutGet(t *testing.T) {
	fs := newFakeFS()
	c := NewCache(4, fs.stat)

	mod := time.Now()
	fs.touch("a.go", mod)
	c.Put("a.go", entryAt(mod, "package a"))

	e, ok := c.Get("a.go")
	require.True(t, ok)
	assert.Equal(t, []string{"package a"}, e.Lines)
}

func TestCacheNeverExceedsCapacity(t *testing.T) {
	fs := newFakeFS()
	c := NewCache(3, fs.stat)

	mod := time.Now()
	for i := 0; i < 10; i++ {
		path := fmt.Sprintf("f%d", i)
		fs.touch(path, mod)
		c.Put(path, entryAt(mod))
		assert.LessOrEqual(t, c.Len(), 3)
	}
	assert.Equal(t, 3, c.Len())
}

func TestCacheEvictsOldestInsertion(t *testing.T) {
	fs := newFakeFS()
	c := NewCache(2, fs.stat)

	mod := time.Now()
	for _, p := range []string{"f1", "f2", "f3"} {
		fs.touch(p, mod)
		c.Put(p, entryAt(mod))
	}

	_, ok := c.Get("f1")
	assert.False(t, ok, "f1 should have been evicted")

	_, ok = c.Get("f2")
	assert.True(t, ok)
	_, ok = c.Get("f3")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestCacheUpdateDoesNotConsumeEvictionSlot(t *testing.T) {
	fs := newFakeFS()
	c := NewCache(2, fs.stat)

	mod := time.Now()
	fs.touch("a", mod)
	fs.touch("b", mod)

	c.Put("a", entryAt(mod, "v1"))
	c.Put("b", entryAt(mod))
	c.Put("a", entryAt(mod, "v2"))

	// The update must not have evicted b
	_, ok := c.Get("b")
	assert.True(t, ok)

	e, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, []string{"v2"}, e.Lines)
	assert.Equal(t, 2, c.Len())
}

func TestCacheUpdateMovesKeyToNewest(t *testing.T) {
	fs := newFakeFS()
	c := NewCache(2, fs.stat)

	mod := time.Now()
	for _, p := range []string{"a", "b", "c"} {
		fs.touch(p, mod)
	}

	c.Put("a", entryAt(mod))
	c.Put("b", entryAt(mod))
	c.Put("a", entryAt(mod)) // refresh: a is now newest
	c.Put("c", entryAt(mod)) // should evict b, not a

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestCacheGetDoesNotRefreshOrder(t *testing.T) {
	// Eviction follows insertion order, not read order: reading the
	// oldest entry must not save it from eviction.
	fs := newFakeFS()
	c := NewCache(2, fs.stat)

	mod := time.Now()
	for _, p := range []string{"a", "b", "c"} {
		fs.touch(p, mod)
	}

	c.Put("a", entryAt(mod))
	c.Put("b", entryAt(mod))

	_, ok := c.Get("a")
	require.True(t, ok)

	c.Put("c", entryAt(mod))

	_, ok = c.Get("a")
	assert.False(t, ok, "a should be evicted despite the recent read")
}

func TestCacheStaleEntryEvictedOnGet(t *testing.T) {
	fs := newFakeFS()
	c := NewCache(4, fs.stat)

	mod := time.Now()
	fs.touch("a.go", mod)
	c.Put("a.go", entryAt(mod))

	// The backing file changes after insertion
	fs.touch("a.go", mod.Add(time.Second))

	_, ok := c.Get("a.go")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "stale entry should be removed by the failed lookup")
}

func TestCacheStatFailureTreatedAsStale(t *testing.T) {
	fs := newFakeFS()
	c := NewCache(4, fs.stat)

	mod := time.Now()
	fs.touch("a.go", mod)
	c.Put("a.go", entryAt(mod))

	delete(fs.mtimes, "a.go")

	_, ok := c.Get("a.go")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCacheClear(t *testing.T) {
	fs := newFakeFS()
	c := NewCache(4, fs.stat)

	mod := time.Now()
	for _, p := range []string{"a", "b"} {
		fs.touch(p, mod)
		c.Put(p, entryAt(mod))
	}

	c.Clear()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)

	// The cache remains usable after a clear
	c.Put("a", entryAt(mod))
	assert.Equal(t, 1, c.Len())
}
