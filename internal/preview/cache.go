package preview

import (
	"os"
	"time"
)

// Kind tags the detected content of a preview entry; the presentation
// layer uses it to pick highlighting.
type Kind string

const (
	KindText       Kind = "text"
	KindBinary     Kind = "binary"
	KindTooLarge   Kind = "too_large"
	KindDirectory  Kind = "directory"
	KindUnreadable Kind = "unreadable"
	KindLoading    Kind = "loading"
)

// Entry holds the cached preview content for one file. Once inserted it is
// owned exclusively by the cache.
type Entry struct {
	Lines     []string
	Kind      Kind
	Language  string // extension-derived highlight hint, "" when unknown
	CreatedAt time.Time
	ModTime   time.Time // source modification time captured at creation
	Truncated bool
}

// StatFunc reports a file's modification time and size. Injected so tests
// can control staleness without touching the filesystem.
type StatFunc func(path string) (modTime time.Time, size int64, err error)

// OSStat is the production StatFunc
func OSStat(path string) (time.Time, int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, 0, err
	}
	return info.ModTime(), info.Size(), nil
}

// Cache is a bounded path → Entry store. Eviction order is insertion/update
// order, not read order: Get never touches the order sequence, so this is
// FIFO-with-refresh rather than LRU. It is not safe for concurrent use;
// access is confined to the update loop.
type Cache struct {
	entries map[string]*Entry
	order   []string // oldest first
	max     int
	stat    StatFunc
}

// NewCache creates an empty cache holding at most max entries
func NewCache(max int, stat StatFunc) *Cache {
	if stat == nil {
		stat = OSStat
	}
	return &Cache{
		entries: make(map[string]*Entry),
		max:     max,
		stat:    stat,
	}
}

// Get returns the entry for path if it is present and still fresh. A
// present-but-stale entry (captured mtime no longer matching the file's
// current one) is evicted and reported as a miss.
func (c *Cache) Get(path string) (*Entry, bool) {
	e, ok := c.entries[path]
	if !ok {
		return nil, false
	}

	mod, _, err := c.stat(path)
	if err != nil || !mod.Equal(e.ModTime) {
		c.remove(path)
		return nil, false
	}

	return e, true
}

// Put inserts or updates the entry for path. An update removes the old
// position first so the key never occupies two order slots; a genuinely
// new key at capacity evicts the single oldest key.
func (c *Cache) Put(path string, e *Entry) {
	c.remove(path)

	if len(c.entries) >= c.max && len(c.order) > 0 {
		c.remove(c.order[0])
	}

	c.entries[path] = e
	c.order = append(c.order, path)
}

// Clear drops all entries and the order sequence
func (c *Cache) Clear() {
	c.entries = make(map[string]*Entry)
	c.order = nil
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	return len(c.entries)
}

func (c *Cache) remove(path string) {
	if _, ok := c.entries[path]; !ok {
		return
	}
	delete(c.entries, path)
	for i, p := range c.order {
		if p == path {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
