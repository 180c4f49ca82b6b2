package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/oarkflow/xsync"
)

// Cache is a capacity-bounded LRU whose entries expire after a fixed TTL.
// Expired entries are dropped lazily on read and in bulk by the sweeper.
// A zero TTL disables expiry and leaves plain LRU behavior.
type Cache[K comparable, V any] struct {
	capacity int
	ttl      time.Duration
	data     xsync.IMap[K, *list.Element]
	list     *list.List
	m        sync.Mutex
	onEvict  func(K, V)
	stop     chan struct{}
	stopOnce sync.Once
}

type entry[K comparable, V any] struct {
	key      K
	value    V
	deadline time.Time
}

func (e *entry[K, V]) expired(now time.Time) bool {
	return !e.deadline.IsZero() && now.After(e.deadline)
}

// New creates a cache holding at most capacity entries for at most ttl.
func New[K comparable, V any](capacity int, ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		capacity: capacity,
		ttl:      ttl,
		data:     xsync.NewMap[K, *list.Element](),
		list:     list.New(),
		stop:     make(chan struct{}),
	}
}

// SetEvictionHandler installs a callback invoked whenever an entry leaves
// the cache for any reason other than Del.
func (c *Cache[K, V]) SetEvictionHandler(onEvict func(K, V)) {
	c.onEvict = onEvict
}

// Get retrieves a live value and marks it recently used. An expired entry
// counts as a miss and is removed on the spot.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.m.Lock()
	defer c.m.Unlock()

	var zero V
	elem, found := c.data.Get(key)
	if !found {
		return zero, false
	}
	ent := elem.Value.(*entry[K, V])
	if ent.expired(time.Now()) {
		c.remove(elem, ent, true)
		return zero, false
	}
	c.list.MoveToFront(elem)
	return ent.value, true
}

// Set stores a value, refreshing its deadline, and evicts the least
// recently used entry when the cache is full.
func (c *Cache[K, V]) Set(key K, value V) {
	c.m.Lock()
	defer c.m.Unlock()

	deadline := time.Time{}
	if c.ttl > 0 {
		deadline = time.Now().Add(c.ttl)
	}
	if elem, found := c.data.Get(key); found {
		ent := elem.Value.(*entry[K, V])
		ent.value = value
		ent.deadline = deadline
		c.list.MoveToFront(elem)
		return
	}
	if c.capacity > 0 && c.list.Len() >= c.capacity {
		if oldest := c.list.Back(); oldest != nil {
			c.remove(oldest, oldest.Value.(*entry[K, V]), true)
		}
	}
	elem := c.list.PushFront(&entry[K, V]{key: key, value: value, deadline: deadline})
	c.data.Set(key, elem)
}

// Del drops an entry without invoking the eviction handler.
func (c *Cache[K, V]) Del(key K) {
	c.m.Lock()
	defer c.m.Unlock()
	if elem, found := c.data.Get(key); found {
		c.remove(elem, elem.Value.(*entry[K, V]), false)
	}
}

// Len reports the current entry count, expired entries included until
// they are swept.
func (c *Cache[K, V]) Len() int {
	c.m.Lock()
	defer c.m.Unlock()
	return c.list.Len()
}

// Purge empties the cache.
func (c *Cache[K, V]) Purge() {
	c.m.Lock()
	defer c.m.Unlock()
	for elem := c.list.Front(); elem != nil; elem = elem.Next() {
		c.data.Del(elem.Value.(*entry[K, V]).key)
	}
	c.list.Init()
}

// remove must be called with the mutex held.
func (c *Cache[K, V]) remove(elem *list.Element, ent *entry[K, V], notify bool) {
	c.list.Remove(elem)
	c.data.Del(ent.key)
	if notify && c.onEvict != nil {
		c.onEvict(ent.key, ent.value)
	}
}
