package cache

import (
	"container/list"
	"time"
)

// Sweep removes every expired entry in one pass.
func (c *Cache[K, V]) Sweep() int {
	c.m.Lock()
	defer c.m.Unlock()

	now := time.Now()
	removed := 0
	var next *list.Element
	for elem := c.list.Front(); elem != nil; elem = next {
		next = elem.Next()
		ent := elem.Value.(*entry[K, V])
		if ent.expired(now) {
			c.remove(elem, ent, true)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep at the given interval until Stop is called.
func (c *Cache[K, V]) StartSweeper(interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Sweep()
			case <-c.stop:
				return
			}
		}
	}()
}

// Stop terminates the background sweeper. Safe to call more than once.
func (c *Cache[K, V]) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}
