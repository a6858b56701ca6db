package charts

import "time"

// SetClock replaces the cache clock in tests.
func (c *Cache) SetClock(now func() time.Time) { c.now = now }
