package service

import "sync"

// OrderCounter issues monotonically increasing order numbers from process
// memory. The count restarts at the configured base on every process start;
// running more than one process against the same database can therefore
// collide. A database sequence is the fix if that deployment ever happens.
type OrderCounter struct {
	mu   sync.Mutex
	next int
}

// NewOrderCounter returns a counter whose first Next call yields base.
func NewOrderCounter(base int) *OrderCounter {
	return &OrderCounter{next: base}
}

// Next returns the current order number and advances the counter.
func (c *OrderCounter) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.next
	c.next++
	return n
}
