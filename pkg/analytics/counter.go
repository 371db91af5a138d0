package analytics

// Counter is an insertion-ordered frequency counter. Iteration over Keys
// follows first-seen order, which keeps downstream materialized lists
// deterministic regardless of map iteration order.
type Counter[K comparable] struct {
	counts map[K]int
	order  []K
}

// NewCounter creates an empty Counter.
func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int)}
}

// Inc increments the count for key by one.
func (c *Counter[K]) Inc(key K) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}

	c.counts[key]++
}

// Get returns the count for key, zero if the key was never incremented.
func (c *Counter[K]) Get(key K) int {
	return c.counts[key]
}

// Len returns the number of distinct keys.
func (c *Counter[K]) Len() int {
	return len(c.order)
}

// Keys returns the keys in first-seen order. The returned slice is shared;
// callers must not modify it.
func (c *Counter[K]) Keys() []K {
	return c.order
}

// Total returns the sum of all counts.
func (c *Counter[K]) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}

	return total
}
