package sim

// Pool is a fixed-capacity object pool. Slots are allocated once; free
// slots are kept on an index stack so Acquire and Release are O(1).
type Pool[T any] struct {
	items  []T
	active []bool
	free   []int
	live   int
	misses int
}

// NewPool allocates a pool with capacity slots, all inactive.
func NewPool[T any](capacity int) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}
	p := &Pool[T]{
		items:  make([]T, capacity),
		active: make([]bool, capacity),
		free:   make([]int, 0, capacity),
	}
	p.Reset()
	return p
}

// Acquire activates a free slot and returns its index and a pointer to the
// zeroed item. ok is false when every slot is in use; the caller drops the
// request.
func (p *Pool[T]) Acquire() (idx int, item *T, ok bool) {
	n := len(p.free)
	if n == 0 {
		p.misses++
		return -1, nil, false
	}
	idx = p.free[n-1]
	p.free = p.free[:n-1]
	var zero T
	p.items[idx] = zero
	p.active[idx] = true
	p.live++
	return idx, &p.items[idx], true
}

// Release returns slot idx to the pool. Releasing an inactive or unknown
// slot does nothing.
func (p *Pool[T]) Release(idx int) {
	if idx < 0 || idx >= len(p.items) || !p.active[idx] {
		return
	}
	p.active[idx] = false
	p.free = append(p.free, idx)
	p.live--
}

// Reset deactivates every slot and clears the miss counter.
func (p *Pool[T]) Reset() {
	var zero T
	p.free = p.free[:0]
	for i := len(p.items) - 1; i >= 0; i-- {
		p.items[i] = zero
		p.active[i] = false
		p.free = append(p.free, i)
	}
	p.live = 0
	p.misses = 0
}

// Each calls fn for every active slot in index order. fn may Release the
// slot it is given.
func (p *Pool[T]) Each(fn func(idx int, item *T)) {
	for i := range p.items {
		if p.active[i] {
			fn(i, &p.items[i])
		}
	}
}

// Active reports whether slot idx is in use.
func (p *Pool[T]) Active(idx int) bool {
	return idx >= 0 && idx < len(p.active) && p.active[idx]
}

// Cap returns the fixed capacity.
func (p *Pool[T]) Cap() int { return len(p.items) }

// Len returns the number of active slots.
func (p *Pool[T]) Len() int { return p.live }

// Misses returns how many Acquire calls failed since the last Reset.
func (p *Pool[T]) Misses() int { return p.misses }
