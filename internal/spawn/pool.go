package spawn

// Pool is an ordered list of members with stable compaction. Generators use
// it for their members; sessions use it directly for entities that are not
// generated in waves, such as the player's missiles.
type Pool[T Member] struct {
	items []T
}

// Add appends m.
func (p *Pool[T]) Add(m T) {
	p.items = append(p.items, m)
}

// Tick advances every member and drops the finished ones in order, calling
// done for each dropped member. It returns true when the pool is empty.
func (p *Pool[T]) Tick(done func(T)) bool {
	kept := p.items[:0]
	for _, it := range p.items {
		if !it.Advance() {
			kept = append(kept, it)
			continue
		}
		if done != nil {
			done(it)
		}
	}
	// Clear references for GC
	var zero T
	for i := len(kept); i < len(p.items); i++ {
		p.items[i] = zero
	}
	p.items = kept
	return len(p.items) == 0
}

// Len returns the number of members.
func (p *Pool[T]) Len() int { return len(p.items) }

// Each calls fn for every member in insertion order.
func (p *Pool[T]) Each(fn func(T)) {
	for _, it := range p.items {
		fn(it)
	}
}
