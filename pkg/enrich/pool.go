package enrich

import "context"

// Pool hands out a fixed set of values, one holder at a time.
//
// Get blocks until a value is free, so the number of concurrent holders is
// bounded by Size. Pool is safe for concurrent use.
type Pool[T any] struct {
	free chan T
	size int
}

// NewPool creates a pool holding items.
func NewPool[T any](items []T) *Pool[T] {
	p := &Pool[T]{free: make(chan T, len(items)), size: len(items)}
	for _, it := range items {
		p.free <- it
	}
	return p
}

// Size returns the number of values managed by the pool.
func (p *Pool[T]) Size() int {
	if p == nil {
		return 0
	}
	return p.size
}

// Get checks a value out, waiting until one is returned or ctx is done.
func (p *Pool[T]) Get(ctx context.Context) (T, error) {
	select {
	case v := <-p.free:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Put checks v back in. Every successful Get must be paired with one Put.
func (p *Pool[T]) Put(v T) {
	p.free <- v
}
