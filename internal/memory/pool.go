package memory

import "sync"

// Pool keeps up to maxSize released slices of one length for reuse.
type Pool[T any] struct {
	slices  [][]T
	maxSize int
	mu      sync.Mutex
}

func NewPool[T any](maxSize int) *Pool[T] {
	return &Pool[T]{
		slices:  make([][]T, 0, maxSize),
		maxSize: maxSize,
	}
}

func (p *Pool[T]) Get() []T {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.slices) == 0 {
		return nil
	}

	s := p.slices[len(p.slices)-1]
	p.slices = p.slices[:len(p.slices)-1]
	return s
}

func (p *Pool[T]) Put(s []T) bool {
	if s == nil {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.slices) >= p.maxSize {
		return false
	}

	p.slices = append(p.slices, s)
	return true
}

func (p *Pool[T]) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.slices)
}

func (p *Pool[T]) Cleanup() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	count := len(p.slices)
	p.slices = p.slices[:0]
	return count
}
