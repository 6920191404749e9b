package pmap

import "sync"

//============================================= Scratch Pool


// slicePool recycles scratch []T slices for operations that build up a batch before applying it
// all at once, adapted from the reference mmcmap's node pool strategy of reusing fixed buffers
// instead of letting the allocator and GC churn through a fresh one on every call. Unlike a trie
// node, a slice handed out here never becomes part of a published Map, so recycling it carries none
// of structural sharing's aliasing hazards.
type slicePool[T any] struct {
	p sync.Pool
}

func newSlicePool[T any]() *slicePool[T] {
	return &slicePool[T]{
		p: sync.Pool{New: func() any { s := make([]T, 0, 16); return &s }},
	}
}

// get returns a zero-length slice backed by reused capacity when the pool has one on hand.
func (sp *slicePool[T]) get() []T {
	s := sp.p.Get().(*[]T)
	return (*s)[:0]
}

// put returns s to the pool for a future get to reuse its backing array.
func (sp *slicePool[T]) put(s []T) {
	s = s[:0]
	sp.p.Put(&s)
}
