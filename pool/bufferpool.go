// File: pool/bufferpool.go
// Package pool provides a sync.Pool-backed api.BufferPool implementation
// for per-session receive/send scratch space.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Adapted from the teacher's pool/base_bufferpool.go: a size-classed pool
// keyed by the smallest power-of-two >= the requested size, avoiding the
// NUMA-node sharding this module's general-purpose hosts do not need.

package pool

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/netcore/api"
)

// BufferPool recycles []byte scratch buffers in power-of-two size classes.
type BufferPool struct {
	mu      sync.Mutex
	classes map[int]*sync.Pool

	totalAlloc int64
	totalFree  int64
	inUse      int64
}

// New constructs an empty BufferPool.
func New() *BufferPool {
	return &BufferPool{classes: make(map[int]*sync.Pool)}
}

// classFor returns the smallest power-of-two >= size (minimum 64).
func classFor(size int) int {
	c := 64
	for c < size {
		c *= 2
	}
	return c
}

func (p *BufferPool) poolFor(class int) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	sp, ok := p.classes[class]
	if !ok {
		cls := class
		sp = &sync.Pool{New: func() any { return make([]byte, cls) }}
		p.classes[class] = sp
	}
	return sp
}

// Get returns a Buffer of at least size bytes. numaPreferred is accepted
// for api.BufferPool compatibility and otherwise ignored.
func (p *BufferPool) Get(size int, numaPreferred int) api.Buffer {
	class := classFor(size)
	raw := p.poolFor(class).Get().([]byte)
	atomic.AddInt64(&p.totalAlloc, 1)
	atomic.AddInt64(&p.inUse, 1)
	return api.Buffer{Data: raw[:size], NUMA: -1, Pool: p, Class: class}
}

// Put returns b to the pool sized for its class.
func (p *BufferPool) Put(b api.Buffer) {
	if b.Data == nil {
		return
	}
	class := b.Class
	if class == 0 {
		class = classFor(cap(b.Data))
	}
	p.poolFor(class).Put(b.Data[:cap(b.Data)])
	atomic.AddInt64(&p.totalFree, 1)
	atomic.AddInt64(&p.inUse, -1)
}

// Stats reports current allocation counters.
func (p *BufferPool) Stats() api.BufferPoolStats {
	return api.BufferPoolStats{
		TotalAlloc: atomic.LoadInt64(&p.totalAlloc),
		TotalFree:  atomic.LoadInt64(&p.totalFree),
		InUse:      atomic.LoadInt64(&p.inUse),
	}
}

var _ api.BufferPool = (*BufferPool)(nil)
