package model

import "sync"

// SnapshotPool recycles the buffers DenseCachedBoard copies its cells into
// at the start of each step
type SnapshotPool struct {
	pool sync.Pool
}

// snapshots is shared by every DenseCachedBoard created with NewDenseCachedBoard
var snapshots = NewSnapshotPool()

func NewSnapshotPool() *SnapshotPool {
	return &SnapshotPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new([]denseCell)
			},
		},
	}
}

// Get retrieves a buffer of exactly size cells. Its contents are undefined.
func (p *SnapshotPool) Get(size int) []denseCell {
	buf := p.pool.Get().(*[]denseCell)
	if cap(*buf) < size {
		*buf = make([]denseCell, size)
	}
	return (*buf)[:size]
}

// Put returns a buffer to the pool for reuse
func (p *SnapshotPool) Put(cells []denseCell) {
	p.pool.Put(&cells)
}

// snapshotOf copies cells into a buffer from pool, or a fresh slice when pool is nil
func snapshotOf(cells []denseCell, pool *SnapshotPool) []denseCell {
	var snap []denseCell
	if pool != nil {
		snap = pool.Get(len(cells))
	} else {
		snap = make([]denseCell, len(cells))
	}
	copy(snap, cells)
	return snap
}

// snapshotToPool hands a snapshot back, doing nothing without a pool
func snapshotToPool(snap []denseCell, pool *SnapshotPool) {
	if pool == nil {
		return
	}

	pool.Put(snap)
}
