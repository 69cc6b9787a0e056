package model

import "testing"

func TestSnapshotPoolSizes(t *testing.T) {
	pool := NewSnapshotPool()

	small := pool.Get(4)
	if len(small) != 4 {
		t.Fatalf("len = %d, expected 4", len(small))
	}
	pool.Put(small)

	big := pool.Get(100)
	if len(big) != 100 {
		t.Fatalf("len = %d, expected 100", len(big))
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	cells := []denseCell{{alive: true, neighbors: 2}, {neighbors: 1}}
	for _, pool := range []*SnapshotPool{nil, NewSnapshotPool()} {
		snap := snapshotOf(cells, pool)
		snap[0].alive = false
		if !cells[0].alive {
			t.Fatalf("writing the snapshot changed the source")
		}
		if snap[1] != cells[1] {
			t.Fatalf("snapshot %v differs from source %v", snap[1], cells[1])
		}
		snapshotToPool(snap, pool)
	}
}
