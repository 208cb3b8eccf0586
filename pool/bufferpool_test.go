package pool_test

import (
	"testing"

	"github.com/momentics/netcore/pool"
)

func TestGetPutRoundTrip(t *testing.T) {
	p := pool.New()
	b := p.Get(100, -1)
	if len(b.Bytes()) != 100 {
		t.Fatalf("len = %d, want 100", len(b.Bytes()))
	}
	b.Release()
	stats := p.Stats()
	if stats.TotalAlloc != 1 || stats.TotalFree != 1 || stats.InUse != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestGetReusesReleasedBuffer(t *testing.T) {
	p := pool.New()
	b1 := p.Get(50, -1)
	b1.Release()
	b2 := p.Get(50, -1)
	if cap(b2.Bytes()) < 64 {
		t.Fatalf("expected size-classed capacity, got %d", cap(b2.Bytes()))
	}
}
