package buffer_test

import (
	"testing"

	"github.com/momentics/netcore/buffer"
)

func TestAppendGrowsAndPreservesContent(t *testing.T) {
	c := buffer.NewWithCapacity(4)
	c.AppendString("hello")
	c.AppendByte(' ')
	c.AppendString("world")
	if got := string(c.AsReadOnlySpan()); got != "hello world" {
		t.Fatalf("got %q", got)
	}
	if c.Capacity() < c.Size() {
		t.Fatalf("capacity %d < size %d", c.Capacity(), c.Size())
	}
}

func TestResizeGrowsAddressableRegion(t *testing.T) {
	c := buffer.New()
	c.AppendString("abc")
	c.Resize(10)
	if c.Size() != 10 {
		t.Fatalf("size = %d, want 10", c.Size())
	}
	// [0:3] must still read back the original content.
	if got := c.ExtractString(0, 3); got != "abc" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractStringBounds(t *testing.T) {
	c := buffer.New()
	c.AppendString("hello")
	if got := c.ExtractString(1, 3); got != "ell" {
		t.Fatalf("got %q", got)
	}
	if got := c.ExtractString(1, 100); got != "" {
		t.Fatalf("out-of-range extract should be empty, got %q", got)
	}
}

func TestAppendCharUTF8(t *testing.T) {
	c := buffer.New()
	c.AppendChar('日')
	if got := c.ExtractString(0, c.Size()); got != "日" {
		t.Fatalf("got %q", got)
	}
}

func TestClearResetsSizeNotCapacity(t *testing.T) {
	c := buffer.New()
	c.AppendString("some bytes")
	cap0 := c.Capacity()
	c.Clear()
	if c.Size() != 0 {
		t.Fatalf("size after clear = %d", c.Size())
	}
	if c.Capacity() != cap0 {
		t.Fatalf("capacity changed after clear: %d vs %d", c.Capacity(), cap0)
	}
}
