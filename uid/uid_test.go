package uid_test

import (
	"testing"

	"github.com/momentics/netcore/uid"
)

func TestNewIsUniqueAndStable(t *testing.T) {
	a := uid.New()
	b := uid.New()
	if a == b {
		t.Fatal("two calls to New produced the same UID")
	}
	if a.IsZero() || b.IsZero() {
		t.Fatal("New must never return the zero UID")
	}
	if a.String() != a.String() {
		t.Fatal("String must be stable")
	}
}

func TestStringFormat(t *testing.T) {
	u := uid.New()
	s := u.String()
	if len(s) != 36 {
		t.Fatalf("length = %d, want 36", len(s))
	}
	for _, i := range []int{8, 13, 18, 23} {
		if s[i] != '-' {
			t.Fatalf("expected hyphen at %d, got %q", i, s[i])
		}
	}
}
