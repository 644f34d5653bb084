package qb

import (
	"regexp"
	"testing"
)

func TestSequentialKeys(t *testing.T) {
	g := SequentialKeys()
	for _, want := range []string{"p1", "p2", "p3"} {
		if got := g.Next(); got != want {
			t.Errorf("got %s, want %s", got, want)
		}
	}
	// every generator starts over
	if got := SequentialKeys().Next(); got != "p1" {
		t.Errorf("got %s, want p1", got)
	}
}

func TestRandomKeys(t *testing.T) {
	re := regexp.MustCompile(`^param[0-9a-f]{10}$`)
	g := RandomKeys()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		k := g.Next()
		if !re.MatchString(k) {
			t.Fatalf("unexpected key %q", k)
		}
		seen[k] = true
	}
	if len(seen) < 99 {
		t.Errorf("too many duplicated keys: %d unique of 100", len(seen))
	}
}
