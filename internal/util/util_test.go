package util

import (
	"reflect"
	"testing"
)

func TestIndex(t *testing.T) {
	s := []string{"a", "b", "a"}
	if got := Index(s, "a"); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
	if got := Index(s, "c"); got != -1 {
		t.Errorf("got %d, want -1", got)
	}
}

func TestMap(t *testing.T) {
	got := Map([]string{"a", "b"}, func(s string) any { return s })
	if !reflect.DeepEqual(got, []any{"a", "b"}) {
		t.Errorf("got %v", got)
	}
	if Map[int, int](nil, func(i int) int { return i }) != nil {
		t.Error("want nil")
	}
}
