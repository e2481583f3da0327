package ros

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDifference(t *testing.T) {
	a := []string{"a", "b", "c", "a", "c"}
	b := []string{"a", "b", "d", "e"}

	if diff := cmp.Diff([]string{"c"}, setDifference(a, b)); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff([]string{"d", "e"}, setDifference(b, a)); diff != "" {
		t.Error(diff)
	}
	if got := setDifference(nil, a); len(got) != 0 {
		t.Error(got)
	}
}
