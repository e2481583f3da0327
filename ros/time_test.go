package ros

import (
	"testing"
	gotime "time"
)

func TestNewTime(t *testing.T) {
	t1 := NewTime(1, 2)
	if t1.Sec != 1 || t1.NSec != 2 {
		t.Error(t1)
	}
	t2 := NewTime(1, 1500000000)
	if t2.Sec != 2 || t2.NSec != 500000000 {
		t.Error(t2)
	}
}

func TestTimeArithmetic(t *testing.T) {
	var t1 Time
	t1.FromNSec(500000000)
	var d Duration
	d.FromNSec(800000000)

	t2 := t1.Add(d)
	if t2.Sec != 1 || t2.NSec != 300000000 {
		t.Error(t2)
	}
	t3 := t2.Sub(d)
	if t3.Cmp(t1) != 0 {
		t.Error(t3)
	}
	diff := t1.Diff(t2)
	if diff.ToNSec() != -800000000 {
		t.Error(diff)
	}
	if t1.Cmp(t2) != -1 || t2.Cmp(t1) != 1 {
		t.Fail()
	}
}

func TestTimeFromGo(t *testing.T) {
	g := gotime.Unix(1600000000, 123456789)
	rt := TimeFromGo(g)
	if rt.Sec != 1600000000 || rt.NSec != 123456789 {
		t.Error(rt)
	}
	if !rt.Go().Equal(g) {
		t.Error(rt.Go())
	}
	if rt.String() != "1600000000.123456789" {
		t.Error(rt.String())
	}
}

func TestTimeIsZero(t *testing.T) {
	var zero Time
	if !zero.IsZero() {
		t.Fail()
	}
	if NewTime(0, 1).IsZero() {
		t.Fail()
	}
}
