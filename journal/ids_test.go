package journal

import (
	"testing"
	"time"
)

func TestGen(t *testing.T) {
	onnne := time.Date(2020, 1, 1, 0, 0, 0, int(time.Millisecond), time.UTC)
	twooo := time.Date(2020, 1, 1, 0, 0, 0, 2*int(time.Millisecond), time.UTC)

	g := NewGen(0x42)
	try(t, g, onnne, 0x0000000001420000)
	try(t, g, onnne, 0x0000000001420001)
	try(t, g, twooo, 0x0000000002420000)
	try(t, g, twooo, 0x0000000002420001)
}

func try(t *testing.T, g *Gen, at time.Time, e RecordID) {
	t.Helper()
	a := g.NewAt(at)
	if a != e {
		t.Errorf("** NewAt(%v) = %x, wanted %x", at, uint64(a), uint64(e))
	}
}

func TestGenMonotonic(t *testing.T) {
	g := NewGen(0)
	later := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	earlier := later.Add(-time.Hour)
	a := g.NewAt(later)
	b := g.NewAt(earlier)
	if b <= a {
		t.Errorf("** NewAt went backwards: %v then %v", a, b)
	}
}

func TestRecordIDRoundTrip(t *testing.T) {
	g := NewGen(7)
	id := g.NewAt(time.Date(2023, 3, 14, 15, 9, 26, 0, time.UTC))
	s := id.String()
	back, err := ParseRecordID(s)
	if err != nil {
		t.Fatalf("** ParseRecordID(%q) failed: %v", s, err)
	}
	if back != id {
		t.Errorf("** ParseRecordID(%q) = %v, wanted %v", s, back, id)
	}
	if got := id.Time(); !got.Equal(time.Date(2023, 3, 14, 15, 9, 26, 0, time.UTC)) {
		t.Errorf("** Time() = %v", got)
	}
}

func TestParseRecordIDRejectsGarbage(t *testing.T) {
	for _, s := range []string{"xyz", "123", "00000000000000zz"} {
		if _, err := ParseRecordID(s); err == nil {
			t.Errorf("** ParseRecordID(%q) succeeded, wanted error", s)
		}
	}
}
