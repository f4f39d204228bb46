package pcsaves_test

import (
	"testing"

	"pcsaves/pkg/pcsaves"
)

func TestIsQueue(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"TILJSZO", true},
		{"", false},
		{"TXO", false},
		{"ttt", false},
	}
	for _, c := range cases {
		if got := pcsaves.IsQueue(c.in); got != c.want {
			t.Errorf("IsQueue(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSortQueue(t *testing.T) {
	got := pcsaves.SortQueue("OZSJLIT")
	want := "TILJSZO"
	if got != want {
		t.Errorf("SortQueue() = %q, want %q", got, want)
	}
}

func TestQueueValue(t *testing.T) {
	got, err := pcsaves.QueueValue("TO")
	if err != nil {
		t.Fatalf("QueueValue: %v", err)
	}
	if got != 17 {
		t.Errorf("QueueValue(TO) = %d, want 17", got)
	}
}

func TestCounterSub(t *testing.T) {
	a := pcsaves.NewCounter("TTO")
	b := pcsaves.NewCounter("T")
	diff := a.Sub(b)
	if diff.Total() != 2 {
		t.Errorf("diff total = %d, want 2", diff.Total())
	}
	if diff.Elements() != "TO" {
		t.Errorf("diff elements = %q, want TO", diff.Elements())
	}
}

func TestCounterLE(t *testing.T) {
	small := pcsaves.NewCounter("T")
	big := pcsaves.NewCounter("TO")
	if !small.LE(big) {
		t.Error("expected T <= TO")
	}
	if big.LE(small) {
		t.Error("expected TO > T")
	}
}

func TestPieceSetString(t *testing.T) {
	set := pcsaves.NewPieceSet("OT")
	if got := set.String(); got != "TO" {
		t.Errorf("PieceSet.String() = %q, want TO", got)
	}
}

func TestHasDuplicate(t *testing.T) {
	if pcsaves.HasDuplicate("TILJSZO") {
		t.Error("full bag should not have duplicates")
	}
	if !pcsaves.HasDuplicate("TT") {
		t.Error("TT should have a duplicate")
	}
}
