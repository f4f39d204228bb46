package pcsaves_test

import (
	"testing"

	"pcsaves/pkg/pcsaves"
)

func TestNumPieces(t *testing.T) {
	got, err := pcsaves.NumPieces(10, 4, 1)
	if err != nil {
		t.Fatalf("NumPieces: %v", err)
	}
	if got != 11 {
		t.Errorf("NumPieces(10,4,1) = %d, want 11", got)
	}

	if _, err := pcsaves.NumPieces(10, 3, 1); err == nil {
		t.Error("expected error for area not divisible by 4")
	}
}

func TestPCNUM2LONUM(t *testing.T) {
	cases := []struct {
		k    int
		want int
	}{
		{1, 6},
		{2, 3},
		{3, 7},
		{9, 3},
	}
	for _, c := range cases {
		got, err := pcsaves.PCNUM2LONUM(c.k)
		if err != nil {
			t.Fatalf("PCNUM2LONUM(%d): %v", c.k, err)
		}
		if got != c.want {
			t.Errorf("PCNUM2LONUM(%d) = %d, want %d", c.k, got, c.want)
		}
		if got < 1 || got > 7 {
			t.Errorf("PCNUM2LONUM(%d) = %d out of [1,7]", c.k, got)
		}
	}

	if _, err := pcsaves.PCNUM2LONUM(0); err == nil {
		t.Error("expected error for pc number 0")
	}
	if _, err := pcsaves.PCNUM2LONUM(10); err == nil {
		t.Error("expected error for pc number 10")
	}
}

func TestBagComposition(t *testing.T) {
	comp, err := pcsaves.BagComposition(1, 11)
	if err != nil {
		t.Fatalf("BagComposition: %v", err)
	}
	want := []int{1, 7, 3}
	if len(comp) != len(want) {
		t.Fatalf("BagComposition = %v, want %v", comp, want)
	}
	for i := range want {
		if comp[i] != want[i] {
			t.Errorf("BagComposition = %v, want %v", comp, want)
		}
	}
}

func TestLeadingSize(t *testing.T) {
	if got := pcsaves.LeadingSize([]int{1, 7, 3}); got != 8 {
		t.Errorf("LeadingSize = %d, want 8", got)
	}
}
