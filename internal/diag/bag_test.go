package diag

import (
	"testing"

	"srcdep/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)

	if !bag.Add(NewError(DirUnknown, source.Span{}, "one")) {
		t.Error("first Add rejected")
	}
	if !bag.Add(NewError(DirUnknown, source.Span{}, "two")) {
		t.Error("second Add rejected")
	}
	if bag.Add(NewError(DirUnknown, source.Span{}, "three")) {
		t.Error("Add over limit accepted")
	}
	if bag.Len() != 2 {
		t.Errorf("Len = %d, want 2", bag.Len())
	}
}

func TestBagHasErrorsAndFatal(t *testing.T) {
	bag := NewBag(10)
	bag.Add(New(SevWarning, DirUnknown, source.Span{}, "odd keyword"))

	if bag.HasErrors() {
		t.Error("warning-only bag reports errors")
	}
	if !bag.HasWarnings() {
		t.Error("bag does not report warnings")
	}
	if bag.HasFatal() {
		t.Error("warning-only bag reports fatal")
	}

	bag.Add(NewError(DirMalformed, source.Span{}, "bad default"))
	if !bag.HasErrors() {
		t.Error("bag does not report errors")
	}
	if bag.HasFatal() {
		t.Error("malformed directive must not be fatal")
	}

	bag.Add(NewError(SwUnknownSwitch, source.Span{}, "no such switch"))
	if !bag.HasFatal() {
		t.Error("unknown switch must be fatal")
	}
}

func TestBagSortDeterministic(t *testing.T) {
	mk := func() *Bag {
		bag := NewBag(10)
		bag.Add(NewError(DirMalformed, source.Span{File: 1, Start: 5, End: 9}, "b"))
		bag.Add(NewError(DirUnknown, source.Span{File: 0, Start: 7, End: 9}, "c"))
		bag.Add(NewError(SwDuplicateSwitch, source.Span{File: 0, Start: 2, End: 4}, "a"))
		bag.Sort()
		return bag
	}

	first, second := mk(), mk()
	for i := range first.Items() {
		if first.Items()[i].Code != second.Items()[i].Code {
			t.Fatalf("sort order differs at %d", i)
		}
	}

	items := first.Items()
	if items[0].Code != SwDuplicateSwitch || items[1].Code != DirUnknown || items[2].Code != DirMalformed {
		t.Errorf("unexpected order: %v %v %v", items[0].Code, items[1].Code, items[2].Code)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(10)
	sp := source.Span{File: 0, Start: 4, End: 14}
	bag.Add(NewError(DirMalformed, sp, "bad default"))
	bag.Add(NewError(DirMalformed, sp, "bad default"))
	bag.Add(NewError(DirUnknown, sp, "other"))

	bag.Dedup()
	if bag.Len() != 2 {
		t.Errorf("Len after Dedup = %d, want 2", bag.Len())
	}
}

func TestBagMerge(t *testing.T) {
	a := NewBag(1)
	b := NewBag(2)
	a.Add(NewError(DirUnknown, source.Span{}, "x"))
	b.Add(NewError(DirMalformed, source.Span{}, "y"))
	b.Add(NewError(SwUnknownSwitch, source.Span{}, "z"))

	a.Merge(b)
	if a.Len() != 3 {
		t.Errorf("Len after Merge = %d, want 3", a.Len())
	}
}

func TestCodeIDs(t *testing.T) {
	cases := []struct {
		code Code
		id   string
	}{
		{DirUnknown, "DIR1001"},
		{DirMalformed, "DIR1002"},
		{SwDuplicateSwitch, "SW2001"},
		{SwUnknownSwitch, "SW2002"},
		{IOLoadFileError, "IO3001"},
		{ObsTimings, "OBS4001"},
	}
	for _, c := range cases {
		if got := c.code.ID(); got != c.id {
			t.Errorf("ID(%d) = %q, want %q", c.code, got, c.id)
		}
	}
}
