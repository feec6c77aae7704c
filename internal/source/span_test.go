package source

import "testing"

func TestSpanBasics(t *testing.T) {
	s := Span{File: 1, Start: 4, End: 9}

	if s.Empty() {
		t.Error("non-empty span reported Empty")
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
	if s.String() != "1:4-9" {
		t.Errorf("String() = %q", s.String())
	}

	empty := Span{File: 1, Start: 4, End: 4}
	if !empty.Empty() {
		t.Error("empty span not reported Empty")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 0, Start: 10, End: 20}
	b := Span{File: 0, Start: 5, End: 15}

	got := a.Cover(b)
	want := Span{File: 0, Start: 5, End: 20}
	if got != want {
		t.Errorf("Cover = %+v, want %+v", got, want)
	}

	// Different file: untouched.
	c := Span{File: 1, Start: 0, End: 100}
	if got := a.Cover(c); got != a {
		t.Errorf("Cover across files = %+v, want %+v", got, a)
	}
}
