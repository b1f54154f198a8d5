package tess

import "testing"

func TestRect_Empty(t *testing.T) {
	e := EmptyRect()
	if !e.IsEmpty() {
		t.Error("EmptyRect().IsEmpty() = false")
	}
	if NewRect(Pt(0, 0), Pt(1, 1)).IsEmpty() {
		t.Error("unit rect reports empty")
	}

	// Union with an empty rect is an identity.
	r := NewRect(Pt(1, 2), Pt(3, 4))
	if got := e.Union(r); got != r {
		t.Errorf("EmptyRect().Union(r) = %v, want %v", got, r)
	}
}

func TestRect_UnionPoint(t *testing.T) {
	r := EmptyRect()
	for _, p := range []Point{Pt(2, 3), Pt(-1, 5), Pt(4, 0)} {
		r = r.UnionPoint(p)
	}
	if r.Min != Pt(-1, 0) || r.Max != Pt(4, 5) {
		t.Errorf("accumulated bounds = %v, want [-1,0]..[4,5]", r)
	}
	if r.Width() != 5 || r.Height() != 5 {
		t.Errorf("extent = %vx%v, want 5x5", r.Width(), r.Height())
	}
}

func TestRect_Contains(t *testing.T) {
	r := NewRect(Pt(0, 0), Pt(10, 10))
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", Pt(5, 5), true},
		{"min corner", Pt(0, 0), true},
		{"max corner", Pt(10, 10), true},
		{"outside left", Pt(-1, 5), false},
		{"outside above", Pt(5, 11), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestBoundsOf(t *testing.T) {
	if got := boundsOf(nil); !got.IsEmpty() {
		t.Errorf("boundsOf(nil) = %v, want empty", got)
	}
	got := boundsOf([]Point{Pt(3, 1), Pt(-2, 4)})
	if got.Min != Pt(-2, 1) || got.Max != Pt(3, 4) {
		t.Errorf("boundsOf = %v, want [-2,1]..[3,4]", got)
	}
}
