package tess

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

func expandedArea(positions []Point, indices []uint32) float32 {
	var total float32
	for i := 0; i < len(indices)/3; i++ {
		a := positions[indices[3*i]]
		b := positions[indices[3*i+1]]
		c := positions[indices[3*i+2]]
		total += math32.Abs(b.Sub(a).Cross(c.Sub(a))) / 2
	}
	return total
}

func expandedBounds(positions []Point) Rect {
	return boundsOf(positions)
}

func hasPosition(positions []Point, want Point, tol float32) bool {
	for _, p := range positions {
		if p.Distance(want) <= tol {
			return true
		}
	}
	return false
}

func TestExpandStroke_SingleSegment(t *testing.T) {
	line := []Point{Pt(0, 0), Pt(10, 0)}
	style := DefaultStroke().WithWidth(2)

	positions, indices, err := ExpandStroke(line, false, style, 0.1)
	if err != nil {
		t.Fatalf("ExpandStroke() = %v", err)
	}
	// Butt caps: exactly the segment quad.
	if len(positions) != 4 || len(indices) != 6 {
		t.Fatalf("got %d positions %d indices, want 4 and 6", len(positions), len(indices))
	}
	if got := expandedArea(positions, indices); math32.Abs(got-20) > 1e-4 {
		t.Errorf("stroke area = %v, want 20", got)
	}
	b := expandedBounds(positions)
	if b.Min.Distance(Pt(0, -1)) > 1e-5 || b.Max.Distance(Pt(10, 1)) > 1e-5 {
		t.Errorf("bounds = %v, want [0,-1]..[10,1]", b)
	}
}

func TestExpandStroke_SquareCap(t *testing.T) {
	line := []Point{Pt(0, 0), Pt(10, 0)}
	style := DefaultStroke().WithWidth(2).WithCap(LineCapSquare)

	positions, indices, err := ExpandStroke(line, false, style, 0.1)
	if err != nil {
		t.Fatalf("ExpandStroke() = %v", err)
	}
	// Each square cap extends the stroke by half the width.
	b := expandedBounds(positions)
	if math32.Abs(b.Min.X+1) > 1e-5 || math32.Abs(b.Max.X-11) > 1e-5 {
		t.Errorf("bounds X = [%v, %v], want [-1, 11]", b.Min.X, b.Max.X)
	}
	if got := expandedArea(positions, indices); math32.Abs(got-24) > 1e-4 {
		t.Errorf("stroke area = %v, want 24", got)
	}
}

func TestExpandStroke_RoundCap(t *testing.T) {
	line := []Point{Pt(0, 0), Pt(10, 0)}
	style := DefaultStroke().WithWidth(2).WithCap(LineCapRound)

	positions, indices, err := ExpandStroke(line, false, style, 0.01)
	if err != nil {
		t.Fatalf("ExpandStroke() = %v", err)
	}
	// Two semicircles of radius 1 add ~pi to the rectangle's 20. The fan
	// underestimates the disc slightly, so allow a one-sided margin.
	got := expandedArea(positions, indices)
	want := 20 + math32.Pi
	if got > want+1e-3 || got < want-0.2 {
		t.Errorf("stroke area = %v, want ~%v", got, want)
	}
	// No cap vertex may leave the stadium shape.
	for i, p := range positions {
		if p.X >= 0 && p.X <= 10 {
			continue
		}
		end := Pt(0, 0)
		if p.X > 10 {
			end = Pt(10, 0)
		}
		if p.Distance(end) > 1+1e-4 {
			t.Errorf("position %d = %v escapes the round cap", i, p)
		}
	}
}

func TestExpandStroke_MiterJoin(t *testing.T) {
	corner := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10)}
	style := DefaultStroke().WithWidth(2) // miter, limit 4

	positions, indices, err := ExpandStroke(corner, false, style, 0.1)
	if err != nil {
		t.Fatalf("ExpandStroke() = %v", err)
	}
	// Two quads plus the two-triangle miter wedge.
	if len(indices) != 2*6+2*3 {
		t.Fatalf("got %d indices, want 18", len(indices))
	}
	// The miter tip of a right-angle corner sits at the outer corner.
	if !hasPosition(positions, Pt(11, -1), 1e-4) {
		t.Error("miter tip (11, -1) missing from positions")
	}
	// Quads 20+20 plus the unit wedge.
	if got := expandedArea(positions, indices); math32.Abs(got-41) > 1e-3 {
		t.Errorf("stroke area = %v, want 41", got)
	}
}

func TestExpandStroke_BevelJoin(t *testing.T) {
	corner := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10)}
	style := DefaultStroke().WithWidth(2).WithJoin(LineJoinBevel)

	positions, indices, err := ExpandStroke(corner, false, style, 0.1)
	if err != nil {
		t.Fatalf("ExpandStroke() = %v", err)
	}
	// Two quads plus a single bevel triangle.
	if len(indices) != 2*6+3 {
		t.Fatalf("got %d indices, want 15", len(indices))
	}
	// The bevel cuts the corner: the miter tip must not appear.
	if hasPosition(positions, Pt(11, -1), 1e-4) {
		t.Error("bevel join produced the miter tip")
	}
}

func TestExpandStroke_MiterLimitFallsBackToBevel(t *testing.T) {
	// A nearly reversed direction has a miter ratio far above the limit.
	sharp := []Point{Pt(0, 0), Pt(10, 0), Pt(0, 0.5)}
	style := DefaultStroke().WithWidth(2).WithMiterLimit(4)

	_, indices, err := ExpandStroke(sharp, false, style, 0.1)
	if err != nil {
		t.Fatalf("ExpandStroke() = %v", err)
	}
	// Fallback emits the single bevel triangle, not the two miter ones.
	if len(indices) != 2*6+3 {
		t.Errorf("got %d indices, want 15 (bevel fallback)", len(indices))
	}
}

func TestExpandStroke_RoundJoin(t *testing.T) {
	corner := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10)}
	style := DefaultStroke().WithWidth(2).WithJoin(LineJoinRound)

	positions, indices, err := ExpandStroke(corner, false, style, 0.01)
	if err != nil {
		t.Fatalf("ExpandStroke() = %v", err)
	}
	if len(indices)%3 != 0 {
		t.Fatalf("index count %d not a multiple of 3", len(indices))
	}
	// The round wedge is a quarter disc of radius 1: pi/4, slightly under.
	got := expandedArea(positions, indices)
	want := 40 + math32.Pi/4
	if got > want+1e-3 || got < want-0.1 {
		t.Errorf("stroke area = %v, want ~%v", got, want)
	}
	// Fan vertices stay on the half-width circle around the corner.
	for _, p := range positions {
		d := p.Distance(Pt(10, 0))
		if p.X > 10 && p.Y < 0 && math32.Abs(d-1) > 1e-3 {
			t.Errorf("fan vertex %v at distance %v from corner, want 1", p, d)
		}
	}
}

func TestExpandStroke_ClosedRing(t *testing.T) {
	square := []Point{Pt(0, 0), Pt(4, 0), Pt(4, 4), Pt(0, 4)}
	style := DefaultStroke().WithWidth(1)

	positions, indices, err := ExpandStroke(square, true, style, 0.1)
	if err != nil {
		t.Fatalf("ExpandStroke() = %v", err)
	}
	// Four segment quads and four miter joins, no caps.
	if len(indices) != 4*6+4*6 {
		t.Fatalf("got %d indices, want 48", len(indices))
	}
	// Quads 4x4 plus four corner wedges of 0.25 each.
	if got := expandedArea(positions, indices); math32.Abs(got-17) > 1e-3 {
		t.Errorf("stroke area = %v, want 17", got)
	}
	b := expandedBounds(positions)
	if b.Min.Distance(Pt(-0.5, -0.5)) > 1e-4 || b.Max.Distance(Pt(4.5, 4.5)) > 1e-4 {
		t.Errorf("bounds = %v, want [-0.5,-0.5]..[4.5,4.5]", b)
	}
}

func TestExpandStroke_Degenerate(t *testing.T) {
	style := DefaultStroke().WithWidth(2)

	t.Run("zero width", func(t *testing.T) {
		_, _, err := ExpandStroke([]Point{Pt(0, 0), Pt(1, 0)}, false, DefaultStroke().WithWidth(0), 0.1)
		if !errors.Is(err, ErrDegenerateInput) {
			t.Errorf("ExpandStroke() = %v, want ErrDegenerateInput", err)
		}
	})

	t.Run("single point", func(t *testing.T) {
		_, _, err := ExpandStroke([]Point{Pt(0, 0)}, false, style, 0.1)
		if !errors.Is(err, ErrDegenerateInput) {
			t.Errorf("ExpandStroke() = %v, want ErrDegenerateInput", err)
		}
	})

	t.Run("coincident points", func(t *testing.T) {
		_, _, err := ExpandStroke([]Point{Pt(1, 1), Pt(1, 1), Pt(1, 1)}, false, style, 0.1)
		if !errors.Is(err, ErrDegenerateInput) {
			t.Errorf("ExpandStroke() = %v, want ErrDegenerateInput", err)
		}
	})

	t.Run("repeated points collapse to fast path", func(t *testing.T) {
		pts := []Point{Pt(0, 0), Pt(0, 0), Pt(10, 0), Pt(10, 0)}
		positions, indices, err := ExpandStroke(pts, false, style, 0.1)
		if err != nil {
			t.Fatalf("ExpandStroke() = %v", err)
		}
		if len(positions) != 4 || len(indices) != 6 {
			t.Errorf("got %d positions %d indices, want 4 and 6", len(positions), len(indices))
		}
	})
}

func TestExpandStroke_CollinearRunSkipsJoin(t *testing.T) {
	line := []Point{Pt(0, 0), Pt(5, 0), Pt(10, 0)}
	style := DefaultStroke().WithWidth(2)

	_, indices, err := ExpandStroke(line, false, style, 0.1)
	if err != nil {
		t.Fatalf("ExpandStroke() = %v", err)
	}
	// A straight continuation needs no join geometry.
	if len(indices) != 2*6 {
		t.Errorf("got %d indices, want 12", len(indices))
	}
}
