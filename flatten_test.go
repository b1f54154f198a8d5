package tess

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

func mustBuild(t *testing.T, b *PathBuilder) *Path {
	t.Helper()
	p, err := b.Build()
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	return p
}

func TestFlatten_Line(t *testing.T) {
	path := mustBuild(t, BuildPath().MoveTo(0, 0).LineTo(10, 0).LineTo(10, 5))

	flat, err := path.Flatten(0.1)
	if err != nil {
		t.Fatalf("Flatten() = %v", err)
	}
	if len(flat.Subpaths) != 1 {
		t.Fatalf("got %d subpaths, want 1", len(flat.Subpaths))
	}
	sp := flat.Subpaths[0]
	if sp.Closed {
		t.Error("open polyline marked closed")
	}
	want := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 5)}
	got := flat.Points[sp.Start:sp.End]
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFlatten_ClosedRingDropsDuplicate(t *testing.T) {
	path := mustBuild(t, BuildPath().
		MoveTo(0, 0).LineTo(1, 0).LineTo(1, 1).LineTo(0, 0).Close())

	flat, err := path.Flatten(0.1)
	if err != nil {
		t.Fatalf("Flatten() = %v", err)
	}
	sp := flat.Subpaths[0]
	if !sp.Closed {
		t.Error("closed subpath not marked closed")
	}
	ring := flat.Points[sp.Start:sp.End]
	// The explicit return to the start must not survive as a duplicate.
	if len(ring) != 3 {
		t.Errorf("ring has %d points, want 3", len(ring))
	}
}

func TestFlatten_QuadWithinTolerance(t *testing.T) {
	p0, p1, p2 := Pt(0, 0), Pt(5, 10), Pt(10, 0)
	path := mustBuild(t, BuildPath().MoveTo(p0.X, p0.Y).QuadTo(p1.X, p1.Y, p2.X, p2.Y))

	const tolerance = 0.1
	flat, err := path.Flatten(tolerance)
	if err != nil {
		t.Fatalf("Flatten() = %v", err)
	}
	points := flat.Points
	if len(points) < 3 {
		t.Fatalf("curve flattened to %d points, want several", len(points))
	}

	// Every flattened point must lie within tolerance of the true curve.
	// Sample the curve densely and check the nearest sample.
	quadAt := func(t float32) Point {
		a := p0.Lerp(p1, t)
		b := p1.Lerp(p2, t)
		return a.Lerp(b, t)
	}
	for i, pt := range points {
		best := float32(math32.MaxFloat32)
		for s := 0; s <= 1000; s++ {
			d := pt.Distance(quadAt(float32(s) / 1000))
			if d < best {
				best = d
			}
		}
		if best > tolerance*1.01 {
			t.Errorf("point %d is %v from the curve, tolerance %v", i, best, tolerance)
		}
	}
}

func TestFlatten_ToleranceMonotonicity(t *testing.T) {
	// Tighter tolerance never yields fewer points.
	build := func() *Path {
		return mustBuild(t, BuildPath().
			MoveTo(0, 0).CubicTo(0, 50, 100, 50, 100, 0))
	}

	var prev int
	for i, tol := range []float32{4, 1, 0.25, 0.0625} {
		flat, err := build().Flatten(tol)
		if err != nil {
			t.Fatalf("Flatten(%v) = %v", tol, err)
		}
		if i > 0 && len(flat.Points) < prev {
			t.Errorf("tolerance %v produced %d points, fewer than %d at looser tolerance",
				tol, len(flat.Points), prev)
		}
		prev = len(flat.Points)
	}
}

func TestFlatten_Arc(t *testing.T) {
	// A full quarter circle of radius 10 about the origin.
	path := mustBuild(t, BuildPath().
		MoveTo(10, 0).ArcTo(0, 0, 10, 0, math32.Pi/2))

	const tolerance = 0.05
	flat, err := path.Flatten(tolerance)
	if err != nil {
		t.Fatalf("Flatten() = %v", err)
	}
	points := flat.Points
	if len(points) < 4 {
		t.Fatalf("arc flattened to %d points, want several", len(points))
	}

	// All points stay on the circle; midpoints of segments stay within
	// tolerance of it.
	for i, pt := range points {
		r := pt.Distance(Pt(0, 0))
		if math32.Abs(r-10) > 1e-3 {
			t.Errorf("point %d radius = %v, want 10", i, r)
		}
		if i > 0 {
			mid := points[i-1].Lerp(pt, 0.5)
			sag := 10 - mid.Distance(Pt(0, 0))
			if sag > tolerance*1.01 {
				t.Errorf("segment %d sagitta = %v, tolerance %v", i, sag, tolerance)
			}
		}
	}

	last := points[len(points)-1]
	if last.Distance(Pt(0, 10)) > 1e-3 {
		t.Errorf("arc ends at %v, want (0, 10)", last)
	}
}

func TestFlatten_MultipleSubpaths(t *testing.T) {
	path := mustBuild(t, BuildPath().
		MoveTo(0, 0).LineTo(1, 0).LineTo(1, 1).Close().
		MoveTo(10, 10).LineTo(12, 10))

	flat, err := path.Flatten(0.1)
	if err != nil {
		t.Fatalf("Flatten() = %v", err)
	}
	if len(flat.Subpaths) != 2 {
		t.Fatalf("got %d subpaths, want 2", len(flat.Subpaths))
	}
	if !flat.Subpaths[0].Closed {
		t.Error("first subpath should be closed")
	}
	if flat.Subpaths[1].Closed {
		t.Error("second subpath should be open")
	}
}

func TestFlatten_Bounds(t *testing.T) {
	path := mustBuild(t, BuildPath().Rect(5, -3, 20, 8))

	flat, err := path.Flatten(0.1)
	if err != nil {
		t.Fatalf("Flatten() = %v", err)
	}
	if flat.Bounds.Min != Pt(5, -3) || flat.Bounds.Max != Pt(25, 5) {
		t.Errorf("Bounds = %v, want min (5,-3) max (25,5)", flat.Bounds)
	}
}

func TestFlatten_EmptyPath(t *testing.T) {
	var p Path
	_, err := p.Flatten(0.1)
	if !errors.Is(err, ErrDegenerateInput) {
		t.Errorf("Flatten() = %v, want ErrDegenerateInput", err)
	}
}

func TestFlatten_DefaultTolerance(t *testing.T) {
	path := mustBuild(t, BuildPath().Circle(0, 0, 10))

	// A non-positive tolerance selects the default instead of failing.
	flat, err := path.Flatten(0)
	if err != nil {
		t.Fatalf("Flatten(0) = %v", err)
	}
	if len(flat.Points) < 8 {
		t.Errorf("circle flattened to %d points, want several", len(flat.Points))
	}
}

func TestArcSegmentCount(t *testing.T) {
	tests := []struct {
		name      string
		radius    float32
		sweep     float32
		tolerance float32
		wantMin   int
		wantMax   int
	}{
		{"coarse tolerance", 10, math32.Pi, 10, 1, 1},
		{"quarter circle", 10, math32.Pi / 2, 0.1, 5, 20},
		{"tiny tolerance clamps", 1000, 2 * math32.Pi, 1e-7, maxArcSegments, maxArcSegments},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := arcSegmentCount(tt.radius, tt.sweep, tt.tolerance)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("arcSegmentCount() = %d, want in [%d, %d]", got, tt.wantMin, tt.wantMax)
			}
		})
	}
}
