package tess

import (
	"fmt"

	"github.com/chewxy/math32"
)

const (
	// MaxFlattenPoints is the maximum number of points a flattened path may
	// hold across all subpaths.
	MaxFlattenPoints = 1 << 16

	// maxFlattenDepth bounds recursive curve subdivision. 16 halvings shrink
	// a curve's chord deviation by ~4^16, enough for any float32 tolerance;
	// the bound guarantees termination on pathological control points (NaN,
	// huge coordinates).
	maxFlattenDepth = 16

	// DefaultTolerance is the default maximum deviation, in coordinate
	// units, between a flattened polyline and the true curve.
	DefaultTolerance = 0.25
)

// Subpath marks a contiguous point range within a FlattenedPath.
type Subpath struct {
	// Start and End delimit Points[Start:End].
	Start, End int

	// Closed reports whether the subpath was closed with Close. Closed
	// subpath rings do not repeat their first point.
	Closed bool
}

// FlattenedPath is the result of flattening a Path at a tolerance: straight
// polyline points grouped into subpath ranges. It is transient, only alive
// between flattening and mesh construction.
type FlattenedPath struct {
	Points   []Point
	Subpaths []Subpath
	Bounds   Rect
}

// flattener accumulates flattened points with capacity checking.
type flattener struct {
	out       FlattenedPath
	tolerance float32
	subStart  int
	inSubpath bool
	err       error
}

// Flatten converts the path's curves into polyline subpaths, recursively
// subdividing quadratic/cubic/arc segments until their deviation from the
// true curve is below tolerance. A non-positive tolerance selects
// DefaultTolerance.
//
// Fails with ErrDegenerateInput on an empty path and ErrCapacityExceeded
// when the result would exceed MaxFlattenPoints.
func (p *Path) Flatten(tolerance float32) (*FlattenedPath, error) {
	if len(p.elements) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrDegenerateInput)
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	f := &flattener{tolerance: tolerance}
	f.out.Bounds = EmptyRect()

	var current, start Point
	for _, elem := range p.elements {
		if f.err != nil {
			return nil, f.err
		}
		switch e := elem.(type) {
		case MoveTo:
			f.endSubpath(false)
			f.push(e.Point)
			current = e.Point
			start = e.Point

		case LineTo:
			f.push(e.Point)
			current = e.Point

		case QuadTo:
			f.quad(current, e.Control, e.Point, 0)
			current = e.Point

		case CubicTo:
			f.cubic(current, e.Control1, e.Control2, e.Point, 0)
			current = e.Point

		case ArcTo:
			current = f.arc(current, e)

		case Close:
			f.endSubpath(true)
			current = start
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	f.endSubpath(false)

	if len(f.out.Points) == 0 {
		return nil, fmt.Errorf("%w: path flattened to no points", ErrDegenerateInput)
	}
	return &f.out, nil
}

// push appends a point, skipping consecutive duplicates and enforcing the
// point capacity.
func (f *flattener) push(p Point) {
	if f.err != nil {
		return
	}
	if f.inSubpath {
		last := f.out.Points[len(f.out.Points)-1]
		if last == p {
			return
		}
	}
	if len(f.out.Points) >= MaxFlattenPoints {
		f.err = fmt.Errorf("%w: flattened path exceeds %d points", ErrCapacityExceeded, MaxFlattenPoints)
		return
	}
	if !f.inSubpath {
		f.subStart = len(f.out.Points)
		f.inSubpath = true
	}
	f.out.Points = append(f.out.Points, p)
	f.out.Bounds = f.out.Bounds.UnionPoint(p)
}

// endSubpath finishes the current point range. Closing drops a trailing
// point that duplicates the ring's first point.
func (f *flattener) endSubpath(closed bool) {
	if !f.inSubpath || f.err != nil {
		f.inSubpath = false
		return
	}
	end := len(f.out.Points)
	if closed && end-f.subStart > 1 && f.out.Points[end-1] == f.out.Points[f.subStart] {
		f.out.Points = f.out.Points[:end-1]
		end--
	}
	if end > f.subStart {
		f.out.Subpaths = append(f.out.Subpaths, Subpath{Start: f.subStart, End: end, Closed: closed})
	}
	f.inSubpath = false
}

// quad recursively flattens a quadratic Bezier curve.
func (f *flattener) quad(p0, p1, p2 Point, depth int) {
	if depth >= maxFlattenDepth || distanceToLine(p1, p0, p2) < f.tolerance {
		f.push(p2)
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	mid := q0.Lerp(q1, 0.5)

	f.quad(p0, q0, mid, depth+1)
	f.quad(mid, q1, p2, depth+1)
}

// cubic recursively flattens a cubic Bezier curve using de Casteljau
// subdivision.
func (f *flattener) cubic(p0, p1, p2, p3 Point, depth int) {
	d1 := distanceToLine(p1, p0, p3)
	d2 := distanceToLine(p2, p0, p3)
	if depth >= maxFlattenDepth || math32.Max(d1, d2) < f.tolerance {
		f.push(p3)
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	mid := r0.Lerp(r1, 0.5)

	f.cubic(p0, q0, r0, mid, depth+1)
	f.cubic(mid, r1, q2, p3, depth+1)
}

// arc flattens a circular arc into line segments at the tolerance, first
// connecting the current point to the arc start when they differ. Returns
// the arc end point.
func (f *flattener) arc(current Point, a ArcTo) Point {
	if a.Radius <= 0 || a.SweepAngle == 0 {
		end := arcPoint(a.Center, a.Radius, a.StartAngle+a.SweepAngle)
		f.push(end)
		return end
	}

	segments := arcSegmentCount(a.Radius, a.SweepAngle, f.tolerance)
	step := a.SweepAngle / float32(segments)

	f.push(arcPoint(a.Center, a.Radius, a.StartAngle))
	for i := 1; i <= segments; i++ {
		f.push(arcPoint(a.Center, a.Radius, a.StartAngle+float32(i)*step))
	}
	return arcPoint(a.Center, a.Radius, a.StartAngle+a.SweepAngle)
}

// arcPoint evaluates a point on a circle.
func arcPoint(center Point, radius, angle float32) Point {
	return Point{
		X: center.X + radius*math32.Cos(angle),
		Y: center.Y + radius*math32.Sin(angle),
	}
}

// arcSegmentCount returns how many line segments approximate an arc of the
// given radius and sweep within tolerance. The chord of an arc spanning
// angle a deviates from the circle by r*(1-cos(a/2)), so the largest
// admissible step is 2*acos(1 - tol/r).
func arcSegmentCount(radius, sweep, tolerance float32) int {
	if tolerance >= radius {
		return 1
	}
	maxStep := 2 * math32.Acos(1-tolerance/radius)
	if maxStep <= 0 {
		return maxArcSegments
	}
	segments := int(math32.Ceil(math32.Abs(sweep) / maxStep))
	if segments < 1 {
		return 1
	}
	if segments > maxArcSegments {
		return maxArcSegments
	}
	return segments
}

// maxArcSegments caps arc subdivision against extreme radius/tolerance
// ratios.
const maxArcSegments = 256

// arcToCubics converts an arc element into cubic Bezier segments of at most
// 90 degrees each, used when transforming paths.
func arcToCubics(a ArcTo) []CubicTo {
	segments := int(math32.Ceil(math32.Abs(a.SweepAngle) / (math32.Pi / 2)))
	if segments < 1 {
		segments = 1
	}
	step := a.SweepAngle / float32(segments)

	out := make([]CubicTo, 0, segments)
	for i := 0; i < segments; i++ {
		a0 := a.StartAngle + float32(i)*step
		a1 := a0 + step

		// Control point distance for a cubic approximation of the arc
		// segment, from "Drawing an elliptical arc using polylines,
		// quadratic or cubic Bezier curves".
		da := a1 - a0
		alpha := math32.Sin(da) * (math32.Sqrt(4+3*math32.Tan(da/2)*math32.Tan(da/2)) - 1) / 3

		cos0, sin0 := math32.Cos(a0), math32.Sin(a0)
		cos1, sin1 := math32.Cos(a1), math32.Sin(a1)

		p1 := arcPoint(a.Center, a.Radius, a1)
		start := arcPoint(a.Center, a.Radius, a0)

		out = append(out, CubicTo{
			Control1: Point{X: start.X - alpha*a.Radius*sin0, Y: start.Y + alpha*a.Radius*cos0},
			Control2: Point{X: p1.X + alpha*a.Radius*sin1, Y: p1.Y - alpha*a.Radius*cos1},
			Point:    p1,
		})
	}
	return out
}

// distanceToLine calculates the perpendicular distance from point p to line
// segment (a, b).
func distanceToLine(p, a, b Point) float32 {
	ab := b.Sub(a)
	abLenSq := ab.LengthSquared()

	if abLenSq < 1e-12 {
		return p.Distance(a)
	}

	ap := p.Sub(a)
	t := ap.Dot(ab) / abLenSq

	if t < 0 {
		return p.Distance(a)
	}
	if t > 1 {
		return p.Distance(b)
	}

	closest := a.Add(ab.Mul(t))
	return p.Distance(closest)
}
