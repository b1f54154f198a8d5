package tess

import (
	"fmt"

	"github.com/chewxy/math32"
)

// minSegmentLength is the shortest segment the expander distinguishes from
// a repeated point.
const minSegmentLength = 1e-6

// ExpandStroke converts a flattened polyline and a stroke style into fill
// geometry: vertex positions plus triangle indices. Each segment becomes a
// quad at ±width/2 from the centerline; interior joins and open-path caps
// become fans or triangles per the style. The expanded geometry is
// triangulated directly, never by ear-clipping the stroke outline, which is
// unreliable on self-overlapping outlines.
//
// closed strokes the polyline as a ring (joining last to first, no caps).
// tolerance controls round join/cap fan density; non-positive selects
// DefaultTolerance.
//
// Fails with ErrDegenerateInput when fewer than 2 distinct points remain
// after dropping zero-length segments, or when the stroke width is not
// positive.
func ExpandStroke(points []Point, closed bool, style Stroke, tolerance float32) ([]Point, []uint32, error) {
	if style.Width <= 0 {
		return nil, nil, fmt.Errorf("%w: stroke width %g", ErrDegenerateInput, style.Width)
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	pts := dropShortSegments(points, closed)
	if len(pts) < 2 {
		return nil, nil, fmt.Errorf("%w: polyline has %d distinct points, need at least 2", ErrDegenerateInput, len(pts))
	}
	if closed && len(pts) < 3 {
		// A 2-point ring degenerates to a doubled segment; stroke it open.
		closed = false
	}

	e := &strokeExpander{
		style:     style,
		half:      style.Width / 2,
		tolerance: tolerance,
	}

	if len(pts) == 2 && !closed {
		// Single-segment fast path: one quad plus caps, no join logic.
		e.segment(pts[0], pts[1])
		e.caps(pts)
		return e.positions, e.indices, nil
	}

	n := len(pts)
	segs := n - 1
	if closed {
		segs = n
	}
	for i := 0; i < segs; i++ {
		e.segment(pts[i], pts[(i+1)%n])
	}

	// Interior joins. For a ring the wrap-around join at vertex 0 connects
	// the last segment back to the first.
	for i := 1; i < segs; i++ {
		e.join(pts[i-1], pts[i], pts[(i+1)%n])
	}
	if closed {
		e.join(pts[n-1], pts[0], pts[1])
	} else {
		e.caps(pts)
	}

	return e.positions, e.indices, nil
}

// dropShortSegments removes consecutive points closer than
// minSegmentLength. For rings it also drops a last point that duplicates
// the first.
func dropShortSegments(points []Point, closed bool) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && p.Distance(out[len(out)-1]) < minSegmentLength {
			continue
		}
		out = append(out, p)
	}
	if closed && len(out) > 1 && out[0].Distance(out[len(out)-1]) < minSegmentLength {
		out = out[:len(out)-1]
	}
	return out
}

// strokeExpander accumulates expanded stroke geometry.
type strokeExpander struct {
	style     Stroke
	half      float32
	tolerance float32

	positions []Point
	indices   []uint32
}

// vertex appends a position and returns its index.
func (e *strokeExpander) vertex(p Point) uint32 {
	e.positions = append(e.positions, p)
	return uint32(len(e.positions) - 1)
}

// tri appends one triangle.
func (e *strokeExpander) tri(a, b, c Point) {
	ia := e.vertex(a)
	ib := e.vertex(b)
	ic := e.vertex(c)
	e.indices = append(e.indices, ia, ib, ic)
}

// quad appends two triangles covering the quad (a, b, c, d) in perimeter
// order.
func (e *strokeExpander) quad(a, b, c, d Point) {
	ia := e.vertex(a)
	ib := e.vertex(b)
	ic := e.vertex(c)
	id := e.vertex(d)
	e.indices = append(e.indices, ia, ib, ic, ia, ic, id)
}

// offset returns the half-width offset normal for a segment direction.
func (e *strokeExpander) offset(from, to Point) Vec2 {
	return to.Sub(from).Vec2().Normalize().Perp().Scale(e.half)
}

// segment emits the quad covering one centerline segment.
func (e *strokeExpander) segment(from, to Point) {
	n := e.offset(from, to)
	e.quad(
		from.Add(n.ToPoint()),
		to.Add(n.ToPoint()),
		to.Sub(n.ToPoint()),
		from.Sub(n.ToPoint()),
	)
}

// join fills the wedge between segments (a, b) and (b, c) on the outer side
// of the turn.
func (e *strokeExpander) join(a, b, c Point) {
	d0 := b.Sub(a).Vec2().Normalize()
	d1 := c.Sub(b).Vec2().Normalize()
	cross := d0.Cross(d1)
	dot := d0.Dot(d1)

	// Straight continuation leaves no wedge to fill.
	if math32.Abs(cross) < 1e-6 && dot > 0 {
		return
	}

	n0 := d0.Perp().Scale(e.half)
	n1 := d1.Perp().Scale(e.half)

	// The gap opens on the side away from the turn: positive cross turns
	// toward the +normal side, leaving the -normal side open.
	var u0, u1 Vec2 // unit normals pointing into the open wedge
	if cross > 0 {
		u0 = n0.Neg().Scale(1 / e.half)
		u1 = n1.Neg().Scale(1 / e.half)
	} else {
		u0 = n0.Scale(1 / e.half)
		u1 = n1.Scale(1 / e.half)
	}
	prev := b.Add(u0.Scale(e.half).ToPoint()) // outer end of the first quad
	next := b.Add(u1.Scale(e.half).ToPoint()) // outer start of the second quad

	switch e.style.Join {
	case LineJoinBevel:
		e.tri(b, prev, next)

	case LineJoinMiter:
		bisector := u0.Add(u1).Normalize()
		denom := bisector.Dot(u0)
		// The miter-to-width ratio is 1/denom. Beyond the limit (or with
		// nearly opposite segments) fall back to bevel.
		if denom < 1e-6 || 1/denom > e.style.MiterLimit {
			e.tri(b, prev, next)
			return
		}
		miter := b.Add(bisector.Scale(e.half / denom).ToPoint())
		e.tri(b, prev, miter)
		e.tri(b, miter, next)

	case LineJoinRound:
		// The signed angle between the wedge normals equals the turn
		// angle between the segment directions.
		sweep := math32.Atan2(cross, dot)
		e.fan(b, u0.Angle(), sweep)
	}
}

// fan emits a triangle fan of radius width/2 around center, starting at
// startAngle and sweeping sweep radians. Fan density follows the flattening
// tolerance.
func (e *strokeExpander) fan(center Point, startAngle, sweep float32) {
	segments := arcSegmentCount(e.half, sweep, e.tolerance)
	step := sweep / float32(segments)
	for i := 0; i < segments; i++ {
		a0 := startAngle + float32(i)*step
		a1 := a0 + step
		e.tri(center,
			arcPoint(center, e.half, a0),
			arcPoint(center, e.half, a1),
		)
	}
}

// caps emits endpoint geometry for an open polyline.
func (e *strokeExpander) caps(pts []Point) {
	if e.style.Cap == LineCapButt {
		return
	}
	n := len(pts)
	startOut := pts[0].Sub(pts[1]).Vec2().Normalize()
	endOut := pts[n-1].Sub(pts[n-2]).Vec2().Normalize()
	e.endCap(pts[0], startOut)
	e.endCap(pts[n-1], endOut)
}

// endCap emits one cap at center, with outward pointing away from the
// polyline along the end tangent.
func (e *strokeExpander) endCap(center Point, outward Vec2) {
	n := outward.Perp().Scale(e.half)
	switch e.style.Cap {
	case LineCapSquare:
		ext := outward.Scale(e.half)
		e.quad(
			center.Add(n.ToPoint()),
			center.Add(n.ToPoint()).Add(ext.ToPoint()),
			center.Sub(n.ToPoint()).Add(ext.ToPoint()),
			center.Sub(n.ToPoint()),
		)
	case LineCapRound:
		// Semicircle from +normal through outward to -normal.
		// perp(n) points opposite outward, so the fan sweeps -pi.
		e.fan(center, n.Angle(), -math32.Pi)
	}
}
