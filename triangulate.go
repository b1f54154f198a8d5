package tess

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Winding specifies the vertex ordering of a polygon.
type Winding int

// Winding orders. With the y-down coordinate system, CounterClockwise means
// positive signed area.
const (
	// WindingCounterClockwise is positive-area vertex order.
	WindingCounterClockwise Winding = iota
	// WindingClockwise is negative-area vertex order.
	WindingClockwise
)

// String returns a human-readable name for the winding.
func (w Winding) String() string {
	switch w {
	case WindingCounterClockwise:
		return "CounterClockwise"
	case WindingClockwise:
		return "Clockwise"
	default:
		return "Unknown"
	}
}

// SignedArea returns the signed area of a polygon ring using the shoelace
// formula. Negative area means clockwise winding.
func SignedArea(points []Point) float32 {
	var area float32
	n := len(points)
	for i := 0; i < n; i++ {
		j := i + 1
		if j == n {
			j = 0
		}
		area += points[i].Cross(points[j])
	}
	return area / 2
}

// PolygonWinding detects the winding of a polygon ring from its signed area.
func PolygonWinding(points []Point) Winding {
	if SignedArea(points) < 0 {
		return WindingClockwise
	}
	return WindingCounterClockwise
}

// earSafetyFactor bounds the ear-clipping main loop at earSafetyFactor*n
// iterations. A simple polygon always yields an ear well within the bound
// (two-ears theorem); exhausting it means the input self-intersects.
const earSafetyFactor = 10

// Triangulate performs ear-clipping triangulation of a simple
// (non-self-intersecting) polygon ring. The ring must not repeat its first
// point. Winding is auto-detected via signed area.
//
// The returned indices are ring-local offset by base, three per triangle,
// exactly 3*(n-2) on success. Triangles follow the ring's winding.
//
// Fails with ErrDegenerateInput for fewer than 3 points or zero area, and
// ErrTriangulationFailed when the safety iteration budget is exhausted
// (non-simple input); no partial result is returned.
func Triangulate(points []Point, base uint32) ([]uint32, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("%w: polygon has %d points, need at least 3", ErrDegenerateInput, len(points))
	}
	area := SignedArea(points)
	if math32.Abs(area) < 1e-12 {
		return nil, fmt.Errorf("%w: polygon has zero area", ErrDegenerateInput)
	}
	winding := WindingCounterClockwise
	if area < 0 {
		winding = WindingClockwise
	}
	return TriangulateWinding(points, base, winding)
}

// TriangulateWinding is Triangulate with an explicitly given winding order,
// skipping auto-detection.
func TriangulateWinding(points []Point, base uint32, winding Winding) ([]uint32, error) {
	n := len(points)
	if n < 3 {
		return nil, fmt.Errorf("%w: polygon has %d points, need at least 3", ErrDegenerateInput, n)
	}
	if n == 3 {
		return []uint32{base, base + 1, base + 2}, nil
	}

	t := &earClipper{
		points:    points,
		prev:      make([]int32, n),
		next:      make([]int32, n),
		reflexPos: make([]int32, n),
		ccw:       winding == WindingCounterClockwise,
	}
	for i := 0; i < n; i++ {
		t.prev[i] = int32(i - 1)
		t.next[i] = int32(i + 1)
		t.reflexPos[i] = -1
	}
	t.prev[0] = int32(n - 1)
	t.next[n-1] = 0

	// Classify every vertex once. Only reflex vertices can block an ear,
	// so the per-ear containment scan is restricted to this set, turning
	// the dominant inner loop from O(n) into O(r).
	for i := 0; i < n; i++ {
		if t.isReflex(int32(i)) {
			t.reflexPos[i] = int32(len(t.reflexList))
			t.reflexList = append(t.reflexList, int32(i))
		}
	}

	out := make([]uint32, 0, 3*(n-2))
	remaining := n
	cursor := int32(0)
	sinceClip := 0

	for iter := 0; remaining > 3; iter++ {
		if iter > earSafetyFactor*n || sinceClip > remaining {
			return nil, fmt.Errorf("%w: no ear found after %d iterations, polygon is not simple",
				ErrTriangulationFailed, iter)
		}

		if t.isEar(cursor) {
			p, nx := t.prev[cursor], t.next[cursor]
			out = append(out, base+uint32(p), base+uint32(cursor), base+uint32(nx))
			t.remove(cursor)
			remaining--
			sinceClip = 0

			// Clipping can only change the convexity of the two
			// neighbors; reclassify just those in O(1).
			t.reclassify(p)
			t.reclassify(nx)
			cursor = nx
			continue
		}
		cursor = t.next[cursor]
		sinceClip++
	}

	// Final triangle.
	p, nx := t.prev[cursor], t.next[cursor]
	out = append(out, base+uint32(p), base+uint32(cursor), base+uint32(nx))
	return out, nil
}

// earClipper holds the linked-ring state for one triangulation.
// reflexList is the compact set of currently reflex vertices; reflexPos
// maps a vertex to its slot in the list (-1 when convex) so membership
// updates stay O(1).
type earClipper struct {
	points     []Point
	prev, next []int32
	reflexPos  []int32
	reflexList []int32
	ccw        bool
}

// isReflex reports whether the vertex has interior angle > 180 degrees.
// The turn-direction sign swaps with the detected winding.
func (t *earClipper) isReflex(i int32) bool {
	a := t.points[t.prev[i]]
	b := t.points[i]
	c := t.points[t.next[i]]
	cross := b.Sub(a).Cross(c.Sub(b))
	if t.ccw {
		return cross < 0
	}
	return cross > 0
}

// reclassify updates a vertex's reflex membership after a neighbor was
// clipped. A reflex vertex may become convex, never the other way around.
func (t *earClipper) reclassify(i int32) {
	if t.reflexPos[i] >= 0 && !t.isReflex(i) {
		t.dropReflex(i)
	}
}

// dropReflex removes a vertex from the reflex set in O(1) by swapping the
// last list entry into its slot.
func (t *earClipper) dropReflex(i int32) {
	pos := t.reflexPos[i]
	last := int32(len(t.reflexList) - 1)
	moved := t.reflexList[last]
	t.reflexList[pos] = moved
	t.reflexPos[moved] = pos
	t.reflexList = t.reflexList[:last]
	t.reflexPos[i] = -1
}

// isEar reports whether the vertex's neighbor triangle is locally convex
// and contains no other polygon vertex. Only the remaining reflex vertices
// can lie inside the candidate triangle, so only they are scanned.
func (t *earClipper) isEar(i int32) bool {
	if t.reflexPos[i] >= 0 {
		return false
	}
	if len(t.reflexList) == 0 {
		return true
	}
	p, nx := t.prev[i], t.next[i]
	a, b, c := t.points[p], t.points[i], t.points[nx]

	for _, j := range t.reflexList {
		if j == p || j == i || j == nx {
			continue
		}
		if pointInTriangle(t.points[j], a, b, c) {
			return false
		}
	}
	return true
}

// remove unlinks a vertex from the ring. Ears are always convex, so the
// vertex is never in the reflex set.
func (t *earClipper) remove(i int32) {
	p, nx := t.prev[i], t.next[i]
	t.next[p] = nx
	t.prev[nx] = p
}

// pointInTriangle reports whether p lies inside triangle (a, b, c),
// including its boundary. Boundary points block ears, which errs on the
// side of not producing overlapping triangles.
func pointInTriangle(p, a, b, c Point) bool {
	d1 := p.Sub(a).Cross(b.Sub(a))
	d2 := p.Sub(b).Cross(c.Sub(b))
	d3 := p.Sub(c).Cross(a.Sub(c))

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
