package tess

import "github.com/chewxy/math32"

// Rect represents an axis-aligned bounding rectangle.
// Min is the top-left corner (minimum coordinates).
// Max is the bottom-right corner (maximum coordinates).
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math32.Min(p1.X, p2.X), Y: math32.Min(p1.Y, p2.Y)},
		Max: Point{X: math32.Max(p1.X, p2.X), Y: math32.Max(p1.Y, p2.Y)},
	}
}

// EmptyRect returns a rectangle that contains nothing.
// Unioning any point with it yields that point's bounds.
func EmptyRect() Rect {
	return Rect{
		Min: Point{X: math32.MaxFloat32, Y: math32.MaxFloat32},
		Max: Point{X: -math32.MaxFloat32, Y: -math32.MaxFloat32},
	}
}

// IsEmpty returns true if the rectangle contains no area and no point has
// been unioned into it.
func (r Rect) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Width returns the width of the rectangle.
func (r Rect) Width() float32 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float32 {
	return r.Max.Y - r.Min.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math32.Min(r.Min.X, other.Min.X), Y: math32.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math32.Max(r.Max.X, other.Max.X), Y: math32.Max(r.Max.Y, other.Max.Y)},
	}
}

// UnionPoint returns the rectangle grown to contain p.
func (r Rect) UnionPoint(p Point) Rect {
	return Rect{
		Min: Point{X: math32.Min(r.Min.X, p.X), Y: math32.Min(r.Min.Y, p.Y)},
		Max: Point{X: math32.Max(r.Max.X, p.X), Y: math32.Max(r.Max.Y, p.Y)},
	}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// boundsOf computes the bounding rectangle of a point slice.
func boundsOf(points []Point) Rect {
	bounds := EmptyRect()
	for _, p := range points {
		bounds = bounds.UnionPoint(p)
	}
	return bounds
}
