package tess

import "math"

// MaxPathElements is the maximum number of elements a single Path may hold.
// Appending beyond it fails with ErrCapacityExceeded, leaving the path
// unmodified.
const MaxPathElements = 4096

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo moves to a point without drawing, starting a new subpath.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// ArcTo draws a circular arc around Center from StartAngle sweeping
// SweepAngle radians (positive is counter-clockwise in the standard
// graphics coordinate system). The flattener connects the current point to
// the arc start with a line when they differ.
type ArcTo struct {
	Center     Point
	Radius     float32
	StartAngle float32
	SweepAngle float32
}

func (ArcTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// elementTag identifies an element variant for hashing.
// The values are part of the content hash, so they must stay stable.
func elementTag(el PathElement) uint8 {
	switch el.(type) {
	case MoveTo:
		return 1
	case LineTo:
		return 2
	case QuadTo:
		return 3
	case CubicTo:
		return 4
	case ArcTo:
		return 5
	case Close:
		return 6
	default:
		return 0
	}
}

// Path represents a vector path as an ordered, capacity-bounded sequence of
// elements. A Path is created and mutated only through its own methods or a
// PathBuilder; it is not safe for concurrent use.
type Path struct {
	elements []PathElement
	start    Point // Starting point of current subpath
	current  Point // Current point
	open     bool  // A subpath has been started and not closed
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// append adds an element after checking the capacity bound.
func (p *Path) append(el PathElement) error {
	if len(p.elements) >= MaxPathElements {
		return ErrCapacityExceeded
	}
	p.elements = append(p.elements, el)
	return nil
}

// MoveTo moves to a point without drawing, starting a new subpath.
func (p *Path) MoveTo(x, y float32) error {
	pt := Pt(x, y)
	if err := p.append(MoveTo{Point: pt}); err != nil {
		return err
	}
	p.start = pt
	p.current = pt
	p.open = true
	return nil
}

// LineTo draws a line to a point.
// Fails with ErrInvalidState if no subpath has been started.
func (p *Path) LineTo(x, y float32) error {
	if !p.open {
		return ErrInvalidState
	}
	pt := Pt(x, y)
	if err := p.append(LineTo{Point: pt}); err != nil {
		return err
	}
	p.current = pt
	return nil
}

// QuadTo draws a quadratic Bezier curve.
// Fails with ErrInvalidState if no subpath has been started.
func (p *Path) QuadTo(cx, cy, x, y float32) error {
	if !p.open {
		return ErrInvalidState
	}
	el := QuadTo{Control: Pt(cx, cy), Point: Pt(x, y)}
	if err := p.append(el); err != nil {
		return err
	}
	p.current = el.Point
	return nil
}

// CubicTo draws a cubic Bezier curve.
// Fails with ErrInvalidState if no subpath has been started.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) error {
	if !p.open {
		return ErrInvalidState
	}
	el := CubicTo{Control1: Pt(c1x, c1y), Control2: Pt(c2x, c2y), Point: Pt(x, y)}
	if err := p.append(el); err != nil {
		return err
	}
	p.current = el.Point
	return nil
}

// ArcTo draws a circular arc around (cx, cy) from startAngle sweeping
// sweepAngle radians.
// Fails with ErrInvalidState if no subpath has been started.
func (p *Path) ArcTo(cx, cy, r, startAngle, sweepAngle float32) error {
	if !p.open {
		return ErrInvalidState
	}
	el := ArcTo{Center: Pt(cx, cy), Radius: r, StartAngle: startAngle, SweepAngle: sweepAngle}
	if err := p.append(el); err != nil {
		return err
	}
	p.current = arcPoint(el.Center, el.Radius, el.StartAngle+el.SweepAngle)
	return nil
}

// Close closes the current subpath by drawing a line to its start point.
// Fails with ErrInvalidState if no subpath has been started.
func (p *Path) Close() error {
	if !p.open {
		return ErrInvalidState
	}
	if err := p.append(Close{}); err != nil {
		return err
	}
	p.current = p.start
	p.open = false
	return nil
}

// Clear removes all elements from the path, keeping allocated storage.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.start = Point{}
	p.current = Point{}
	p.open = false
}

// Elements returns the path elements. The slice is owned by the path and
// must not be mutated.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// Len returns the number of elements in the path.
func (p *Path) Len() int {
	return len(p.elements)
}

// IsEmpty returns true if the path has no elements.
func (p *Path) IsEmpty() bool {
	return len(p.elements) == 0
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// HasCurrentPoint returns true if a subpath is open, i.e. drawing commands
// are currently valid.
func (p *Path) HasCurrentPoint() bool {
	return p.open
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	result := NewPath()
	result.elements = make([]PathElement, len(p.elements))
	copy(result.elements, p.elements)
	result.start = p.start
	result.current = p.current
	result.open = p.open
	return result
}

// Transform returns a copy of the path with the transformation applied to
// all points. Arc elements are converted to cubic Bezier segments first,
// since a circular arc is not closed under general affine transforms.
func (p *Path) Transform(m Matrix) *Path {
	result := NewPath()
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := m.TransformPoint(e.Point)
			result.elements = append(result.elements, MoveTo{Point: pt})
			result.start = pt
			result.current = pt
			result.open = true
		case LineTo:
			pt := m.TransformPoint(e.Point)
			result.elements = append(result.elements, LineTo{Point: pt})
			result.current = pt
		case QuadTo:
			el := QuadTo{Control: m.TransformPoint(e.Control), Point: m.TransformPoint(e.Point)}
			result.elements = append(result.elements, el)
			result.current = el.Point
		case CubicTo:
			el := CubicTo{
				Control1: m.TransformPoint(e.Control1),
				Control2: m.TransformPoint(e.Control2),
				Point:    m.TransformPoint(e.Point),
			}
			result.elements = append(result.elements, el)
			result.current = el.Point
		case ArcTo:
			for _, c := range arcToCubics(e) {
				el := CubicTo{
					Control1: m.TransformPoint(c.Control1),
					Control2: m.TransformPoint(c.Control2),
					Point:    m.TransformPoint(c.Point),
				}
				result.elements = append(result.elements, el)
				result.current = el.Point
			}
		case Close:
			result.elements = append(result.elements, Close{})
			result.current = result.start
			result.open = false
		}
	}
	return result
}

// Hash computes a 64-bit FNV-1a content hash of the path.
// The hash is deterministic and order-sensitive: it covers each element's
// tag and the bit patterns of its coordinates, so it is suitable as a
// persistent cache key.
func (p *Path) Hash() uint64 {
	hash := uint64(fnvOffset)
	for _, el := range p.elements {
		hash = fnvByte(hash, elementTag(el))
		switch e := el.(type) {
		case MoveTo:
			hash = fnvPoint(hash, e.Point)
		case LineTo:
			hash = fnvPoint(hash, e.Point)
		case QuadTo:
			hash = fnvPoint(hash, e.Control)
			hash = fnvPoint(hash, e.Point)
		case CubicTo:
			hash = fnvPoint(hash, e.Control1)
			hash = fnvPoint(hash, e.Control2)
			hash = fnvPoint(hash, e.Point)
		case ArcTo:
			hash = fnvPoint(hash, e.Center)
			hash = fnvFloat32(hash, e.Radius)
			hash = fnvFloat32(hash, e.StartAngle)
			hash = fnvFloat32(hash, e.SweepAngle)
		}
	}
	return hash
}

// FNV-1a constants (64-bit).
const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

func fnvByte(hash uint64, b uint8) uint64 {
	hash ^= uint64(b)
	hash *= fnvPrime
	return hash
}

func fnvUint32(hash uint64, v uint32) uint64 {
	hash ^= uint64(v)
	hash *= fnvPrime
	return hash
}

func fnvFloat32(hash uint64, f float32) uint64 {
	return fnvUint32(hash, math.Float32bits(f))
}

func fnvPoint(hash uint64, p Point) uint64 {
	hash = fnvFloat32(hash, p.X)
	return fnvFloat32(hash, p.Y)
}
