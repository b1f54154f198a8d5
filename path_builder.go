package tess

import "github.com/chewxy/math32"

// Control point distance for approximating a quarter circle with a cubic
// Bezier: 4/3 * (sqrt(2) - 1).
const kappa = 0.5522847498307936

// PathBuilder provides a fluent interface for path construction.
// All methods return the builder for chaining. The first error encountered
// (invalid state, capacity) is latched and returned from Build; subsequent
// calls become no-ops.
type PathBuilder struct {
	path *Path
	err  error
}

// BuildPath starts a new path builder.
func BuildPath() *PathBuilder {
	return &PathBuilder{path: NewPath()}
}

// Err returns the first error encountered, if any.
func (b *PathBuilder) Err() error {
	return b.err
}

func (b *PathBuilder) do(op func() error) *PathBuilder {
	if b.err == nil {
		b.err = op()
	}
	return b
}

// MoveTo moves to a new position, starting a new subpath.
func (b *PathBuilder) MoveTo(x, y float32) *PathBuilder {
	return b.do(func() error { return b.path.MoveTo(x, y) })
}

// LineTo draws a line to a position.
func (b *PathBuilder) LineTo(x, y float32) *PathBuilder {
	return b.do(func() error { return b.path.LineTo(x, y) })
}

// QuadTo draws a quadratic Bezier curve.
func (b *PathBuilder) QuadTo(cx, cy, x, y float32) *PathBuilder {
	return b.do(func() error { return b.path.QuadTo(cx, cy, x, y) })
}

// CubicTo draws a cubic Bezier curve.
func (b *PathBuilder) CubicTo(c1x, c1y, c2x, c2y, x, y float32) *PathBuilder {
	return b.do(func() error { return b.path.CubicTo(c1x, c1y, c2x, c2y, x, y) })
}

// ArcTo draws a circular arc around (cx, cy).
func (b *PathBuilder) ArcTo(cx, cy, r, startAngle, sweepAngle float32) *PathBuilder {
	return b.do(func() error { return b.path.ArcTo(cx, cy, r, startAngle, sweepAngle) })
}

// Close closes the current subpath.
func (b *PathBuilder) Close() *PathBuilder {
	return b.do(func() error { return b.path.Close() })
}

// Rect adds a rectangle to the path.
func (b *PathBuilder) Rect(x, y, w, h float32) *PathBuilder {
	return b.MoveTo(x, y).
		LineTo(x+w, y).
		LineTo(x+w, y+h).
		LineTo(x, y+h).
		Close()
}

// RoundRect adds a rectangle with rounded corners to the path.
// The radius is clamped to half of the smaller dimension.
func (b *PathBuilder) RoundRect(x, y, w, h, r float32) *PathBuilder {
	r = math32.Min(r, math32.Min(w, h)/2)
	if r <= 0 {
		return b.Rect(x, y, w, h)
	}
	k := float32(kappa) * r

	return b.MoveTo(x+r, y).
		LineTo(x+w-r, y).
		CubicTo(x+w-r+k, y, x+w, y+r-k, x+w, y+r).
		LineTo(x+w, y+h-r).
		CubicTo(x+w, y+h-r+k, x+w-r+k, y+h, x+w-r, y+h).
		LineTo(x+r, y+h).
		CubicTo(x+r-k, y+h, x, y+h-r+k, x, y+h-r).
		LineTo(x, y+r).
		CubicTo(x, y+r-k, x+r-k, y, x+r, y).
		Close()
}

// Circle adds a circle to the path using cubic Bezier curves.
func (b *PathBuilder) Circle(cx, cy, r float32) *PathBuilder {
	return b.Ellipse(cx, cy, r, r)
}

// Ellipse adds an ellipse to the path using cubic Bezier curves.
// Segment count is adaptive: the flattening tolerance decides how finely
// the four cubics are subdivided.
func (b *PathBuilder) Ellipse(cx, cy, rx, ry float32) *PathBuilder {
	kx := float32(kappa) * rx
	ky := float32(kappa) * ry

	return b.MoveTo(cx+rx, cy).
		CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry).
		CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy).
		CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry).
		CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy).
		Close()
}

// EllipseSegments adds an ellipse approximated by an explicit number of
// line segments. Useful when the consumer needs exact control over the
// vertex count. Fewer than 3 segments latches ErrDegenerateInput.
func (b *PathBuilder) EllipseSegments(cx, cy, rx, ry float32, segments int) *PathBuilder {
	return b.do(func() error {
		if segments < 3 {
			return ErrDegenerateInput
		}
		step := 2 * math32.Pi / float32(segments)
		for i := 0; i < segments; i++ {
			angle := float32(i) * step
			x := cx + rx*math32.Cos(angle)
			y := cy + ry*math32.Sin(angle)
			var err error
			if i == 0 {
				err = b.path.MoveTo(x, y)
			} else {
				err = b.path.LineTo(x, y)
			}
			if err != nil {
				return err
			}
		}
		return b.path.Close()
	})
}

// Polygon adds a regular polygon to the path, starting at the top.
// Fewer than 3 sides latches ErrDegenerateInput.
func (b *PathBuilder) Polygon(cx, cy, radius float32, sides int) *PathBuilder {
	return b.do(func() error {
		if sides < 3 {
			return ErrDegenerateInput
		}
		angleStep := 2 * math32.Pi / float32(sides)
		startAngle := -math32.Pi / 2

		for i := 0; i < sides; i++ {
			angle := startAngle + float32(i)*angleStep
			x := cx + radius*math32.Cos(angle)
			y := cy + radius*math32.Sin(angle)
			var err error
			if i == 0 {
				err = b.path.MoveTo(x, y)
			} else {
				err = b.path.LineTo(x, y)
			}
			if err != nil {
				return err
			}
		}
		return b.path.Close()
	})
}

// Star adds a star shape to the path, alternating between outer and inner
// radius. Fewer than 3 points latches ErrDegenerateInput.
func (b *PathBuilder) Star(cx, cy, outerRadius, innerRadius float32, points int) *PathBuilder {
	return b.do(func() error {
		if points < 3 {
			return ErrDegenerateInput
		}
		angleStep := math32.Pi / float32(points)
		startAngle := -math32.Pi / 2

		for i := 0; i < points*2; i++ {
			angle := startAngle + float32(i)*angleStep
			r := outerRadius
			if i%2 == 1 {
				r = innerRadius
			}
			x := cx + r*math32.Cos(angle)
			y := cy + r*math32.Sin(angle)
			var err error
			if i == 0 {
				err = b.path.MoveTo(x, y)
			} else {
				err = b.path.LineTo(x, y)
			}
			if err != nil {
				return err
			}
		}
		return b.path.Close()
	})
}

// Build returns the constructed path, or the first error encountered.
func (b *PathBuilder) Build() (*Path, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.path, nil
}
