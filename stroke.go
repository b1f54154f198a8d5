package tess

// LineCap specifies the shape of open-path endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap ending exactly at the endpoint.
	LineCapButt LineCap = iota
	// LineCapRound specifies a semicircular line cap.
	LineCapRound
	// LineCapSquare specifies a square cap extending half the stroke width
	// past the endpoint.
	LineCapSquare
)

// String returns a human-readable name for the cap style.
func (c LineCap) String() string {
	switch c {
	case LineCapButt:
		return "Butt"
	case LineCapRound:
		return "Round"
	case LineCapSquare:
		return "Square"
	default:
		return "Unknown"
	}
}

// LineJoin specifies the shape of interior segment joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join, falling back to bevel
	// beyond the miter limit.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled (flat-cut) join.
	LineJoinBevel
)

// String returns a human-readable name for the join style.
func (j LineJoin) String() string {
	switch j {
	case LineJoinMiter:
		return "Miter"
	case LineJoinRound:
		return "Round"
	case LineJoinBevel:
		return "Bevel"
	default:
		return "Unknown"
	}
}

// Stroke defines the style for stroking paths.
// It encapsulates all stroke-related properties in a single struct,
// following the tiny-skia/kurbo pattern for unified stroke configuration.
type Stroke struct {
	// Width is the line width in coordinate units. Default: 1.0
	Width float32

	// Cap is the shape of line endpoints. Default: LineCapButt
	Cap LineCap

	// Join is the shape of line joins. Default: LineJoinMiter
	Join LineJoin

	// MiterLimit is the limit for miter joins before they become bevels,
	// expressed as the ratio of miter length to stroke width.
	// Default: 4.0 (common default, matches SVG)
	MiterLimit float32

	// Dash is the dash pattern for the stroke.
	// nil means a solid line (no dashing).
	Dash *Dash
}

// DefaultStroke returns a Stroke with default settings.
// This creates a solid 1-unit line with butt caps and miter joins.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1.0,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4.0,
		Dash:       nil,
	}
}

// WithWidth returns a copy of the Stroke with the given width.
func (s Stroke) WithWidth(w float32) Stroke {
	s.Width = w
	return s
}

// WithCap returns a copy of the Stroke with the given line cap style.
func (s Stroke) WithCap(lineCap LineCap) Stroke {
	s.Cap = lineCap
	return s
}

// WithJoin returns a copy of the Stroke with the given line join style.
func (s Stroke) WithJoin(join LineJoin) Stroke {
	s.Join = join
	return s
}

// WithMiterLimit returns a copy of the Stroke with the given miter limit.
// The miter limit controls when miter joins are converted to bevel joins.
// A value of 1.0 effectively disables miter joins.
func (s Stroke) WithMiterLimit(limit float32) Stroke {
	s.MiterLimit = limit
	return s
}

// WithDash returns a copy of the Stroke with the given dash pattern.
// Pass nil to remove dashing and return to solid lines.
func (s Stroke) WithDash(dash *Dash) Stroke {
	if dash == nil {
		s.Dash = nil
	} else {
		s.Dash = dash.Clone()
	}
	return s
}

// WithDashPattern returns a copy of the Stroke with a dash pattern
// created from the given lengths.
//
// Example:
//
//	stroke.WithDashPattern(5, 3) // 5 units dash, 3 units gap
func (s Stroke) WithDashPattern(lengths ...float32) Stroke {
	s.Dash = NewDash(lengths...)
	return s
}

// IsDashed returns true if this stroke has a dash pattern.
func (s Stroke) IsDashed() bool {
	return s.Dash != nil && s.Dash.IsDashed()
}

// hash folds the stroke parameters into a mesh cache key. Dash arrays are
// covered element-wise so patterns of different lengths never collide.
func (s Stroke) hash(hash uint64) uint64 {
	hash = fnvFloat32(hash, s.Width)
	hash = fnvByte(hash, uint8(s.Cap))
	hash = fnvByte(hash, uint8(s.Join))
	hash = fnvFloat32(hash, s.MiterLimit)
	if s.Dash != nil {
		hash = fnvFloat32(hash, s.Dash.Offset)
		for _, l := range s.Dash.Array {
			hash = fnvFloat32(hash, l)
		}
	}
	return hash
}
