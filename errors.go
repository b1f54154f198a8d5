package tess

import "errors"

// Sentinel errors for the tess package.
//
// All tessellation failures are recoverable: the caller skips the offending
// path and continues the frame. Errors are wrapped with fmt.Errorf("%w")
// where more context is useful, so always test with errors.Is.
var (
	// ErrCapacityExceeded is returned when appending to a path, flattening,
	// building a mesh, or inserting into the mesh pool would exceed a fixed
	// maximum. Nothing is silently truncated or evicted.
	ErrCapacityExceeded = errors.New("tess: capacity exceeded")

	// ErrDegenerateInput is returned for geometry that cannot produce a
	// meaningful mesh: fewer than 3 polygon points, zero-area polygons,
	// zero-length polylines.
	ErrDegenerateInput = errors.New("tess: degenerate input")

	// ErrTriangulationFailed is returned when ear clipping exhausts its
	// safety iteration budget, which indicates a non-simple
	// (self-intersecting) polygon. No partial result is produced.
	ErrTriangulationFailed = errors.New("tess: triangulation failed")

	// ErrInvalidState is returned when a path operation is invalid in the
	// current builder state, such as LineTo before any MoveTo.
	ErrInvalidState = errors.New("tess: invalid path state")
)
