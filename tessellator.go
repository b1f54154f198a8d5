package tess

import (
	"errors"
	"fmt"
)

// Cache key tags distinguishing fill from stroke geometry built from the
// same path.
const (
	opTagFill   = 0x01
	opTagStroke = 0x02
)

// Tessellator converts paths into triangle meshes and manages their
// lifetime through a MeshPool. It holds only configuration; all mesh
// storage lives in the pool passed to each call.
type Tessellator struct {
	// Tolerance is the maximum distance between a curve and its polyline
	// approximation, in path units.
	Tolerance float32
}

// NewTessellator creates a tessellator with the default flattening
// tolerance.
func NewTessellator() *Tessellator {
	return &Tessellator{Tolerance: DefaultTolerance}
}

// WithTolerance returns a copy of the tessellator with the given flattening
// tolerance. Non-positive values select the default.
func (t Tessellator) WithTolerance(tolerance float32) Tessellator {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	t.Tolerance = tolerance
	return t
}

// Fill tessellates the interior of path and stores the mesh in the pool's
// persistent tier, keyed by the path content and tolerance. Repeated calls
// with an equal path return the cached mesh without re-tessellating.
//
// When the persistent tier is full the mesh is built anyway and placed in
// the frame tier, so the caller still renders this frame; the fallback is
// logged once per call.
func (t *Tessellator) Fill(pool *MeshPool, path *Path) (MeshRef, error) {
	key := t.fillKey(path)
	ref, err := pool.GetOrCreatePersistent(key, func() (*Mesh, error) {
		return t.fillMesh(path)
	})
	if errors.Is(err, ErrCapacityExceeded) {
		Logger().Warn("persistent tier full, falling back to frame allocation",
			"op", "fill", "persistent", pool.PersistentCount())
		mesh, merr := t.fillMesh(path)
		if merr != nil {
			return MeshRef{}, merr
		}
		return pool.AllocateFrame(mesh)
	}
	return ref, err
}

// Stroke tessellates the outline of path with the given stroke style and
// stores the mesh in the pool's persistent tier, keyed by the path content,
// the style, and the tolerance. Capacity fallback behaves as in Fill.
func (t *Tessellator) Stroke(pool *MeshPool, path *Path, style Stroke) (MeshRef, error) {
	key := t.strokeKey(path, style)
	ref, err := pool.GetOrCreatePersistent(key, func() (*Mesh, error) {
		return t.strokeMesh(path, style)
	})
	if errors.Is(err, ErrCapacityExceeded) {
		Logger().Warn("persistent tier full, falling back to frame allocation",
			"op", "stroke", "persistent", pool.PersistentCount())
		mesh, merr := t.strokeMesh(path, style)
		if merr != nil {
			return MeshRef{}, merr
		}
		return pool.AllocateFrame(mesh)
	}
	return ref, err
}

// FillFrame tessellates the interior of path directly into the frame tier,
// bypassing the persistent cache. Intended for geometry that changes every
// frame, where hashing and caching would only churn the persistent tier.
func (t *Tessellator) FillFrame(pool *MeshPool, path *Path) (MeshRef, error) {
	mesh, err := t.fillMesh(path)
	if err != nil {
		return MeshRef{}, err
	}
	return pool.AllocateFrame(mesh)
}

// StrokeFrame tessellates the outline of path directly into the frame
// tier, bypassing the persistent cache.
func (t *Tessellator) StrokeFrame(pool *MeshPool, path *Path, style Stroke) (MeshRef, error) {
	mesh, err := t.strokeMesh(path, style)
	if err != nil {
		return MeshRef{}, err
	}
	return pool.AllocateFrame(mesh)
}

// fillKey derives the persistent cache key for a fill of path at the
// current tolerance.
func (t *Tessellator) fillKey(path *Path) uint64 {
	h := path.Hash()
	h = fnvFloat32(h, t.tolerance())
	h = fnvByte(h, opTagFill)
	return h
}

// strokeKey derives the persistent cache key for a stroke of path with the
// given style at the current tolerance.
func (t *Tessellator) strokeKey(path *Path, style Stroke) uint64 {
	h := path.Hash()
	h = fnvFloat32(h, t.tolerance())
	h = fnvByte(h, opTagStroke)
	h = style.hash(h)
	return h
}

func (t *Tessellator) tolerance() float32 {
	if t.Tolerance <= 0 {
		return DefaultTolerance
	}
	return t.Tolerance
}

// fillMesh flattens path and ear-clips each subpath into triangles. Open
// subpaths are treated as closed for filling. Subpaths too degenerate to
// enclose area are skipped; a path with no fillable subpath at all is an
// error.
func (t *Tessellator) fillMesh(path *Path) (*Mesh, error) {
	flat, err := path.Flatten(t.tolerance())
	if err != nil {
		return nil, err
	}

	var (
		positions []Point
		indices   []uint32
		skipped   int
	)
	for _, sp := range flat.Subpaths {
		ring := flat.Points[sp.Start:sp.End]
		if len(ring) < 3 {
			skipped++
			continue
		}
		base := uint32(len(positions))
		tris, terr := Triangulate(ring, base)
		if terr != nil {
			if errors.Is(terr, ErrDegenerateInput) {
				skipped++
				continue
			}
			return nil, fmt.Errorf("fill: %w", terr)
		}
		positions = append(positions, ring...)
		indices = append(indices, tris...)
	}
	if skipped > 0 {
		Logger().Debug("skipped degenerate fill subpaths",
			"skipped", skipped, "total", len(flat.Subpaths))
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: no fillable subpath", ErrDegenerateInput)
	}
	return buildMesh(positions, indices)
}

// strokeMesh flattens path and expands each subpath into stroke geometry.
// Dashed styles split each polyline into on-segments first, each stroked
// as an open run with caps. Subpaths too short to stroke are skipped; a
// path with no strokeable subpath at all is an error.
func (t *Tessellator) strokeMesh(path *Path, style Stroke) (*Mesh, error) {
	if style.Width <= 0 {
		return nil, fmt.Errorf("%w: stroke width %g", ErrDegenerateInput, style.Width)
	}
	flat, err := path.Flatten(t.tolerance())
	if err != nil {
		return nil, err
	}

	var (
		positions []Point
		indices   []uint32
		skipped   int
	)
	appendRun := func(points []Point, closed bool) error {
		pos, idx, xerr := ExpandStroke(points, closed, style, t.tolerance())
		if xerr != nil {
			if errors.Is(xerr, ErrDegenerateInput) {
				skipped++
				return nil
			}
			return xerr
		}
		base := uint32(len(positions))
		positions = append(positions, pos...)
		for _, i := range idx {
			indices = append(indices, base+i)
		}
		return nil
	}

	for _, sp := range flat.Subpaths {
		run := flat.Points[sp.Start:sp.End]
		if style.IsDashed() {
			for _, dashRun := range style.Dash.splitPolyline(run, sp.Closed) {
				if err := appendRun(dashRun, false); err != nil {
					return nil, fmt.Errorf("stroke: %w", err)
				}
			}
			continue
		}
		if err := appendRun(run, sp.Closed); err != nil {
			return nil, fmt.Errorf("stroke: %w", err)
		}
	}
	if skipped > 0 {
		Logger().Debug("skipped degenerate stroke runs",
			"skipped", skipped, "total", len(flat.Subpaths))
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: no strokeable subpath", ErrDegenerateInput)
	}
	return buildMesh(positions, indices)
}

// MeshMemoryBytes estimates GPU memory for a mesh with the given counts,
// useful for budgeting pool capacities. Indices are 4 bytes each.
func MeshMemoryBytes(vertexCount, indexCount int) int {
	return vertexCount*VertexStride + indexCount*4
}
