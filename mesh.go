package tess

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/image/math/f32"
)

const (
	// MaxMeshVertices is the maximum vertex count of a single mesh.
	MaxMeshVertices = 1 << 16

	// MaxMeshIndices is the maximum index count of a single mesh.
	MaxMeshIndices = 3 * MaxMeshVertices

	// VertexStride is the byte size of one Vertex: position + UV, four
	// float32 values. Consumers depend on this layout.
	VertexStride = 16
)

// Vertex is one element of a mesh vertex buffer: a position and a UV
// coordinate normalized to the mesh bounding box, used by renderers for
// gradient sampling. The in-memory layout matches the 16-byte GPU vertex
// layout described by VertexLayout.
type Vertex struct {
	// Pos is the position in path coordinates.
	Pos f32.Vec2
	// UV is the position normalized to the mesh bounds, in [0, 1].
	UV f32.Vec2
}

// Mesh owns a tessellated path's vertex and index buffers plus its bounding
// box. A Mesh is immutable once built; renderers upload the buffers and draw
// them as an indexed triangle list.
type Mesh struct {
	vertices []Vertex
	indices  []uint32
	bounds   Rect
}

// Vertices returns the read-only vertex slice.
func (m *Mesh) Vertices() []Vertex {
	return m.vertices
}

// Indices returns the read-only triangle index slice.
// Every index is less than the mesh's own vertex count.
func (m *Mesh) Indices() []uint32 {
	return m.indices
}

// Bounds returns the mesh bounding box in path coordinates.
func (m *Mesh) Bounds() Rect {
	return m.bounds
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.indices) / 3
}

// VertexData serializes the vertex buffer to little-endian bytes in the
// VertexLayout order, ready for GPU upload.
func (m *Mesh) VertexData() []byte {
	buf := make([]byte, len(m.vertices)*VertexStride)
	le := binary.LittleEndian
	for i, v := range m.vertices {
		off := i * VertexStride
		le.PutUint32(buf[off+0:off+4], math.Float32bits(v.Pos[0]))
		le.PutUint32(buf[off+4:off+8], math.Float32bits(v.Pos[1]))
		le.PutUint32(buf[off+8:off+12], math.Float32bits(v.UV[0]))
		le.PutUint32(buf[off+12:off+16], math.Float32bits(v.UV[1]))
	}
	return buf
}

// IndexData serializes the index buffer to little-endian bytes for GPU
// upload, matching IndexFormat.
func (m *Mesh) IndexData() []byte {
	buf := make([]byte, len(m.indices)*4)
	le := binary.LittleEndian
	for i, idx := range m.indices {
		le.PutUint32(buf[i*4:i*4+4], idx)
	}
	return buf
}

// buildMesh assembles positions and triangle indices into an immutable
// Mesh, normalizing UVs to the bounding box of the positions. A degenerate
// extent (zero width or height) maps to UV 0 on that axis.
//
// Capacity overflow is a caller-visible error. An index pointing past the
// vertex count is a bug in the tessellation code, not in user input, and
// panics.
func buildMesh(points []Point, indices []uint32) (*Mesh, error) {
	if len(points) > MaxMeshVertices {
		return nil, fmt.Errorf("%w: mesh has %d vertices, max %d", ErrCapacityExceeded, len(points), MaxMeshVertices)
	}
	if len(indices) > MaxMeshIndices {
		return nil, fmt.Errorf("%w: mesh has %d indices, max %d", ErrCapacityExceeded, len(indices), MaxMeshIndices)
	}
	for _, idx := range indices {
		if int(idx) >= len(points) {
			panic(fmt.Sprintf("tess: mesh index %d out of range for %d vertices", idx, len(points)))
		}
	}

	bounds := boundsOf(points)
	w := bounds.Width()
	h := bounds.Height()

	vertices := make([]Vertex, len(points))
	for i, p := range points {
		var u, v float32
		if w > 0 {
			u = (p.X - bounds.Min.X) / w
		}
		if h > 0 {
			v = (p.Y - bounds.Min.Y) / h
		}
		vertices[i] = Vertex{
			Pos: f32.Vec2{p.X, p.Y},
			UV:  f32.Vec2{u, v},
		}
	}

	out := make([]uint32, len(indices))
	copy(out, indices)

	return &Mesh{
		vertices: vertices,
		indices:  out,
		bounds:   bounds,
	}, nil
}
