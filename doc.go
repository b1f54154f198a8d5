// Package tess converts 2D vector paths into GPU-renderable triangle meshes.
//
// # Overview
//
// tess is a Pure Go tessellation engine for the GoGPU ecosystem. It turns
// path descriptions built from line and curve commands into vertex and index
// buffers that a renderer can upload and draw as triangle lists. Fills are
// tessellated with ear-clipping triangulation; strokes are expanded into
// quad and fan geometry that is triangulated directly. A two-tier mesh pool
// (persistent and per-frame) avoids redundant tessellation across frames.
//
// # Quick Start
//
//	import "github.com/gogpu/tess"
//
//	pool := tess.NewMeshPool(0, 0)
//	tl := tess.NewTessellator()
//
//	path, err := tess.BuildPath().
//		MoveTo(0, 0).LineTo(100, 0).LineTo(100, 100).LineTo(0, 100).
//		Close().Build()
//	if err != nil {
//		// handle error
//	}
//
//	// Per frame:
//	pool.ResetFrame()
//	ref, err := tl.Fill(pool, path)
//	if err != nil {
//		// skip this path, keep the frame going
//	}
//	mesh, _ := pool.Lookup(ref)
//	// upload mesh.VertexData() / mesh.IndexData() and draw
//
// # Architecture
//
// The library is a single package organized around leaf-first components:
//   - Geometry: Point, Vec2, Rect, curve flattening
//   - Path: PathElement commands, Path, PathBuilder, content hashing
//   - Tessellation: ear-clipping triangulator, stroke expander
//   - Output: Vertex (16-byte position + UV layout), Mesh, MeshPool, MeshRef
//   - Facade: Tessellator orchestrating flatten, tessellate, cache
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians
//
// # Concurrency
//
// All operations are synchronous and single-threaded by contract. The mesh
// pool is owned by the frame coordinator; concurrent use within one frame
// must be serialized externally.
package tess

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
