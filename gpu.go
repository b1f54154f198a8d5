package tess

import "github.com/gogpu/gputypes"

// Vertex shader locations for the mesh vertex layout.
const (
	// ShaderLocationPosition is the shader location of the position
	// attribute.
	ShaderLocationPosition = 0
	// ShaderLocationUV is the shader location of the UV attribute.
	ShaderLocationUV = 1
)

// VertexLayout returns the vertex buffer layout describing Mesh vertex data
// to a render pipeline: a 16-byte stride with two float32x2 attributes,
// position at offset 0 and UV at offset 8.
func VertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: ShaderLocationPosition},
			{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: ShaderLocationUV},
		},
	}
}

// IndexFormat returns the index format of Mesh index data.
func IndexFormat() gputypes.IndexFormat {
	return gputypes.IndexFormatUint32
}

// VertexBufferUsage returns the buffer usage flags for uploading
// Mesh.VertexData.
func VertexBufferUsage() gputypes.BufferUsage {
	return gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst
}

// IndexBufferUsage returns the buffer usage flags for uploading
// Mesh.IndexData.
func IndexBufferUsage() gputypes.BufferUsage {
	return gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst
}
