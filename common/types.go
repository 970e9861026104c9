// package common contains plain data types and helpers shared across the engine. They are not
// interface-wrapped structs, just plain structs that express commonly used data.
package common

// Vertex is the interleaved vertex layout shared by every mesh: position, normal, texture coordinate.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// Topology is the primitive topology of a mesh.
type Topology int

const (
	TopologyTriangles Topology = iota
	TopologyLines
)

// MeshData is CPU-side geometry waiting to be uploaded.
type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
	Topology Topology
}

// TextureData holds tightly packed RGBA8 pixels pending GPU upload, first row at the top.
type TextureData struct {
	// Pixels is Width*Height*4 bytes.
	Pixels []byte
	Width  uint32
	Height uint32
}

// Color is a linear RGBA colour.
type Color [4]float32
