package renderer

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	sphereSectors    = 32
	sphereStacks     = 16
	radialSegments   = 24
	normalLineLength = 0.25
)

// SphereMesh builds a unit UV sphere centred on the origin.
//
// Parameters:
//   - sectors: the number of slices around the Y axis (at least 3)
//   - stacks: the number of bands from pole to pole (at least 2)
//
// Returns:
//   - common.MeshData: an indexed triangle list with outward normals
func SphereMesh(sectors, stacks int) common.MeshData {
	vertices := make([]common.Vertex, 0, (sectors+1)*(stacks+1))
	for i := 0; i <= stacks; i++ {
		a := math32.Pi/2 - float32(i)*math32.Pi/float32(stacks)
		ring, y := math32.Cos(a), math32.Sin(a)
		for j := 0; j <= sectors; j++ {
			theta := float32(j) * 2 * math32.Pi / float32(sectors)
			p := [3]float32{ring * math32.Cos(theta), y, -ring * math32.Sin(theta)}
			vertices = append(vertices, common.Vertex{
				Position: p,
				Normal:   p,
				UV:       [2]float32{float32(j) / float32(sectors), float32(i) / float32(stacks)},
			})
		}
	}

	indices := make([]uint32, 0, sectors*stacks*6)
	for i := 0; i < stacks; i++ {
		k1 := uint32(i * (sectors + 1))
		k2 := k1 + uint32(sectors+1)
		for j := 0; j < sectors; j, k1, k2 = j+1, k1+1, k2+1 {
			// The first and last bands are fans around the poles.
			if i != 0 {
				indices = append(indices, k1, k2, k1+1)
			}
			if i != stacks-1 {
				indices = append(indices, k1+1, k2, k2+1)
			}
		}
	}

	return common.MeshData{Vertices: vertices, Indices: indices, Topology: common.TopologyTriangles}
}

// cubeFaces lists the outward normal and one in-plane axis of each cube face.
var cubeFaces = [6][2]mgl32.Vec3{
	{{1, 0, 0}, {0, 0, -1}},
	{{-1, 0, 0}, {0, 0, 1}},
	{{0, 1, 0}, {1, 0, 0}},
	{{0, -1, 0}, {1, 0, 0}},
	{{0, 0, 1}, {1, 0, 0}},
	{{0, 0, -1}, {-1, 0, 0}},
}

// CubeMesh builds the cube spanning -1..1 on every axis with per-face normals and UVs.
func CubeMesh() common.MeshData {
	return boxMesh(false)
}

// SkyboxMesh builds the same cube as CubeMesh wound and lit from the inside.
func SkyboxMesh() common.MeshData {
	return boxMesh(true)
}

func boxMesh(inward bool) common.MeshData {
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	vertices := make([]common.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, face := range cubeFaces {
		n, u := face[0], face[1]
		v := n.Cross(u)
		base := uint32(len(vertices))

		normal := n
		if inward {
			normal = n.Mul(-1)
		}
		for _, c := range corners {
			p := n.Add(u.Mul(c[0])).Add(v.Mul(c[1]))
			vertices = append(vertices, common.Vertex{
				Position: p,
				Normal:   normal,
				UV:       [2]float32{(c[0] + 1) / 2, (1 - c[1]) / 2},
			})
		}

		if inward {
			indices = append(indices, base, base+2, base+1, base, base+3, base+2)
		} else {
			indices = append(indices, base, base+1, base+2, base, base+2, base+3)
		}
	}

	return common.MeshData{Vertices: vertices, Indices: indices, Topology: common.TopologyTriangles}
}

// CylinderMesh builds a capped cylinder of radius 1 running from y=0 to y=1.
//
// Parameters:
//   - segments: the number of sides (at least 3)
//
// Returns:
//   - common.MeshData: an indexed triangle list with outward normals
func CylinderMesh(segments int) common.MeshData {
	var vertices []common.Vertex
	var indices []uint32

	for j := 0; j <= segments; j++ {
		u := float32(j) / float32(segments)
		c, s := ringPoint(j, segments)
		normal := [3]float32{c, 0, -s}
		vertices = append(vertices,
			common.Vertex{Position: [3]float32{c, 1, -s}, Normal: normal, UV: [2]float32{u, 0}},
			common.Vertex{Position: [3]float32{c, 0, -s}, Normal: normal, UV: [2]float32{u, 1}},
		)
	}
	for j := 0; j < segments; j++ {
		top0, bottom0 := uint32(2*j), uint32(2*j+1)
		top1, bottom1 := top0+2, bottom0+2
		indices = append(indices, top0, bottom0, top1, top1, bottom0, bottom1)
	}

	vertices, indices = appendCap(vertices, indices, segments, 1, true)
	vertices, indices = appendCap(vertices, indices, segments, 0, false)

	return common.MeshData{Vertices: vertices, Indices: indices, Topology: common.TopologyTriangles}
}

// ConeMesh builds a cone with a base disc of radius 1 at y=0 and its apex at y=1.
//
// Parameters:
//   - segments: the number of sides (at least 3)
//
// Returns:
//   - common.MeshData: an indexed triangle list with outward normals
func ConeMesh(segments int) common.MeshData {
	var vertices []common.Vertex
	var indices []uint32

	slant := math32.Sqrt(2) / 2
	for j := 0; j < segments; j++ {
		c0, s0 := ringPoint(j, segments)
		c1, s1 := ringPoint(j+1, segments)
		mid := (float32(j) + 0.5) / float32(segments) * 2 * math32.Pi
		base := uint32(len(vertices))

		vertices = append(vertices,
			common.Vertex{
				Position: [3]float32{0, 1, 0},
				Normal:   [3]float32{math32.Cos(mid) * slant, slant, -math32.Sin(mid) * slant},
				UV:       [2]float32{(float32(j) + 0.5) / float32(segments), 0},
			},
			common.Vertex{
				Position: [3]float32{c0, 0, -s0},
				Normal:   [3]float32{c0 * slant, slant, -s0 * slant},
				UV:       [2]float32{float32(j) / float32(segments), 1},
			},
			common.Vertex{
				Position: [3]float32{c1, 0, -s1},
				Normal:   [3]float32{c1 * slant, slant, -s1 * slant},
				UV:       [2]float32{float32(j+1) / float32(segments), 1},
			},
		)
		indices = append(indices, base, base+1, base+2)
	}

	vertices, indices = appendCap(vertices, indices, segments, 0, false)

	return common.MeshData{Vertices: vertices, Indices: indices, Topology: common.TopologyTriangles}
}

// appendCap adds a flat disc of radius 1 at height y facing +Y (up) or -Y.
func appendCap(vertices []common.Vertex, indices []uint32, segments int, y float32, up bool) ([]common.Vertex, []uint32) {
	ny := float32(-1)
	if up {
		ny = 1
	}
	center := uint32(len(vertices))
	vertices = append(vertices, common.Vertex{
		Position: [3]float32{0, y, 0},
		Normal:   [3]float32{0, ny, 0},
		UV:       [2]float32{0.5, 0.5},
	})
	for j := 0; j <= segments; j++ {
		c, s := ringPoint(j, segments)
		vertices = append(vertices, common.Vertex{
			Position: [3]float32{c, y, -s},
			Normal:   [3]float32{0, ny, 0},
			UV:       [2]float32{(c + 1) / 2, (s + 1) / 2},
		})
	}
	for j := uint32(0); j < uint32(segments); j++ {
		a, b := center+1+j, center+2+j
		if up {
			indices = append(indices, center, a, b)
		} else {
			indices = append(indices, center, b, a)
		}
	}
	return vertices, indices
}

// ringPoint returns the cosine and sine of the j-th of n angles around the circle.
func ringPoint(j, n int) (float32, float32) {
	theta := float32(j) * 2 * math32.Pi / float32(n)
	return math32.Cos(theta), math32.Sin(theta)
}

// CoordinateSystemMesh builds three unit line segments from the origin along +X, +Y and +Z.
// Each vertex normal is its axis, which the debug shader turns into the axis colour.
func CoordinateSystemMesh() common.MeshData {
	var vertices []common.Vertex
	var indices []uint32
	for axis := range 3 {
		var dir [3]float32
		dir[axis] = 1
		base := uint32(len(vertices))
		vertices = append(vertices,
			common.Vertex{Normal: dir},
			common.Vertex{Position: dir, Normal: dir},
		)
		indices = append(indices, base, base+1)
	}
	return common.MeshData{Vertices: vertices, Indices: indices, Topology: common.TopologyLines}
}

// NormalsMesh builds one line per vertex of src, from the vertex along its normal.
//
// Parameters:
//   - src: the mesh whose normals are visualised
//   - length: the line length in mesh units
//
// Returns:
//   - common.MeshData: an indexed line list
func NormalsMesh(src common.MeshData, length float32) common.MeshData {
	vertices := make([]common.Vertex, 0, len(src.Vertices)*2)
	indices := make([]uint32, 0, len(src.Vertices)*2)
	for _, v := range src.Vertices {
		p := mgl32.Vec3(v.Position)
		n := mgl32.Vec3(v.Normal)
		base := uint32(len(vertices))
		vertices = append(vertices,
			common.Vertex{Position: v.Position, Normal: v.Normal},
			common.Vertex{Position: p.Add(n.Mul(length)), Normal: v.Normal},
		)
		indices = append(indices, base, base+1)
	}
	return common.MeshData{Vertices: vertices, Indices: indices, Topology: common.TopologyLines}
}
