package scene

import (
	"errors"

	"github.com/fogleman/simplify"
	"github.com/go-gl/mathgl/mgl32"
)

// Decimation errors.
var (
	ErrNotTriangulated = errors.New("decimation requires a triangulated mesh")
	ErrNoGeometry      = errors.New("mesh has no triangles to decimate")
)

// Decimate returns a copy of the mesh reduced to roughly the given fraction
// of its triangles. Normals and texture coordinate primvars are dropped
// because decimation invalidates them; positions are re-deduplicated.
func Decimate(m *Mesh, factor float64) (*Mesh, error) {
	points := m.Points()
	if len(m.FaceVertexCounts) == 0 || len(points) == 0 {
		return nil, ErrNoGeometry
	}
	for _, n := range m.FaceVertexCounts {
		if n != 3 {
			return nil, ErrNotTriangulated
		}
	}

	triangles := make([]*simplify.Triangle, 0, len(m.FaceVertexCounts))
	for i := 0; i+2 < len(m.FaceVertexIndices); i += 3 {
		v1 := toVector(points[m.FaceVertexIndices[i]])
		v2 := toVector(points[m.FaceVertexIndices[i+1]])
		v3 := toVector(points[m.FaceVertexIndices[i+2]])
		triangles = append(triangles, simplify.NewTriangle(v1, v2, v3))
	}

	simplified := simplify.NewMesh(triangles).Simplify(factor)

	out := NewMesh(m.Name)
	slots := make(map[simplify.Vector]int32)
	var outPoints []mgl32.Vec3
	index := func(v simplify.Vector) int32 {
		if slot, ok := slots[v]; ok {
			return slot
		}
		slot := int32(len(outPoints))
		slots[v] = slot
		outPoints = append(outPoints, fromVector(v))
		return slot
	}

	for _, t := range simplified.Triangles {
		out.FaceVertexCounts = append(out.FaceVertexCounts, 3)
		out.FaceVertexIndices = append(out.FaceVertexIndices,
			index(t.V1), index(t.V2), index(t.V3))
	}
	out.SetPoints(outPoints)

	return out, nil
}

func toVector(v mgl32.Vec3) simplify.Vector {
	return simplify.Vector{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

func fromVector(v simplify.Vector) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
