package translate

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/softgeom/scenecodec/pkg/codec"
	"github.com/softgeom/scenecodec/pkg/scene"
)

// Translation errors. Structural invalidity aborts the whole translation;
// absent optional attributes never produce an error.
var (
	ErrNoFaces           = errors.New("mesh has no faces")
	ErrNoPositions       = errors.New("mesh has no position data")
	ErrMalformedTopology = errors.New("face vertex counts and indices are inconsistent")
	ErrInvalidPointOrder = errors.New("point order marker values are out of range")
)

// Export translates one scene mesh into one codec mesh. The codec mesh is
// fan-triangulated with one point per corner; hole, added-edge, and point
// order markers are attached so import can reconstruct the original
// polygons and value ordering.
func Export(src *scene.Mesh, dst *codec.Mesh) error {
	t := &exportTranslator{
		mesh:       src,
		positions:  NewExportAttribute[mgl32.Vec3](positionsDescriptor()),
		texCoords:  NewExportAttribute[mgl32.Vec2](texCoordsDescriptor()),
		normals:    NewExportAttribute[mgl32.Vec3](normalsDescriptor()),
		holeFaces:  NewExportAttribute[int32](holeFacesDescriptor()),
		addedEdges: NewExportAttribute[int32](addedEdgesDescriptor()),
		posOrder:   NewExportAttribute[int32](pointOrderDescriptor()),
	}
	return t.translate(dst)
}

type exportTranslator struct {
	mesh *scene.Mesh

	positions  *ExportAttribute[mgl32.Vec3]
	texCoords  *ExportAttribute[mgl32.Vec2]
	normals    *ExportAttribute[mgl32.Vec3]
	holeFaces  *ExportAttribute[int32]
	addedEdges *ExportAttribute[int32]
	posOrder   *ExportAttribute[int32]
}

func (t *exportTranslator) translate(dst *codec.Mesh) error {
	if err := t.checkTopology(); err != nil {
		return err
	}

	numPositions := t.mesh.NumPoints()
	t.positions.GetFromMesh(t.mesh, numPositions)
	if t.positions.NumValues() == 0 {
		return ErrNoPositions
	}
	t.texCoords.GetFromMesh(t.mesh, numPositions)
	t.normals.GetFromMesh(t.mesh, numPositions)

	numCorners := len(t.mesh.FaceVertexIndices)
	checkPrimvarData(t.texCoords, scene.PrimvarST, numPositions, numCorners)
	checkPrimvarData(t.normals, scene.PrimvarNormals, numPositions, numCorners)

	numTriangles := 0
	for _, n := range t.mesh.FaceVertexCounts {
		numTriangles += int(n) - 2
	}
	dst.SetNumPoints(3 * numTriangles)
	dst.SetNumFaces(numTriangles)

	t.positions.SetToMesh(dst)
	t.texCoords.SetToMesh(dst)
	t.normals.SetToMesh(dst)
	t.holeFaces.GetFromRange(2)
	t.holeFaces.SetToMesh(dst)
	t.addedEdges.GetFromRange(2)
	t.addedEdges.SetToMesh(dst)
	t.posOrder.GetFromRange(numPositions)
	t.posOrder.SetToMesh(dst)

	t.setPointMaps(dst)
	return nil
}

// checkTopology validates face counts and indices before any codec state is
// created. Later stages index these arrays unchecked.
func (t *exportTranslator) checkTopology() error {
	if len(t.mesh.FaceVertexCounts) == 0 {
		return ErrNoFaces
	}
	numPositions := t.mesh.NumPoints()
	if numPositions == 0 {
		return ErrNoPositions
	}
	total := 0
	for _, n := range t.mesh.FaceVertexCounts {
		if n < 3 {
			return ErrMalformedTopology
		}
		total += int(n)
	}
	if total != len(t.mesh.FaceVertexIndices) {
		return ErrMalformedTopology
	}
	for _, index := range t.mesh.FaceVertexIndices {
		if index < 0 || int(index) >= numPositions {
			return ErrMalformedTopology
		}
	}
	return nil
}

// checkPrimvarData verifies that a populated primvar can be addressed per
// corner or per position. Unindexed face-varying data with one value per
// corner gets identity indices; anything else that cannot be mapped is
// cleared and skipped.
func checkPrimvarData[T Value](a *ExportAttribute[T], name string, numPositions, numCorners int) {
	if a.NumValues() == 0 {
		return
	}
	if a.UsesPositionIndex() {
		if a.NumIndices() == numPositions {
			return
		}
	} else {
		if a.NumIndices() == numCorners {
			return
		}
		if a.NumIndices() == 0 && a.NumValues() == numCorners {
			a.setIdentityIndices(numCorners)
			return
		}
	}
	zap.L().Warn("skipping primvar with unmappable indexing",
		zap.String("primvar", name),
		zap.Int("values", a.NumValues()),
		zap.Int("indices", a.NumIndices()))
	a.Clear()
}

// setPointMaps fan-triangulates every face and maps each emitted codec point
// (one per triangle corner) to its attribute values and marker entries.
func (t *exportTranslator) setPointMaps(dst *codec.Mesh) {
	isHole := make([]bool, len(t.mesh.FaceVertexCounts))
	for _, h := range t.mesh.HoleIndices {
		if h >= 0 && int(h) < len(isHole) {
			isHole[h] = true
		}
	}

	point := 0
	triangle := 0
	firstCorner := 0
	for f, n := range t.mesh.FaceVertexCounts {
		hole := 0
		if isHole[f] {
			hole = 1
		}
		for v := 1; v+1 < int(n); v++ {
			corners := [3]int{0, v, v + 1}
			var face codec.Face
			for c, fv := range corners {
				cornerIndex := firstCorner + fv
				positionIndex := int(t.mesh.FaceVertexIndices[cornerIndex])
				face[c] = point

				t.positions.SetPointMapEntry(point, positionIndex)
				t.texCoords.SetIndexedPointMapEntry(point, positionIndex, cornerIndex)
				t.normals.SetIndexedPointMapEntry(point, positionIndex, cornerIndex)
				t.holeFaces.SetPointMapEntry(point, hole)
				t.addedEdges.SetPointMapEntry(point, addedEdgeMark(int(n), v, c))
				t.posOrder.SetPointMapEntry(point, positionIndex)
				point++
			}
			dst.SetFace(triangle, face)
			triangle++
		}
		firstCorner += int(n)
	}
}

// addedEdgeMark reports whether the edge opposite corner c of fan triangle
// (0, v, v+1) of an n-gon is a triangulation diagonal rather than an
// original polygon edge.
func addedEdgeMark(n, v, c int) int {
	switch c {
	case 1:
		// Opposite edge (0, v+1); original only when it closes the polygon.
		if v+1 != n-1 {
			return 1
		}
	case 2:
		// Opposite edge (0, v); original only when it starts the fan.
		if v != 1 {
			return 1
		}
	}
	// Opposite edge of the apex corner (v, v+1) is always original.
	return 0
}
