package translate

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/softgeom/scenecodec/pkg/codec"
	"github.com/softgeom/scenecodec/pkg/scene"
)

// Import translates one codec mesh into a scene layer holding one mesh prim.
// Topology recovery reassembles the polygons the mesh had before
// triangulation using the added-edge markers; position values are restored
// to their original order using the point order marker when present.
func Import(src *codec.Mesh) (*scene.Layer, error) {
	t := &importTranslator{
		mesh:       src,
		positions:  NewImportAttribute[mgl32.Vec3](positionsDescriptor(), src),
		texCoords:  NewImportAttribute[mgl32.Vec2](texCoordsDescriptor(), src),
		normals:    NewImportAttribute[mgl32.Vec3](normalsDescriptor(), src),
		holeFaces:  NewImportAttribute[int32](holeFacesDescriptor(), src),
		addedEdges: NewImportAttribute[int32](addedEdgesDescriptor(), src),
		posOrder:   NewImportAttribute[int32](pointOrderDescriptor(), src),
	}
	return t.translate()
}

type importTranslator struct {
	mesh *codec.Mesh

	positions  *ImportAttribute[mgl32.Vec3]
	texCoords  *ImportAttribute[mgl32.Vec2]
	normals    *ImportAttribute[mgl32.Vec3]
	holeFaces  *ImportAttribute[int32]
	addedEdges *ImportAttribute[int32]
	posOrder   *ImportAttribute[int32]

	faceVertexCounts  []int32
	faceVertexIndices []int32
	holeIndices       []int32
}

func (t *importTranslator) translate() (*scene.Layer, error) {
	if err := t.checkData(); err != nil {
		return nil, err
	}
	t.populateValues()
	t.populateIndices()

	mesh := scene.NewMesh("mesh")
	t.setAttributesToMesh(mesh)
	mesh.FaceVertexCounts = t.faceVertexCounts
	mesh.FaceVertexIndices = t.faceVertexIndices
	mesh.HoleIndices = t.holeIndices
	mesh.SubdivisionScheme = "none"
	mesh.CreateAttribute(scene.AttrExtent, scene.Float3Array).Value = t.computeExtent()

	return &scene.Layer{Name: mesh.Name, Mesh: mesh}, nil
}

// checkData rejects structurally invalid codec meshes. All later stages use
// unchecked access guarded only by the absent-attribute no-op convention.
func (t *importTranslator) checkData() error {
	if t.mesh.NumFaces() == 0 {
		return ErrNoFaces
	}
	if !t.positions.HasPointAttribute() || t.positions.pointAttribute.NumValues() == 0 {
		return ErrNoPositions
	}
	// Decoded containers may carry arbitrary marker values; point order
	// values index the reconstructed position array and must stay inside it.
	if t.posOrder.HasPointAttribute() {
		order := t.posOrder.pointAttribute
		numSlots := order.NumValues()
		if numSlots == 0 {
			return ErrInvalidPointOrder
		}
		for i := 0; i < numSlots; i++ {
			if v := intFromBytes(order.Value(i)); v < 0 || int(v) >= numSlots {
				return ErrInvalidPointOrder
			}
		}
	}
	return nil
}

func (t *importTranslator) populateValues() {
	// The position order must be applied before any other reconstruction
	// that depends on original point ordering.
	if t.posOrder.HasPointAttribute() {
		t.positions.PopulateValuesWithOrder(t.posOrder, t.mesh.NumFaces(), t.mesh)
	} else {
		t.positions.PopulateValues()
	}
	// Face-varying attributes keep one index per corner; no deduplication.
	t.texCoords.PopulateValues()
	t.normals.PopulateValues()
}

// positionSlot returns the output position index for a codec mesh point.
func (t *importTranslator) positionSlot(pointIndex int) int32 {
	if t.posOrder.HasPointAttribute() {
		return t.posOrder.MappedValue(pointIndex)
	}
	return t.positions.MappedIndex(pointIndex)
}

// hasTrianglesOnly reports whether the codec mesh carries no added-edge
// markers, meaning the original mesh was already triangulated.
func (t *importTranslator) hasTrianglesOnly() bool {
	if !t.addedEdges.HasPointAttribute() {
		return true
	}
	for f := 0; f < t.mesh.NumFaces(); f++ {
		face := t.mesh.Face(f)
		for c := 0; c < 3; c++ {
			if t.addedEdges.MappedValue(face[c]) != 0 {
				return false
			}
		}
	}
	return true
}

func (t *importTranslator) populateIndices() {
	if t.hasTrianglesOnly() {
		t.populateTriangleIndices()
	} else {
		t.populatePolygonIndices()
	}
}

func (t *importTranslator) populateTriangleIndices() {
	numFaces := t.mesh.NumFaces()
	numCorners := 3 * numFaces
	t.faceVertexCounts = make([]int32, numFaces)
	t.faceVertexIndices = make([]int32, 0, numCorners)
	t.texCoords.ResizeIndices(numCorners)
	t.normals.ResizeIndices(numCorners)

	at := 0
	for f := 0; f < numFaces; f++ {
		t.faceVertexCounts[f] = 3
		face := t.mesh.Face(f)
		for c := 0; c < 3; c++ {
			pointIndex := face[c]
			t.faceVertexIndices = append(t.faceVertexIndices, t.positionSlot(pointIndex))
			t.texCoords.SetIndex(at, t.texCoords.MappedIndex(pointIndex))
			t.normals.SetIndex(at, t.normals.MappedIndex(pointIndex))
			at++
		}
		t.markHole(f, f)
	}
}

// populatePolygonIndices reassembles the original polygons in two passes:
// pass one groups triangles joined across added (diagonal) edges, pass two
// walks each group's original edge loop and emits one face per group.
func (t *importTranslator) populatePolygonIndices() {
	numFaces := t.mesh.NumFaces()
	cornerTable := codec.NewCornerTable(t.mesh, t.positions.pointAttribute)

	// Pass one: triangles sharing an added edge belong to one polygon.
	groups := newUnionFind(numFaces)
	for f := 0; f < numFaces; f++ {
		face := t.mesh.Face(f)
		for c := 0; c < 3; c++ {
			if t.addedEdges.MappedValue(face[c]) == 0 {
				continue
			}
			opposite := cornerTable.Opposite(3*f + c)
			if opposite >= 0 {
				groups.union(f, cornerTable.Face(opposite))
			}
		}
	}

	// Size the per-corner index arrays: one output corner per original edge.
	numOutputCorners := 0
	for f := 0; f < numFaces; f++ {
		face := t.mesh.Face(f)
		for c := 0; c < 3; c++ {
			if t.addedEdges.MappedValue(face[c]) == 0 {
				numOutputCorners++
			}
		}
	}
	t.texCoords.ResizeIndices(numOutputCorners)
	t.normals.ResizeIndices(numOutputCorners)

	// Pass two: emit each polygon once, in order of its first triangle.
	memberFaces := make(map[int][]int, numFaces)
	var roots []int
	for f := 0; f < numFaces; f++ {
		root := groups.find(f)
		if _, seen := memberFaces[root]; !seen {
			roots = append(roots, root)
		}
		memberFaces[root] = append(memberFaces[root], f)
	}

	at := 0
	for _, root := range roots {
		at = t.emitPolygon(memberFaces[root], at)
	}
}

// emitPolygon collects the original (non-diagonal) edges of one polygon's
// triangles and walks the resulting loop, starting at the smallest position
// index for determinism. Returns the updated output corner cursor.
func (t *importTranslator) emitPolygon(faces []int, at int) int {
	// Original edges keyed by the position index of the edge start, valued
	// by the codec point at the edge end.
	polygonEdges := make(map[int32]int, 2*len(faces)+2)
	start := int32(-1)
	for _, f := range faces {
		face := t.mesh.Face(f)
		for c := 0; c < 3; c++ {
			if t.addedEdges.MappedValue(face[c]) != 0 {
				continue
			}
			from := face[(c+1)%3]
			to := face[(c+2)%3]
			fromPosition := t.positions.MappedIndex(from)
			polygonEdges[fromPosition] = to
			if start == -1 || fromPosition < start {
				start = fromPosition
			}
		}
	}
	if len(polygonEdges) == 0 {
		return at
	}

	t.faceVertexCounts = append(t.faceVertexCounts, int32(len(polygonEdges)))
	t.markHole(faces[0], len(t.faceVertexCounts)-1)

	position := start
	for range polygonEdges {
		pointIndex := polygonEdges[position]
		t.faceVertexIndices = append(t.faceVertexIndices, t.positionSlot(pointIndex))
		t.texCoords.SetIndex(at, t.texCoords.MappedIndex(pointIndex))
		t.normals.SetIndex(at, t.normals.MappedIndex(pointIndex))
		at++
		position = t.positions.MappedIndex(pointIndex)
	}
	return at
}

// markHole records an output face as a hole when its source triangle
// carries the hole marker.
func (t *importTranslator) markHole(sourceFace, outputFace int) {
	if !t.holeFaces.HasPointAttribute() {
		return
	}
	if t.holeFaces.MappedValue(t.mesh.Face(sourceFace)[0]) != 0 {
		t.holeIndices = append(t.holeIndices, int32(outputFace))
	}
}

func (t *importTranslator) setAttributesToMesh(mesh *scene.Mesh) {
	t.positions.SetToMesh(mesh)
	t.normals.SetToMesh(mesh)
	t.texCoords.SetToMesh(mesh)
}

// computeExtent derives the axis-aligned bounding box of all positions.
func (t *importTranslator) computeExtent() []mgl32.Vec3 {
	values := t.positions.Values()
	if len(values) == 0 {
		return nil
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		for axis := 0; axis < 3; axis++ {
			if v[axis] < min[axis] {
				min[axis] = v[axis]
			}
			if v[axis] > max[axis] {
				max[axis] = v[axis]
			}
		}
	}
	return []mgl32.Vec3{min, max}
}

// unionFind is the local arena used to group triangles into polygons.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		// Attach the larger root to the smaller so group roots stay
		// stable in first-triangle order.
		if ra < rb {
			u.parent[rb] = ra
		} else {
			u.parent[ra] = rb
		}
	}
}
