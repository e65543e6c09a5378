package codec

// CornerTable provides adjacency queries over a triangulated mesh. Corner i
// of face f has index 3*f+i; the edge opposite a corner connects the other
// two corners of its triangle. Two corners are opposite each other when
// their edges span the same pair of position values in opposite directions.
type CornerTable struct {
	opposite []int32
}

type positionEdge struct {
	from, to int32
}

// NewCornerTable builds a corner table from the mesh topology and the given
// position attribute.
func NewCornerTable(m *Mesh, positions *PointAttribute) *CornerTable {
	numCorners := 3 * m.NumFaces()
	ct := &CornerTable{opposite: make([]int32, numCorners)}
	for i := range ct.opposite {
		ct.opposite[i] = -1
	}

	edges := make(map[positionEdge]int32, numCorners)
	for f := 0; f < m.NumFaces(); f++ {
		face := m.Face(f)
		for c := 0; c < 3; c++ {
			from := int32(positions.MappedIndex(face[(c+1)%3]))
			to := int32(positions.MappedIndex(face[(c+2)%3]))
			edges[positionEdge{from, to}] = int32(3*f + c)
		}
	}

	for f := 0; f < m.NumFaces(); f++ {
		face := m.Face(f)
		for c := 0; c < 3; c++ {
			from := int32(positions.MappedIndex(face[(c+1)%3]))
			to := int32(positions.MappedIndex(face[(c+2)%3]))
			if opp, ok := edges[positionEdge{to, from}]; ok {
				ct.opposite[3*f+c] = opp
			}
		}
	}

	return ct
}

// Opposite returns the corner across the edge opposite the given corner, or
// -1 on a boundary edge.
func (ct *CornerTable) Opposite(corner int) int {
	return int(ct.opposite[corner])
}

// Face returns the face a corner belongs to.
func (ct *CornerTable) Face(corner int) int {
	return corner / 3
}
