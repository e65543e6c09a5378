package codec

// Face holds the three point indices of one triangle.
type Face [3]int

// Mesh is a triangulated codec mesh: faces over points, with any number of
// point attributes. Points are corner-grained on encode; a real compression
// pass may deduplicate them, so importers must not assume one point per
// corner.
type Mesh struct {
	faces     []Face
	numPoints int

	attributes []*PointAttribute
	metadata   []*AttributeMetadata // parallel to attributes, nil when untagged
}

// NewMesh creates an empty codec mesh.
func NewMesh() *Mesh {
	return &Mesh{}
}

// SetNumFaces allocates the face list.
func (m *Mesh) SetNumFaces(n int) {
	m.faces = make([]Face, n)
}

// SetFace sets one triangle's point indices.
func (m *Mesh) SetFace(faceIndex int, face Face) {
	m.faces[faceIndex] = face
}

// Face returns one triangle's point indices.
func (m *Mesh) Face(faceIndex int) Face {
	return m.faces[faceIndex]
}

// NumFaces returns the number of triangles.
func (m *Mesh) NumFaces() int {
	return len(m.faces)
}

// SetNumPoints sets the mesh point count. Must be called before attributes
// are added, since point maps are sized from it.
func (m *Mesh) SetNumPoints(n int) {
	m.numPoints = n
}

// NumPoints returns the mesh point count.
func (m *Mesh) NumPoints() int {
	return m.numPoints
}

// AddAttribute adds a point attribute sized to the given value count and
// returns its attribute id. The point map is sized to the mesh point count.
func (m *Mesh) AddAttribute(a *PointAttribute, numValues int) int {
	a.buffer = make([]byte, numValues*a.byteStride)
	a.pointMap = make([]int32, m.numPoints)
	m.attributes = append(m.attributes, a)
	m.metadata = append(m.metadata, nil)
	return len(m.attributes) - 1
}

// Attribute returns the attribute with the given id.
func (m *Mesh) Attribute(id int) *PointAttribute {
	return m.attributes[id]
}

// NumAttributes returns the number of attributes.
func (m *Mesh) NumAttributes() int {
	return len(m.attributes)
}

// AddAttributeMetadata attaches metadata to the attribute with the given id.
func (m *Mesh) AddAttributeMetadata(id int, md *AttributeMetadata) {
	m.metadata[id] = md
}

// AttributeMetadata returns the metadata attached to an attribute, or nil.
func (m *Mesh) AttributeMetadata(id int) *AttributeMetadata {
	return m.metadata[id]
}

// NamedAttributeID returns the id of the first attribute with the given
// semantic type, or -1 if none exists.
func (m *Mesh) NamedAttributeID(t AttributeType) int {
	for id, a := range m.attributes {
		if a.attributeType == t {
			return id
		}
	}
	return -1
}

// AttributeIDByMetadataEntry returns the id of the first attribute whose
// metadata holds the given key/value entry, or -1 if none matches.
func (m *Mesh) AttributeIDByMetadataEntry(key, value string) int {
	for id, md := range m.metadata {
		if md == nil {
			continue
		}
		if v, ok := md.EntryString(key); ok && v == value {
			return id
		}
	}
	return -1
}
