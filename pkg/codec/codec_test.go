package codec

import (
	"encoding/binary"
	"math"
	"testing"
)

func float32Bytes(values ...float32) []byte {
	out := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

func TestPointAttributeValues(t *testing.T) {
	m := NewMesh()
	m.SetNumPoints(3)

	a := NewPointAttribute(AttributePosition, 3, DataTypeFloat32, 12)
	m.AddAttribute(a, 2)

	if a.NumValues() != 2 {
		t.Fatalf("NumValues = %d, want 2", a.NumValues())
	}

	first := float32Bytes(1, 2, 3)
	second := float32Bytes(4, 5, 6)
	a.SetValue(0, first)
	a.SetValue(1, second)

	a.SetPointMapEntry(0, 1)
	a.SetPointMapEntry(1, 0)
	a.SetPointMapEntry(2, 1)

	if got := a.MappedIndex(0); got != 1 {
		t.Errorf("MappedIndex(0) = %d, want 1", got)
	}
	if got := a.MappedValue(1); string(got) != string(first) {
		t.Errorf("MappedValue(1) = %v, want %v", got, first)
	}
	if got := a.MappedValue(2); string(got) != string(second) {
		t.Errorf("MappedValue(2) = %v, want %v", got, second)
	}
}

func TestNamedAttributeID(t *testing.T) {
	m := NewMesh()
	m.SetNumPoints(1)

	if got := m.NamedAttributeID(AttributePosition); got != -1 {
		t.Errorf("NamedAttributeID on empty mesh = %d, want -1", got)
	}

	m.AddAttribute(NewPointAttribute(AttributePosition, 3, DataTypeFloat32, 12), 1)
	m.AddAttribute(NewPointAttribute(AttributeNormal, 3, DataTypeFloat32, 12), 1)

	if got := m.NamedAttributeID(AttributeNormal); got != 1 {
		t.Errorf("NamedAttributeID(normal) = %d, want 1", got)
	}
	if got := m.NamedAttributeID(AttributeTexCoord); got != -1 {
		t.Errorf("NamedAttributeID(texcoord) = %d, want -1", got)
	}
}

func TestAttributeIDByMetadataEntry(t *testing.T) {
	m := NewMesh()
	m.SetNumPoints(1)

	first := m.AddAttribute(NewPointAttribute(AttributeGeneric, 1, DataTypeInt32, 4), 1)
	second := m.AddAttribute(NewPointAttribute(AttributeGeneric, 1, DataTypeInt32, 4), 1)

	md := NewAttributeMetadata()
	md.AddEntryString("name", "hole_faces")
	m.AddAttributeMetadata(first, md)

	md = NewAttributeMetadata()
	md.AddEntryString("name", "added_edges")
	m.AddAttributeMetadata(second, md)

	tests := []struct {
		name  string
		key   string
		value string
		want  int
	}{
		{"first marker", "name", "hole_faces", first},
		{"second marker", "name", "added_edges", second},
		{"unknown value", "name", "point_order", -1},
		{"unknown key", "kind", "hole_faces", -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.AttributeIDByMetadataEntry(tc.key, tc.value); got != tc.want {
				t.Errorf("AttributeIDByMetadataEntry(%q, %q) = %d, want %d",
					tc.key, tc.value, got, tc.want)
			}
		})
	}
}

// newFanMesh builds the two-triangle codec form of a quad: triangles
// (0,1,2) and (0,2,3) with one point per corner and a position attribute
// mapping points to four distinct positions.
func newFanMesh(t *testing.T) (*Mesh, *PointAttribute) {
	t.Helper()
	m := NewMesh()
	m.SetNumPoints(6)
	m.SetNumFaces(2)
	m.SetFace(0, Face{0, 1, 2})
	m.SetFace(1, Face{3, 4, 5})

	positions := NewPointAttribute(AttributePosition, 3, DataTypeFloat32, 12)
	m.AddAttribute(positions, 4)
	for i := 0; i < 4; i++ {
		positions.SetValue(i, float32Bytes(float32(i), 0, 0))
	}
	for point, position := range []int{0, 1, 2, 0, 2, 3} {
		positions.SetPointMapEntry(point, position)
	}
	return m, positions
}

func TestCornerTable(t *testing.T) {
	m, positions := newFanMesh(t)
	ct := NewCornerTable(m, positions)

	// The diagonal (0,2) is opposite corner 1 of face 0 and corner 2 of
	// face 1; every other edge is a boundary.
	if got := ct.Opposite(1); got != 5 {
		t.Errorf("Opposite(1) = %d, want 5", got)
	}
	if got := ct.Opposite(5); got != 1 {
		t.Errorf("Opposite(5) = %d, want 1", got)
	}
	for _, corner := range []int{0, 2, 3, 4} {
		if got := ct.Opposite(corner); got != -1 {
			t.Errorf("Opposite(%d) = %d, want -1 (boundary)", corner, got)
		}
	}

	if got := ct.Face(5); got != 1 {
		t.Errorf("Face(5) = %d, want 1", got)
	}
}
