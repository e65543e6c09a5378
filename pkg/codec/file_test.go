package codec

import (
	"errors"
	"testing"
)

func newContainerMesh(t *testing.T) *Mesh {
	t.Helper()
	m, _ := newFanMesh(t)

	marks := NewPointAttribute(AttributeGeneric, 1, DataTypeInt32, 4)
	id := m.AddAttribute(marks, 2)
	marks.SetValue(0, []byte{0, 0, 0, 0})
	marks.SetValue(1, []byte{1, 0, 0, 0})
	for point := 0; point < m.NumPoints(); point++ {
		marks.SetPointMapEntry(point, point%2)
	}
	md := NewAttributeMetadata()
	md.AddEntryString("name", "added_edges")
	m.AddAttributeMetadata(id, md)

	return m
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := newContainerMesh(t)
	got, err := Decode(Encode(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.NumPoints() != src.NumPoints() {
		t.Errorf("NumPoints = %d, want %d", got.NumPoints(), src.NumPoints())
	}
	if got.NumFaces() != src.NumFaces() {
		t.Errorf("NumFaces = %d, want %d", got.NumFaces(), src.NumFaces())
	}
	for f := 0; f < src.NumFaces(); f++ {
		if got.Face(f) != src.Face(f) {
			t.Errorf("Face(%d) = %v, want %v", f, got.Face(f), src.Face(f))
		}
	}

	if got.NumAttributes() != src.NumAttributes() {
		t.Fatalf("NumAttributes = %d, want %d", got.NumAttributes(), src.NumAttributes())
	}
	for id := 0; id < src.NumAttributes(); id++ {
		want := src.Attribute(id)
		a := got.Attribute(id)
		if a.Type() != want.Type() || a.DataType() != want.DataType() ||
			a.NumComponents() != want.NumComponents() {
			t.Errorf("attribute %d descriptor mismatch", id)
		}
		if a.NumValues() != want.NumValues() {
			t.Errorf("attribute %d NumValues = %d, want %d", id, a.NumValues(), want.NumValues())
		}
		for v := 0; v < want.NumValues(); v++ {
			if string(a.Value(v)) != string(want.Value(v)) {
				t.Errorf("attribute %d value %d mismatch", id, v)
			}
		}
		for p := 0; p < src.NumPoints(); p++ {
			if a.MappedIndex(p) != want.MappedIndex(p) {
				t.Errorf("attribute %d point map entry %d = %d, want %d",
					id, p, a.MappedIndex(p), want.MappedIndex(p))
			}
		}
	}

	if id := got.AttributeIDByMetadataEntry("name", "added_edges"); id != 1 {
		t.Errorf("metadata lost: AttributeIDByMetadataEntry = %d, want 1", id)
	}
}

func TestDecodeRejectsBadHeader(t *testing.T) {
	valid := Encode(newContainerMesh(t))

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrTruncatedData},
		{"short magic", []byte("SC"), ErrTruncatedData},
		{"wrong magic", append([]byte("NOPE"), valid[4:]...), ErrInvalidMagic},
		{"future version", append(append([]byte{}, valid[:4]...), append([]byte{99}, valid[5:]...)...), ErrUnsupportedVersion},
		{"truncated body", valid[:len(valid)/2], ErrTruncatedData},
		{"missing header fields", valid[:7], ErrTruncatedData},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(tc.data); !errors.Is(err, tc.want) {
				t.Errorf("Decode error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestDecodeRejectsCorruptData(t *testing.T) {
	t.Run("face index out of range", func(t *testing.T) {
		m := NewMesh()
		m.SetNumPoints(2)
		m.SetNumFaces(1)
		m.SetFace(0, Face{0, 1, 5})
		if _, err := Decode(Encode(m)); !errors.Is(err, ErrCorruptData) {
			t.Errorf("Decode error = %v, want %v", err, ErrCorruptData)
		}
	})

	t.Run("point map entry out of range", func(t *testing.T) {
		m := NewMesh()
		m.SetNumPoints(3)
		m.SetNumFaces(1)
		m.SetFace(0, Face{0, 1, 2})
		a := NewPointAttribute(AttributeGeneric, 1, DataTypeInt32, 4)
		m.AddAttribute(a, 2)
		a.SetPointMapEntry(0, 9)
		if _, err := Decode(Encode(m)); !errors.Is(err, ErrCorruptData) {
			t.Errorf("Decode error = %v, want %v", err, ErrCorruptData)
		}
	})

	t.Run("bad attribute descriptor", func(t *testing.T) {
		m := NewMesh()
		m.SetNumPoints(1)
		a := NewPointAttribute(AttributeGeneric, 9, DataTypeInt32, 36)
		m.AddAttribute(a, 0)
		if _, err := Decode(Encode(m)); !errors.Is(err, ErrCorruptData) {
			t.Errorf("Decode error = %v, want %v", err, ErrCorruptData)
		}
	})
}

func TestDecodeEmptyAttribute(t *testing.T) {
	// Zero-value attributes are legal; their point map entries are all zero.
	m := NewMesh()
	m.SetNumPoints(3)
	m.SetNumFaces(1)
	m.SetFace(0, Face{0, 1, 2})
	m.AddAttribute(NewPointAttribute(AttributeGeneric, 1, DataTypeInt32, 4), 0)

	got, err := Decode(Encode(m))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Attribute(0).NumValues() != 0 {
		t.Errorf("NumValues = %d, want 0", got.Attribute(0).NumValues())
	}
}
