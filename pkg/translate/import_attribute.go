package translate

import (
	"github.com/softgeom/scenecodec/pkg/codec"
	"github.com/softgeom/scenecodec/pkg/scene"
)

// ImportAttribute locates one codec point attribute and writes it back into
// the scene as a plain attribute or an indexed primvar. A codec mesh may
// lack any given attribute; operations on an absent attribute are no-ops.
type ImportAttribute[T Value] struct {
	descriptor     AttributeDescriptor
	pointAttribute *codec.PointAttribute // borrowed from the codec mesh, nil when absent
	values         []T
	indices        []int32
}

// NewImportAttribute creates an import attribute and performs the codec
// attribute lookup, by semantic type or by metadata name.
func NewImportAttribute[T Value](descriptor AttributeDescriptor, m *codec.Mesh) *ImportAttribute[T] {
	a := &ImportAttribute[T]{descriptor: descriptor}
	a.pointAttribute = a.findInMesh(m)
	return a
}

func (a *ImportAttribute[T]) findInMesh(m *codec.Mesh) *codec.PointAttribute {
	var id int
	if a.descriptor.MetadataName == "" {
		id = m.NamedAttributeID(a.descriptor.AttributeType)
	} else {
		id = m.AttributeIDByMetadataEntry(MetadataNameKey, a.descriptor.MetadataName)
	}
	if id == -1 {
		return nil
	}
	return m.Attribute(id)
}

// PopulateValues copies every attribute value in value-index order.
func (a *ImportAttribute[T]) PopulateValues() {
	if a.pointAttribute == nil {
		return
	}
	numValues := a.pointAttribute.NumValues()
	a.values = make([]T, numValues)
	for i := range a.values {
		a.values[i] = getValue[T](a.pointAttribute.Value(i))
	}
}

// PopulateValuesWithOrder copies values into the slots named by the order
// attribute, which records per mesh point the originally-intended output
// index. The output is sized by the order attribute's value count, one slot
// per original value; each slot is written exactly once, so the result is
// independent of any point deduplication the codec performed.
func (a *ImportAttribute[T]) PopulateValuesWithOrder(order *ImportAttribute[int32], numFaces int, m *codec.Mesh) {
	if a.pointAttribute == nil {
		return
	}
	numSlots := order.pointAttribute.NumValues()
	a.values = make([]T, numSlots)
	populated := make([]bool, numSlots)
	for f := 0; f < numFaces; f++ {
		face := m.Face(f)
		for c := 0; c < 3; c++ {
			pointIndex := face[c]
			origIndex := order.MappedValue(pointIndex)
			if !populated[origIndex] {
				a.values[origIndex] = getValue[T](a.pointAttribute.MappedValue(pointIndex))
				populated[origIndex] = true
			}
		}
	}
}

// MappedValue returns the single integer value a mesh point maps to. Only
// meaningful for integer marker attributes. Returns 0 when the attribute is
// absent or has no values.
func (a *ImportAttribute[T]) MappedValue(pointIndex int) int32 {
	if a.pointAttribute == nil || a.pointAttribute.NumValues() == 0 {
		return 0
	}
	return intFromBytes(a.pointAttribute.MappedValue(pointIndex))
}

// MappedIndex returns the attribute value index a mesh point maps to.
// Returns 0 when absent.
func (a *ImportAttribute[T]) MappedIndex(pointIndex int) int32 {
	if a.pointAttribute == nil {
		return 0
	}
	return int32(a.pointAttribute.MappedIndex(pointIndex))
}

// Values returns the populated value array.
func (a *ImportAttribute[T]) Values() []T {
	return a.values
}

// ResizeIndices allocates the scene-side index array.
func (a *ImportAttribute[T]) ResizeIndices(size int) {
	if a.pointAttribute == nil {
		return
	}
	a.indices = make([]int32, size)
}

// SetIndex sets one scene-side index entry.
func (a *ImportAttribute[T]) SetIndex(at int, index int32) {
	if a.pointAttribute == nil {
		return
	}
	a.indices[at] = index
}

// NumValues returns the number of populated values.
func (a *ImportAttribute[T]) NumValues() int {
	return len(a.values)
}

// NumIndices returns the number of populated indices.
func (a *ImportAttribute[T]) NumIndices() int {
	return len(a.indices)
}

// HasPointAttribute reports whether the codec attribute was found.
func (a *ImportAttribute[T]) HasPointAttribute() bool {
	return a.pointAttribute != nil
}

// SetToMesh writes the values into the scene mesh. Primvars are created
// with face-varying interpolation: the codec mesh only materializes values
// per corner, so any coarser original interpolation is not recoverable and
// face-varying is the lossless superset.
func (a *ImportAttribute[T]) SetToMesh(m *scene.Mesh) {
	if a.pointAttribute == nil {
		return
	}
	if a.descriptor.IsPrimvar {
		primvar := m.CreatePrimvar(a.descriptor.Name, a.descriptor.ValueType)
		primvar.Value = a.values
		primvar.Indices = a.indices
		primvar.Interpolation = scene.InterpolationFaceVarying
		return
	}
	attribute := m.CreateAttribute(a.descriptor.Name, a.descriptor.ValueType)
	attribute.Value = a.values
}
