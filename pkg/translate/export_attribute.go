package translate

import (
	"github.com/softgeom/scenecodec/pkg/codec"
	"github.com/softgeom/scenecodec/pkg/scene"
)

// ExportAttribute reads one scene attribute or primvar and writes it into a
// codec mesh as a point attribute. Absent scene attributes leave the export
// attribute empty, and every later operation on it is a no-op.
type ExportAttribute[T Value] struct {
	descriptor       AttributeDescriptor
	pointAttribute   *codec.PointAttribute // borrowed from the codec mesh, nil until SetToMesh
	usePositionIndex bool
	values           []T
	indices          []int32
}

// NewExportAttribute creates an empty export attribute for a descriptor.
func NewExportAttribute[T Value](descriptor AttributeDescriptor) *ExportAttribute[T] {
	return &ExportAttribute[T]{descriptor: descriptor}
}

// GetFromMesh populates the value and index arrays from the scene mesh
// according to the descriptor. Missing attributes and primvars are skipped.
func (a *ExportAttribute[T]) GetFromMesh(m *scene.Mesh, numPositions int) {
	if a.descriptor.IsPrimvar {
		primvar := m.Primvar(a.descriptor.Name)
		if primvar == nil {
			return
		}

		// Primvars with constant interpolation are not translated and
		// remain native scene data.
		if primvar.Interpolation == scene.InterpolationConstant {
			return
		}

		values, ok := primvar.Value.([]T)
		if !ok {
			return
		}
		a.values = values
		a.indices = primvar.Indices

		// Primvars with vertex interpolation may have implicit indices.
		a.usePositionIndex = primvar.Interpolation == scene.InterpolationVertex
		if len(a.indices) == 0 && a.usePositionIndex && len(a.values) == numPositions {
			a.indices = makeRange(numPositions)
		}
		return
	}

	attribute := m.Attribute(a.descriptor.Name)
	if attribute == nil {
		return
	}
	if values, ok := attribute.Value.([]T); ok {
		a.values = values
	}
}

// GetFromRange populates the value array with the ascending sequence
// 0..size-1. Used for marker attributes that have no scene-side source.
func (a *ExportAttribute[T]) GetFromRange(size int) {
	a.values = make([]T, size)
	for i := range a.values {
		a.values[i] = valueFromInt[T](i)
	}
}

// SetToMesh creates the codec point attribute, copies the values, and tags
// it with the descriptor's metadata name if it has one. No-op when the value
// array was never populated.
func (a *ExportAttribute[T]) SetToMesh(m *codec.Mesh) {
	// Optional attributes like normals may not be present.
	if len(a.values) == 0 {
		return
	}

	byteStride := a.descriptor.NumComponents * a.descriptor.DataType.Size()
	attribute := codec.NewPointAttribute(
		a.descriptor.AttributeType, a.descriptor.NumComponents,
		a.descriptor.DataType, byteStride)
	id := m.AddAttribute(attribute, len(a.values))
	a.pointAttribute = attribute

	buf := make([]byte, byteStride)
	for i, v := range a.values {
		putValue(buf, v)
		attribute.SetValue(i, buf)
	}

	if a.descriptor.MetadataName != "" {
		md := codec.NewAttributeMetadata()
		md.AddEntryString(MetadataNameKey, a.descriptor.MetadataName)
		m.AddAttributeMetadata(id, md)
	}
}

// SetPointMapEntry maps one codec mesh point to one attribute value.
func (a *ExportAttribute[T]) SetPointMapEntry(pointIndex, entryIndex int) {
	if a.pointAttribute == nil {
		return
	}
	a.pointAttribute.SetPointMapEntry(pointIndex, entryIndex)
}

// SetIndexedPointMapEntry maps one codec mesh point through the index array,
// selecting the position index or the corner index per the primvar's
// interpolation. The chosen index must be within the index array.
func (a *ExportAttribute[T]) SetIndexedPointMapEntry(pointIndex, positionIndex, cornerIndex int) {
	if a.pointAttribute == nil {
		return
	}
	index := cornerIndex
	if a.usePositionIndex {
		index = positionIndex
	}
	a.SetPointMapEntry(pointIndex, int(a.indices[index]))
}

// Clear resets the attribute for reuse.
func (a *ExportAttribute[T]) Clear() {
	a.values = nil
	a.indices = nil
	a.usePositionIndex = false
	a.pointAttribute = nil
}

// NumValues returns the number of populated values.
func (a *ExportAttribute[T]) NumValues() int {
	return len(a.values)
}

// NumIndices returns the number of populated indices.
func (a *ExportAttribute[T]) NumIndices() int {
	return len(a.indices)
}

// UsesPositionIndex reports whether point map entries are looked up by
// position index rather than corner index.
func (a *ExportAttribute[T]) UsesPositionIndex() bool {
	return a.usePositionIndex
}

// HasPointAttribute reports whether the codec attribute has been created.
func (a *ExportAttribute[T]) HasPointAttribute() bool {
	return a.pointAttribute != nil
}

// setIdentityIndices installs identity corner indices for unindexed
// face-varying primvars.
func (a *ExportAttribute[T]) setIdentityIndices(size int) {
	a.indices = makeRange(size)
}
