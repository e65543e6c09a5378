// Package codec implements the in-memory model of the compressed mesh codec:
// a triangulated mesh with flat point attributes, per-point value maps,
// attribute metadata, and corner-table adjacency. The compression pipeline
// itself is opaque to callers; this package also provides the uncompressed
// binary container used to persist codec meshes.
package codec

import "fmt"

// AttributeType tags the semantic meaning of a point attribute.
type AttributeType int

const (
	AttributeInvalid AttributeType = iota
	AttributePosition
	AttributeNormal
	AttributeTexCoord
	AttributeGeneric
)

// String returns a human-readable attribute type name.
func (t AttributeType) String() string {
	switch t {
	case AttributePosition:
		return "position"
	case AttributeNormal:
		return "normal"
	case AttributeTexCoord:
		return "texcoord"
	case AttributeGeneric:
		return "generic"
	default:
		return fmt.Sprintf("invalid(%d)", int(t))
	}
}

// DataType is the per-component element type of a point attribute.
type DataType int

const (
	DataTypeFloat32 DataType = iota
	DataTypeInt32
)

// Size returns the byte width of one component.
func (t DataType) Size() int {
	switch t {
	case DataTypeFloat32, DataTypeInt32:
		return 4
	default:
		return 0
	}
}

// String returns a human-readable data type name.
func (t DataType) String() string {
	switch t {
	case DataTypeFloat32:
		return "float32"
	case DataTypeInt32:
		return "int32"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// AttributeMetadata holds string key/value entries attached to an attribute.
type AttributeMetadata struct {
	entries map[string]string
}

// NewAttributeMetadata creates empty attribute metadata.
func NewAttributeMetadata() *AttributeMetadata {
	return &AttributeMetadata{entries: make(map[string]string)}
}

// AddEntryString adds or replaces a string metadata entry.
func (md *AttributeMetadata) AddEntryString(key, value string) {
	md.entries[key] = value
}

// EntryString returns the value of a string metadata entry.
func (md *AttributeMetadata) EntryString(key string) (string, bool) {
	value, ok := md.entries[key]
	return value, ok
}

// NumEntries returns the number of metadata entries.
func (md *AttributeMetadata) NumEntries() int {
	return len(md.entries)
}

// PointAttribute is a flat array of attribute values plus a per-mesh-point
// mapping from point index to value index.
type PointAttribute struct {
	attributeType AttributeType
	numComponents int
	dataType      DataType
	byteStride    int

	buffer   []byte
	pointMap []int32
}

// NewPointAttribute creates an unallocated point attribute. Storage is
// allocated when the attribute is added to a mesh.
func NewPointAttribute(t AttributeType, numComponents int, dataType DataType, byteStride int) *PointAttribute {
	return &PointAttribute{
		attributeType: t,
		numComponents: numComponents,
		dataType:      dataType,
		byteStride:    byteStride,
	}
}

// Type returns the semantic attribute type.
func (a *PointAttribute) Type() AttributeType { return a.attributeType }

// NumComponents returns the number of components per value.
func (a *PointAttribute) NumComponents() int { return a.numComponents }

// DataType returns the per-component element type.
func (a *PointAttribute) DataType() DataType { return a.dataType }

// ByteStride returns the byte width of one value.
func (a *PointAttribute) ByteStride() int { return a.byteStride }

// NumValues returns the number of distinct attribute values.
func (a *PointAttribute) NumValues() int {
	if a.byteStride == 0 {
		return 0
	}
	return len(a.buffer) / a.byteStride
}

// SetValue copies one value's bytes into the given value slot.
func (a *PointAttribute) SetValue(valueIndex int, data []byte) {
	copy(a.buffer[valueIndex*a.byteStride:(valueIndex+1)*a.byteStride], data)
}

// Value returns the bytes of one value slot.
func (a *PointAttribute) Value(valueIndex int) []byte {
	return a.buffer[valueIndex*a.byteStride : (valueIndex+1)*a.byteStride]
}

// SetPointMapEntry maps a mesh point to a value index.
func (a *PointAttribute) SetPointMapEntry(pointIndex, valueIndex int) {
	a.pointMap[pointIndex] = int32(valueIndex)
}

// MappedIndex returns the value index a mesh point maps to.
func (a *PointAttribute) MappedIndex(pointIndex int) int {
	return int(a.pointMap[pointIndex])
}

// MappedValue returns the bytes of the value a mesh point maps to.
func (a *PointAttribute) MappedValue(pointIndex int) []byte {
	return a.Value(a.MappedIndex(pointIndex))
}
