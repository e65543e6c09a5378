// Package translate converts polygonal mesh data between the scene model and
// the codec mesh model, in both directions. Export reads scene attributes and
// primvars into codec point attributes over a fan-triangulated face set;
// import reconstructs the original polygon topology and attribute layout from
// a codec mesh.
package translate

import (
	"github.com/softgeom/scenecodec/pkg/codec"
	"github.com/softgeom/scenecodec/pkg/scene"
)

// MetadataNameKey is the reserved metadata key under which a codec attribute
// stores its disambiguating name. It is the only persisted metadata
// convention shared between export and import.
const MetadataNameKey = "name"

// Metadata names of the auxiliary marker attributes.
const (
	metadataHoleFaces  = "hole_faces"
	metadataAddedEdges = "added_edges"
	metadataPointOrder = "point_order"
)

// AttributeDescriptor statically describes how one semantic attribute maps
// between the scene and codec models. Descriptors are constructed once per
// translation run and read-only thereafter.
type AttributeDescriptor struct {
	AttributeType codec.AttributeType
	Name          string // scene attribute or primvar name
	NumComponents int
	DataType      codec.DataType
	IsPrimvar     bool
	ValueType     scene.ValueType // scene value type used on creation

	// MetadataName disambiguates codec attributes that share a semantic
	// type. Empty for attributes located by type alone.
	MetadataName string
}

func positionsDescriptor() AttributeDescriptor {
	return AttributeDescriptor{
		AttributeType: codec.AttributePosition,
		Name:          scene.AttrPoints,
		NumComponents: 3,
		DataType:      codec.DataTypeFloat32,
		ValueType:     scene.Float3Array,
	}
}

func normalsDescriptor() AttributeDescriptor {
	return AttributeDescriptor{
		AttributeType: codec.AttributeNormal,
		Name:          scene.PrimvarNormals,
		NumComponents: 3,
		DataType:      codec.DataTypeFloat32,
		IsPrimvar:     true,
		ValueType:     scene.Float3Array,
	}
}

func texCoordsDescriptor() AttributeDescriptor {
	return AttributeDescriptor{
		AttributeType: codec.AttributeTexCoord,
		Name:          scene.PrimvarST,
		NumComponents: 2,
		DataType:      codec.DataTypeFloat32,
		IsPrimvar:     true,
		ValueType:     scene.Float2Array,
	}
}

// The marker descriptors have no scene-side source or destination; they are
// synthesized on export and consumed on import.

func holeFacesDescriptor() AttributeDescriptor {
	return markerDescriptor(metadataHoleFaces)
}

func addedEdgesDescriptor() AttributeDescriptor {
	return markerDescriptor(metadataAddedEdges)
}

func pointOrderDescriptor() AttributeDescriptor {
	return markerDescriptor(metadataPointOrder)
}

func markerDescriptor(metadataName string) AttributeDescriptor {
	return AttributeDescriptor{
		AttributeType: codec.AttributeGeneric,
		NumComponents: 1,
		DataType:      codec.DataTypeInt32,
		ValueType:     scene.IntArray,
		MetadataName:  metadataName,
	}
}
