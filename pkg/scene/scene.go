// Package scene provides a lightweight scene-description model for polygonal
// meshes: named attributes, primvars with interpolation semantics and optional
// index arrays, and layers produced by import.
package scene

import "github.com/go-gl/mathgl/mgl32"

// Interpolation describes how primvar values map onto mesh topology.
type Interpolation string

const (
	InterpolationConstant    Interpolation = "constant"    // one value for the whole mesh
	InterpolationUniform     Interpolation = "uniform"     // one value per face
	InterpolationVertex      Interpolation = "vertex"      // one value per point
	InterpolationFaceVarying Interpolation = "faceVarying" // one value per face corner
)

// ValueType tags the element type of an attribute value array.
type ValueType int

const (
	Float3Array ValueType = iota // []mgl32.Vec3
	Float2Array                  // []mgl32.Vec2
	IntArray                     // []int32
)

// String returns a human-readable value type name.
func (t ValueType) String() string {
	switch t {
	case Float3Array:
		return "float3[]"
	case Float2Array:
		return "float2[]"
	case IntArray:
		return "int[]"
	default:
		return "unknown"
	}
}

// Well-known attribute and primvar names.
const (
	AttrPoints     = "points"
	AttrExtent     = "extent"
	PrimvarNormals = "normals"
	PrimvarST      = "st"
)

// Attribute is a named, typed value array on a mesh prim.
type Attribute struct {
	Name  string
	Type  ValueType
	Value any // []mgl32.Vec3, []mgl32.Vec2, or []int32 per Type
}

// Primvar is an attribute with interpolation semantics and an optional
// index array. Empty indices on a vertex-interpolated primvar mean the
// implicit per-position identity mapping.
type Primvar struct {
	Attribute
	Interpolation Interpolation
	Indices       []int32
}

// Mesh is a polygonal mesh prim.
type Mesh struct {
	Name string

	FaceVertexCounts  []int32
	FaceVertexIndices []int32
	HoleIndices       []int32
	SubdivisionScheme string

	attributes map[string]*Attribute
	primvars   map[string]*Primvar
}

// NewMesh creates an empty mesh prim with the given name.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:       name,
		attributes: make(map[string]*Attribute),
		primvars:   make(map[string]*Primvar),
	}
}

// Attribute returns the named plain attribute, or nil if absent.
func (m *Mesh) Attribute(name string) *Attribute {
	return m.attributes[name]
}

// CreateAttribute creates (or replaces) a plain attribute with the given
// name and declared value type.
func (m *Mesh) CreateAttribute(name string, t ValueType) *Attribute {
	a := &Attribute{Name: name, Type: t}
	m.attributes[name] = a
	return a
}

// Primvar returns the named primvar, or nil if absent.
func (m *Mesh) Primvar(name string) *Primvar {
	return m.primvars[name]
}

// CreatePrimvar creates (or replaces) a primvar with the given name and
// declared value type.
func (m *Mesh) CreatePrimvar(name string, t ValueType) *Primvar {
	p := &Primvar{Attribute: Attribute{Name: name, Type: t}}
	m.primvars[name] = p
	return p
}

// Points returns the mesh point positions, or nil if unset.
func (m *Mesh) Points() []mgl32.Vec3 {
	a := m.Attribute(AttrPoints)
	if a == nil {
		return nil
	}
	points, _ := a.Value.([]mgl32.Vec3)
	return points
}

// SetPoints sets the mesh point positions.
func (m *Mesh) SetPoints(points []mgl32.Vec3) {
	m.CreateAttribute(AttrPoints, Float3Array).Value = points
}

// NumPoints returns the number of mesh points.
func (m *Mesh) NumPoints() int {
	return len(m.Points())
}

// NumFaces returns the number of faces.
func (m *Mesh) NumFaces() int {
	return len(m.FaceVertexCounts)
}

// Layer is a scene layer holding one reconstructed mesh prim.
type Layer struct {
	Name string
	Mesh *Mesh
}
