// Package gltfio converts between glTF documents and the scene model. It is
// the file boundary of the converter CLI: glTF supplies triangulated
// per-vertex data on the way in, and reconstructed layers are flattened back
// to per-corner vertices on the way out.
package gltfio

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/softgeom/scenecodec/pkg/scene"
)

// glTF boundary errors.
var (
	ErrNoTriangleMesh = errors.New("no triangle mesh with positions found in glTF document")
	ErrEmptyLayer     = errors.New("layer has no mesh to save")
)

// Load reads the first triangle primitive of a glTF file into a scene mesh.
// Normals and texture coordinates become vertex-interpolated primvars with
// implicit indexing, matching glTF's per-vertex layout.
func Load(path string) (*scene.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, err
	}

	for _, gltfMesh := range doc.Meshes {
		for _, primitive := range gltfMesh.Primitives {
			if primitive.Mode != gltf.PrimitiveTriangles {
				continue
			}
			posIdx, ok := primitive.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			return loadPrimitive(doc, gltfMesh.Name, primitive, posIdx)
		}
	}

	return nil, ErrNoTriangleMesh
}

func loadPrimitive(doc *gltf.Document, name string, primitive *gltf.Primitive, posIdx int) (*scene.Mesh, error) {
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, err
	}

	var indices []uint32
	if primitive.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil)
		if err != nil {
			return nil, err
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	if name == "" {
		name = "mesh"
	}
	mesh := scene.NewMesh(name)

	points := make([]mgl32.Vec3, len(positions))
	for i, p := range positions {
		points[i] = mgl32.Vec3(p)
	}
	mesh.SetPoints(points)

	numFaces := len(indices) / 3
	mesh.FaceVertexCounts = make([]int32, numFaces)
	mesh.FaceVertexIndices = make([]int32, 3*numFaces)
	for f := 0; f < numFaces; f++ {
		mesh.FaceVertexCounts[f] = 3
		for c := 0; c < 3; c++ {
			mesh.FaceVertexIndices[3*f+c] = int32(indices[3*f+c])
		}
	}

	if normIdx, ok := primitive.Attributes[gltf.NORMAL]; ok {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
		if err == nil && len(normals) == len(positions) {
			values := make([]mgl32.Vec3, len(normals))
			for i, n := range normals {
				values[i] = mgl32.Vec3(n)
			}
			primvar := mesh.CreatePrimvar(scene.PrimvarNormals, scene.Float3Array)
			primvar.Value = values
			primvar.Interpolation = scene.InterpolationVertex
		}
	}

	if texIdx, ok := primitive.Attributes[gltf.TEXCOORD_0]; ok {
		texCoords, err := modeler.ReadTextureCoord(doc, doc.Accessors[texIdx], nil)
		if err == nil && len(texCoords) == len(positions) {
			values := make([]mgl32.Vec2, len(texCoords))
			for i, tc := range texCoords {
				values[i] = mgl32.Vec2(tc)
			}
			primvar := mesh.CreatePrimvar(scene.PrimvarST, scene.Float2Array)
			primvar.Value = values
			primvar.Interpolation = scene.InterpolationVertex
		}
	}

	return mesh, nil
}

// Save writes a reconstructed layer as a glTF file. Polygons are
// fan-triangulated and face-varying primvars are flattened to one vertex per
// corner, which is the only layout glTF can express losslessly here.
func Save(path string, layer *scene.Layer) error {
	if layer == nil || layer.Mesh == nil {
		return ErrEmptyLayer
	}
	mesh := layer.Mesh
	points := mesh.Points()

	normals := cornerValues[mgl32.Vec3](mesh.Primvar(scene.PrimvarNormals), len(mesh.FaceVertexIndices))
	texCoords := cornerValues[mgl32.Vec2](mesh.Primvar(scene.PrimvarST), len(mesh.FaceVertexIndices))

	var outPositions [][3]float32
	var outNormals [][3]float32
	var outTexCoords [][2]float32
	var outIndices []uint32

	firstCorner := 0
	for _, n := range mesh.FaceVertexCounts {
		for v := 1; v+1 < int(n); v++ {
			for _, fv := range [3]int{0, v, v + 1} {
				corner := firstCorner + fv
				outIndices = append(outIndices, uint32(len(outPositions)))
				outPositions = append(outPositions, [3]float32(points[mesh.FaceVertexIndices[corner]]))
				if normals != nil {
					outNormals = append(outNormals, [3]float32(normals[corner]))
				}
				if texCoords != nil {
					outTexCoords = append(outTexCoords, [2]float32(texCoords[corner]))
				}
			}
		}
		firstCorner += int(n)
	}

	doc := gltf.NewDocument()
	attributes := map[string]int{
		gltf.POSITION: modeler.WritePosition(doc, outPositions),
	}
	if outNormals != nil {
		attributes[gltf.NORMAL] = modeler.WriteNormal(doc, outNormals)
	}
	if outTexCoords != nil {
		attributes[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(doc, outTexCoords)
	}
	doc.Meshes = []*gltf.Mesh{{
		Name: mesh.Name,
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(modeler.WriteIndices(doc, outIndices)),
			Attributes: attributes,
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: mesh.Name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	return gltf.Save(doc, path)
}

// cornerValues resolves a primvar to one value per corner, or nil when the
// primvar is absent or cannot be addressed per corner.
func cornerValues[T mgl32.Vec3 | mgl32.Vec2](primvar *scene.Primvar, numCorners int) []T {
	if primvar == nil {
		return nil
	}
	values, ok := primvar.Value.([]T)
	if !ok || len(values) == 0 {
		return nil
	}
	if len(primvar.Indices) == numCorners {
		out := make([]T, 0, numCorners)
		for _, idx := range primvar.Indices {
			out = append(out, values[idx])
		}
		return out
	}
	if len(primvar.Indices) == 0 && len(values) == numCorners {
		return values
	}
	return nil
}
