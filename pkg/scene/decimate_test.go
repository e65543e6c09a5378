package scene

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// gridMesh builds an n x n grid of unit quads split into triangles, giving
// the simplifier something worth collapsing.
func gridMesh(n int) *Mesh {
	m := NewMesh("grid")
	var points []mgl32.Vec3
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			points = append(points, mgl32.Vec3{float32(x), float32(y), 0})
		}
	}
	m.SetPoints(points)

	stride := int32(n + 1)
	for y := int32(0); y < int32(n); y++ {
		for x := int32(0); x < int32(n); x++ {
			a := y*stride + x
			b := a + 1
			c := a + stride
			d := c + 1
			m.FaceVertexCounts = append(m.FaceVertexCounts, 3, 3)
			m.FaceVertexIndices = append(m.FaceVertexIndices, a, b, d, a, d, c)
		}
	}
	return m
}

func TestDecimateReducesTriangles(t *testing.T) {
	src := gridMesh(8)
	got, err := Decimate(src, 0.5)
	if err != nil {
		t.Fatalf("Decimate: %v", err)
	}

	if got.NumFaces() == 0 {
		t.Fatal("decimated mesh has no faces")
	}
	if got.NumFaces() >= src.NumFaces() {
		t.Errorf("NumFaces = %d, want fewer than %d", got.NumFaces(), src.NumFaces())
	}
	for _, n := range got.FaceVertexCounts {
		if n != 3 {
			t.Fatalf("decimated mesh has a %d-gon, want triangles only", n)
		}
	}
	if 3*got.NumFaces() != len(got.FaceVertexIndices) {
		t.Errorf("indices = %d, want %d", len(got.FaceVertexIndices), 3*got.NumFaces())
	}
	for _, index := range got.FaceVertexIndices {
		if index < 0 || int(index) >= got.NumPoints() {
			t.Fatalf("index %d out of range (%d points)", index, got.NumPoints())
		}
	}
}

func TestDecimateDeduplicatesPoints(t *testing.T) {
	src := gridMesh(4)
	got, err := Decimate(src, 1.0)
	if err != nil {
		t.Fatalf("Decimate: %v", err)
	}

	seen := make(map[mgl32.Vec3]bool, got.NumPoints())
	for _, p := range got.Points() {
		if seen[p] {
			t.Fatalf("point %v duplicated after decimation", p)
		}
		seen[p] = true
	}
}

func TestDecimateErrors(t *testing.T) {
	t.Run("no geometry", func(t *testing.T) {
		if _, err := Decimate(NewMesh("empty"), 0.5); !errors.Is(err, ErrNoGeometry) {
			t.Errorf("Decimate error = %v, want %v", err, ErrNoGeometry)
		}
	})

	t.Run("not triangulated", func(t *testing.T) {
		m := NewMesh("quad")
		m.SetPoints([]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}})
		m.FaceVertexCounts = []int32{4}
		m.FaceVertexIndices = []int32{0, 1, 2, 3}
		if _, err := Decimate(m, 0.5); !errors.Is(err, ErrNotTriangulated) {
			t.Errorf("Decimate error = %v, want %v", err, ErrNotTriangulated)
		}
	})
}
