package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
	"github.com/jkvist/go-bsp-pathtracer/pkg/material"
)

func TestBSP_EmptyMesh(t *testing.T) {
	mesh := &Mesh{}
	bsp := NewBSP(mesh)

	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	if _, ok := bsp.Intersect(&ray); ok {
		t.Error("Expected no hit against an empty mesh")
	}
	if len(bsp.Nodes) != 1 || !bsp.Nodes[0].IsLeaf() {
		t.Errorf("Expected a single empty leaf, got %d nodes", len(bsp.Nodes))
	}
}

func TestBSP_SingleTriangle(t *testing.T) {
	mesh := unitTriangleMesh()
	bsp := NewBSP(mesh)

	ray := core.NewRay(core.NewVec3(0.25, 0.25, 5), core.NewVec3(0, 0, -1))
	hit, ok := bsp.Intersect(&ray)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if math.Abs(hit.T-5) > 1e-9 {
		t.Errorf("Expected t=5, got %v", hit.T)
	}
	if ray.TMax != hit.T {
		t.Errorf("Expected ray.TMax narrowed to %v, got %v", hit.T, ray.TMax)
	}
}

func TestBSP_DepthCap(t *testing.T) {
	mesh := randomTriangleMesh(rand.New(rand.NewSource(3)), 5000)
	bsp := NewBSP(mesh)

	if bsp.MaxDepth() > MaxBSPDepth {
		t.Errorf("Tree depth %d exceeds cap %d", bsp.MaxDepth(), MaxBSPDepth)
	}

	leaves, refs := bsp.LeafStats()
	if leaves == 0 {
		t.Fatal("Expected at least one leaf")
	}
	if refs < len(mesh.Triangles) {
		t.Errorf("Leaf references %d cover fewer than %d triangles", refs, len(mesh.Triangles))
	}
}

// randomTriangleMesh scatters small triangles through the unit cube
func randomTriangleMesh(random *rand.Rand, count int) *Mesh {
	mesh := &Mesh{
		Materials: []material.Material{material.NewLambert(core.NewVec3(0.5, 0.5, 0.5))},
	}
	for i := 0; i < count; i++ {
		center := core.NewVec3(random.Float64(), random.Float64(), random.Float64())
		base := int32(len(mesh.Vertices))
		for v := 0; v < 3; v++ {
			offset := core.NewVec3(
				(random.Float64()-0.5)*0.2,
				(random.Float64()-0.5)*0.2,
				(random.Float64()-0.5)*0.2,
			)
			mesh.Vertices = append(mesh.Vertices, Vertex{Position: center.Add(offset)})
		}
		mesh.Triangles = append(mesh.Triangles, Triangle{V: [3]int32{base, base + 1, base + 2}})
	}
	return mesh
}

// TestBSP_MatchesLinearScan fires random rays at random meshes and checks
// that the tree traversal finds exactly the hits a brute-force scan finds.
func TestBSP_MatchesLinearScan(t *testing.T) {
	random := rand.New(rand.NewSource(1))

	for _, triangles := range []int{1, 7, 64, 500} {
		mesh := randomTriangleMesh(random, triangles)
		bsp := NewBSP(mesh)

		for i := 0; i < 500; i++ {
			origin := core.NewVec3(
				random.Float64()*4-2,
				random.Float64()*4-2,
				random.Float64()*4-2,
			)
			direction := core.NewVec3(
				random.Float64()*2-1,
				random.Float64()*2-1,
				random.Float64()*2-1,
			).Normalize()
			if direction.IsZero() {
				continue
			}

			bspRay := core.NewRay(origin, direction)
			linearRay := core.NewRay(origin, direction)

			bspHit, bspOK := bsp.Intersect(&bspRay)
			linearHit, linearOK := mesh.IntersectLinear(&linearRay)

			if bspOK != linearOK {
				t.Fatalf("mesh=%d ray=%d: tree hit=%v, linear hit=%v", triangles, i, bspOK, linearOK)
			}
			if bspOK && math.Abs(bspHit.T-linearHit.T) > 1e-9 {
				t.Fatalf("mesh=%d ray=%d: tree t=%v, linear t=%v", triangles, i, bspHit.T, linearHit.T)
			}
		}
	}
}

func TestBSP_RespectsRayInterval(t *testing.T) {
	mesh := unitTriangleMesh()
	bsp := NewBSP(mesh)

	// Triangle at t=5 lies beyond TMax
	ray := core.NewBoundedRay(core.NewVec3(0.25, 0.25, 5), core.NewVec3(0, 0, -1), 0, 4)
	if _, ok := bsp.Intersect(&ray); ok {
		t.Error("Expected no hit beyond TMax")
	}

	// And behind TMin
	ray = core.NewBoundedRay(core.NewVec3(0.25, 0.25, 5), core.NewVec3(0, 0, -1), 6, 100)
	if _, ok := bsp.Intersect(&ray); ok {
		t.Error("Expected no hit before TMin")
	}
}
