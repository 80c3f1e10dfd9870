package geometry

import (
	"math"
	"sort"

	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
)

const (
	// MaxBSPDepth caps the tree depth; the traversal stack is sized to it.
	MaxBSPDepth = 20

	// bspLeafSize is the triangle count at or below which a leaf is built.
	bspLeafSize = 4

	// leafAxis marks leaf nodes in the flat node array.
	leafAxis int32 = 3
)

// BSPNode is one node of the flat tree array. Internal nodes carry a split
// axis and plane plus two child indices; leaves carry a range into the
// permuted triangle-index array. Nodes are never mutated after construction,
// so traversal is lock-free.
type BSPNode struct {
	Axis  int32 // 0=X, 1=Y, 2=Z for internal nodes, leafAxis for leaves
	Plane float64
	Left  int32 // Internal: child indices
	Right int32

	Offset int32 // Leaf: range into BSP.Indices
	Count  int32
}

// IsLeaf reports whether the node is a leaf
func (n BSPNode) IsLeaf() bool {
	return n.Axis == leafAxis
}

// BSP is a binary spatial partition over the triangles of a mesh, built once
// per scene and read-only during traversal.
type BSP struct {
	Nodes   []BSPNode
	Indices []int32 // Leaf triangle indices, permuted
	Bounds  core.AABB

	mesh     *Mesh
	maxDepth int // Deepest node actually built
}

// NewBSP builds the tree with longest-axis median-of-centroids splits.
// Triangles whose bounding box straddles the split plane are referenced from
// both subtrees, so every leaf lists a superset of the triangles overlapping
// its cell. A degenerate scene with zero triangles yields a single empty
// leaf and traversal against it returns no hit.
func NewBSP(mesh *Mesh) *BSP {
	b := &BSP{
		mesh:   mesh,
		Bounds: mesh.Bounds(),
	}

	work := make([]int32, len(mesh.Triangles))
	for i := range work {
		work[i] = int32(i)
	}
	b.build(work, 0)

	return b
}

// build partitions the work list and returns the node index
func (b *BSP) build(work []int32, depth int) int32 {
	if depth > b.maxDepth {
		b.maxDepth = depth
	}

	if len(work) <= bspLeafSize || depth >= MaxBSPDepth {
		return b.createLeaf(work)
	}

	// Longest axis of the bounds of the working set
	bounds := b.workBounds(work)
	axis := bounds.LongestAxis()
	plane := b.medianCentroid(work, axis)

	// Partition by bounding box side: straddlers go to both subtrees
	left := make([]int32, 0, len(work)/2+1)
	right := make([]int32, 0, len(work)/2+1)
	for _, tri := range work {
		tb := b.mesh.TriangleBounds(tri)
		if tb.Min.Component(axis) <= plane {
			left = append(left, tri)
		}
		if tb.Max.Component(axis) >= plane {
			right = append(right, tri)
		}
	}

	// No progress: duplication stopped separating triangles
	if len(left) == len(work) && len(right) == len(work) {
		return b.createLeaf(work)
	}
	if len(left) == 0 || len(right) == 0 {
		return b.createLeaf(work)
	}

	// Reserve the node slot before recursing so children get higher indices
	nodeIndex := int32(len(b.Nodes))
	b.Nodes = append(b.Nodes, BSPNode{Axis: int32(axis), Plane: plane})

	leftIndex := b.build(left, depth+1)
	rightIndex := b.build(right, depth+1)
	b.Nodes[nodeIndex].Left = leftIndex
	b.Nodes[nodeIndex].Right = rightIndex

	return nodeIndex
}

// createLeaf appends the triangle range and the leaf node
func (b *BSP) createLeaf(work []int32) int32 {
	node := BSPNode{
		Axis:   leafAxis,
		Offset: int32(len(b.Indices)),
		Count:  int32(len(work)),
	}
	b.Indices = append(b.Indices, work...)
	b.Nodes = append(b.Nodes, node)
	return int32(len(b.Nodes)) - 1
}

// workBounds unions the bounding boxes of the working set
func (b *BSP) workBounds(work []int32) core.AABB {
	bounds := b.mesh.TriangleBounds(work[0])
	for _, tri := range work[1:] {
		bounds = bounds.Union(b.mesh.TriangleBounds(tri))
	}
	return bounds
}

// medianCentroid returns the median triangle centroid along the axis
func (b *BSP) medianCentroid(work []int32, axis int) float64 {
	centroids := make([]float64, len(work))
	for i, tri := range work {
		centroids[i] = b.mesh.TriangleCentroid(tri).Component(axis)
	}
	sort.Float64s(centroids)
	return centroids[len(centroids)/2]
}

// MaxDepth returns the deepest node level of the built tree
func (b *BSP) MaxDepth() int {
	return b.maxDepth
}

// LeafStats returns the number of leaves and total leaf triangle references
func (b *BSP) LeafStats() (leaves, refs int) {
	for _, n := range b.Nodes {
		if n.IsLeaf() {
			leaves++
			refs += int(n.Count)
		}
	}
	return leaves, refs
}

// bspStackEntry saves a deferred far branch with its t-interval
type bspStackEntry struct {
	node       int32
	tMin, tMax float64
}

// Intersect clips the ray against the scene bounds and descends the tree
// with an explicit bounded stack. At a leaf, every listed triangle is tested
// and ray.TMax shrinks to the nearest hit; the traversal short-circuits once
// a hit lies within the current leaf's t-interval, because nearer cells were
// already visited.
func (b *BSP) Intersect(ray *core.Ray) (Hit, bool) {
	clipped := *ray
	if !b.Bounds.Clip(&clipped) {
		return Hit{}, false
	}

	var stack [MaxBSPDepth + 2]bspStackEntry
	stackTop := 0

	var best Hit
	found := false

	node := int32(0)
	tMin, tMax := clipped.TMin, clipped.TMax

	for {
		n := b.Nodes[node]

		if !n.IsLeaf() {
			axis := int(n.Axis)
			origin := ray.Origin.Component(axis)
			direction := ray.Direction.Component(axis)

			tPlane := math.Inf(1)
			if direction != 0 {
				tPlane = (n.Plane - origin) / direction
			} else if origin >= n.Plane {
				tPlane = math.Inf(-1)
			}

			// The child containing the ray origin is the near branch
			near, far := n.Left, n.Right
			if origin > n.Plane || (origin == n.Plane && direction < 0) {
				near, far = n.Right, n.Left
			}

			switch {
			case tPlane >= tMax || tPlane < 0:
				node = near
			case tPlane <= tMin:
				node = far
			default:
				// Both branches: defer far with [tPlane, tMax]
				if stackTop < len(stack) {
					stack[stackTop] = bspStackEntry{node: far, tMin: tPlane, tMax: tMax}
					stackTop++
				}
				node = near
				tMax = tPlane
			}
			continue
		}

		for _, tri := range b.Indices[n.Offset : n.Offset+n.Count] {
			if t, u, v, ok := b.mesh.IntersectTriangle(*ray, tri); ok {
				ray.TMax = t
				best = b.mesh.resolveHit(*ray, tri, t, u, v)
				found = true
			}
		}

		// Any hit inside this leaf's interval cannot be beaten by cells
		// still on the stack, which all start at or beyond tMax.
		if found && best.T <= tMax {
			return best, true
		}

		for {
			if stackTop == 0 {
				return best, found
			}
			stackTop--
			entry := stack[stackTop]
			if entry.tMin < ray.TMax {
				node = entry.node
				tMin = entry.tMin
				tMax = math.Min(entry.tMax, ray.TMax)
				break
			}
		}
	}
}
