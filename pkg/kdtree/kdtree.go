// Package kdtree implements the surface-area-heuristic (SAH) k-d tree
// acceleration structure: the spatial index that answers ray/scene
// intersection queries in sub-linear time.
package kdtree

import (
	"fmt"
	"math"
	"sort"

	"github.com/df07/kdpath/pkg/core"
)

const (
	maxShapesInLeaf = 8
	isectCost       = 80
	travCost        = 1
	emptyBonus      = 0.5
)

// node is one entry of the pre-order node array. A node is an interior
// split if aboveChild >= 0; otherwise it is a leaf and shapes holds the
// indices (into the tree's shape pool) of the primitives it contains. The
// below child of an interior node is always at index+1 in the array.
type node struct {
	axis       core.Axis
	split      float32
	aboveChild int32
	shapes     []int32
}

// Tree is a SAH k-d tree over an immutable set of shapes.
type Tree struct {
	bbox   core.BBox3
	nodes  []node
	shapes []core.Shape
}

// edgeType distinguishes the start and end of a primitive's extent along an
// axis when sweeping for the best split.
type edgeType uint8

const (
	edgeStart edgeType = iota
	edgeEnd
)

type boundEdge struct {
	t     float32
	prim  int32
	kind  edgeType
}

// New builds a k-d tree over shapes. maxDepth, if <= 0, defaults to
// round(8 + 1.3*log2(n)) as specified.
func New(shapes []core.Shape, maxDepth int) (*Tree, error) {
	if len(shapes) == 0 {
		return nil, fmt.Errorf("kdtree: cannot build over an empty shape set")
	}
	if maxDepth <= 0 {
		maxDepth = int(math.Round(8 + 1.3*math.Log2(float64(len(shapes)))))
	}

	bounds := make([]core.BBox3, len(shapes))
	bbox := shapes[0].BBox()
	bounds[0] = bbox
	for i := 1; i < len(shapes); i++ {
		bounds[i] = shapes[i].BBox()
		bbox = bbox.Union(bounds[i])
	}

	primIdx := make([]int32, len(shapes))
	for i := range primIdx {
		primIdx[i] = int32(i)
	}

	b := &builder{shapes: shapes, bounds: bounds}
	b.build(primIdx, bbox, maxDepth, 0)

	return &Tree{bbox: bbox, nodes: b.nodes, shapes: shapes}, nil
}

type builder struct {
	shapes []core.Shape
	bounds []core.BBox3
	nodes  []node
}

// build recursively constructs the tree for prims within nodeBBox, appending
// nodes to b.nodes in pre-order. badRefines counts consecutive refines
// whose best split cost exceeded the no-split cost.
func (b *builder) build(prims []int32, nodeBBox core.BBox3, depth int, badRefines int) {
	if len(prims) <= maxShapesInLeaf || depth == 0 {
		b.makeLeaf(prims)
		return
	}

	noSplitCost := float32(isectCost) * float32(len(prims))
	bestCost := core.Infinity
	bestAxis := -1
	bestOffset := -1
	var edges [3][]boundEdge

	axis := nodeBBox.MaximumExtent()
	retries := 0
	for retries < 3 && bestAxis == -1 {
		a := (axis + core.Axis(retries)) % 3
		edges[a] = make([]boundEdge, 0, 2*len(prims))
		for _, p := range prims {
			bb := b.bounds[p]
			edges[a] = append(edges[a],
				boundEdge{t: bb.Min.Get(a), prim: p, kind: edgeStart},
				boundEdge{t: bb.Max.Get(a), prim: p, kind: edgeEnd},
			)
		}
		sort.Slice(edges[a], func(i, j int) bool {
			ei, ej := edges[a][i], edges[a][j]
			if ei.t != ej.t {
				return ei.t < ej.t
			}
			return ei.kind < ej.kind // Start < End on ties
		})

		invTotalSA := 1 / nodeBBox.SurfaceArea()
		d := nodeBBox.Diagonal()
		otherAxis0, otherAxis1 := a.Next(), a.Next().Next()

		nBelow, nAbove := 0, len(prims)
		for i := 0; i < len(edges[a]); i++ {
			e := edges[a][i]
			if e.kind == edgeEnd {
				nAbove--
			}
			t := e.t
			if t > nodeBBox.Min.Get(a) && t < nodeBBox.Max.Get(a) {
				// surface areas of the two candidate children
				d0 := t - nodeBBox.Min.Get(a)
				d1 := nodeBBox.Max.Get(a) - t

				other0 := axisExtent(d, otherAxis0)
				other1 := axisExtent(d, otherAxis1)

				belowSA := 2 * (other0*other1 + (other0+other1)*d0)
				aboveSA := 2 * (other0*other1 + (other0+other1)*d1)
				pBelow := belowSA * invTotalSA
				pAbove := aboveSA * invTotalSA

				bonus := float32(0)
				if nBelow == 0 || nAbove == 0 {
					bonus = emptyBonus
				}
				cost := travCost + isectCost*(1-bonus)*(pBelow*float32(nBelow)+pAbove*float32(nAbove))
				if cost < bestCost {
					bestCost = cost
					bestAxis = int(a)
					bestOffset = i
				}
			}
			if e.kind == edgeStart {
				nBelow++
			}
		}
		if bestAxis == -1 {
			retries++
		}
	}

	if bestCost > noSplitCost {
		badRefines++
	} else {
		badRefines = 0
	}
	if (bestCost > 4*noSplitCost && len(prims) < 2*maxShapesInLeaf) ||
		bestAxis == -1 || badRefines == 3 {
		b.makeLeaf(prims)
		return
	}

	splitAxis := core.Axis(bestAxis)
	splitPos := edges[bestAxis][bestOffset].t

	var below, above []int32
	for i := 0; i < bestOffset; i++ {
		if edges[bestAxis][i].kind == edgeStart {
			below = append(below, edges[bestAxis][i].prim)
		}
	}
	for i := bestOffset + 1; i < len(edges[bestAxis]); i++ {
		if edges[bestAxis][i].kind == edgeEnd {
			above = append(above, edges[bestAxis][i].prim)
		}
	}

	nodeIndex := len(b.nodes)
	b.nodes = append(b.nodes, node{}) // placeholder, reserves this node's index

	belowBBox := nodeBBox
	belowBBox.Max = setAxis(belowBBox.Max, splitAxis, splitPos)
	b.build(below, belowBBox, depth-1, badRefines)

	aboveChild := int32(len(b.nodes))
	aboveBBox := nodeBBox
	aboveBBox.Min = setAxis(aboveBBox.Min, splitAxis, splitPos)

	b.nodes[nodeIndex] = node{axis: splitAxis, split: splitPos, aboveChild: aboveChild}
	b.build(above, aboveBBox, depth-1, badRefines)
}

func (b *builder) makeLeaf(prims []int32) {
	b.nodes = append(b.nodes, node{aboveChild: -1, shapes: append([]int32(nil), prims...)})
}

func axisExtent(d core.Vec3, a core.Axis) float32 { return d.Get(a) }

func setAxis(p core.Point3, a core.Axis, v float32) core.Point3 {
	switch a {
	case core.AxisX:
		p.X = v
	case core.AxisY:
		p.Y = v
	default:
		p.Z = v
	}
	return p
}

// BBox returns the tree's root bounding box.
func (t *Tree) BBox() core.BBox3 { return t.bbox }

type todo struct {
	nodeIdx    int32
	tMin, tMax float32
}

// IntersectP reports whether r intersects any shape in the tree, returning
// on the first hit found (used for shadow/visibility rays).
func (t *Tree) IntersectP(r core.Ray) bool {
	tMin, tMax, ok := t.bbox.IntersectP(r)
	if !ok {
		return false
	}

	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}

	var stack [64]todo
	sp := 0
	nodeIdx := int32(0)
	for {
		n := &t.nodes[nodeIdx]
		if n.aboveChild < 0 {
			for _, pi := range n.shapes {
				if t.shapes[pi].IntersectP(r) {
					return true
				}
			}
			if sp == 0 {
				return false
			}
			sp--
			nodeIdx, tMin, tMax = stack[sp].nodeIdx, stack[sp].tMin, stack[sp].tMax
			continue
		}

		axis := n.axis
		tSplit := (n.split - r.Origin.Get(axis)) / dir[axis]

		belowFirst := r.Origin.Get(axis) < n.split || (r.Origin.Get(axis) == n.split && dir[axis] <= 0)
		var firstChild, secondChild int32
		if belowFirst {
			firstChild, secondChild = nodeIdx+1, n.aboveChild
		} else {
			firstChild, secondChild = n.aboveChild, nodeIdx+1
		}

		if tSplit > tMax || tSplit <= 0 {
			nodeIdx = firstChild
		} else if tSplit < tMin {
			nodeIdx = secondChild
		} else {
			stack[sp] = todo{nodeIdx: secondChild, tMin: tSplit, tMax: tMax}
			sp++
			nodeIdx = firstChild
			tMax = tSplit
		}
	}
}

// Intersect finds the closest hit, if any, along r. r.TMax is not mutated;
// the caller should use the returned hit's own distance if it needs it.
func (t *Tree) Intersect(r core.Ray) (core.SurfaceInteraction, bool) {
	tMin, tMax, ok := t.bbox.IntersectP(r)
	if !ok {
		return core.SurfaceInteraction{}, false
	}

	ray := r
	dir := [3]float32{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}

	var stack [64]todo
	sp := 0
	nodeIdx := int32(0)
	var best core.SurfaceInteraction
	hit := false

	for {
		if ray.TMax < tMin {
			break
		}
		n := &t.nodes[nodeIdx]
		if n.aboveChild < 0 {
			for _, pi := range n.shapes {
				if si, d, ok := t.shapes[pi].Intersect(ray); ok {
					hit = true
					ray.TMax = d
					best = si
					best.Shape = t.shapes[pi]
				}
			}
			if sp == 0 {
				break
			}
			sp--
			nodeIdx, tMin, tMax = stack[sp].nodeIdx, stack[sp].tMin, stack[sp].tMax
			continue
		}

		axis := n.axis
		tSplit := (n.split - ray.Origin.Get(axis)) / dir[axis]

		belowFirst := ray.Origin.Get(axis) < n.split || (ray.Origin.Get(axis) == n.split && dir[axis] <= 0)
		var firstChild, secondChild int32
		if belowFirst {
			firstChild, secondChild = nodeIdx+1, n.aboveChild
		} else {
			firstChild, secondChild = n.aboveChild, nodeIdx+1
		}

		if tSplit > tMax || tSplit <= 0 {
			nodeIdx = firstChild
		} else if tSplit < tMin {
			nodeIdx = secondChild
		} else {
			stack[sp] = todo{nodeIdx: secondChild, tMin: tSplit, tMax: tMax}
			sp++
			nodeIdx = firstChild
			tMax = tSplit
		}
	}

	return best, hit
}
