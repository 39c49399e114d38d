// Package kdtree implements the renderer's acceleration structure: a
// surface-area-heuristic (SAH) k-d tree built over axis-aligned plane
// candidates drawn from primitive bounds.
package kdtree

import (
	"math"
	"sort"

	"github.com/df07/spectral-tracer/pkg/core"
	"github.com/df07/spectral-tracer/pkg/geometry"
)

// SAH cost model constants.
const (
	costTraversal  = 15.0 // K_T
	costIntersect  = 20.0 // K_I
	emptyBonusMult = 0.8
)

// maxDepth bounds recursion; reached only for pathological inputs since
// the cost-based termination in build normally stops first.
const maxDepth = 48

// Tree is an immutable SAH k-d tree over a fixed slice of primitives,
// built once per scene and shared read-only across worker goroutines.
type Tree struct {
	primitives []geometry.Primitive
	root       *node
	bounds     core.AABB
}

// node is either an interior node (Axis >= 0, with Left/Right children
// and a split plane) or a leaf (Axis == -1, with a deduplicated list of
// primitive indices).
type node struct {
	bounds core.AABB
	axis   int // -1 for leaves
	split  float64
	left   *node
	right  *node
	prims  []int // leaf primitive indices into Tree.primitives
}

// Build constructs a k-d tree over prims. Each primitive's stable id is
// its index in prims.
func Build(prims []geometry.Primitive) *Tree {
	t := &Tree{primitives: prims}
	if len(prims) == 0 {
		return t
	}

	ids := make([]int, len(prims))
	bounds := make([]core.AABB, len(prims))
	var worldBounds core.AABB
	for i, p := range prims {
		ids[i] = i
		b := p.Bounds()
		bounds[i] = b
		if i == 0 {
			worldBounds = b
		} else {
			worldBounds = worldBounds.Union(b)
		}
	}
	t.bounds = worldBounds
	t.root = build(ids, bounds, worldBounds, 0)
	return t
}

// event is a candidate split-plane event: a primitive's min or max extent
// along one axis.
type event struct {
	pos     float64
	isStart bool // true = "left" event (primitive's min on this axis)
}

func build(ids []int, bounds []core.AABB, box core.AABB, depth int) *node {
	n := len(ids)
	if n == 0 {
		return &node{bounds: box, axis: -1}
	}

	if depth >= maxDepth {
		return leafOf(box, ids)
	}

	bestAxis, bestPos, bestCost := findBestSplit(ids, bounds, box)

	// Terminate as a leaf when no split beats the brute-force intersect
	// cost K_I * n of this node.
	if bestAxis == -1 || bestCost > costIntersect*float64(n) {
		return leafOf(box, ids)
	}

	leftIDs, rightIDs, leftBox, rightBox := classify(ids, bounds, box, bestAxis, bestPos)

	// A split that fails to separate anything degenerates to a leaf
	// rather than recursing forever.
	if len(leftIDs) == 0 || len(rightIDs) == 0 || (len(leftIDs) == n && len(rightIDs) == n) {
		return leafOf(box, ids)
	}

	return &node{
		bounds: box,
		axis:   bestAxis,
		split:  bestPos,
		left:   build(leftIDs, bounds, leftBox, depth+1),
		right:  build(rightIDs, bounds, rightBox, depth+1),
	}
}

func leafOf(box core.AABB, ids []int) *node {
	// A straddling primitive reaches a leaf once per side it was
	// assigned to; deduplicate by id.
	seen := make(map[int]struct{}, len(ids))
	dedup := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		dedup = append(dedup, id)
	}
	return &node{bounds: box, axis: -1, prims: dedup}
}

// findBestSplit generates the 2*n candidate events per axis, evaluates
// the SAH cost of every candidate, and returns the
// lowest-cost (axis, position, cost). axis == -1 means no finite-cost
// split exists (e.g. a single point primitive).
func findBestSplit(ids []int, bounds []core.AABB, box core.AABB) (axis int, pos float64, cost float64) {
	bestAxis := -1
	bestPos := 0.0
	bestCost := posInf

	for a := 0; a < 3; a++ {
		lo, hi := box.Axis(a)
		extent := hi - lo
		if extent <= 0 {
			continue
		}

		events := make([]event, 0, 2*len(ids))
		for _, id := range ids {
			blo, bhi := bounds[id].Axis(a)
			events = append(events, event{pos: blo, isStart: true})
			events = append(events, event{pos: bhi, isStart: false})
		}
		sort.Slice(events, func(i, j int) bool {
			if events[i].pos != events[j].pos {
				return events[i].pos < events[j].pos
			}
			// end events before start events at the same position so a
			// primitive doesn't count itself on both sides of a plane
			// coincident with one of its own faces.
			if events[i].isStart != events[j].isStart {
				return !events[i].isStart
			}
			return false
		})

		// Sweep the sorted events left to right. nLeft/nRight track how
		// many primitives overlap the left/right side of the plane
		// currently being priced (a primitive straddling the plane is
		// counted on both sides); primitives that end exactly at the
		// plane are removed from nRight before pricing, and primitives
		// that start exactly at the plane are added to nLeft only after
		// pricing.
		nLeft, nRight := 0, len(ids)
		i := 0
		for i < len(events) {
			p := events[i].pos

			numEnd, numStart := 0, 0
			j := i
			for j < len(events) && events[j].pos == p && !events[j].isStart {
				numEnd++
				j++
			}
			for j < len(events) && events[j].pos == p && events[j].isStart {
				numStart++
				j++
			}
			nRight -= numEnd

			if p > lo && p < hi {
				leftBox, rightBox := splitBox(box, a, p)
				c := sahCost(nLeft, nRight, leftBox.SurfaceArea(), rightBox.SurfaceArea(), box.SurfaceArea())
				if c < bestCost {
					bestCost = c
					bestAxis = a
					bestPos = p
				}
			}

			nLeft += numStart
			i = j
		}
	}

	return bestAxis, bestPos, bestCost
}

var posInf = math.Inf(1)

func splitBox(box core.AABB, axis int, pos float64) (left, right core.AABB) {
	left, right = box, box
	switch axis {
	case 0:
		left.Max.X = pos
		right.Min.X = pos
	case 1:
		left.Max.Y = pos
		right.Min.Y = pos
	default:
		left.Max.Z = pos
		right.Min.Z = pos
	}
	return left, right
}

// sahCost prices a candidate plane:
//
//	C(p) = bonus · (K_T + K_I · (n_L·|V_L|/|V| + n_R·|V_R|/|V|))
func sahCost(nLeft, nRight int, areaLeft, areaRight, areaTotal float64) float64 {
	if areaTotal <= 0 {
		return posInf
	}
	if areaLeft <= 0 || areaRight <= 0 {
		return posInf
	}
	bonus := 1.0
	if nLeft == 0 || nRight == 0 {
		bonus = emptyBonusMult
	}
	return bonus * (costTraversal + costIntersect*(float64(nLeft)*areaLeft/areaTotal+float64(nRight)*areaRight/areaTotal))
}

// classify assigns every primitive to {Left, Right, Both} by comparing
// its bounds against the chosen split plane and partitions the id list accordingly; straddling primitives appear
// in both output lists.
func classify(ids []int, bounds []core.AABB, box core.AABB, axis int, pos float64) (left, right []int, leftBox, rightBox core.AABB) {
	leftBox, rightBox = splitBox(box, axis, pos)
	for _, id := range ids {
		lo, hi := bounds[id].Axis(axis)
		switch {
		case hi <= pos:
			left = append(left, id)
		case lo >= pos:
			right = append(right, id)
		default:
			left = append(left, id)
			right = append(right, id)
		}
	}
	return left, right, leftBox, rightBox
}

// Bounds returns the world AABB the tree was built over.
func (t *Tree) Bounds() core.AABB { return t.bounds }

// Intersect returns the nearest hit against any primitive in the tree
// within the ray's interval, descending front-to-back through
// overlapping child boxes. The returned
// Primitive is the one from the slice Build was called with.
func (t *Tree) Intersect(ray core.Ray) (geometry.Primitive, geometry.Intersection, bool) {
	if t.root == nil {
		return nil, geometry.Intersection{}, false
	}
	return t.intersectNode(t.root, ray)
}

func (t *Tree) intersectNode(n *node, ray core.Ray) (geometry.Primitive, geometry.Intersection, bool) {
	if _, ok := n.bounds.Hit(ray, ray.TMin, ray.TMax); !ok && !n.bounds.Contains(ray.Origin) {
		return nil, geometry.Intersection{}, false
	}

	if n.axis == -1 {
		var bestPrim geometry.Primitive
		var bestHit geometry.Intersection
		found := false
		closest := ray.TMax
		for _, id := range n.prims {
			p := t.primitives[id]
			candidate := ray.WithTMax(closest)
			if hit, ok := p.Intersect(candidate); ok {
				found = true
				closest = hit.T
				bestHit = hit
				bestPrim = p
			}
		}
		return bestPrim, bestHit, found
	}

	// Descend front-to-back: order children by which side the ray origin
	// falls on so the near side is tested (and can shrink TMax) before
	// the far side.
	first, second := n.left, n.right
	var originCoord, dirCoord float64
	switch n.axis {
	case 0:
		originCoord, dirCoord = ray.Origin.X, ray.Direction.X
	case 1:
		originCoord, dirCoord = ray.Origin.Y, ray.Direction.Y
	default:
		originCoord, dirCoord = ray.Origin.Z, ray.Direction.Z
	}
	goesRightFirst := originCoord > n.split || (originCoord == n.split && dirCoord >= 0)
	if goesRightFirst {
		first, second = n.right, n.left
	}

	var bestPrim geometry.Primitive
	var bestHit geometry.Intersection
	found := false
	closest := ray.TMax

	if first != nil {
		if p, hit, ok := t.intersectNode(first, ray.WithTMax(closest)); ok {
			found = true
			closest = hit.T
			bestHit = hit
			bestPrim = p
		}
	}
	if second != nil {
		if p, hit, ok := t.intersectNode(second, ray.WithTMax(closest)); ok {
			found = true
			closest = hit.T
			bestHit = hit
			bestPrim = p
		}
	}
	return bestPrim, bestHit, found
}

// Intersects is an occlusion-only query: does any primitive block the
// ray anywhere in its interval. It short-circuits on the first hit.
func (t *Tree) Intersects(ray core.Ray) bool {
	if t.root == nil {
		return false
	}
	return t.intersectsNode(t.root, ray)
}

func (t *Tree) intersectsNode(n *node, ray core.Ray) bool {
	if _, ok := n.bounds.Hit(ray, ray.TMin, ray.TMax); !ok && !n.bounds.Contains(ray.Origin) {
		return false
	}
	if n.axis == -1 {
		for _, id := range n.prims {
			if _, ok := t.primitives[id].Intersect(ray); ok {
				return true
			}
		}
		return false
	}
	if n.left != nil && t.intersectsNode(n.left, ray) {
		return true
	}
	if n.right != nil && t.intersectsNode(n.right, ray) {
		return true
	}
	return false
}
