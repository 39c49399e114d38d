package kdtree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/spectral-tracer/pkg/core"
	"github.com/df07/spectral-tracer/pkg/geometry"
)

func bruteForce(prims []geometry.Primitive, ray core.Ray) (geometry.Intersection, bool) {
	var best geometry.Intersection
	found := false
	closest := ray.TMax
	for _, p := range prims {
		if hit, ok := p.Intersect(ray.WithTMax(closest)); ok {
			found = true
			closest = hit.T
			best = hit
		}
	}
	return best, found
}

func TestEmptyTree(t *testing.T) {
	tree := Build(nil)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	if _, _, ok := tree.Intersect(ray); ok {
		t.Fatal("expected no hit against an empty tree")
	}
}

func TestSinglePrimitiveReducesToLeaf(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 0), 1)
	tree := Build([]geometry.Primitive{sphere})
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))

	if tree.root.axis != -1 {
		t.Errorf("expected single-primitive tree to be a single leaf")
	}

	_, hit, ok := tree.Intersect(ray)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("expected t=4, got %v", hit.T)
	}
}

func TestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	prims := make([]geometry.Primitive, 0, 200)
	for i := 0; i < 200; i++ {
		center := core.NewVec3(
			rng.Float64()*20-10,
			rng.Float64()*20-10,
			rng.Float64()*20-10,
		)
		prims = append(prims, geometry.NewSphere(center, 0.3+rng.Float64()*0.5))
	}
	tree := Build(prims)

	for i := 0; i < 500; i++ {
		origin := core.NewVec3(rng.Float64()*40-20, rng.Float64()*40-20, rng.Float64()*40-20)
		dir := core.NewVec3(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1).Normalize()
		ray := core.NewRay(origin, dir)

		bfHit, bfOK := bruteForce(prims, ray)
		_, treeHit, treeOK := tree.Intersect(ray)

		if bfOK != treeOK {
			t.Fatalf("mismatch hit/miss for ray %v: brute=%v tree=%v", ray, bfOK, treeOK)
		}
		if bfOK && math.Abs(bfHit.T-treeHit.T) > 1e-6*math.Max(1, bfHit.T) {
			t.Fatalf("mismatch t for ray %v: brute=%v tree=%v", ray, bfHit.T, treeHit.T)
		}
	}
}

func TestStressTenThousandSpheres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in -short mode")
	}
	rng := rand.New(rand.NewSource(7))
	prims := make([]geometry.Primitive, 0, 10000)
	for i := 0; i < 10000; i++ {
		center := core.NewVec3(rng.Float64(), rng.Float64(), rng.Float64())
		prims = append(prims, geometry.NewSphere(center, 0.002))
	}
	tree := Build(prims)

	ray := core.NewRay(core.NewVec3(-10, 0.5, 0.5), core.NewVec3(1, 0, 0))
	bfHit, bfOK := bruteForce(prims, ray)
	_, treeHit, treeOK := tree.Intersect(ray)

	if bfOK != treeOK {
		t.Fatalf("expected hit=%v, got %v", bfOK, treeOK)
	}
	if bfOK {
		tol := 0.005 * bfHit.T
		if math.Abs(bfHit.T-treeHit.T) > tol {
			t.Errorf("tree hit t=%v not within 0.5%% of brute force t=%v", treeHit.T, bfHit.T)
		}
	}
}

func TestIntersectsMatchesIntersect(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	prims := make([]geometry.Primitive, 0, 50)
	for i := 0; i < 50; i++ {
		center := core.NewVec3(rng.Float64()*10-5, rng.Float64()*10-5, rng.Float64()*10-5)
		prims = append(prims, geometry.NewSphere(center, 0.5))
	}
	tree := Build(prims)

	for i := 0; i < 200; i++ {
		origin := core.NewVec3(rng.Float64()*20-10, rng.Float64()*20-10, rng.Float64()*20-10)
		dir := core.NewVec3(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1).Normalize()
		ray := core.NewRay(origin, dir)

		_, _, hitOK := tree.Intersect(ray)
		occluded := tree.Intersects(ray)
		if hitOK != occluded {
			t.Fatalf("scene intersection symmetry violated for ray %v: intersect=%v intersects=%v", ray, hitOK, occluded)
		}
	}
}
