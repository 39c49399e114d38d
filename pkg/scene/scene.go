package scene

import (
	"github.com/pkg/errors"

	"github.com/df07/spectral-tracer/pkg/core"
	"github.com/df07/spectral-tracer/pkg/geometry"
	"github.com/df07/spectral-tracer/pkg/kdtree"
	"github.com/df07/spectral-tracer/pkg/light"
	"github.com/df07/spectral-tracer/pkg/spectrum"
)

// Emission marks an Object as an emitter: a receiver that additionally
// carries an emission spectrum.
type Emission struct {
	Radiance spectrum.Spectrum
	TwoSided bool
}

// Object is the discriminated scene-object variant: every Object has
// geometry and a Surface (a receiver); an Object whose Emission is
// non-nil is additionally an emitter.
type Object struct {
	Primitive geometry.Primitive
	Surface   Surface
	Emission  *Emission
}

// LightStrategy selects which light.Sampler a Scene builds over its
// emitters.
type LightStrategy int

const (
	// LightStrategyUniform selects every emitter with equal probability.
	LightStrategyUniform LightStrategy = iota
	// LightStrategyPower selects emitters proportional to emitted power.
	LightStrategyPower
)

// Scene is the immutable, worker-shared container: a primitive arena, a
// light list holding index-based references into that arena, a k-d
// tree, and the world bounds.
type Scene struct {
	Objects      []Object
	Lights       []*light.Emitter
	LightSampler light.Sampler
	tree         *kdtree.Tree
	objectIndex  map[geometry.Primitive]int
	bounds       core.AABB
}

// Build validates and assembles a Scene from a flat object list. The
// result is immutable and shared across worker threads; a build error
// is fatal and must be surfaced to the caller before any worker starts.
func Build(objects []Object, strategy LightStrategy) (*Scene, error) {
	if len(objects) == 0 {
		return nil, errors.New("scene: at least one object is required")
	}

	prims := make([]geometry.Primitive, len(objects))
	objectIndex := make(map[geometry.Primitive]int, len(objects))
	for i, obj := range objects {
		if obj.Primitive == nil {
			return nil, errors.Errorf("scene: object %d has no primitive", i)
		}
		if obj.Surface == nil {
			return nil, errors.Errorf("scene: object %d has no surface", i)
		}
		prims[i] = obj.Primitive
		objectIndex[obj.Primitive] = i
	}

	tree := kdtree.Build(prims)

	var emitters []*light.Emitter
	for i, obj := range objects {
		if obj.Emission == nil {
			continue
		}
		shape, err := shapeFor(obj.Primitive)
		if err != nil {
			return nil, errors.Wrapf(err, "scene: object %d", i)
		}
		emitters = append(emitters, &light.Emitter{
			Shape:     shape,
			Radiance:  obj.Emission.Radiance,
			TwoSided:  obj.Emission.TwoSided,
			PrimIndex: i,
		})
	}
	if len(emitters) == 0 {
		return nil, errors.New("scene: at least one emitter is required")
	}

	var sampler light.Sampler
	switch strategy {
	case LightStrategyPower:
		sampler = light.NewPowerSampler(emitters)
	default:
		sampler = light.NewUniformSampler(emitters)
	}

	return &Scene{
		Objects:      objects,
		Lights:       emitters,
		LightSampler: sampler,
		tree:         tree,
		objectIndex:  objectIndex,
		bounds:       tree.Bounds(),
	}, nil
}

// shapeFor adapts a geometry.Primitive to the light.Shape capability
// emitters need; only Sphere and Triangle support surface sampling.
func shapeFor(p geometry.Primitive) (light.Shape, error) {
	switch v := p.(type) {
	case *geometry.Sphere:
		return light.SphereShape{Sphere: v}, nil
	case *geometry.Triangle:
		return light.TriangleShape{Triangle: v}, nil
	default:
		return nil, errors.New("emitter geometry must be a Sphere or Triangle")
	}
}

// Bounds returns the world AABB computed over every primitive.
func (s *Scene) Bounds() core.AABB { return s.bounds }

// Intersect finds the nearest hit along ray and returns the Object it
// struck.
func (s *Scene) Intersect(ray core.Ray) (*Object, geometry.Intersection, bool) {
	prim, hit, ok := s.tree.Intersect(ray)
	if !ok {
		return nil, geometry.Intersection{}, false
	}
	idx, found := s.objectIndex[prim]
	if !found {
		return nil, geometry.Intersection{}, false
	}
	return &s.Objects[idx], hit, true
}

// Occluded is an occlusion-only query used by direct-lighting
// estimation to test visibility to a sampled light point.
func (s *Scene) Occluded(ray core.Ray) bool {
	return s.tree.Intersects(ray)
}
