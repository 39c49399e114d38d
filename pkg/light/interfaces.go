// Package light implements sampleable emitters and the light-selection
// strategies used for next-event estimation.
package light

import (
	"github.com/df07/spectral-tracer/pkg/core"
	"github.com/df07/spectral-tracer/pkg/spectrum"
)

// Shape is the subset of geometry.Primitive's surface-sampling
// capability a light needs: sampling a point on the surface visible
// from a reference point, with the result expressed as a solid-angle
// pdf with respect to that reference point. The area-to-solid-angle
// conversion d²/|nₗ·(−ωₗ)| happens once, here, so callers never see
// area measure.
type Shape interface {
	Area() float64
	Sample(ref core.Vec3, u1, u2 float64) (point, normal core.Vec3, pdfSolidAngle float64)
	PDF(ref core.Vec3, dir core.Vec3) float64
}

// Emitter is a sampleable light-carrying surface: geometry plus a
// Lambertian emission spectrum.
type Emitter struct {
	Shape     Shape
	Radiance  spectrum.Spectrum
	TwoSided  bool
	PrimIndex int // index into the scene's primitive arena
}

// Sample draws a point on the emitter visible from ref, returning the
// direction toward it, the solid-angle pdf, and the emitted radiance
// toward ref (zero if ref is on the back face and the emitter is
// single-sided).
func (e *Emitter) Sample(ref core.Vec3, u1, u2 float64) (dir core.Vec3, distance float64, pdf float64, radiance spectrum.Spectrum) {
	point, normal, pdfSolidAngle := e.Shape.Sample(ref, u1, u2)
	toLight := point.Subtract(ref)
	distance = toLight.Length()
	if distance == 0 {
		return core.Vec3{}, 0, 0, spectrum.Spectrum{}
	}
	dir = toLight.Multiply(1 / distance)

	facing := normal.Dot(dir) < 0
	if !facing && !e.TwoSided {
		return dir, distance, pdfSolidAngle, spectrum.Spectrum{}
	}
	return dir, distance, pdfSolidAngle, e.Radiance
}

// PDF returns the solid-angle pdf of sampling direction dir from ref via
// Sample. The BSDF-sampling side of multiple importance sampling
// against this emitter needs this to weight a bounce that happened to
// land on the light by chance.
func (e *Emitter) PDF(ref core.Vec3, dir core.Vec3) float64 {
	return e.Shape.PDF(ref, dir)
}

// Power returns a quantity proportional to total emitted power, used by
// power-proportional light selection: emitted radiance integrated over
// area and, for a two-sided emitter, both faces.
func (e *Emitter) Power() float64 {
	p := e.Radiance.Average() * e.Shape.Area()
	if e.TwoSided {
		p *= 2
	}
	return p
}

// Sampler selects one emitter from a scene's light list for next-event
// estimation.
type Sampler interface {
	// Sample returns a light, its selection probability (for dividing out
	// the selection bias), and its index into the sampler's light list.
	Sample(u float64) (emitter *Emitter, probability float64, index int)
	// Probability returns the selection probability for the light at index.
	Probability(index int) float64
	// Count returns the number of lights known to this sampler.
	Count() int
}
