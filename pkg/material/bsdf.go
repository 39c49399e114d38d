package material

import (
	"github.com/df07/spectral-tracer/pkg/core"
	"github.com/df07/spectral-tracer/pkg/spectrum"
)

// BSDF aggregates one or more BxDF lobes at a shading point and
// rotates between the world frame and the local frame where +Y is the
// surface normal. It holds no geometric state beyond the frame; one is
// constructed per intersection and lives for the duration of the
// bounce.
type BSDF struct {
	lobes   []BxDF
	toLocal func(core.Vec3) core.Vec3
	toWorld func(core.Vec3) core.Vec3
}

// NewBSDF builds a BSDF at a shading point whose geometric normal is n
// (unit length, world space), aggregating the given lobes.
func NewBSDF(n core.Vec3, lobes ...BxDF) *BSDF {
	toWorld := core.LocalToWorld(n)
	var tangent, bitangent core.Vec3
	// Recover the same tangent/bitangent LocalToWorld used, by probing
	// it with the local axes, so toLocal is its exact inverse (an
	// orthonormal frame's inverse is its transpose).
	tangent = toWorld(core.Vec3{X: 1, Y: 0, Z: 0})
	bitangent = toWorld(core.Vec3{X: 0, Y: 0, Z: 1})
	toLocal := func(v core.Vec3) core.Vec3 {
		return core.Vec3{X: v.Dot(tangent), Y: v.Dot(n), Z: v.Dot(bitangent)}
	}
	return &BSDF{lobes: lobes, toLocal: toLocal, toWorld: toWorld}
}

// matching returns the lobes whose Type shares any bit with mask.
func (b *BSDF) matching(mask Type) []BxDF {
	if mask == All {
		return b.lobes
	}
	out := make([]BxDF, 0, len(b.lobes))
	for _, l := range b.lobes {
		if l.Type().MatchesAny(mask) {
			out = append(out, l)
		}
	}
	return out
}

// Evaluate sums f(wo, wi) over every lobe matching mask, both directions
// given in world space.
func (b *BSDF) Evaluate(woWorld, wiWorld core.Vec3, mask Type) spectrum.Spectrum {
	wo, wi := b.toLocal(woWorld), b.toLocal(wiWorld)
	var sum spectrum.Spectrum
	for _, l := range b.matching(mask) {
		if l.Type().IsSpecular() {
			continue
		}
		sum = sum.Add(l.Evaluate(wo, wi))
	}
	return sum
}

// EvaluateLambda is the per-wavelength-index variant of Evaluate.
func (b *BSDF) EvaluateLambda(woWorld, wiWorld core.Vec3, mask Type, lambdaIndex int) float64 {
	return b.Evaluate(woWorld, wiWorld, mask).At(lambdaIndex)
}

// PDF sums the matching lobes' solid-angle pdfs and averages them,
// consistent with Sample picking one lobe uniformly at random among
// the matching set.
func (b *BSDF) PDF(woWorld, wiWorld core.Vec3, mask Type) float64 {
	wo, wi := b.toLocal(woWorld), b.toLocal(wiWorld)
	matching := b.matching(mask)
	n := 0
	sum := 0.0
	for _, l := range matching {
		if l.Type().IsSpecular() {
			continue
		}
		sum += l.PDF(wo, wi)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(len(matching))
}

// Sample picks one lobe uniformly at random among those matching mask,
// draws a direction from it, and returns the aggregate f and pdf across
// all non-specular matching lobes evaluated at that direction: the
// standard "sample one, evaluate all" multi-lobe BSDF strategy.
func (b *BSDF) Sample(woWorld core.Vec3, sampler core.Sampler, mask Type) (wiWorld core.Vec3, f spectrum.Spectrum, pdf float64, sampled Type, ok bool) {
	matching := b.matching(mask)
	if len(matching) == 0 {
		return core.Vec3{}, spectrum.Spectrum{}, 0, 0, false
	}
	wo := b.toLocal(woWorld)

	idx := int(sampler.Get1D() * float64(len(matching)))
	if idx >= len(matching) {
		idx = len(matching) - 1
	}
	chosen := matching[idx]

	wi, lobeF, lobePdf, lobeType, sampleOK := chosen.Sample(wo, sampler)
	if !sampleOK {
		return core.Vec3{}, spectrum.Spectrum{}, 0, 0, false
	}

	if lobeType.IsSpecular() {
		// The lobe was chosen with probability 1/len(matching); averaging
		// the pdf over the matching set accounts for that, f stays the
		// lobe's own value.
		return b.toWorld(wi), lobeF, lobePdf / float64(len(matching)), lobeType, true
	}

	sum := lobeF
	pdfSum := lobePdf
	for i, l := range matching {
		if i == idx || l.Type().IsSpecular() {
			continue
		}
		sum = sum.Add(l.Evaluate(wo, wi))
		pdfSum += l.PDF(wo, wi)
	}

	return b.toWorld(wi), sum, pdfSum / float64(len(matching)), lobeType, true
}

// SampleLambda is the per-wavelength-index variant of Sample; direction
// sampling is
// wavelength-independent once a BSDF has been constructed for a
// specific λ (dispersion is realized by building a fresh BSDF per
// wavelength at the integrator layer), so this simply projects the
// full-spectrum result onto one sample.
func (b *BSDF) SampleLambda(woWorld core.Vec3, sampler core.Sampler, mask Type, lambdaIndex int) (wiWorld core.Vec3, f float64, pdf float64, sampled Type, ok bool) {
	wiWorld, sp, pdf, sampled, ok := b.Sample(woWorld, sampler, mask)
	if !ok {
		return wiWorld, 0, 0, sampled, false
	}
	return wiWorld, sp.At(lambdaIndex), pdf, sampled, true
}

// NumLobes reports the number of aggregated lobes.
func (b *BSDF) NumLobes() int { return len(b.lobes) }

// HasNonSpecular reports whether any aggregated lobe is not a delta
// distribution.
func (b *BSDF) HasNonSpecular() bool {
	for _, l := range b.lobes {
		if !l.Type().IsSpecular() {
			return true
		}
	}
	return false
}
