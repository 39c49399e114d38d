package integrator

import (
	"github.com/df07/spectral-tracer/pkg/core"
	"github.com/df07/spectral-tracer/pkg/light"
	"github.com/df07/spectral-tracer/pkg/material"
	"github.com/df07/spectral-tracer/pkg/scene"
	"github.com/df07/spectral-tracer/pkg/spectrum"
)

// SpectralPathSingleConfig configures the wavelength-split path tracer.
type SpectralPathSingleConfig struct {
	MaxDepth       int
	LambdaSamples  int
	DirectStrategy DirectStrategy
	SpectralKind   SpectralSamplerKind
}

// SpectralPathSingle runs LambdaSamples independent single-wavelength
// sub-paths per camera ray. Each sub-path asks the Surface for a BSDF built exactly at
// its wavelength (scene.Surface.BSDFAt), which is what lets dispersive
// dielectrics actually bend differently per wavelength, the effect
// the achromatic SpectralPath integrator cannot reproduce.
type SpectralPathSingle struct {
	config SpectralPathSingleConfig
}

// NewSpectralPathSingle builds a SpectralPathSingle integrator.
func NewSpectralPathSingle(config SpectralPathSingleConfig) *SpectralPathSingle {
	return &SpectralPathSingle{config: config}
}

// Li implements Integrator.
func (p *SpectralPathSingle) Li(ray core.Ray, sc *scene.Scene, rng core.Sampler) []Sample {
	spectralSampler := spectralSamplerFor(p.config.SpectralKind, p.config.LambdaSamples)
	indices := spectralSampler.Sample(spectrum.N, rng)
	lightSampler := lightSamplerFor(p.config.DirectStrategy, sc.Lights)

	samples := make([]Sample, len(indices))
	for i, lambdaIndex := range indices {
		samples[i] = Sample{
			LambdaIndex: lambdaIndex,
			Value:       p.traceLambda(ray, sc, rng, lambdaIndex, lightSampler, p.config.MaxDepth),
		}
	}
	return samples
}

// traceLambda traces one single-wavelength sub-path: intersect, add
// camera-visible emission, estimate direct
// lighting, sample the BSDF, update throughput, repeat until
// max_depth, a miss, or zero throughput.
func (p *SpectralPathSingle) traceLambda(ray core.Ray, sc *scene.Scene, rng core.Sampler, lambdaIndex int, lightSampler light.Sampler, depth int) float64 {
	lambdaNM := spectrum.Lambda(lambdaIndex)
	throughput := 1.0
	result := 0.0
	specularDepth := 0

	for bounce := 0; bounce < depth; bounce++ {
		obj, hit, ok := sc.Intersect(ray)
		if !ok {
			break
		}

		wo := ray.Direction.Negate()
		cameraVisible := bounce == 0 || specularDepth > 0
		if cameraVisible {
			result += throughput * emittedAt(obj, hit.Normal, wo).At(lambdaIndex)
		}

		bsdf := obj.Surface.BSDFAt(hit.Normal, lambdaNM)

		result += throughput * p.estimateDirect(sc, lightSampler, hit.Point, hit.Normal, wo, bsdf, lambdaIndex, rng)

		wi, f, pdf, sampled, sampleOK := bsdf.SampleLambda(wo, rng, material.All, lambdaIndex)
		if !sampleOK || pdf <= 0 || f == 0 {
			break
		}

		cosFactor := 1.0
		if !sampled.IsSpecular() {
			cosFactor = wi.Dot(hit.Normal)
			if cosFactor < 0 {
				cosFactor = -cosFactor
			}
			specularDepth = 0
		} else {
			specularDepth++
		}

		throughput *= f * cosFactor / pdf
		if throughput <= 0 {
			break
		}

		ray = core.NewRay(core.Offset(hit.Point, hit.Normal, wi), wi)
	}

	return result
}

// estimateDirect dispatches to the configured DirectStrategy.
func (p *SpectralPathSingle) estimateDirect(sc *scene.Scene, lightSampler light.Sampler, point, n, wo core.Vec3, bsdf *material.BSDF, lambdaIndex int, rng core.Sampler) float64 {
	if len(sc.Lights) == 0 {
		return 0
	}
	if p.config.DirectStrategy == DirectAll {
		return sampleDirectAll(sc, point, n, wo, bsdf, lambdaIndex, rng)
	}
	return sampleDirectOne(sc, lightSampler, point, n, wo, bsdf, lambdaIndex, rng)
}
