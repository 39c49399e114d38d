// Package integrator implements the spectral path-tracing estimators:
// SpectralPath, a full-spectrum path tracer, and SpectralPathSingle,
// which splits each camera sample into independent single-wavelength
// sub-paths for chromatic dispersion and reduced color-fringing noise.
package integrator

import (
	"github.com/df07/spectral-tracer/pkg/core"
	"github.com/df07/spectral-tracer/pkg/light"
	"github.com/df07/spectral-tracer/pkg/material"
	"github.com/df07/spectral-tracer/pkg/sampler"
	"github.com/df07/spectral-tracer/pkg/scene"
	"github.com/df07/spectral-tracer/pkg/spectrum"
)

// DirectStrategy selects how a sub-path estimates direct illumination
// at a hit.
type DirectStrategy int

const (
	// DirectUniform samples one emitter uniformly, multiplying the
	// estimator by |lights| to compensate.
	DirectUniform DirectStrategy = iota
	// DirectAll sums a one-sample estimate over every emitter.
	DirectAll
	// DirectPower samples one emitter proportional to emitted power.
	DirectPower
)

// Sample is one (wavelength index, radiance) contribution an
// integrator produces for a single camera ray; SpectralPath produces 36
// of these (one per spectrum band) from a single traced path,
// SpectralPathSingle produces LambdaSamples of these from independent
// single-wavelength sub-paths.
type Sample struct {
	LambdaIndex int
	Value       float64
}

// Integrator computes the radiance contributions of one camera ray.
type Integrator interface {
	Li(ray core.Ray, sc *scene.Scene, rng core.Sampler) []Sample
}

// lightSamplerFor builds the light.Sampler a DirectStrategy needs,
// ignoring the Scene's own LightSampler (built for whatever
// LightStrategy the scene was constructed with) since an integrator's
// direct_strategy is a render-config choice independent of how the
// scene was authored.
func lightSamplerFor(strategy DirectStrategy, lights []*light.Emitter) light.Sampler {
	if strategy == DirectPower {
		return light.NewPowerSampler(lights)
	}
	return light.NewUniformSampler(lights)
}

// sampleDirectOne estimates direct lighting at a shading point for one
// wavelength by sampling a single emitter with whichever sampler the
// caller selected (uniform or power weighted), then dividing out the
// light's selection probability. DirectUniform and DirectPower share
// this path via lightSamplerFor's chosen Sampler.
func sampleDirectOne(sc *scene.Scene, sampler light.Sampler, p, n, wo core.Vec3, bsdf *material.BSDF, lambdaIndex int, rng core.Sampler) float64 {
	u := rng.Get1D()
	emitter, selectProb, _ := sampler.Sample(u)
	if emitter == nil || selectProb <= 0 {
		return 0
	}
	u1, u2 := rng.Get2D()
	return directFromEmitter(sc, emitter, selectProb, p, n, wo, bsdf, lambdaIndex, u1, u2)
}

// sampleDirectAll implements DirectAll: a one-sample estimate per
// emitter, each at selection probability 1.
func sampleDirectAll(sc *scene.Scene, p, n, wo core.Vec3, bsdf *material.BSDF, lambdaIndex int, rng core.Sampler) float64 {
	sum := 0.0
	for _, e := range sc.Lights {
		u1, u2 := rng.Get2D()
		sum += directFromEmitter(sc, e, 1, p, n, wo, bsdf, lambdaIndex, u1, u2)
	}
	return sum
}

// directFromEmitter is the per-emitter light-sample estimator shared by
// every direct-lighting strategy: sample a point on the
// emitter, build an occlusion ray, and on visibility combine the BSDF
// and light-sampling pdfs via the balance heuristic.
func directFromEmitter(sc *scene.Scene, e *light.Emitter, selectProb float64, p, n, wo core.Vec3, bsdf *material.BSDF, lambdaIndex int, u1, u2 float64) float64 {
	wi, dist, pdfLight, radiance := e.Sample(p, u1, u2)
	if pdfLight <= 0 || radiance.IsBlack() {
		return 0
	}
	cosine := wi.Dot(n)
	if cosine <= 0 {
		return 0
	}

	const eps = 1e-4
	shadowOrigin := core.Offset(p, n, wi)
	shadowRay := core.NewRayInterval(shadowOrigin, wi, eps, dist-eps)
	if sc.Occluded(shadowRay) {
		return 0
	}

	f := bsdf.EvaluateLambda(wo, wi, material.All, lambdaIndex)
	if f == 0 {
		return 0
	}

	pdfBSDF := bsdf.PDF(wo, wi, material.All)
	weight := 1.0
	if bsdf.HasNonSpecular() {
		weight = core.BalanceHeuristic(1, pdfLight*selectProb, 1, pdfBSDF)
	}

	return f * radiance.At(lambdaIndex) * cosine * weight / (pdfLight * selectProb)
}

// spectralSamplerFor maps a SpectralSamplerKind to the pkg/sampler
// implementation behind it.
func spectralSamplerFor(kind SpectralSamplerKind, n int) sampler.Spectral {
	switch kind {
	case SpectralSamplerHero:
		return sampler.HeroSpectral{NumSamples: n}
	case SpectralSamplerStratified:
		return sampler.StratifiedSpectral{NumSamples: n}
	default:
		return sampler.RandomSpectral{NumSamples: n}
	}
}

// SpectralSamplerKind names the wavelength-index sampler a
// SpectralPathSingle sub-path selection uses.
type SpectralSamplerKind int

const (
	SpectralSamplerRandom SpectralSamplerKind = iota
	SpectralSamplerHero
	SpectralSamplerStratified
)

// emittedAt returns the object's spectral emission seen along -wo, zero
// if the object is not an emitter or the hit is on its non-emitting
// back face.
func emittedAt(obj *scene.Object, n, wo core.Vec3) spectrum.Spectrum {
	if obj.Emission == nil {
		return spectrum.Black()
	}
	facing := n.Dot(wo) > 0
	if !facing && !obj.Emission.TwoSided {
		return spectrum.Black()
	}
	return obj.Emission.Radiance
}
