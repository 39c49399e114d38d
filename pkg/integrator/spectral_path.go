package integrator

import (
	"github.com/df07/spectral-tracer/pkg/core"
	"github.com/df07/spectral-tracer/pkg/material"
	"github.com/df07/spectral-tracer/pkg/scene"
	"github.com/df07/spectral-tracer/pkg/spectrum"
)

// SpectralPathConfig configures the full-spectrum path tracer.
type SpectralPathConfig struct {
	MaxDepth         int
	MaxSpecularDepth int
}

// SpectralPath traces one path per camera sample, carrying a full
// Spectrum throughput the whole way. Dielectric dispersion is not
// resolved per
// bounce here: Surface.BSDF returns an achromatic BSDF built at the
// spectrum's center wavelength, the simplification SpectralPathSingle
// exists to avoid (see pkg/scene/surface.go's Glass doc comment).
type SpectralPath struct {
	config SpectralPathConfig
}

// NewSpectralPath builds a SpectralPath integrator. The direct-lighting
// emitter selection always uses the Scene's own LightSampler: the
// uniform/power choice is made once, at scene-build time, for this
// integrator. SpectralPathSingle is the variant that exposes a separate
// per-render direct-lighting strategy.
func NewSpectralPath(config SpectralPathConfig) *SpectralPath {
	return &SpectralPath{config: config}
}

// Li implements Integrator.
func (p *SpectralPath) Li(ray core.Ray, sc *scene.Scene, rng core.Sampler) []Sample {
	result := p.trace(ray, sc, rng, p.config.MaxDepth, 0)
	samples := make([]Sample, spectrum.N)
	for i := range samples {
		samples[i] = Sample{LambdaIndex: i, Value: result.At(i)}
	}
	return samples
}

func (p *SpectralPath) trace(ray core.Ray, sc *scene.Scene, rng core.Sampler, depth, specularDepth int) spectrum.Spectrum {
	if depth <= 0 {
		return spectrum.Black()
	}

	obj, hit, ok := sc.Intersect(ray)
	if !ok {
		return spectrum.Black()
	}

	wo := ray.Direction.Negate()
	bounceIndex := p.config.MaxDepth - depth
	cameraVisible := bounceIndex == 0 || specularDepth > 0
	var emitted spectrum.Spectrum
	if cameraVisible {
		emitted = emittedAt(obj, hit.Normal, wo)
	}

	bsdf := obj.Surface.BSDF(hit.Normal)

	direct := p.estimateDirect(sc, hit.Point, hit.Normal, wo, bsdf, rng)

	wi, f, pdf, sampled, sampleOK := bsdf.Sample(wo, rng, material.All)
	if !sampleOK || pdf <= 0 || f.IsBlack() {
		return emitted.Add(direct)
	}

	throughputFactor := 1.0
	if !sampled.IsSpecular() {
		throughputFactor = wi.Dot(hit.Normal)
		if throughputFactor < 0 {
			throughputFactor = -throughputFactor
		}
	}
	nextSpecularDepth := specularDepth
	if sampled.IsSpecular() {
		nextSpecularDepth++
		if nextSpecularDepth > p.config.MaxSpecularDepth {
			return emitted.Add(direct)
		}
	} else {
		nextSpecularDepth = 0
	}

	throughput := f.Multiply(throughputFactor / pdf)
	nextRay := core.NewRay(core.Offset(hit.Point, hit.Normal, wi), wi)
	indirect := p.trace(nextRay, sc, rng, depth-1, nextSpecularDepth)

	return emitted.Add(direct).Add(throughput.MultiplySpectrum(indirect))
}

// estimateDirect implements the SpectralPath direct-lighting estimator:
// one emitter and one surface point are sampled, and a single occlusion
// ray is traced, since selection and visibility don't depend on
// wavelength; only the resulting BSDF value and emitted radiance do,
// so those alone are evaluated per band.
func (p *SpectralPath) estimateDirect(sc *scene.Scene, point, n, wo core.Vec3, bsdf *material.BSDF, rng core.Sampler) spectrum.Spectrum {
	ls := sc.LightSampler
	if ls == nil || ls.Count() == 0 {
		return spectrum.Black()
	}
	emitter, selectProb, _ := ls.Sample(rng.Get1D())
	if emitter == nil || selectProb <= 0 {
		return spectrum.Black()
	}
	u1, u2 := rng.Get2D()
	wi, dist, pdfLight, radiance := emitter.Sample(point, u1, u2)
	if pdfLight <= 0 || radiance.IsBlack() {
		return spectrum.Black()
	}
	cosine := wi.Dot(n)
	if cosine <= 0 {
		return spectrum.Black()
	}

	const eps = 1e-4
	shadowOrigin := core.Offset(point, n, wi)
	shadowRay := core.NewRayInterval(shadowOrigin, wi, eps, dist-eps)
	if sc.Occluded(shadowRay) {
		return spectrum.Black()
	}

	f := bsdf.Evaluate(wo, wi, material.All)
	if f.IsBlack() {
		return spectrum.Black()
	}

	weight := 1.0
	if bsdf.HasNonSpecular() {
		pdfBSDF := bsdf.PDF(wo, wi, material.All)
		weight = core.BalanceHeuristic(1, pdfLight*selectProb, 1, pdfBSDF)
	}

	return f.MultiplySpectrum(radiance).Multiply(cosine * weight / (pdfLight * selectProb))
}
