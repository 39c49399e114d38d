package material

import (
	"math"

	"github.com/df07/spectral-tracer/pkg/core"
	"github.com/df07/spectral-tracer/pkg/spectrum"
)

// OrenNayar is the rough-diffuse lobe, using the closed-form A/B
// approximation of the microfacet model. It reduces to
// LambertianReflection at sigma=0.
type OrenNayar struct {
	R     spectrum.Spectrum
	Sigma float64 // roughness, radians
}

func (o OrenNayar) Type() Type { return Reflection | Diffuse }

func (o OrenNayar) ab() (a, b float64) {
	s2 := o.Sigma * o.Sigma
	a = 1 - s2/(2*(s2+0.33))
	b = 0.45 * s2 / (s2 + 0.09)
	return a, b
}

func (o OrenNayar) Evaluate(wo, wi core.Vec3) spectrum.Spectrum {
	if !sameHemisphere(wo, wi) {
		return spectrum.Spectrum{}
	}
	sinThetaI := sinTheta(wi)
	sinThetaO := sinTheta(wo)

	maxCos := 0.0
	if sinThetaI > 1e-9 && sinThetaO > 1e-9 {
		dCos := cosPhi(wi)*cosPhi(wo) + sinPhi(wi)*sinPhi(wo)
		maxCos = math.Max(0, dCos)
	}

	var sinAlpha, tanBeta float64
	if absCosTheta(wi) > absCosTheta(wo) {
		sinAlpha, tanBeta = sinThetaO, sinThetaI/absCosTheta(wi)
	} else {
		sinAlpha, tanBeta = sinThetaI, sinThetaO/absCosTheta(wo)
	}

	a, b := o.ab()
	return o.R.Multiply(invPi * (a + b*maxCos*sinAlpha*tanBeta))
}

func (o OrenNayar) PDF(wo, wi core.Vec3) float64 {
	if !sameHemisphere(wo, wi) {
		return 0
	}
	return absCosTheta(wi) * invPi
}

func (o OrenNayar) Sample(wo core.Vec3, sampler core.Sampler) (wi core.Vec3, f spectrum.Spectrum, pdf float64, sampled Type, ok bool) {
	u1, u2 := sampler.Get2D()
	wi, _ = core.CosineSampleHemisphere(u1, u2)
	if wo.Y < 0 {
		wi.Y = -wi.Y
	}
	pdf = o.PDF(wo, wi)
	if pdf == 0 {
		return wi, spectrum.Spectrum{}, 0, o.Type(), false
	}
	return wi, o.Evaluate(wo, wi), pdf, o.Type(), true
}
