package material

import (
	"github.com/df07/spectral-tracer/pkg/core"
	"github.com/df07/spectral-tracer/pkg/spectrum"
)

const invPi = 1.0 / 3.14159265358979323846

// LambertianReflection is a perfectly diffuse reflective lobe: f = R/π,
// independent of direction.
type LambertianReflection struct {
	R spectrum.Spectrum
}

func (l LambertianReflection) Type() Type { return Reflection | Diffuse }

func (l LambertianReflection) Evaluate(wo, wi core.Vec3) spectrum.Spectrum {
	if !sameHemisphere(wo, wi) {
		return spectrum.Spectrum{}
	}
	return l.R.Multiply(invPi)
}

func (l LambertianReflection) PDF(wo, wi core.Vec3) float64 {
	if !sameHemisphere(wo, wi) {
		return 0
	}
	return absCosTheta(wi) * invPi
}

func (l LambertianReflection) Sample(wo core.Vec3, sampler core.Sampler) (wi core.Vec3, f spectrum.Spectrum, pdf float64, sampled Type, ok bool) {
	u1, u2 := sampler.Get2D()
	wi, _ = core.CosineSampleHemisphere(u1, u2)
	if wo.Y < 0 {
		wi.Y = -wi.Y
	}
	pdf = l.PDF(wo, wi)
	if pdf == 0 {
		return wi, spectrum.Spectrum{}, 0, l.Type(), false
	}
	return wi, l.Evaluate(wo, wi), pdf, l.Type(), true
}

// LambertianTransmission is the transmissive counterpart: diffuse light
// transport through a thin translucent surface, f = T/π over the
// opposite hemisphere.
type LambertianTransmission struct {
	T spectrum.Spectrum
}

func (l LambertianTransmission) Type() Type { return Transmission | Diffuse }

func (l LambertianTransmission) Evaluate(wo, wi core.Vec3) spectrum.Spectrum {
	if sameHemisphere(wo, wi) {
		return spectrum.Spectrum{}
	}
	return l.T.Multiply(invPi)
}

func (l LambertianTransmission) PDF(wo, wi core.Vec3) float64 {
	if sameHemisphere(wo, wi) {
		return 0
	}
	return absCosTheta(wi) * invPi
}

func (l LambertianTransmission) Sample(wo core.Vec3, sampler core.Sampler) (wi core.Vec3, f spectrum.Spectrum, pdf float64, sampled Type, ok bool) {
	u1, u2 := sampler.Get2D()
	wi, _ = core.CosineSampleHemisphere(u1, u2)
	if wo.Y > 0 {
		wi.Y = -wi.Y
	}
	pdf = l.PDF(wo, wi)
	if pdf == 0 {
		return wi, spectrum.Spectrum{}, 0, l.Type(), false
	}
	return wi, l.Evaluate(wo, wi), pdf, l.Type(), true
}
