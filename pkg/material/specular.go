package material

import (
	"github.com/df07/spectral-tracer/pkg/core"
	"github.com/df07/spectral-tracer/pkg/spectrum"
)

// SpecularReflection is a perfect mirror lobe scaled by R and, for
// conductors, tinted by a Fresnel reflectance evaluated per wavelength
// sample.
//
// Delta-lobe convention shared by every specular Sample in this
// package: the returned f carries no 1/cosθ factor, and the integrator
// applies no cosine multiplier on specular bounces, so throughput
// updates by f/pdf directly.
type SpecularReflection struct {
	R        spectrum.Spectrum
	EtaI     float64
	Eta      refractiveIndex // wavelength-dependent conductor (eta, k); nil for a plain mirror
}

// refractiveIndex is the subset of refract.Material this package needs,
// kept local so pkg/material does not import pkg/refract directly;
// the scene-building layer looks up n(λ)/k(λ) and hands scalars (or, for
// conductors, this small adapter) down into the BxDF constructors.
type refractiveIndex interface {
	N(lambdaNM float64) float64
	K(lambdaNM float64) float64
}

func (s SpecularReflection) Type() Type { return Reflection | Specular }

func (s SpecularReflection) Evaluate(wo, wi core.Vec3) spectrum.Spectrum { return spectrum.Spectrum{} }
func (s SpecularReflection) PDF(wo, wi core.Vec3) float64                { return 0 }

func (s SpecularReflection) Sample(wo core.Vec3, sampler core.Sampler) (wi core.Vec3, f spectrum.Spectrum, pdf float64, sampled Type, ok bool) {
	wi = core.Vec3{X: -wo.X, Y: wo.Y, Z: -wo.Z}
	tint := s.R
	if s.Eta != nil {
		var fr spectrum.Spectrum
		for i := 0; i < spectrum.N; i++ {
			lambda := spectrum.Lambda(i)
			fr = fr.Set(i, FresnelConductor(wo.Y, s.EtaI, s.Eta.N(lambda), s.Eta.K(lambda)))
		}
		tint = tint.MultiplySpectrum(fr)
	}
	return wi, tint, 1, s.Type(), true
}

// SpecularTransmission is perfect refraction through a dielectric
// interface with fixed (achromatic) ηi/ηt. Chromatic dispersion is
// introduced one layer up, by constructing a fresh instance per
// wavelength with η looked up from a refract.Material.
type SpecularTransmission struct {
	T          spectrum.Spectrum
	EtaI, EtaT float64
}

func (s SpecularTransmission) Type() Type { return Transmission | Specular }

func (s SpecularTransmission) Evaluate(wo, wi core.Vec3) spectrum.Spectrum {
	return spectrum.Spectrum{}
}
func (s SpecularTransmission) PDF(wo, wi core.Vec3) float64 { return 0 }

func (s SpecularTransmission) Sample(wo core.Vec3, sampler core.Sampler) (wi core.Vec3, f spectrum.Spectrum, pdf float64, sampled Type, ok bool) {
	entering := wo.Y > 0
	etaI, etaT := s.EtaI, s.EtaT
	n := core.Vec3{X: 0, Y: 1, Z: 0}
	if !entering {
		etaI, etaT = etaT, etaI
		n = core.Vec3{X: 0, Y: -1, Z: 0}
	}

	wt, refracted := refractLocal(wo, n, etaT/etaI)
	if !refracted {
		return core.Vec3{}, spectrum.Spectrum{}, 0, s.Type(), false
	}

	ft := s.T.Multiply((etaI * etaI) / (etaT * etaT))
	return wt, ft, 1, s.Type(), true
}

// FresnelSpecular combines specular reflection and transmission into a
// single lobe that stochastically picks one or the other weighted by
// the dielectric Fresnel reflectance at the outgoing direction.
type FresnelSpecular struct {
	R, T       spectrum.Spectrum
	EtaI, EtaT float64
}

func (s FresnelSpecular) Type() Type { return Reflection | Transmission | Specular }

func (s FresnelSpecular) Evaluate(wo, wi core.Vec3) spectrum.Spectrum { return spectrum.Spectrum{} }
func (s FresnelSpecular) PDF(wo, wi core.Vec3) float64                { return 0 }

func (s FresnelSpecular) Sample(wo core.Vec3, sampler core.Sampler) (wi core.Vec3, f spectrum.Spectrum, pdf float64, sampled Type, ok bool) {
	fr := FresnelDielectric(wo.Y, s.EtaI, s.EtaT)
	u := sampler.Get1D()

	if u < fr {
		wi = core.Vec3{X: -wo.X, Y: wo.Y, Z: -wo.Z}
		f = s.R.Multiply(fr)
		return wi, f, fr, Reflection | Specular, true
	}

	entering := wo.Y > 0
	etaI, etaT := s.EtaI, s.EtaT
	n := core.Vec3{X: 0, Y: 1, Z: 0}
	if !entering {
		etaI, etaT = etaT, etaI
		n = core.Vec3{X: 0, Y: -1, Z: 0}
	}
	wt, refracted := refractLocal(wo, n, etaT/etaI)
	if !refracted {
		return core.Vec3{}, spectrum.Spectrum{}, 0, s.Type(), false
	}
	ft := 1 - fr
	f = s.T.Multiply(ft * (etaI * etaI) / (etaT * etaT))
	return wt, f, ft, Transmission | Specular, true
}

// Scaled wraps a BxDF and attenuates its contribution by a constant
// spectrum, used to weight a lobe's share of a layered material.
type Scaled struct {
	Inner BxDF
	Scale spectrum.Spectrum
}

func (s Scaled) Type() Type { return s.Inner.Type() }

func (s Scaled) Evaluate(wo, wi core.Vec3) spectrum.Spectrum {
	return s.Inner.Evaluate(wo, wi).MultiplySpectrum(s.Scale)
}

func (s Scaled) PDF(wo, wi core.Vec3) float64 { return s.Inner.PDF(wo, wi) }

func (s Scaled) Sample(wo core.Vec3, sampler core.Sampler) (wi core.Vec3, f spectrum.Spectrum, pdf float64, sampled Type, ok bool) {
	wi, f, pdf, sampled, ok = s.Inner.Sample(wo, sampler)
	if !ok {
		return wi, f, pdf, sampled, ok
	}
	return wi, f.MultiplySpectrum(s.Scale), pdf, sampled, ok
}
