// Package scene implements the discriminated receiver/emitter scene
// object, the surface material variants, and the immutable Scene
// container shared by all workers.
package scene

import (
	"github.com/df07/spectral-tracer/pkg/core"
	"github.com/df07/spectral-tracer/pkg/material"
	"github.com/df07/spectral-tracer/pkg/refract"
	"github.com/df07/spectral-tracer/pkg/spectrum"
)

// Surface builds the BSDF at a shading point. BSDF builds an
// achromatic approximation suitable for the full-spectrum SpectralPath
// integrator. BSDFAt builds the wavelength-exact BSDF a
// SpectralPathSingle sub-path needs, which for a dispersive dielectric
// differs from BSDF because ηt is looked up at the sub-path's specific
// wavelength.
type Surface interface {
	BSDF(n core.Vec3) *material.BSDF
	BSDFAt(n core.Vec3, lambdaNM float64) *material.BSDF
}

// Diffuse is a perfectly Lambertian reflective surface.
type Diffuse struct {
	R spectrum.Spectrum
}

func (d Diffuse) BSDF(n core.Vec3) *material.BSDF {
	return material.NewBSDF(n, material.LambertianReflection{R: d.R})
}
func (d Diffuse) BSDFAt(n core.Vec3, lambdaNM float64) *material.BSDF { return d.BSDF(n) }

// RoughDiffuse is the Oren-Nayar rough-diffuse surface.
type RoughDiffuse struct {
	R     spectrum.Spectrum
	Sigma float64
}

func (r RoughDiffuse) BSDF(n core.Vec3) *material.BSDF {
	return material.NewBSDF(n, material.OrenNayar{R: r.R, Sigma: r.Sigma})
}
func (r RoughDiffuse) BSDFAt(n core.Vec3, lambdaNM float64) *material.BSDF { return r.BSDF(n) }

// Mirror is a perfect, untinted-by-dispersion specular reflector.
type Mirror struct {
	R spectrum.Spectrum
}

func (m Mirror) BSDF(n core.Vec3) *material.BSDF {
	return material.NewBSDF(n, material.SpecularReflection{R: m.R})
}
func (m Mirror) BSDFAt(n core.Vec3, lambdaNM float64) *material.BSDF { return m.BSDF(n) }

// Metal is a conductor whose complex index of refraction is evaluated
// per wavelength sample directly inside SpecularReflection.Sample. The
// reflected direction never depends on wavelength (only the Fresnel
// tint does), so BSDF and BSDFAt are identical here.
type Metal struct {
	R    spectrum.Spectrum
	EtaI float64
	IOR  refract.Material
}

func (m Metal) BSDF(n core.Vec3) *material.BSDF {
	return material.NewBSDF(n, material.SpecularReflection{R: m.R, EtaI: m.EtaI, Eta: m.IOR})
}
func (m Metal) BSDFAt(n core.Vec3, lambdaNM float64) *material.BSDF { return m.BSDF(n) }

// Glass is a dielectric surface with wavelength-dependent dispersion.
// BSDF uses the index evaluated
// at the spectrum's center wavelength as an achromatic stand-in for
// the full-spectrum integrator; BSDFAt evaluates the index exactly at
// the sub-path's wavelength, which is what actually produces chromatic
// dispersion under SpectralPathSingle.
type Glass struct {
	R, T spectrum.Spectrum
	EtaI float64
	IOR  refract.Material
}

func (g Glass) BSDF(n core.Vec3) *material.BSDF {
	centerNM := (spectrum.LambdaStart + spectrum.LambdaEnd) / 2
	return material.NewBSDF(n, material.FresnelSpecular{
		R: g.R, T: g.T, EtaI: g.EtaI, EtaT: g.IOR.N(centerNM),
	})
}

func (g Glass) BSDFAt(n core.Vec3, lambdaNM float64) *material.BSDF {
	return material.NewBSDF(n, material.FresnelSpecular{
		R: g.R, T: g.T, EtaI: g.EtaI, EtaT: g.IOR.N(lambdaNM),
	})
}

// Layered combines a diffuse base coat with a specular clear coat
// scaled by a fixed blend weight.
type Layered struct {
	Base    spectrum.Spectrum // diffuse base color
	CoatR   spectrum.Spectrum // clear-coat tint
	CoatMix float64           // fraction of the surface response coming from the coat, [0,1]
}

func (l Layered) BSDF(n core.Vec3) *material.BSDF {
	return material.NewBSDF(n,
		material.Scaled{Inner: material.LambertianReflection{R: l.Base}, Scale: spectrum.Broadcast(1 - l.CoatMix)},
		material.Scaled{Inner: material.SpecularReflection{R: l.CoatR}, Scale: spectrum.Broadcast(l.CoatMix)},
	)
}
func (l Layered) BSDFAt(n core.Vec3, lambdaNM float64) *material.BSDF { return l.BSDF(n) }
