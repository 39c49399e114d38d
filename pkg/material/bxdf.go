// Package material implements the BxDF lobes and the BSDF layer that
// aggregates them into a world-space reflectance model. Each lobe is
// evaluated and sampled in a local shading frame where the surface
// normal is +Y.
package material

import (
	"math"

	"github.com/df07/spectral-tracer/pkg/core"
	"github.com/df07/spectral-tracer/pkg/spectrum"
)

// Type is the category bitset every BxDF reports: a
// {Reflection, Transmission} x {Diffuse, Glossy, Specular} category.
type Type uint8

const (
	Reflection Type = 1 << iota
	Transmission
	Diffuse
	Glossy
	Specular

	All = Reflection | Transmission | Diffuse | Glossy | Specular
)

// Has reports whether t includes every bit set in mask.
func (t Type) Has(mask Type) bool { return t&mask == mask }

// MatchesAny reports whether t shares any bit with mask, the test the
// BSDF layer uses to decide whether a lobe participates in a given
// evaluate/sample/pdf call.
func (t Type) MatchesAny(mask Type) bool { return t&mask != 0 }

// IsSpecular reports whether t is a delta-distribution lobe; the
// integrator must skip next-event estimation against, and must not
// divide by a cosine for, specular bounces.
func (t Type) IsSpecular() bool { return t&Specular != 0 }

// BxDF is a single lobe of reflectance or transmission in the local
// shading frame, where +Y is the surface normal.
type BxDF interface {
	Type() Type
	// Evaluate returns f(wo, wi) as a full spectrum. Both directions are
	// in the local frame.
	Evaluate(wo, wi core.Vec3) spectrum.Spectrum
	// PDF returns the solid-angle pdf of sampling wi given wo via Sample.
	// Specular lobes return 0 (their mass is a delta function, not
	// representable as a density).
	PDF(wo, wi core.Vec3) float64
	// Sample draws an incident direction wi given outgoing wo, returning
	// the lobe's contribution, the pdf (1 for single-branch specular
	// lobes; FresnelSpecular returns the probability of the branch it
	// chose), and which Type bits were actually sampled.
	Sample(wo core.Vec3, sampler core.Sampler) (wi core.Vec3, f spectrum.Spectrum, pdf float64, sampled Type, ok bool)
}

// Local-frame helpers: in this frame the surface normal is +Y, so cosθ
// is simply v.Y.

func cosTheta(v core.Vec3) float64     { return v.Y }
func absCosTheta(v core.Vec3) float64  { return math.Abs(v.Y) }
func cos2Theta(v core.Vec3) float64    { return v.Y * v.Y }
func sin2Theta(v core.Vec3) float64    { return math.Max(0, 1-cos2Theta(v)) }
func sinTheta(v core.Vec3) float64     { return math.Sqrt(sin2Theta(v)) }
func tanTheta(v core.Vec3) float64     { return sinTheta(v) / cosTheta(v) }
func cosPhi(v core.Vec3) float64 {
	st := sinTheta(v)
	if st == 0 {
		return 1
	}
	return clamp(v.X/st, -1, 1)
}
func sinPhi(v core.Vec3) float64 {
	st := sinTheta(v)
	if st == 0 {
		return 0
	}
	return clamp(v.Z/st, -1, 1)
}

func clamp(x, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, x)) }

// sameHemisphere reports a.y·b.y > 0.
func sameHemisphere(a, b core.Vec3) bool { return a.Y*b.Y > 0 }

// faceForwardLocal flips n (expected to be +Y or -Y) to the same
// hemisphere as v.
func faceForwardLocal(n, v core.Vec3) core.Vec3 {
	if n.Dot(v) < 0 {
		return n.Negate()
	}
	return n
}

// refractLocal implements Snell's law in the local frame. wo points away
// from the surface toward the outgoing side; n is oriented into the
// same hemisphere as wo; eta is ηt/ηi for the interface being crossed.
// Returns ok=false on total internal reflection.
func refractLocal(wo, n core.Vec3, eta float64) (wt core.Vec3, ok bool) {
	cosThetaI := n.Dot(wo)
	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := sin2ThetaI / (eta * eta)
	if sin2ThetaT >= 1 {
		return core.Vec3{}, false // total internal reflection
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	wt = wo.Negate().Multiply(1 / eta).Add(n.Multiply(cosThetaI/eta - cosThetaT))
	return wt, true
}

// reflectLocal reflects wo about normal n (both in the local frame).
func reflectLocal(wo, n core.Vec3) core.Vec3 {
	return wo.Negate().Add(n.Multiply(2 * n.Dot(wo)))
}
