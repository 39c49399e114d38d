package material

import "math"

// FresnelDielectric evaluates the unpolarized Fresnel reflectance at a
// dielectric interface given cosThetaI (signed; negative means the ray
// approaches from the transmission side) and the two sides' refractive
// indices.
func FresnelDielectric(cosThetaI, etaI, etaT float64) float64 {
	cosThetaI = clamp(cosThetaI, -1, 1)
	if cosThetaI < 0 {
		etaI, etaT = etaT, etaI
		cosThetaI = -cosThetaI
	}

	sinThetaI := math.Sqrt(math.Max(0, 1-cosThetaI*cosThetaI))
	sinThetaT := etaI / etaT * sinThetaI
	if sinThetaT >= 1 {
		return 1 // total internal reflection
	}
	cosThetaT := math.Sqrt(math.Max(0, 1-sinThetaT*sinThetaT))

	rParl := ((etaT * cosThetaI) - (etaI * cosThetaT)) / ((etaT * cosThetaI) + (etaI * cosThetaT))
	rPerp := ((etaI * cosThetaI) - (etaT * cosThetaT)) / ((etaI * cosThetaI) + (etaT * cosThetaT))
	return (rParl*rParl + rPerp*rPerp) / 2
}

// FresnelConductor evaluates the unpolarized Fresnel reflectance at a
// conductor interface given the incident medium's index etaI and the
// conductor's complex index (eta, k).
func FresnelConductor(cosThetaI, etaI, eta, k float64) float64 {
	cosThetaI = math.Abs(clamp(cosThetaI, -1, 1))
	eta2 := (eta / etaI) * (eta / etaI)
	k2 := (k / etaI) * (k / etaI)
	cos2 := cosThetaI * cosThetaI
	sin2 := 1 - cos2

	t0 := eta2 - k2 - sin2
	a2plusb2 := math.Sqrt(math.Max(0, t0*t0+4*eta2*k2))
	t1 := a2plusb2 + cos2
	a := math.Sqrt(math.Max(0, (a2plusb2+t0)/2))
	t2 := 2 * a * cosThetaI
	rs := (t1 - t2) / (t1 + t2)

	t3 := cos2*a2plusb2 + sin2*sin2
	t4 := t2 * sin2
	rp := rs * (t3 - t4) / (t3 + t4)

	return (rs + rp) / 2
}
