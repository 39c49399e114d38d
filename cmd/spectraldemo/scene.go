package main

import (
	"github.com/df07/spectral-tracer/pkg/camera"
	"github.com/df07/spectral-tracer/pkg/core"
	"github.com/df07/spectral-tracer/pkg/geometry"
	"github.com/df07/spectral-tracer/pkg/refract"
	"github.com/df07/spectral-tracer/pkg/scene"
	"github.com/df07/spectral-tracer/pkg/spectrum"
)

// buildCornellScene hardcodes a small Cornell-box-style scene: diffuse
// floor/ceiling/walls, a glass sphere and a metal sphere, lit by a
// two-triangle area light just under the ceiling. The render exercises
// the Diffuse, Glass (dispersive dielectric) and Metal surfaces.
func buildCornellScene() (*scene.Scene, error) {
	const wall = 5.0

	red := scene.Diffuse{R: spectrum.FromRGB(0.65, 0.05, 0.05)}
	green := scene.Diffuse{R: spectrum.FromRGB(0.12, 0.45, 0.15)}
	white := scene.Diffuse{R: spectrum.FromRGB(0.73, 0.73, 0.73)}

	glass := scene.Glass{
		R:    spectrum.Broadcast(0.04),
		T:    spectrum.Broadcast(0.96),
		EtaI: 1.0,
		IOR:  refract.Glass,
	}
	metal := scene.Metal{
		R:    spectrum.FromRGB(0.9, 0.9, 0.9),
		EtaI: 1.0,
		IOR:  refract.Sapphire,
	}

	objects := []scene.Object{
		{Primitive: geometry.NewBox(core.NewVec3(-wall, -wall, -wall), core.NewVec3(wall, -wall+0.01, wall)), Surface: white},
		{Primitive: geometry.NewBox(core.NewVec3(-wall, wall-0.01, -wall), core.NewVec3(wall, wall, wall)), Surface: white},
		{Primitive: geometry.NewBox(core.NewVec3(-wall, -wall, -wall), core.NewVec3(wall, wall, -wall+0.01)), Surface: white},
		{Primitive: geometry.NewBox(core.NewVec3(-wall, -wall, -wall), core.NewVec3(-wall+0.01, wall, wall)), Surface: red},
		{Primitive: geometry.NewBox(core.NewVec3(wall-0.01, -wall, -wall), core.NewVec3(wall, wall, wall)), Surface: green},

		{Primitive: geometry.NewSphere(core.NewVec3(-1.6, -wall+1.4, 0.5), 1.4), Surface: glass},
		{Primitive: geometry.NewSphere(core.NewVec3(1.8, -wall+1.1, -0.8), 1.1), Surface: metal},

		{
			Primitive: geometry.NewTriangle(
				core.NewVec3(-1.5, wall-0.1, -1.5),
				core.NewVec3(1.5, wall-0.1, -1.5),
				core.NewVec3(1.5, wall-0.1, 1.5),
			),
			Surface:  scene.Diffuse{R: spectrum.Broadcast(0)},
			Emission: &scene.Emission{Radiance: spectrum.Broadcast(15)},
		},
		{
			Primitive: geometry.NewTriangle(
				core.NewVec3(-1.5, wall-0.1, -1.5),
				core.NewVec3(1.5, wall-0.1, 1.5),
				core.NewVec3(-1.5, wall-0.1, 1.5),
			),
			Surface:  scene.Diffuse{R: spectrum.Broadcast(0)},
			Emission: &scene.Emission{Radiance: spectrum.Broadcast(15)},
		},
	}

	return scene.Build(objects, scene.LightStrategyPower)
}

// buildCamera returns the pinhole camera looking into the Cornell box
// from outside the open wall.
func buildCamera(width int, aspect float64) *camera.Camera {
	return camera.New(camera.Config{
		Center:      core.NewVec3(0, 0, 14),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       width,
		AspectRatio: aspect,
		VFov:        40,
	})
}
