package renderer

import (
	"image"
	"testing"

	"github.com/df07/spectral-tracer/pkg/camera"
	"github.com/df07/spectral-tracer/pkg/core"
	"github.com/df07/spectral-tracer/pkg/filter"
	"github.com/df07/spectral-tracer/pkg/film"
	"github.com/df07/spectral-tracer/pkg/geometry"
	"github.com/df07/spectral-tracer/pkg/integrator"
	"github.com/df07/spectral-tracer/pkg/scene"
	"github.com/df07/spectral-tracer/pkg/spectrum"
)

func testScene(t *testing.T) *scene.Scene {
	t.Helper()
	floor := geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000)
	light := geometry.NewSphere(core.NewVec3(0, 10, 0), 3)
	objs := []scene.Object{
		{Primitive: floor, Surface: scene.Diffuse{R: spectrum.Broadcast(0.5)}},
		{Primitive: light, Surface: scene.Diffuse{R: spectrum.Broadcast(0)}, Emission: &scene.Emission{Radiance: spectrum.Broadcast(20)}},
	}
	sc, err := scene.Build(objs, scene.LightStrategyUniform)
	if err != nil {
		t.Fatalf("unexpected scene build error: %v", err)
	}
	return sc
}

func testCamera() *camera.Camera {
	return camera.New(camera.Config{
		Center:      core.NewVec3(0, 5, -10),
		LookAt:      core.NewVec3(0, 2, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       8,
		AspectRatio: 1,
		VFov:        60,
	})
}

func TestSplitIntoBlocks_CoversWholeImageWithSmallerEdgeBlocks(t *testing.T) {
	blocks := splitIntoBlocks(image.Rect(0, 0, 10, 7), 4, 4)
	total := 0
	for _, b := range blocks {
		total += b.Dx() * b.Dy()
	}
	if total != 70 {
		t.Errorf("expected blocks to cover 70 pixels, got %d", total)
	}
}

func TestRenderer_ZeroPassesProducesBlackImage(t *testing.T) {
	sc := testScene(t)
	cam := testCamera()
	integ := integrator.NewSpectralPath(integrator.SpectralPathConfig{MaxDepth: 3, MaxSpecularDepth: 3})
	sensor := film.NewSensor(8, 8, filter.Box{RX: 0.5, RY: 0.5})

	r := New(sc, cam, integ, sensor, Config{BlockWidth: 4, BlockHeight: 4, Passes: 0, Threads: 1}, nil)
	r.Render()

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if !sensor.Spectrum(x, y).IsBlack() {
				t.Fatalf("expected a black image at passes=0, pixel (%d,%d) is non-black", x, y)
			}
		}
	}
}

func TestRenderer_OnePassProducesUsableImage(t *testing.T) {
	sc := testScene(t)
	cam := testCamera()
	integ := integrator.NewSpectralPath(integrator.SpectralPathConfig{MaxDepth: 4, MaxSpecularDepth: 4})
	sensor := film.NewSensor(8, 8, filter.Box{RX: 0.5, RY: 0.5})

	r := New(sc, cam, integ, sensor, Config{BlockWidth: 4, BlockHeight: 4, Passes: 1, Threads: 2}, nil)
	r.Render()

	anyWeight := false
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if sensor.WeightSum(x, y) > 0 {
				anyWeight = true
			}
		}
	}
	if !anyWeight {
		t.Error("expected at least one pixel to have accumulated weight after one pass")
	}
}

func TestRenderer_StopHaltsBeforeAllPassesComplete(t *testing.T) {
	sc := testScene(t)
	cam := testCamera()
	integ := integrator.NewSpectralPath(integrator.SpectralPathConfig{MaxDepth: 3, MaxSpecularDepth: 3})
	sensor := film.NewSensor(8, 8, filter.Box{RX: 0.5, RY: 0.5})

	r := New(sc, cam, integ, sensor, Config{BlockWidth: 4, BlockHeight: 4, Passes: 5, Threads: 1}, nil)
	r.Stop()
	r.Render()

	if r.Stats().Pass != 0 {
		t.Errorf("expected Stop before Render to prevent any pass from completing, got pass %d", r.Stats().Pass)
	}
}

func TestRenderer_DeterministicAcrossRunsWithSameSeed(t *testing.T) {
	run := func() spectrum.Spectrum {
		sc := testScene(t)
		cam := testCamera()
		integ := integrator.NewSpectralPath(integrator.SpectralPathConfig{MaxDepth: 4, MaxSpecularDepth: 4})
		sensor := film.NewSensor(8, 8, filter.Box{RX: 0.5, RY: 0.5})
		r := New(sc, cam, integ, sensor, Config{BlockWidth: 4, BlockHeight: 4, Passes: 2, Threads: 1, Seed: 42}, nil)
		r.Render()
		return sensor.Spectrum(4, 4)
	}

	a, b := run(), run()
	for i := 0; i < spectrum.N; i++ {
		if a.At(i) != b.At(i) {
			t.Fatalf("expected identical seed to reproduce the same output, band %d differs: %v vs %v", i, a.At(i), b.At(i))
		}
	}
}
