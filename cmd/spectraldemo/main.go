// Command spectraldemo is a minimal CLI harness wiring camera, scene,
// integrator, and renderer together end to end. It is not part of the
// renderer's core API surface.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"time"

	"github.com/df07/spectral-tracer/internal/imageutil"
	"github.com/df07/spectral-tracer/internal/logging"
	"github.com/df07/spectral-tracer/pkg/filter"
	"github.com/df07/spectral-tracer/pkg/film"
	"github.com/df07/spectral-tracer/pkg/integrator"
	"github.com/df07/spectral-tracer/pkg/renderer"
)

func main() {
	var (
		outFile     = flag.String("out", "render.png", "output PNG path")
		webpFile    = flag.String("webp", "", "optional output WebP preview path")
		configFile  = flag.String("config", "cmd/spectraldemo/config.yaml", "optional YAML override file")
		width       = flag.Int("width", 400, "image width in pixels")
		aspect      = flag.Float64("aspect", 1.0, "image aspect ratio (width/height)")
		passes      = flag.Int("passes", 8, "number of progressive passes")
		threads     = flag.Int("threads", 0, "worker count (0 = auto-detect)")
		blockWidth  = flag.Int("block-width", 32, "render block width")
		blockHeight = flag.Int("block-height", 32, "render block height")
		seed        = flag.Int64("seed", 1, "base RNG seed")
		integType   = flag.String("integrator", "single", "integrator: 'single' or 'full'")
		lambdaN     = flag.Int("lambda-samples", 4, "SpectralPathSingle: wavelength samples per camera ray")
		maxDepth    = flag.Int("max-depth", 8, "maximum path depth")
	)
	flag.Parse()

	o, err := loadOverrides(*configFile)
	if err != nil {
		fmt.Printf("error reading config override %q: %v\n", *configFile, err)
		os.Exit(1)
	}
	o.apply(passes, threads, blockWidth, blockHeight, seed)

	logger := logging.New(os.Stderr, slog.LevelInfo)

	sc, err := buildCornellScene()
	if err != nil {
		fmt.Printf("error building scene: %v\n", err)
		os.Exit(1)
	}
	cam := buildCamera(*width, *aspect)
	height := int(float64(*width) / *aspect)

	var integ integrator.Integrator
	switch *integType {
	case "full":
		integ = integrator.NewSpectralPath(integrator.SpectralPathConfig{MaxDepth: *maxDepth, MaxSpecularDepth: *maxDepth})
	default:
		integ = integrator.NewSpectralPathSingle(integrator.SpectralPathSingleConfig{
			MaxDepth:       *maxDepth,
			LambdaSamples:  *lambdaN,
			DirectStrategy: integrator.DirectPower,
			SpectralKind:   integrator.SpectralSamplerHero,
		})
	}

	f := filter.NewGaussian(2, 2, 2)
	sensor := film.NewSensor(*width, height, f)

	r := renderer.New(sc, cam, integ, sensor, renderer.Config{
		BlockWidth:  *blockWidth,
		BlockHeight: *blockHeight,
		Passes:      *passes,
		Threads:     *threads,
		Seed:        *seed,
	}, logger)

	start := time.Now()
	r.Render()
	logger.Printf("render completed in %v (failed blocks: %d)", time.Since(start), r.Stats().FailedBlocks)

	if err := writePNG(*outFile, sensor); err != nil {
		fmt.Printf("error writing %q: %v\n", *outFile, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", *outFile)

	if *webpFile != "" {
		if err := writeWebP(*webpFile, sensor); err != nil {
			fmt.Printf("error writing %q: %v\n", *webpFile, err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", *webpFile)
	}
}

func writePNG(path string, sensor *film.Sensor) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, imageutil.ToRGBA(sensor))
}

func writeWebP(path string, sensor *film.Sensor) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return imageutil.WriteWebP(file, imageutil.ToRGBA(sensor))
}
