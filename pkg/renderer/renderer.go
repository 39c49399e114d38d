// Package renderer implements the block scheduler, worker pool, and
// pass progression: blocks are pulled from a shared queue by one
// worker per logical core, with a barrier between passes and
// filter-weighted spectral accumulation into the sensor.
package renderer

import (
	"image"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/df07/spectral-tracer/pkg/camera"
	"github.com/df07/spectral-tracer/pkg/core"
	"github.com/df07/spectral-tracer/pkg/film"
	"github.com/df07/spectral-tracer/pkg/integrator"
	"github.com/df07/spectral-tracer/pkg/sampler"
	"github.com/df07/spectral-tracer/pkg/scene"
)

// PixelSamplerKind selects the per-pixel subpixel/lens sampler.
type PixelSamplerKind int

const (
	PixelSamplerRandom PixelSamplerKind = iota
	PixelSamplerStratified
)

// Config is the render driver's construction parameters. Filename is
// accepted and ignored by the Sensor; an external sink is responsible
// for writing output. It is kept here only so callers can round-trip
// it alongside the other fields.
type Config struct {
	Filename     string
	Bounds       *image.Rectangle // optional sub-rectangle for tiled re-rendering; nil = whole image
	BlockWidth   int
	BlockHeight  int
	Passes       int
	Threads      int // 0 = auto-detect (runtime.NumCPU())
	PixelSampler PixelSamplerKind
	Seed         int64
}

// Stats reports renderer progress for an external CLI.
type Stats struct {
	Pass         int
	Passes       int
	BlocksTotal  int
	BlocksDone   int
	FailedBlocks int
}

// Renderer drives the scheduler/worker-pool loop over a Scene, Camera,
// Integrator, and Filter, writing filter-weighted spectral samples into
// a film.Sensor.
//
// Workers splat directly into the shared Sensor rather than through a
// per-worker film.Tile, which is race-free as long as the filter
// radius stays below the block size. BlockWidth/BlockHeight should be chosen
// larger than the filter's RadiusX/RadiusY; film.Tile remains available
// for a caller that wants the padded-buffer merge strategy instead
// (e.g. a single-block whole-image render, where Tile degenerates to a
// same-size padded buffer).
type Renderer struct {
	scene      *scene.Scene
	cam        *camera.Camera
	integ      integrator.Integrator
	sensor     *film.Sensor
	config     Config
	logger     core.Logger
	blocks     []image.Rectangle
	numWorkers int

	stop int32 // atomic; set by Stop()

	mu    sync.Mutex
	stats Stats
}

// New builds a Renderer. The Sensor is allocated by the caller (its
// dimensions and filter are fixed at construction) and
// handed in so external callers retain the ability to read partial
// results mid-render.
func New(sc *scene.Scene, cam *camera.Camera, integ integrator.Integrator, sensor *film.Sensor, config Config, logger core.Logger) *Renderer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	numWorkers := config.Threads
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	bounds := image.Rect(0, 0, sensor.Width(), sensor.Height())
	if config.Bounds != nil {
		bounds = *config.Bounds
	}
	blocks := splitIntoBlocks(bounds, config.BlockWidth, config.BlockHeight)

	return &Renderer{
		scene:      sc,
		cam:        cam,
		integ:      integ,
		sensor:     sensor,
		config:     config,
		logger:     logger,
		blocks:     blocks,
		numWorkers: numWorkers,
		stats:      Stats{Passes: config.Passes, BlocksTotal: len(blocks) * config.Passes},
	}
}

// splitIntoBlocks partitions bounds into a grid of equal-sized
// rectangular blocks; edge blocks may be smaller.
func splitIntoBlocks(bounds image.Rectangle, bw, bh int) []image.Rectangle {
	if bw <= 0 {
		bw = bounds.Dx()
	}
	if bh <= 0 {
		bh = bounds.Dy()
	}
	var blocks []image.Rectangle
	for y := bounds.Min.Y; y < bounds.Max.Y; y += bh {
		for x := bounds.Min.X; x < bounds.Max.X; x += bw {
			x1 := x + bw
			if x1 > bounds.Max.X {
				x1 = bounds.Max.X
			}
			y1 := y + bh
			if y1 > bounds.Max.Y {
				y1 = bounds.Max.Y
			}
			blocks = append(blocks, image.Rect(x, y, x1, y1))
		}
	}
	return blocks
}

// Stop requests cancellation. Workers drain
// their current block and exit; partial accumulation in the Sensor
// remains valid.
func (r *Renderer) Stop() { atomic.StoreInt32(&r.stop, 1) }

func (r *Renderer) stopped() bool { return atomic.LoadInt32(&r.stop) != 0 }

// Stats returns a snapshot of render progress.
func (r *Renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Render runs every configured pass to completion or until Stop is
// called. One worker goroutine per logical core (or config.Threads)
// pulls blocks from a shared queue; the driver barriers between
// passes.
func (r *Renderer) Render() {
	for pass := 1; pass <= r.config.Passes; pass++ {
		if r.stopped() {
			break
		}
		r.renderPass(pass)
		r.mu.Lock()
		r.stats.Pass = pass
		r.mu.Unlock()
	}
}

func (r *Renderer) renderPass(pass int) {
	blockIdx := make(chan int, len(r.blocks))
	for i := range r.blocks {
		blockIdx <- i
	}
	close(blockIdx)

	var wg sync.WaitGroup
	for w := 0; w < r.numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range blockIdx {
				if r.stopped() {
					return
				}
				r.renderBlockWithRetry(pass, idx)
			}
		}()
	}
	wg.Wait()
}

// renderBlockWithRetry renders one block, retrying once on panic before
// marking it permanently failed.
func (r *Renderer) renderBlockWithRetry(pass, blockIndex int) {
	if !r.renderBlockSafely(pass, blockIndex) {
		if !r.renderBlockSafely(pass, blockIndex) {
			r.mu.Lock()
			r.stats.FailedBlocks++
			r.mu.Unlock()
			r.logger.Printf("renderer: block %d permanently failed in pass %d\n", blockIndex, pass)
			return
		}
	}
	r.mu.Lock()
	r.stats.BlocksDone++
	r.mu.Unlock()
}

// renderBlockSafely recovers a panic inside renderBlock and reports it
// as a plain failure so the caller can decide to retry.
func (r *Renderer) renderBlockSafely(pass, blockIndex int) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Printf("renderer: recovered panic rendering block %d pass %d: %v\n", blockIndex, pass, rec)
			ok = false
		}
	}()
	r.renderBlock(pass, blockIndex)
	return true
}

func (r *Renderer) renderBlock(pass, blockIndex int) {
	bounds := r.blocks[blockIndex]
	pixelIndex := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			seed := r.config.Seed + sampler.Seed(pass, blockIndex, pixelIndex)
			r.renderPixel(x, y, seed)
			pixelIndex++
		}
	}
}

func (r *Renderer) newPixelSampler(seed int64) core.Sampler {
	if r.config.PixelSampler == PixelSamplerStratified {
		return sampler.NewStratified(seed, 16, 4, 4)
	}
	return sampler.NewRandom(seed)
}

// renderPixel generates one primary ray with a jittered subpixel/lens
// sample, traces it through the integrator, and splats every resulting
// (wavelength, value) contribution into the Sensor at the sample's
// continuous position.
func (r *Renderer) renderPixel(x, y int, seed int64) {
	s := r.newPixelSampler(seed)
	subX, subY := s.Get2D()
	lensU, lensV := s.Get2D()

	ray := r.cam.GenerateRay(x, y, subX, subY, lensU, lensV)
	samples := r.integ.Li(ray, r.scene, s)

	px, py := float64(x)+subX, float64(y)+subY
	for _, smp := range samples {
		// Numerical degeneracy at a hit: drop the sample rather than
		// propagate a NaN/Inf into the sensor.
		if math.IsNaN(smp.Value) || math.IsInf(smp.Value, 0) {
			continue
		}
		r.sensor.Splat(px, py, smp.LambdaIndex, smp.Value)
	}
}
