// Package sdftrace renders a raster image of a 3D scene by
// sphere-tracing signed distance fields. It assembles the SDF algebra,
// sphere tracer, camera, and shader packages under internal/ into the
// public Scene/Render surface, and defines the small set of host
// collaborator interfaces (raster sink, entropy, clock) the core
// algorithm needs but does not implement itself.
package sdftrace

import (
	"image"
	"runtime"
	"sync"
	"time"

	"github.com/kjalden/sdftrace/internal/color"
	"github.com/kjalden/sdftrace/internal/scene"
	"github.com/kjalden/sdftrace/internal/shade"
	"github.com/kjalden/sdftrace/internal/view"
)

// Re-exported building blocks so callers outside this module never need
// to reach into internal/.
type (
	Scene = scene.Scene
	Light = scene.Light
	Color = color.Color
)

var (
	RGB      = color.New
	NewLight = scene.NewLight
)

// Entropy is the host-provided source of uniform [0,1) samples used to
// jitter rays for anti-aliasing.
type Entropy = shade.Entropy

// MathRandEntropy is the default Entropy for command-line tools: it
// draws from math/rand/v2's package-level source.
type MathRandEntropy = shade.MathRandEntropy

// RasterSink is the host-provided pixel writer. A nil color means
// background; the host chooses how to render that.
type RasterSink interface {
	SetPixel(x, y int, c *Color)
}

// Clock is the host-provided wall clock, used only by the
// time-budgeted incremental driver.
type Clock interface {
	NowMillis() int64
}

// RenderPixel is the pure, allocation-free core the rest of this file's
// drivers call: project the pixel to a primary ray through the scene's
// view transform and shade it, or return ok=false on a miss.
func RenderPixel(sc *Scene, x, y, width, height int, rng Entropy) (Color, bool) {
	local := view.PixelToLocal(x, y, width, height)
	ray := sc.View.Project(local)
	return shade.Raycast(sc, ray, shade.PrimaryReflBudget, rng)
}

// RenderFrame renders every pixel of a width x height image into sink.
// The scene is immutable during a frame, so pixels are partitioned by
// row across a small worker pool; each worker only ever calls
// sink.SetPixel for rows it owns, so no further synchronization is
// needed on the sink itself.
func RenderFrame(sc *Scene, sink RasterSink, width, height int, rng Entropy) {
	rows := make(chan int, height)
	for y := range height {
		rows <- y
	}
	close(rows)

	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for y := range rows {
				for x := 0; x < width; x++ {
					c, ok := RenderPixel(sc, x, y, width, height, rng)
					if !ok {
						sink.SetPixel(x, y, nil)
						continue
					}
					sink.SetPixel(x, y, &c)
				}
			}
		}()
	}
	wg.Wait()
}

// SystemClock wraps time.Now for RenderBudgeted's deadline checks.
type SystemClock struct{}

func (SystemClock) NowMillis() int64 { return time.Now().UnixMilli() }

// RenderBudgeted renders pixels in scanline order starting at
// (startX, startY), stopping as soon as clock has spent budget since
// the call began, and returns the coordinate of the next unrendered
// pixel so a caller can resume across multiple calls. It reports
// done=true once the whole frame has been rendered.
func RenderBudgeted(sc *Scene, sink RasterSink, width, height int, rng Entropy, clock Clock, budget time.Duration, startX, startY int) (nextX, nextY int, done bool) {
	deadline := clock.NowMillis() + budget.Milliseconds()
	x, y := startX, startY
	for y < height {
		for ; x < width; x++ {
			if clock.NowMillis() >= deadline {
				return x, y, false
			}
			c, ok := RenderPixel(sc, x, y, width, height, rng)
			if !ok {
				sink.SetPixel(x, y, nil)
				continue
			}
			sink.SetPixel(x, y, &c)
		}
		x = 0
		y++
	}
	return 0, 0, true
}

// ImageSink adapts a stdlib image.RGBA into a RasterSink, writing
// background pixels as transparent black.
type ImageSink struct {
	Img *image.RGBA
}

// NewImageSink allocates a width x height ImageSink.
func NewImageSink(width, height int) *ImageSink {
	return &ImageSink{Img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (s *ImageSink) SetPixel(x, y int, c *Color) {
	if c == nil {
		s.Img.Set(x, y, image.Transparent)
		return
	}
	s.Img.Set(x, y, rgbaColor(*c))
}

// rgbaColor adapts a Color to image/color.Color, clamping to [0,1]
// before the 16-bit scale, matching Color.AsHexString's [0,1] -> [0,255]
// truncation rule.
type rgbaColor color.Color

func (c rgbaColor) RGBA() (r, g, b, a uint32) {
	const max = 0xffff
	return uint32(clampUnit(c.R) * max), uint32(clampUnit(c.G) * max), uint32(clampUnit(c.B) * max), max
}

func clampUnit(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
