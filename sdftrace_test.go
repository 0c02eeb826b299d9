package sdftrace

import (
	"testing"
	"time"

	"github.com/kjalden/sdftrace/internal/color"
	"github.com/kjalden/sdftrace/internal/geom"
	"github.com/kjalden/sdftrace/internal/sdf"
	"github.com/kjalden/sdftrace/internal/view"
)

// constEntropy always returns the same sample, disabling jitter
// (Uniform01()=0.5 drives the jitter term's "(sample*2-1)" to zero) so
// these tests are deterministic.
type constEntropy float64

func (c constEntropy) Uniform01() float64 { return float64(c) }

func singleSphereScene() *Scene {
	mat := color.Material{Ambient: color.Black(), Diffuse: color.New(1, 0, 0), Specular: color.Black(), Phong: 1, Opacity: 1, IndexOfRefraction: 1}
	eye := geom.Frame{Origin: geom.Vec3{Z: 4}, I: geom.Right(), J: geom.Up(), K: geom.Backward()}
	return &Scene{
		SDF: &sdf.Translate{
			SDF: &sdf.Shaded{SDF: &sdf.Sphere{Radius: 1}, Mat: mat},
			T:   geom.Vec3{Z: -5},
		},
		Lights:   []Light{NewLight(geom.Vec3{X: 0, Y: 0, Z: 4}, color.White())},
		View:     view.Perspective{EyeFrame: eye, Near: 1, FovDegrees: 40},
		FarPlane: 1000,
	}
}

func TestRenderPixelHitsCenterOfFrame(t *testing.T) {
	sc := singleSphereScene()
	c, ok := RenderPixel(sc, 50, 50, 100, 100, constEntropy(0.5))
	if !ok {
		t.Fatal("center ray should hit the sphere")
	}
	if c.R <= 0 {
		t.Errorf("lit red sphere should show some red, got %v", c)
	}
}

func TestRenderPixelMissesCorner(t *testing.T) {
	sc := singleSphereScene()
	_, ok := RenderPixel(sc, 0, 0, 100, 100, constEntropy(0.5))
	if ok {
		t.Error("far corner of a narrow fov should miss the single centered sphere")
	}
}

func samePixel(a, b Color) bool {
	ar, ag, ab, _ := rgbaColor(a).RGBA()
	br, bg, bb, _ := rgbaColor(b).RGBA()
	return ar == br && ag == bg && ab == bb
}

func TestRenderFrameMatchesPerPixelRender(t *testing.T) {
	sc := singleSphereScene()
	const w, h = 16, 12
	sink := NewImageSink(w, h)
	rng := constEntropy(0.5)
	RenderFrame(sc, sink, w, h, rng)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			want, ok := RenderPixel(sc, x, y, w, h, rng)
			if !ok {
				continue
			}
			if !samePixel(want, pixelAt(sink, x, y)) {
				t.Fatalf("pixel (%d,%d): RenderFrame disagrees with RenderPixel", x, y)
			}
		}
	}
}

func pixelAt(sink *ImageSink, x, y int) color.Color {
	r, g, b, _ := sink.Img.At(x, y).RGBA()
	return color.New(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff)
}

func TestRenderBudgetedCoversWholeFrame(t *testing.T) {
	sc := singleSphereScene()
	const w, h = 8, 6
	sink := NewImageSink(w, h)
	clock := &fakeClock{}
	rng := constEntropy(0.5)

	x, y := 0, 0
	for iterations := 0; ; iterations++ {
		var done bool
		x, y, done = RenderBudgeted(sc, sink, w, h, rng, clock, 10*time.Millisecond, x, y)
		if done {
			break
		}
		if iterations > w*h+10 {
			t.Fatal("RenderBudgeted did not converge")
		}
	}

	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			want, ok := RenderPixel(sc, px, py, w, h, rng)
			if !ok {
				continue
			}
			if !samePixel(want, pixelAt(sink, px, py)) {
				t.Fatalf("pixel (%d,%d) mismatch after RenderBudgeted", px, py)
			}
		}
	}
}

// fakeClock advances on every call so RenderBudgeted's deadline
// eventually trips without a real sleep.
type fakeClock struct{ ticks int64 }

func (c *fakeClock) NowMillis() int64 {
	c.ticks++
	return c.ticks
}

func TestEmptySceneAlwaysMisses(t *testing.T) {
	sc := &Scene{SDF: sdf.Empty{}, View: view.Ortho{Frame: geom.Identity()}, FarPlane: 1000}
	_, ok := RenderPixel(sc, 5, 5, 10, 10, constEntropy(0.5))
	if ok {
		t.Error("an empty scene should never report a hit")
	}
}

func TestDeterministicRenderIsPixelIdentical(t *testing.T) {
	sc := singleSphereScene()
	const w, h = 24, 18
	rng := constEntropy(0.5)

	sinkA := NewImageSink(w, h)
	RenderFrame(sc, sinkA, w, h, rng)
	sinkB := NewImageSink(w, h)
	RenderFrame(sc, sinkB, w, h, rng)

	similarity, err := geom.SSIM(sinkA.Img, sinkB.Img)
	if err != nil {
		t.Fatalf("SSIM error: %v", err)
	}
	if similarity < 0.999 {
		t.Errorf("two renders of a deterministic scene should match almost exactly, got SSIM %v", similarity)
	}
}
