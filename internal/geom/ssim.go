package geom

import (
	"errors"
	"image"
	"math/rand/v2"
	"sync"
)

// SSIM computes a structured similarity index between two images,
// windowed over kernelSize x kernelSize patches. Used by the renderer's
// regression tests to check that two renders of the same deterministic
// scene (jitter disabled) agree pixel-for-pixel without requiring an
// exact golden image on disk.
//
// See https://www.cns.nyu.edu/pub/eero/wang03-reprint.pdf
const (
	kernelSize = 11

	ssimK1 = 0.01
	ssimK2 = 0.03

	ssimC1 = ssimK1 * ssimK1
	ssimC2 = ssimK2 * ssimK2
)

func SSIM(img1, img2 image.Image) (float64, error) {
	if img1.Bounds() != img2.Bounds() {
		return 0.0, errors.New("images are not the same size")
	}
	if img1.Bounds().Dx() < kernelSize || img1.Bounds().Dy() < kernelSize {
		return 0.0, errors.New("images are too small")
	}
	rgbImg1 := convertImageToRGB(img1)
	rgbImg2 := convertImageToRGB(img2)

	kernel := makeGaussianKernel()

	n := 0
	sum := 0.0

	type workitem struct {
		ssim float64
		n    int
	}

	ch := make(chan workitem)

	go func() {
		defer close(ch)
		var wg sync.WaitGroup
		for x := 0; x < len(rgbImg1)-kernelSize; x++ {
			wg.Add(1)
			go func(x int) {
				defer wg.Done()
				sum := 0.0
				n := 0
				for y := 0; y < len(rgbImg1[x])-kernelSize; y++ {
					sum += computeSSIMOnWindow(rgbImg1, rgbImg2, x, y, kernel)
					n++
				}
				ch <- workitem{ssim: sum, n: n}
			}(x)
		}
		wg.Wait()
	}()

	for item := range ch {
		sum += item.ssim
		n += item.n
	}
	if n == 0 {
		return 1.0, nil
	}

	return sum / float64(n), nil
}

func computeSSIMOnWindow(img1, img2 [][]rgbSample, xstart, ystart int, kernel []float64) float64 {
	var r1Sum, r2Sum, g1Sum, g2Sum, b1Sum, b2Sum float64
	n := float64(kernelSize * kernelSize)

	for kx := range kernelSize {
		for ky := range kernelSize {
			x := xstart + kx
			y := ystart + ky
			w := kernel[kx*kernelSize+ky]

			i1 := img1[x][y]
			i2 := img2[x][y]

			r1Sum += float64(i1.r) * w
			g1Sum += float64(i1.g) * w
			b1Sum += float64(i1.b) * w

			r2Sum += float64(i2.r) * w
			g2Sum += float64(i2.g) * w
			b2Sum += float64(i2.b) * w
		}
	}

	r1Avg := r1Sum / n
	g1Avg := g1Sum / n
	b1Avg := b1Sum / n

	r2Avg := r2Sum / n
	g2Avg := g2Sum / n
	b2Avg := b2Sum / n

	var r1Var, g1Var, b1Var, r2Var, g2Var, b2Var, r12Var, g12Var, b12Var float64

	for kx := range kernelSize {
		for ky := range kernelSize {
			x := xstart + kx
			y := ystart + ky
			w := kernel[kx*kernelSize+ky]

			i1 := img1[x][y]
			i2 := img2[x][y]

			r1Var += w * square(float64(i1.r)-r1Avg)
			g1Var += w * square(float64(i1.g)-g1Avg)
			b1Var += w * square(float64(i1.b)-b1Avg)

			r2Var += w * square(float64(i2.r)-r2Avg)
			g2Var += w * square(float64(i2.g)-g2Avg)
			b2Var += w * square(float64(i2.b)-b2Avg)

			r12Var += w * (float64(i1.r) - r1Avg) * (float64(i2.r) - r2Avg)
			g12Var += w * (float64(i1.g) - g1Avg) * (float64(i2.g) - g2Avg)
			b12Var += w * (float64(i1.b) - b1Avg) * (float64(i2.b) - b2Avg)
		}
	}

	r1Var /= n - 1
	g1Var /= n - 1
	b1Var /= n - 1

	r2Var /= n - 1
	g2Var /= n - 1
	b2Var /= n - 1

	r12Var /= n - 1
	g12Var /= n - 1
	b12Var /= n - 1

	computeChannelSSIM := func(avg1, avg2, var1, var2, covar float64) float64 {
		numerator := (2*avg1*avg2 + ssimC1) * (2*covar + ssimC2)
		denominator := (avg1*avg1 + avg2*avg2 + ssimC1) * (var1 + var2 + ssimC2)
		return numerator / denominator
	}

	redSSIM := computeChannelSSIM(r1Avg, r2Avg, r1Var, r2Var, r12Var)
	greenSSIM := computeChannelSSIM(g1Avg, g2Avg, g1Var, g2Var, g12Var)
	blueSSIM := computeChannelSSIM(b1Avg, b2Avg, b1Var, b2Var, b12Var)

	return (redSSIM + greenSSIM + blueSSIM) / 3.0
}

func makeGaussianKernel() []float64 {
	window := make([]float64, kernelSize*kernelSize)
	const stddev = 1.5
	total := 0.0
	for i := range window {
		window[i] = rand.NormFloat64() * stddev
		total += window[i]
	}
	for i := range window {
		window[i] /= total
	}
	return window
}

func square(x float64) float64 { return x * x }

type rgbSample struct {
	r, g, b uint32
}

func convertImageToRGB(img image.Image) [][]rgbSample {
	rgbs := make([][]rgbSample, img.Bounds().Dx())
	for x := 0; x < img.Bounds().Dx(); x++ {
		rgbs[x] = make([]rgbSample, img.Bounds().Dy())
		for y := 0; y < img.Bounds().Dy(); y++ {
			r, g, b, _ := img.At(x, y).RGBA()
			rgbs[x][y] = rgbSample{r, g, b}
		}
	}
	return rgbs
}
