// The sdfrender command batch-renders a scene file (or a canned scene,
// if none is given) to a PNG.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"

	sdftrace "github.com/kjalden/sdftrace"
	"github.com/kjalden/sdftrace/internal/scenefile"
	"github.com/kjalden/sdftrace/internal/view"
)

var (
	sceneFile = flag.String("scene", "", "scene description file to render (canned scene if omitted)")
	outFile   = flag.String("out", "", "png filename to write")
	width     = flag.Int("width", 1024, "output image width in pixels")
	height    = flag.Int("height", 768, "output image height in pixels")
	fov       = flag.Float64("fov", 0, "override the scene's perspective field of view, in degrees (0 keeps the scene's own)")
)

func loadScene(path string) (*sdftrace.Scene, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, errs := scenefile.Parse(string(text))
	for _, e := range errs {
		slog.Warn("scene parse warning", "err", e)
	}
	return sc, nil
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	flag.Parse()
	if len(*outFile) == 0 {
		log.Fatal("--out is required")
	}

	var sc *sdftrace.Scene
	if len(*sceneFile) == 0 {
		log.Print("--scene not specified, using canned scene.")
		sc = sdftrace.ExampleScene1()
	} else {
		var err error
		sc, err = loadScene(*sceneFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	if *fov > 0 {
		if persp, ok := sc.View.(view.Perspective); ok {
			persp.FovDegrees = *fov
			sc.View = persp
		} else {
			slog.Warn("--fov has no effect on a non-perspective scene")
		}
	}

	sink := sdftrace.NewImageSink(*width, *height)
	sdftrace.RenderFrame(sc, sink, *width, *height, sdftrace.MathRandEntropy{})

	f, err := os.Create(*outFile)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, sink.Img); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s\n", *outFile)
}
