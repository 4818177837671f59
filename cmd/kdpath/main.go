// Command kdpath renders a built-in scene with the path tracer and writes
// the result as a PPM image.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/df07/kdpath/pkg/film"
	"github.com/df07/kdpath/pkg/integrator"
	"github.com/df07/kdpath/pkg/sampler"
	"github.com/df07/kdpath/pkg/scene"
)

// config holds all the command-line configuration for a render.
type config struct {
	sceneName  string
	width      int
	height     int
	spp        int
	maxDepth   int
	workers    int
	seed       int64
	output     string
	cpuProfile string
}

func main() {
	cfg := parseFlags()

	if cfg.cpuProfile != "" {
		f, err := os.Create(cfg.cpuProfile)
		if err != nil {
			fmt.Printf("could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Printf("could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	fmt.Println("Starting kdpath render...")
	start := time.Now()

	sc, err := createScene(cfg.sceneName, cfg.width, cfg.height)
	if err != nil {
		fmt.Printf("error creating scene %q: %v\n", cfg.sceneName, err)
		os.Exit(1)
	}

	f, err := film.NewFilm(cfg.width, cfg.height, film.NewGaussianFilter(2, 2))
	if err != nil {
		fmt.Printf("error creating film: %v\n", err)
		os.Exit(1)
	}

	li := integrator.NewPathIntegrator(sc.Container, sc.Lights, cfg.maxDepth)
	s := sampler.NewHaltonSampler(cfg.spp)

	if err := integrator.Render(context.Background(), f, sc.Camera, li, s, cfg.workers, cfg.seed); err != nil {
		fmt.Printf("render failed: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(cfg.output)
	if err != nil {
		fmt.Printf("error creating output file %q: %v\n", cfg.output, err)
		os.Exit(1)
	}
	defer out.Close()
	if err := film.WritePPM(out, f); err != nil {
		fmt.Printf("error writing PPM: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render completed in %v\n", time.Since(start))
	fmt.Printf("Resolution %dx%d, %d spp, max depth %d\n", cfg.width, cfg.height, cfg.spp, cfg.maxDepth)
	fmt.Printf("Mean brightness: %.4f\n", f.MeanBrightness())
	fmt.Printf("Render saved as %s\n", cfg.output)
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.sceneName, "scene", "default", "Scene to render: 'default' or 'cornell'")
	flag.IntVar(&cfg.width, "width", 640, "Image width in pixels")
	flag.IntVar(&cfg.height, "height", 480, "Image height in pixels")
	flag.IntVar(&cfg.spp, "spp", 64, "Samples per pixel")
	flag.IntVar(&cfg.maxDepth, "max-depth", 5, "Maximum path depth")
	flag.IntVar(&cfg.workers, "workers", 0, "Number of parallel tile workers (0 = auto-detect CPU count)")
	flag.Int64Var(&cfg.seed, "seed", 1, "Base RNG seed for tile sampler streams")
	flag.StringVar(&cfg.output, "out", "render.ppm", "Output PPM path")
	flag.StringVar(&cfg.cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	if cfg.workers <= 0 {
		cfg.workers = runtime.NumCPU()
	}
	return cfg
}

func createScene(name string, width, height int) (*scene.Scene, error) {
	switch name {
	case "cornell":
		fmt.Println("Using Cornell scene...")
		return scene.NewCornellScene(width, height)
	case "default":
		fmt.Println("Using default scene...")
		return scene.NewDefaultScene(width, height)
	default:
		return nil, fmt.Errorf("unknown scene %q", name)
	}
}
