package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nvr-ai/go-inpaint/diffusion"
	"github.com/nvr-ai/go-inpaint/fill"
	"github.com/nvr-ai/go-inpaint/images"
	"github.com/nvr-ai/go-inpaint/inference"
	"github.com/nvr-ai/go-inpaint/models"
	"github.com/nvr-ai/go-inpaint/patchmatch"
	"github.com/nvr-ai/go-inpaint/profiler"
	"github.com/nvr-ai/go-inpaint/util"
)

const (
	// DefaultLuminanceThreshold separates hole from keep when the mask
	// is a grayscale image instead of an alpha channel.
	DefaultLuminanceThreshold = 128
	// DefaultTimeout bounds a single fill.
	DefaultTimeout = 5 * time.Minute
)

// Supported file extensions
var supportedImageExtensions = []string{".jpg", ".jpeg", ".png"}

func main() {
	var (
		inputPath      string
		maskPath       string
		outputPath     string
		method         string
		maskMode       string
		patchSize      int
		iterations     int
		seed           int64
		modelPath      string
		modelFamily    string
		provider       string
		resolution     int
		radius         float64
		timeout        time.Duration
		enableProfiler bool
	)
	flag.StringVar(&inputPath, "input", "", "Path to the image to fill (.jpg, .jpeg, .png)")
	flag.StringVar(&maskPath, "mask", "", "Path to the mask image marking the holes")
	flag.StringVar(&outputPath, "output", "", "Output path (default inpainted_<input> next to the input)")
	flag.StringVar(&method, "method", string(fill.MethodPatchMatch), "Fill method: patchmatch, telea, navier-stokes, neural, auto")
	flag.StringVar(&maskMode, "mask-mode", "alpha", "How the mask marks holes: alpha (non-zero alpha) or luminance (bright pixels)")
	flag.IntVar(&patchSize, "patch-size", patchmatch.DefaultPatchSize, "PatchMatch window side, odd")
	flag.IntVar(&iterations, "iterations", patchmatch.DefaultIterations, "PatchMatch propagation passes")
	flag.Int64Var(&seed, "seed", 0, "Seed for PatchMatch randomness (0 uses the clock)")
	flag.StringVar(&modelPath, "model", "", "Path to an inpainting ONNX model (neural and auto methods)")
	flag.StringVar(&modelFamily, "family", string(models.FamilyLaMa), "Model family: lama, aot-gan, generic")
	flag.StringVar(&provider, "provider", string(inference.ProviderCPU), "Execution provider: cpu, coreml, cuda, openvino")
	flag.IntVar(&resolution, "resolution", inference.DefaultResolution, "Model input resolution (neural and auto methods)")
	flag.Float64Var(&radius, "radius", float64(diffusion.DefaultRadius), "Diffusion neighborhood radius (telea and navier-stokes)")
	flag.DurationVar(&timeout, "timeout", DefaultTimeout, "Fill timeout")
	flag.BoolVar(&enableProfiler, "profile", false, "Report runtime statistics while filling")
	flag.Parse()

	if err := validateArgs(inputPath, maskPath, maskMode); err != nil {
		log.Fatal(err)
	}
	if outputPath == "" {
		outputPath = filepath.Join(filepath.Dir(inputPath), "inpainted_"+filepath.Base(inputPath))
	}

	img, err := util.LoadImageFile(inputPath)
	if err != nil {
		log.Fatalf("Failed to load input: %v", err)
	}
	mask, err := loadMask(maskPath, maskMode)
	if err != nil {
		log.Fatalf("Failed to load mask: %v", err)
	}

	holes := images.CountMasked(mask)
	fraction := images.HoleFraction(mask)

	fmt.Printf("\n🚀 Inpainting Started\n")
	fmt.Printf("=====================================\n")
	fmt.Printf("⚙️  Configuration:\n")
	fmt.Printf("   🖼️  Input: %s (%dx%d)\n", inputPath, img.Width, img.Height)
	fmt.Printf("   🎭 Mask: %s (%s mode, %d pixels, %.1f%%)\n", maskPath, maskMode, holes, fraction*100)
	fmt.Printf("   🔧 Method: %s\n", method)
	switch fill.Method(method) {
	case fill.MethodPatchMatch:
		fmt.Printf("   🧩 Patch size: %d, iterations: %d\n", patchSize, iterations)
	case fill.MethodTelea, fill.MethodNavierStokes:
		fmt.Printf("   🌊 Radius: %.1f\n", radius)
	case fill.MethodNeural:
		fmt.Printf("   🧠 Model: %s (%s) at %dx%d on %s\n", modelPath, modelFamily, resolution, resolution, provider)
	case fill.MethodAuto:
		fmt.Printf("   🧩 Patch size: %d, iterations: %d\n", patchSize, iterations)
		fmt.Printf("   🧠 Model: %s (%s) at %dx%d on %s\n", modelPath, modelFamily, resolution, resolution, provider)
	}
	fmt.Printf("   💾 Output: %s\n", outputPath)
	fmt.Printf("=====================================\n\n")

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	neural, err := models.Resolve(models.Family(modelFamily), modelPath)
	if err != nil {
		log.Fatalf("Failed to resolve model family: %v", err)
	}
	neural.Resolution = resolution
	neural.Provider = inference.Provider(provider)

	filler, err := fill.NewFiller(fill.NewFillerArgs{
		Method: fill.Method(method),
		PatchMatch: patchmatch.Config{
			PatchSize:  patchSize,
			Iterations: iterations,
			Rand:       rng,
		},
		Neural:    neural,
		Diffusion: diffusion.Config{Radius: float32(radius)},
	})
	if err != nil {
		log.Fatalf("Failed to create filler: %v", err)
	}
	defer filler.Close()

	var prof *profiler.Profiler
	if enableProfiler {
		prof = profiler.New(profiler.Options{})
		prof.Start()
		defer prof.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	var stopTiming func()
	if prof != nil {
		stopTiming = prof.StartOperation("fill")
	}
	err = filler.Fill(ctx, img, mask)
	if stopTiming != nil {
		stopTiming()
	}
	if err != nil {
		log.Fatalf("Fill failed: %v", err)
	}
	elapsed := time.Since(start)

	if err := util.SaveImageFile(img, outputPath); err != nil {
		log.Fatalf("Failed to save output: %v", err)
	}

	megapixels := float64(img.Width*img.Height) / 1e6
	fmt.Printf("✅ Filled %d pixels in %v (%.2f Mpx/s)\n", holes, elapsed, megapixels/elapsed.Seconds())
	fmt.Printf("💾 Saved to %s (checksum %s)\n", outputPath, images.ComputeChecksum(img))
}

// validateArgs checks the required flags before any file is touched.
func validateArgs(inputPath, maskPath, maskMode string) error {
	if inputPath == "" {
		return fmt.Errorf("error: input image is required (-input)")
	}
	if maskPath == "" {
		return fmt.Errorf("error: mask image is required (-mask)")
	}
	if maskMode != "alpha" && maskMode != "luminance" {
		return fmt.Errorf("error: unknown mask mode: %s", maskMode)
	}
	if err := validateFile(inputPath, supportedImageExtensions); err != nil {
		return fmt.Errorf("input validation error: %w", err)
	}
	if err := validateFile(maskPath, supportedImageExtensions); err != nil {
		return fmt.Errorf("mask validation error: %w", err)
	}
	return nil
}

// validateFile checks if the file exists and has a supported extension
func validateFile(filePath string, supportedExtensions []string) error {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", filePath)
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	for _, supportedExt := range supportedExtensions {
		if ext == supportedExt {
			return nil
		}
	}

	return fmt.Errorf("unsupported file extension: %s. Supported extensions: %v", ext, supportedExtensions)
}

// loadMask reads the mask image and normalizes it to the alpha
// convention: a pixel is a hole when its alpha is non-zero.
func loadMask(maskPath, maskMode string) (*images.Buffer, error) {
	buf, err := util.LoadImageFile(maskPath)
	if err != nil {
		return nil, err
	}
	if maskMode == "luminance" {
		return images.MaskFromLuminance(buf, DefaultLuminanceThreshold), nil
	}
	return buf, nil
}
