// Package fill - Selectable hole-filling engines behind one contract.
//
// Every engine takes an RGBA image and a mask, replaces the masked
// pixels in place, forces them opaque, preserves every unmasked byte,
// and clears the mask as it goes. Callers pick an engine by Method and
// never see the algorithm underneath.
package fill

import (
	"context"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-inpaint/diffusion"
	"github.com/nvr-ai/go-inpaint/images"
	"github.com/nvr-ai/go-inpaint/inference"
	"github.com/nvr-ai/go-inpaint/patchmatch"
)

// Method identifies a fill engine.
type Method string

const (
	// MethodPatchMatch is the example-based core algorithm.
	MethodPatchMatch Method = "patchmatch"
	// MethodTelea is OpenCV fast-marching diffusion.
	MethodTelea Method = "telea"
	// MethodNavierStokes is OpenCV fluid-dynamics diffusion.
	MethodNavierStokes Method = "navier-stokes"
	// MethodNeural delegates to a pretrained ONNX model.
	MethodNeural Method = "neural"
	// MethodAuto routes each call by hole size.
	MethodAuto Method = "auto"
)

// Methods lists every selectable fill method.
var Methods = []Method{
	MethodPatchMatch,
	MethodTelea,
	MethodNavierStokes,
	MethodNeural,
	MethodAuto,
}

// Filler fills the masked region of an image in place and consumes the
// mask. Close releases whatever the engine holds; fillers without
// sessions return nil.
type Filler interface {
	Fill(ctx context.Context, img, mask *images.Buffer) error
	Close() error
}

// NewFillerArgs selects a method and carries per-engine configuration.
// Only the section matching Method is read; zero-value sections take
// that engine's defaults.
type NewFillerArgs struct {
	Method     Method            `json:"method"     yaml:"method"`
	PatchMatch patchmatch.Config `json:"patchMatch" yaml:"patchMatch"`
	Neural     inference.Config  `json:"neural"     yaml:"neural"`
	Diffusion  diffusion.Config  `json:"diffusion"  yaml:"diffusion"`
	Auto       AutoConfig        `json:"auto"       yaml:"auto"`
}

// NewFiller constructs the filler for the requested method.
//
// Arguments:
//   - args: Method selection plus per-engine configuration.
//
// Returns:
//   - Filler: The ready engine. The caller owns Close.
//   - error: An error if the method is unknown or its config invalid.
//
// @example
// filler, err := fill.NewFiller(fill.NewFillerArgs{
//	Method: fill.MethodPatchMatch,
// })
//
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// defer filler.Close()
// err = filler.Fill(ctx, img, mask)
func NewFiller(args NewFillerArgs) (Filler, error) {
	switch args.Method {
	case MethodPatchMatch:
		cfg := args.PatchMatch
		if cfg == (patchmatch.Config{}) {
			cfg = patchmatch.DefaultConfig()
		}
		return patchmatch.NewFiller(cfg)
	case MethodTelea:
		return newDiffusionFiller(args.Diffusion, diffusion.MethodTelea)
	case MethodNavierStokes:
		return newDiffusionFiller(args.Diffusion, diffusion.MethodNavierStokes)
	case MethodNeural:
		return inference.NewFiller(args.Neural)
	case MethodAuto:
		return newAutoFiller(args)
	default:
		return nil, errors.Errorf("unsupported fill method: %s", args.Method)
	}
}

// newDiffusionFiller builds an OpenCV filler for the algorithm chosen
// at the fill level, keeping whatever radius the caller set.
func newDiffusionFiller(cfg diffusion.Config, method diffusion.Method) (Filler, error) {
	if cfg.Radius == 0 {
		cfg.Radius = diffusion.DefaultRadius
	}
	cfg.Method = method
	return diffusion.NewFiller(cfg)
}
