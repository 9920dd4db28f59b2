// Package patchmatch - Example-based image completion. Given an RGBA image
// and a mask marking a hole (non-zero mask alpha), the engine synthesizes
// content for the hole by copying and blending patches from the unmasked
// region, found with an approximate nearest-neighbor search in the
// PatchMatch family: random initialization, alternating-direction
// propagation passes, and exponential random search.
//
// The pipeline is four strictly sequential stages over caller-owned
// buffers: mask analysis, field initialization, iterative refinement, and
// overlapping-patch reconstruction. Nothing is retained between calls.
package patchmatch

import (
	"context"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-inpaint/images"
)

// engine holds the per-call state of one fill run. It lives for a single
// Inpaint call; the image buffer belongs to the caller, everything else is
// scratch.
type engine struct {
	img  *images.Buffer
	reg  *region
	nnf  *field
	half int
	rng  *rand.Rand
}

// Filler runs the PatchMatch pipeline behind the common fill contract.
type Filler struct {
	cfg Config
}

// NewFiller validates the configuration and returns a ready Filler.
//
// Arguments:
// - cfg: Run configuration; see DefaultConfig.
//
// Returns:
// - A Filler, or an error when the configuration is invalid.
func NewFiller(cfg Config) (*Filler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "patchmatch config")
	}
	return &Filler{cfg: cfg}, nil
}

// Fill synthesizes content for every masked pixel of img in place and
// consumes the hole from mask. The context is honored coarsely: it is
// checked once before work starts, and a run that has begun always either
// completes or is abandoned wholesale by the caller.
func (f *Filler) Fill(ctx context.Context, img, mask *images.Buffer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return Inpaint(img, mask, f.cfg)
}

// Close implements the filler contract. The engine holds no resources.
func (f *Filler) Close() error {
	return nil
}

// Inpaint fills the masked region of img using patches from the unmasked
// region and clears the consumed mask entries.
//
// The image is mutated in place: every pixel that was masked receives
// synthesized RGB and alpha 255, and its mask alpha is reset to 0. Pixels
// outside the hole are preserved byte for byte. Two boundary conditions are
// no-ops rather than errors: a mask with nothing marked, and a mask
// covering the entire image (no valid source pixels). In both cases the
// buffers are returned untouched, which callers can detect by checking
// whether any mask bits cleared.
//
// Arguments:
// - img: RGBA buffer to fill, mutated in place.
// - mask: Mask of identical dimensions; non-zero alpha marks the hole.
// - cfg: Run configuration.
//
// Returns:
// - An error for contract violations (nil buffers, dimension mismatch,
//   invalid configuration); never for algorithmic conditions.
func Inpaint(img, mask *images.Buffer, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if img == nil || mask == nil {
		return errors.New("image and mask must be non-nil")
	}
	if img.Width != mask.Width || img.Height != mask.Height {
		return errors.Errorf("mask dimensions %dx%d do not match image dimensions %dx%d",
			mask.Width, mask.Height, img.Width, img.Height)
	}

	reg := analyzeMask(mask)
	if reg.holes == 0 {
		return nil
	}
	if len(reg.valid) == 0 {
		return nil
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &engine{
		img:  img,
		reg:  reg,
		nnf:  newField(reg.w, reg.h),
		half: cfg.halfPatch(),
		rng:  rng,
	}

	e.seed()
	e.refine(cfg.Iterations)
	e.reconstruct(mask)
	return nil
}
