// Package diffusion - Classical inpainting over OpenCV's diffusion
// algorithms (Telea and Navier-Stokes).
//
// These fillers trade texture quality for speed: they smear surrounding
// colors into the hole, which reads well for thin scratches and small
// blemishes but blurs on large regions. The outward contract matches
// the other fill paths.
package diffusion

import (
	"context"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-inpaint/images"
)

// Method selects the OpenCV inpainting algorithm.
type Method string

const (
	// MethodTelea is Telea's fast marching method.
	MethodTelea Method = "telea"
	// MethodNavierStokes is fluid-dynamics based diffusion.
	MethodNavierStokes Method = "navier-stokes"
)

// DefaultRadius is the neighborhood radius considered around each
// inpainted pixel, in pixels.
const DefaultRadius = 3.0

// Config selects the algorithm and its radius.
type Config struct {
	Method Method  `json:"method" yaml:"method"`
	Radius float32 `json:"radius" yaml:"radius"`
}

// DefaultConfig returns a Telea config with the default radius.
func DefaultConfig() Config {
	return Config{
		Method: MethodTelea,
		Radius: DefaultRadius,
	}
}

// Validate reports the first unusable field.
func (c Config) Validate() error {
	switch c.Method {
	case MethodTelea, MethodNavierStokes:
	default:
		return errors.Errorf("unknown diffusion method: %s", c.Method)
	}
	if c.Radius <= 0 {
		return errors.Errorf("radius must be positive, got %v", c.Radius)
	}
	return nil
}

// Filler runs OpenCV inpainting with one fixed config.
type Filler struct {
	cfg Config
}

// NewFiller validates the config and returns a ready filler. No OpenCV
// state is held between calls, so Close is trivial.
func NewFiller(cfg Config) (*Filler, error) {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "diffusion config")
	}
	return &Filler{cfg: cfg}, nil
}

// Fill inpaints the masked region of img in place and clears the mask.
//
// Arguments:
//   - ctx: Checked before the OpenCV call.
//   - img: The image to fill, mutated in place.
//   - mask: The hole mask; any non-zero alpha marks a hole.
//
// Returns:
//   - error: An error on contract violations or Mat conversion failure.
func (f *Filler) Fill(ctx context.Context, img, mask *images.Buffer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if img == nil || mask == nil {
		return errors.New("image and mask are required")
	}
	if img.Width != mask.Width || img.Height != mask.Height {
		return errors.Errorf("mask is %dx%d, image is %dx%d",
			mask.Width, mask.Height, img.Width, img.Height)
	}
	if images.CountMasked(mask) == 0 {
		return nil
	}

	result, err := f.inpaint(img, mask)
	if err != nil {
		return err
	}

	// Only the hole takes the OpenCV result. Everything else keeps its
	// original bytes, same as the other fill paths.
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			pi := img.PixOffset(x, y)
			if mask.Pix[pi+3] == 0 {
				continue
			}
			img.Pix[pi] = result.Pix[pi]
			img.Pix[pi+1] = result.Pix[pi+1]
			img.Pix[pi+2] = result.Pix[pi+2]
			img.Pix[pi+3] = 255
			mask.Pix[pi+3] = 0
		}
	}
	return nil
}

// Close implements the filler contract.
func (f *Filler) Close() error {
	return nil
}

// inpaint runs the configured OpenCV algorithm and returns the full
// result frame as a buffer.
func (f *Filler) inpaint(img, mask *images.Buffer) (*images.Buffer, error) {
	srcRGBA, err := gocv.NewMatFromBytes(img.Height, img.Width, gocv.MatTypeCV8UC4, img.Pix)
	if err != nil {
		return nil, errors.Wrap(err, "converting image to Mat")
	}
	defer srcRGBA.Close()

	// OpenCV inpainting wants a 3-channel frame.
	src := gocv.NewMat()
	defer src.Close()
	gocv.CvtColor(srcRGBA, &src, gocv.ColorRGBAToBGR)

	holes := make([]byte, img.Width*img.Height)
	for i := range holes {
		holes[i] = mask.Pix[i*images.BytesPerPixel+3]
	}
	maskMat, err := gocv.NewMatFromBytes(img.Height, img.Width, gocv.MatTypeCV8UC1, holes)
	if err != nil {
		return nil, errors.Wrap(err, "converting mask to Mat")
	}
	defer maskMat.Close()

	algorithm := gocv.Telea
	if f.cfg.Method == MethodNavierStokes {
		algorithm = gocv.NS
	}

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Inpaint(src, maskMat, &dst, f.cfg.Radius, algorithm)

	resultRGBA := gocv.NewMat()
	defer resultRGBA.Close()
	gocv.CvtColor(dst, &resultRGBA, gocv.ColorBGRToRGBA)

	result := images.New(img.Width, img.Height)
	copy(result.Pix, resultRGBA.ToBytes())
	return result, nil
}
