package inference

import (
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-inpaint/images"
)

// PrepareImageTensor converts an RGBA buffer into the model image input:
// a [1, 3, S, S] float32 tensor in CHW order, resized with Lanczos3 and
// normalized per the config.
//
// Arguments:
//   - img: The source image.
//   - cfg: Resolution and normalization settings. Must carry defaults.
//
// Returns:
//   - *tensor.Dense: The populated image tensor.
//   - error: An error if the buffer is unusable.
func PrepareImageTensor(img *images.Buffer, cfg Config) (*tensor.Dense, error) {
	if img == nil || len(img.Pix) == 0 {
		return nil, errors.New("image buffer is empty")
	}
	side := cfg.Resolution
	channelSize := side * side
	data := make([]float32, 3*channelSize)
	red := data[0:channelSize]
	green := data[channelSize : channelSize*2]
	blue := data[channelSize*2 : channelSize*3]

	// Resize to the model resolution using the Lanczos3 algorithm.
	resized := resize.Resize(uint(side), uint(side), img.ToImage(), resize.Lanczos3)

	scale, shift := normalizationTerms(cfg.Normalization)
	i := 0
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			red[i] = float32(r>>8)*scale + shift
			green[i] = float32(g>>8)*scale + shift
			blue[i] = float32(b>>8)*scale + shift
			i++
		}
	}

	return tensor.New(tensor.WithShape(1, 3, side, side), tensor.WithBacking(data)), nil
}

// PrepareMaskTensor converts the mask alpha channel into the model mask
// input: a [1, 1, S, S] float32 tensor. NearestNeighbor resizing keeps
// hole edges hard so no resampled pixel lands between hole and keep.
//
// Arguments:
//   - mask: The mask buffer; any non-zero alpha marks a hole.
//   - cfg: Resolution and polarity settings. Must carry defaults.
//
// Returns:
//   - *tensor.Dense: The populated mask tensor.
//   - error: An error if the buffer is unusable.
func PrepareMaskTensor(mask *images.Buffer, cfg Config) (*tensor.Dense, error) {
	if mask == nil || len(mask.Pix) == 0 {
		return nil, errors.New("mask buffer is empty")
	}
	side := cfg.Resolution
	data := make([]float32, side*side)

	resized := resize.Resize(uint(side), uint(side), mask.ToImage(), resize.NearestNeighbor)

	hole, keep := float32(1), float32(0)
	if cfg.MaskPolarity == MaskHoleIsZero {
		hole, keep = 0, 1
	}
	i := 0
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			_, _, _, a := resized.At(x, y).RGBA()
			if a>>8 != 0 {
				data[i] = hole
			} else {
				data[i] = keep
			}
			i++
		}
	}

	return tensor.New(tensor.WithShape(1, 1, side, side), tensor.WithBacking(data)), nil
}

// normalizationTerms returns the multiply/add pair mapping a byte value
// onto the configured float range.
func normalizationTerms(n Normalization) (scale, shift float32) {
	if n == NormalizationMinusOneToOne {
		return 1.0 / 127.5, -1.0
	}
	return 1.0 / 255.0, 0
}
