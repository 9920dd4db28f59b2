package inference

import (
	"github.com/chewxy/math32"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-inpaint/images"
)

// TensorToBuffer converts a model output tensor into an RGBA buffer.
// [1, 3, H, W] and [3, H, W] shapes are accepted; the value range is
// detected rather than configured since exports disagree on it.
//
// Arguments:
//   - out: The model output in CHW order.
//
// Returns:
//   - *images.Buffer: An opaque H×W buffer.
//   - error: An error if the shape or backing type is unusable.
func TensorToBuffer(out *tensor.Dense) (*images.Buffer, error) {
	if out == nil {
		return nil, errors.New("output tensor is nil")
	}
	data, ok := out.Data().([]float32)
	if !ok {
		return nil, errors.Errorf("backing must be []float32, got %T", out.Data())
	}

	shape := []int(out.Shape())
	if len(shape) == 4 && shape[0] == 1 {
		shape = shape[1:]
	}
	if len(shape) != 3 || shape[0] != 3 {
		return nil, errors.Errorf("expected a [1, 3, H, W] output, got %v", out.Shape())
	}
	height, width := shape[1], shape[2]
	channelSize := height * width
	if len(data) < 3*channelSize {
		return nil, errors.Errorf("output holds %d floats, needs %d", len(data), 3*channelSize)
	}
	red := data[0:channelSize]
	green := data[channelSize : channelSize*2]
	blue := data[channelSize*2 : channelSize*3]

	scale := float64(resolveScale(data[:3*channelSize]))

	buf := images.New(width, height)
	images.Parallel(channelSize, func(partStart, partEnd int) {
		for i := partStart; i < partEnd; i++ {
			pi := i * images.BytesPerPixel
			buf.Pix[pi] = uint8(images.Clamp(float64(red[i])*scale+0.5, 0, 255))
			buf.Pix[pi+1] = uint8(images.Clamp(float64(green[i])*scale+0.5, 0, 255))
			buf.Pix[pi+2] = uint8(images.Clamp(float64(blue[i])*scale+0.5, 0, 255))
			buf.Pix[pi+3] = 255
		}
	})
	return buf, nil
}

// resolveScale detects whether the model emitted unit-range floats or
// byte magnitudes. Well-formed unit outputs stay at or barely above 1,
// so the cutoff only needs to separate 1 from 255.
func resolveScale(data []float32) float32 {
	peak := float32(0)
	for _, v := range data {
		peak = math32.Max(peak, math32.Abs(v))
	}
	if peak <= 1.5 {
		return 255
	}
	return 1
}

// BlendResult copies the synthesized RGB into the originally-masked
// pixels of img, resizing the result to the source dimensions first if
// the model ran at a different resolution. Filled pixels become opaque
// and their mask entry is cleared; every unmasked byte is preserved.
//
// Arguments:
//   - img: The destination image, mutated in place.
//   - mask: The hole mask, consumed as pixels are filled.
//   - result: The model output buffer.
//
// Returns:
//   - error: An error when dimensions are inconsistent.
func BlendResult(img, mask, result *images.Buffer) error {
	if img == nil || mask == nil || result == nil {
		return errors.New("nil buffer")
	}
	if img.Width != mask.Width || img.Height != mask.Height {
		return errors.Errorf("mask is %dx%d, image is %dx%d",
			mask.Width, mask.Height, img.Width, img.Height)
	}

	resized := result
	if result.Width != img.Width || result.Height != img.Height {
		scaled := resize.Resize(uint(img.Width), uint(img.Height), result.ToImage(), resize.Lanczos3)
		resized = images.FromImage(scaled)
	}

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			pi := img.PixOffset(x, y)
			if mask.Pix[pi+3] == 0 {
				continue
			}
			img.Pix[pi] = resized.Pix[pi]
			img.Pix[pi+1] = resized.Pix[pi+1]
			img.Pix[pi+2] = resized.Pix[pi+2]
			img.Pix[pi+3] = 255
			mask.Pix[pi+3] = 0
		}
	}
	return nil
}
