package inference

import (
	"context"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-inpaint/images"
)

// Filler runs the neural fill pipeline for one configured model. The
// outward contract matches the classical paths: masked pixels are
// replaced and made opaque, unmasked pixels are byte-preserved, and the
// mask is cleared as it is consumed.
type Filler struct {
	cfg Config
	rt  Runtime
}

// NewFiller validates the config and opens an onnxruntime session for
// the configured model.
//
// Arguments:
//   - cfg: The model configuration. ModelPath is required.
//
// Returns:
//   - *Filler: A ready filler owning the session.
//   - error: An error if the config or session is unusable.
func NewFiller(cfg Config) (*Filler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "inference config")
	}
	cfg = cfg.withDefaults()
	rt, err := NewORTRuntime(cfg)
	if err != nil {
		return nil, err
	}
	return &Filler{cfg: cfg, rt: rt}, nil
}

// NewFillerWithRuntime builds a Filler over a caller-supplied runtime.
// No session is opened, so ModelPath may be empty.
func NewFillerWithRuntime(cfg Config, rt Runtime) (*Filler, error) {
	if rt == nil {
		return nil, errors.New("runtime is required")
	}
	if err := cfg.validateOptions(); err != nil {
		return nil, errors.Wrap(err, "inference config")
	}
	return &Filler{cfg: cfg.withDefaults(), rt: rt}, nil
}

// Fill synthesizes the masked region of img via the model.
//
// Arguments:
//   - ctx: Checked before work starts and before the session call.
//   - img: The image to fill, mutated in place.
//   - mask: The hole mask, cleared as pixels are filled.
//
// Returns:
//   - error: An error on contract violations or inference failure.
func (f *Filler) Fill(ctx context.Context, img, mask *images.Buffer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.rt == nil {
		return errors.New("filler is closed")
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

	imageT, err := PrepareImageTensor(img, f.cfg)
	if err != nil {
		return errors.Wrap(err, "preparing image tensor")
	}
	maskT, err := PrepareMaskTensor(mask, f.cfg)
	if err != nil {
		return errors.Wrap(err, "preparing mask tensor")
	}

	out, err := f.rt.Infer(ctx, imageT, maskT)
	if err != nil {
		return err
	}

	result, err := TensorToBuffer(out)
	if err != nil {
		return errors.Wrap(err, "decoding model output")
	}
	return BlendResult(img, mask, result)
}

// Close releases the session. Safe to call more than once.
func (f *Filler) Close() error {
	if f.rt == nil {
		return nil
	}
	err := f.rt.Close()
	f.rt = nil
	return err
}
