package fill

import (
	"context"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-inpaint/images"
	"github.com/nvr-ai/go-inpaint/inference"
	"github.com/nvr-ai/go-inpaint/patchmatch"
)

// DefaultNeuralHoleFraction is the masked-area share at which auto
// routing hands a call to the neural engine.
const DefaultNeuralHoleFraction = 0.10

// AutoConfig tunes per-call routing between the classical and neural
// engines.
type AutoConfig struct {
	// NeuralHoleFraction is the masked share of the frame at or above
	// which the neural engine runs. Below it PatchMatch runs. Zero
	// selects the default.
	NeuralHoleFraction float64 `json:"neuralHoleFraction" yaml:"neuralHoleFraction"`
}

// autoFiller owns one engine of each kind and routes per call. Small
// holes stay on PatchMatch, which keeps local texture; large holes need
// the global structure only a model provides.
type autoFiller struct {
	threshold float64
	classic   Filler
	neural    Filler
}

func newAutoFiller(args NewFillerArgs) (Filler, error) {
	threshold := args.Auto.NeuralHoleFraction
	if threshold == 0 {
		threshold = DefaultNeuralHoleFraction
	}
	if threshold < 0 || threshold > 1 {
		return nil, errors.Errorf("neural hole fraction must be in [0, 1], got %v", threshold)
	}

	cfg := args.PatchMatch
	if cfg == (patchmatch.Config{}) {
		cfg = patchmatch.DefaultConfig()
	}
	classic, err := patchmatch.NewFiller(cfg)
	if err != nil {
		return nil, err
	}

	neural, err := inference.NewFiller(args.Neural)
	if err != nil {
		classic.Close()
		return nil, err
	}

	return &autoFiller{threshold: threshold, classic: classic, neural: neural}, nil
}

// Fill routes the call by the fraction of masked pixels and delegates
// the contract checks to the chosen engine.
func (a *autoFiller) Fill(ctx context.Context, img, mask *images.Buffer) error {
	if img == nil || mask == nil {
		return errors.New("image and mask are required")
	}
	if images.HoleFraction(mask) >= a.threshold {
		return a.neural.Fill(ctx, img, mask)
	}
	return a.classic.Fill(ctx, img, mask)
}

// Close closes both engines and reports the first failure.
func (a *autoFiller) Close() error {
	err := a.classic.Close()
	if nerr := a.neural.Close(); err == nil {
		err = nerr
	}
	return err
}
